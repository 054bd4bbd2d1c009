package subsetsum

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	t.Run("Solve", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		_, err := New(WithLogger(logger), WithParallelism(1)).SolveInts(t.Context(), []int64{2, 3, 7, 8, 10}, 10)
		require.NoError(t, err)

		out := buf.String()
		assert.Contains(t, out, `"msg":"table built"`)
		assert.Contains(t, out, `"msg":"solve completed"`)
		assert.Contains(t, out, `"results":3`)
		assert.Contains(t, out, `"target":10`)
		assert.Contains(t, out, `"weights":5`)
	})

	t.Run("BudgetRejected", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(slog.NewTextHandler(&buf, nil))

		_, err := New(WithLogger(logger), WithMaxProjectedResults(1)).SolveInts(t.Context(), []int64{1, 1}, 1)
		require.Error(t, err)

		out := buf.String()
		assert.Contains(t, out, "budget exceeded")
		assert.Contains(t, out, `resource="projected results"`)
		assert.Contains(t, out, "solve failed")
	})

	t.Run("Noop", func(t *testing.T) {
		logger := NoopLogger()
		assert.False(t, logger.Enabled(t.Context(), slog.LevelError))

		res, err := New(WithLogger(nil)).SolveInts(t.Context(), []int64{1}, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Len())
	})
}
