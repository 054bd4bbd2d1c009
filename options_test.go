package subsetsum

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		opts := applyOptions(nil)
		assert.Equal(t, DefaultMaxWeights, opts.maxWeights)
		assert.Equal(t, int64(DefaultMaxTarget), opts.maxTarget)
		assert.Equal(t, runtime.GOMAXPROCS(0), opts.parallelism)
		assert.Equal(t, -1, opts.partitionDepth)
		assert.True(t, opts.allowPartial)
		assert.True(t, opts.verify)
		assert.False(t, opts.forceTerminate)
		assert.False(t, opts.cancelOnBudgetExceeded)
		assert.IsType(t, NoopMetricsCollector{}, opts.metricsCollector)
		assert.NotNil(t, opts.logger)
	})

	t.Run("Overrides", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		opts := applyOptions([]Option{
			WithMaxWeights(10),
			WithMaxTarget(500),
			WithParallelism(3),
			WithPartitionDepth(2),
			WithCancelOnBudgetExceeded(true),
			WithMemoryLimit(1 << 20),
			WithMaxProjectedResults(99),
			WithMaxResults(7),
			WithMaxSubsetLength(4),
			WithAllowPartial(false),
			WithForceTerminate(true),
			WithVerify(false),
			WithMetricsCollector(mc),
		})
		assert.Equal(t, 10, opts.maxWeights)
		assert.Equal(t, int64(500), opts.maxTarget)
		assert.Equal(t, 3, opts.parallelism)
		assert.Equal(t, 2, opts.partitionDepth)
		assert.True(t, opts.cancelOnBudgetExceeded)
		assert.Equal(t, int64(1<<20), opts.memoryLimit)
		assert.Equal(t, uint64(99), opts.maxProjectedResults)
		assert.Equal(t, 7, opts.maxResults)
		assert.Equal(t, 4, opts.maxSubsetLength)
		assert.False(t, opts.allowPartial)
		assert.True(t, opts.forceTerminate)
		assert.False(t, opts.verify)
		assert.Same(t, mc, opts.metricsCollector)
	})

	t.Run("NilFallbacks", func(t *testing.T) {
		opts := applyOptions([]Option{WithParallelism(0), WithLogger(nil), WithMetricsCollector(nil)})
		assert.Equal(t, runtime.GOMAXPROCS(0), opts.parallelism)
		assert.NotNil(t, opts.logger)
		assert.IsType(t, NoopMetricsCollector{}, opts.metricsCollector)
	})
}
