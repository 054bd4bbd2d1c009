package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat64ToInt64(t *testing.T) {
	tests := []struct {
		name    string
		in      float64
		want    int64
		wantErr error
	}{
		{name: "zero", in: 0, want: 0},
		{name: "positive", in: 1234, want: 1234},
		{name: "negative", in: -7, want: -7},
		{name: "fraction", in: 1.5, wantErr: ErrNotIntegral},
		{name: "nan", in: math.NaN(), wantErr: ErrNotFinite},
		{name: "inf", in: math.Inf(1), wantErr: ErrNotFinite},
		{name: "neg inf", in: math.Inf(-1), wantErr: ErrNotFinite},
		{name: "too large", in: 1e19, wantErr: ErrOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Float64ToInt64(tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestInt64ToUint(t *testing.T) {
	got, err := Int64ToUint(42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), got)

	_, err = Int64ToUint(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestIntToUint32(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := IntToUint32(0)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0), got)
	})

	t.Run("valid max int32", func(t *testing.T) {
		got, err := IntToUint32(math.MaxInt32)
		assert.NoError(t, err)
		assert.Equal(t, uint32(math.MaxInt32), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntToUint32(-1)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestSaturatingAdd(t *testing.T) {
	assert.Equal(t, uint64(5), SaturatingAdd(2, 3))
	assert.Equal(t, uint64(math.MaxUint64), SaturatingAdd(math.MaxUint64, 1))
	assert.Equal(t, uint64(math.MaxUint64), SaturatingAdd(math.MaxUint64-1, 10))
}
