package table

import (
	"context"
	"math"

	"github.com/hupe1980/subsetsum/internal/conv"
	"github.com/hupe1980/subsetsum/weights"
)

// CountBytes returns the number of bytes CountSolutions allocates for target.
// The result saturates at math.MaxInt64.
func CountBytes(target int64) int64 {
	if target < 0 || target >= math.MaxInt64/8 {
		return math.MaxInt64
	}
	return (target + 1) * 8
}

// CountSolutions returns the number of index subsets of set that sum to the
// target, saturating at math.MaxUint64. It uses O(T) memory.
//
// The count is the projected size of the full result collection and is used
// for the pre-flight budget check.
func CountSolutions(ctx context.Context, set *weights.Set, cfg Config) (uint64, error) {
	target := set.Target()
	if err := Check(target, cfg); err != nil {
		return 0, err
	}

	counts := make([]uint64, target+1)
	counts[0] = 1

	for i := 0; i < set.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		w := set.Value(i)
		if w > target {
			continue
		}
		// Descending so each weight is used at most once. For w == 0 the
		// update doubles every count.
		for s := target; s >= w; s-- {
			counts[s] = conv.SaturatingAdd(counts[s], counts[s-w])
		}
	}

	return counts[target], nil
}
