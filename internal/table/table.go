package table

import (
	"context"
	"math"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/subsetsum/internal/conv"
	"github.com/hupe1980/subsetsum/weights"
)

// rowOverhead approximates the fixed per-row cost of a bitset.
const rowOverhead = 48

// Config configures table construction.
type Config struct {
	// MaxTarget is the largest target a table may be built for.
	// If 0, only the platform limit applies.
	MaxTarget int64
}

// Table is the immutable reachability table for one weight set and target.
type Table struct {
	rows   []*bitset.BitSet
	values []int64
	zeros  []int // zeros[i] counts zero weights among the first i
	target int64
}

// Check validates that a table may be built for target.
// It performs no allocation.
func Check(target int64, cfg Config) error {
	if cfg.MaxTarget > 0 && target > cfg.MaxTarget {
		return &TargetTooLargeError{Target: target, Max: cfg.MaxTarget}
	}
	if target == math.MaxInt64 {
		return &TargetTooLargeError{Target: target, Max: math.MaxInt64 - 1}
	}
	// Bitset positions are uint; this only triggers on 32-bit platforms.
	if _, err := conv.Int64ToUint(target + 1); err != nil {
		return &TargetTooLargeError{Target: target, Max: int64(^uint(0) >> 1)}
	}
	return nil
}

// EstimateBytes returns the number of bytes a table for n weights and target
// occupies at most. The result saturates at math.MaxInt64.
func EstimateBytes(n int, target int64) int64 {
	if target < 0 || target == math.MaxInt64 {
		return math.MaxInt64
	}
	words := target/64 + 1
	rows := int64(n) + 1
	perRow := words*8 + rowOverhead
	if perRow > math.MaxInt64/rows {
		return math.MaxInt64
	}
	return perRow * rows
}

// Build constructs the table for set. ctx is checked once per row.
func Build(ctx context.Context, set *weights.Set, cfg Config) (*Table, error) {
	n := set.Len()
	target := set.Target()
	if err := Check(target, cfg); err != nil {
		return nil, err
	}

	size, err := conv.Int64ToUint(target + 1)
	if err != nil {
		return nil, err
	}

	t := &Table{
		rows:   make([]*bitset.BitSet, n+1),
		values: set.Values(),
		zeros:  make([]int, n+1),
		target: target,
	}
	t.rows[0] = bitset.New(size).Set(0)

	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prev := t.rows[i-1]
		w := t.values[i-1]
		t.zeros[i] = t.zeros[i-1]

		if w == 0 {
			t.zeros[i]++
		}
		if w == 0 || w > target {
			t.rows[i] = prev
			continue
		}

		shift := uint(w) // w <= target, which fits uint
		row := prev.Clone()
		for s, ok := prev.NextSet(0); ok && s+shift < size; s, ok = prev.NextSet(s + 1) {
			row.Set(s + shift)
		}
		t.rows[i] = row
	}

	return t, nil
}

// Len returns the number of weights n. Rows are indexed 0..n.
func (t *Table) Len() int { return len(t.values) }

// Target returns the target T. Sums are indexed 0..T.
func (t *Table) Target() int64 { return t.target }

// Weight returns the value of the weight at input index idx.
func (t *Table) Weight(idx int) int64 { return t.values[idx] }

// Reachable reports whether sum s is reachable using the first i weights.
func (t *Table) Reachable(i int, s int64) bool {
	if i < 0 || i >= len(t.rows) || s < 0 || s > t.target {
		return false
	}
	return t.rows[i].Test(uint(s))
}

// CanInclude reports whether the state (i, s) can be reached by including
// weight i-1, i.e. w[i-1] <= s and s-w[i-1] is reachable by the first i-1.
func (t *Table) CanInclude(i int, s int64) bool {
	if i <= 0 {
		return false
	}
	w := t.values[i-1]
	return w <= s && t.Reachable(i-1, s-w)
}

// CanExclude reports whether s is reachable without weight i-1.
func (t *Table) CanExclude(i int, s int64) bool {
	if i <= 0 {
		return false
	}
	return t.Reachable(i-1, s)
}

// Feasible reports whether the target is reachable with all weights.
func (t *Table) Feasible() bool {
	return t.Reachable(len(t.values), t.target)
}

// ZerosIn returns the number of zero-valued weights among the first i.
func (t *Table) ZerosIn(i int) int { return t.zeros[i] }

// ReachableSums returns how many sums in 0..T are reachable with all weights.
func (t *Table) ReachableSums() int {
	return int(t.rows[len(t.values)].Count())
}

// SizeBytes returns the bytes held by distinct rows.
func (t *Table) SizeBytes() int64 {
	var total int64
	var last *bitset.BitSet
	for _, r := range t.rows {
		if r == last {
			continue
		}
		last = r
		total += int64(r.Len()+63)/64*8 + rowOverhead
	}
	return total
}
