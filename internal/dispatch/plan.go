package dispatch

import (
	"math/bits"

	"github.com/hupe1980/subsetsum/internal/backtrack"
)

// MaxPartitionDepth bounds the fan-out to 2^MaxPartitionDepth partitions.
const MaxPartitionDepth = 16

// oversubscribe is the number of extra split levels beyond one partition per
// worker, so uneven subtrees balance out.
const oversubscribe = 2

// Partition is one disjoint slice of the search space.
type Partition struct {
	ID     int
	Root   backtrack.Root
	Pruned bool
}

// AutoDepth returns the partition depth used when none is configured.
func AutoDepth(parallelism, n int) int {
	if parallelism <= 1 {
		return 0
	}
	return clampDepth(bits.Len(uint(parallelism-1))+oversubscribe, n)
}

func clampDepth(depth, n int) int {
	return max(0, min(depth, n, MaxPartitionDepth))
}

// Plan splits the search space of b into 2^depth partitions.
// depth is clamped to [0, min(n, MaxPartitionDepth)].
func Plan(b *backtrack.Backtracker, depth int) []Partition {
	t := b.Table()
	n := t.Len()
	depth = clampDepth(depth, n)
	limit := b.MaxSubsetLength()
	feasible := t.Feasible()

	parts := make([]Partition, 1<<depth)
	for p := range parts {
		root := backtrack.Root{Level: n - depth, Remaining: t.Target()}
		ok := feasible

		for j := 0; j < depth && ok; j++ {
			i := n - j
			if p>>(depth-1-j)&1 == 0 {
				if !t.CanInclude(i, root.Remaining) || (limit > 0 && len(root.Includes) >= limit) {
					ok = false
					break
				}
				root.Includes = append(root.Includes, i-1)
				root.Remaining -= t.Weight(i - 1)
			} else if !t.CanExclude(i, root.Remaining) {
				ok = false
			}
		}

		parts[p] = Partition{ID: p, Root: root, Pruned: !ok}
	}

	return parts
}
