package subsetsum

import (
	"time"

	"github.com/hupe1980/subsetsum/model"
)

// Subset is an ascending list of distinct weight indices.
type Subset = model.Subset

// Weight is one input weight with its position.
type Weight = model.Weight

// Results is the collection of subsets found by a solve.
//
// Subsets are ordered deterministically: include-before-exclude on the
// highest undecided index, independent of parallelism.
type Results struct {
	*model.Collection

	// Target is the normalized target.
	Target int64
	// Truncated reports that enumeration stopped at the configured
	// maximum number of results.
	Truncated bool
	// Partitions is the number of planned partitions.
	Partitions int
	// Pruned is the number of partitions proven empty before dispatch.
	Pruned int
	// Elapsed is the wall time of the solve.
	Elapsed time.Duration

	values []int64
}

// Weights returns the normalized weight values, indexed by input position.
func (r *Results) Weights() []int64 {
	out := make([]int64, len(r.values))
	copy(out, r.values)
	return out
}

// Values returns the weight values of s.
func (r *Results) Values(s Subset) []int64 {
	return s.Values(r.values)
}
