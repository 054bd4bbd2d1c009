// Package subsetsum enumerates every subset of a weight list that sums
// exactly to a target.
//
// Weights and the target are non-negative integer-scale values, for example
// masses in fixed-point units. Solving builds a pseudo-polynomial
// reachability table of (n+1)·(T+1) bits and backtracks through it, so the
// cost is O(n·T) to build plus the size of the output to enumerate.
//
// # Quick Start
//
//	res, err := subsetsum.Solve(ctx, []float64{2, 3, 7, 8, 10}, 10)
//	if err != nil {
//	    return err
//	}
//	for s := range res.All() {
//	    fmt.Println(s, res.Values(s)) // [4] [10], [0 3] [2 8], [1 2] [3 7]
//	}
//
// Subsets are index sets. Equal values at different positions yield
// distinct subsets, and every subset lists its indices in ascending order.
//
// # Parallelism
//
// A Solver splits the search on the top k include/exclude decisions into up
// to 2^k independent partitions and enumerates them on a bounded set of
// workers:
//
//	solver := subsetsum.New(
//	    subsetsum.WithParallelism(8),
//	    subsetsum.WithMemoryLimit(256<<20),
//	)
//	res, err := solver.SolveInts(ctx, weights, target)
//
// Partitions are merged in ascending order, so the result order does not
// depend on the parallelism. A failing partition does not affect its
// siblings: the error is a *PartitionFailureError listing the failed
// partitions, and by default the results of the others are returned too.
//
// # Budgets
//
// Targets above WithMaxTarget fail with *TargetTooLargeError and tables
// larger than WithMemoryLimit fail with *ResourceBudgetExceededError, both
// before anything is allocated. WithMaxProjectedResults counts the solutions
// up front and rejects inputs with too many of them.
//
// # Streaming
//
// Stream enumerates lazily on the calling goroutine:
//
//	for s, err := range solver.Stream(ctx, weights, target) {
//	    if err != nil {
//	        return err
//	    }
//	    if done(s) {
//	        break
//	    }
//	}
package subsetsum
