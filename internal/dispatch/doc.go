// Package dispatch fans subset enumeration out over concurrent workers.
//
// # Partitioning
//
// The search space is split on the top k decisions of the backtracker, i.e.
// whether each of the weights n-1 .. n-k is included. Every one of the 2^k
// assignments is a partition with its own reduced target and table level.
// A subset either contains an index or it does not, so partitions are
// disjoint and together complete.
//
// Partition p includes index n-1-j iff bit (k-1-j) of p is 0. Merging
// partitions in ascending order therefore reproduces the serial
// include-first emission order exactly, whatever the worker count.
// Assignments that the table proves unreachable are pruned at planning time.
//
// # Execution
//
// Workers share only the read-only table and backtracker. Each worker owns
// its result slice and the merge happens once, after all workers finished.
// Worker slots come from a resource.Controller, so once a run is cancelled,
// partitions that have not started are never started.
//
// # Failure Policy
//
// A panic, invariant violation or forced termination fails only its own
// partition. The Outcome lists the failed partitions and contains the
// results of every partition that completed.
package dispatch
