// Package table builds the subset-sum reachability table.
//
// Row i of the table is a bitset over partial sums 0..T where bit s is set iff
// some sub-multiset of the first i weights sums exactly to s:
//
//	row[0]   = {0}
//	row[i]   = row[i-1] ∪ (row[i-1] + w[i-1])    (truncated at T)
//
// Construction is O(n·T) time and space, pseudo-polynomial in the target.
// Weights are processed in input order. A weight that is zero or larger than
// T cannot change the reachable set, so its row shares storage with the
// previous one.
//
// Once built, a Table is never mutated and is safe for concurrent readers.
package table
