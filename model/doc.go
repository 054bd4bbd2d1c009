// Package model defines core types used throughout subsetsum.
//
// # Identity Types
//
//   - Weight: an input value tagged with its original input index
//   - Subset: ascending, distinct weight indices whose values sum to a target
//
// # Collections
//
//   - Collection: the ordered, index-deduplicated set of all subsets found
//
// Subsets are reported as index sets, not value sets, so callers can
// recover duplicates and provenance from their own input:
//
//	for s := range results.All() {
//	    for _, idx := range s {
//	        fmt.Println(idx, masses[idx])
//	    }
//	}
package model
