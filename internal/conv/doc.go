// Package conv provides checked numeric conversion utilities.
//
// These functions perform bounds and representability checks so that raw
// caller input (float64 weights, int64 sums) can be turned into the
// integer types used for table indexing without silent truncation.
//
// Use cases:
//   - Normalizing integer-scale masses supplied as float64
//   - Converting sums into bitset positions (uint)
//   - Converting weight indices into roaring bitmap members (uint32)
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices, bounded counters), use direct type casts instead to avoid overhead.
package conv
