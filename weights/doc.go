// Package weights validates and canonicalizes subset-sum input.
//
// Raw weights arrive as integer-scale masses, either as int64 or as float64
// values that must be integral. Normalization rejects negative, non-finite,
// fractional and out-of-range values and tags every weight with its input
// index so that results can be reported as index sets.
//
//	set, err := weights.Normalize([]float64{2, 3, 7, 8, 10}, 11, 0)
//	if err != nil {
//	    var ie *weights.InvalidInputError
//	    if errors.As(err, &ie) { ... }
//	}
package weights
