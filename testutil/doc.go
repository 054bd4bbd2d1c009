// Package testutil provides testing utilities for subsetsum.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random weight sets, an exhaustive
// oracle for small inputs, and order-independent result comparison.
//
// # Random Weight Generation
//
//	rng := testutil.NewRNG(seed)
//	ws := rng.Weights(16, 50)                   // uniform [1, 50]
//	ws = rng.WeightsWithRepeats(16, 4, 10)      // few distinct values, zeros allowed
//	target := rng.TargetFor(ws)
//
// # Exhaustive Oracle
//
//	want := testutil.BruteForce(ws, target)
//	assert.Equal(t, testutil.Keys(want), testutil.Keys(got))
package testutil
