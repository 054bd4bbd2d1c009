package testutil

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// MaxBruteForce is the largest input BruteForce accepts.
const MaxBruteForce = 24

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int63n returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63n(n)
}

// Weights generates n weights uniformly in [1, maxValue].
func (r *RNG) Weights(n int, maxValue int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int64, n)
	for i := range out {
		out[i] = 1 + r.rand.Int63n(maxValue)
	}
	return out
}

// WeightsWithRepeats generates n weights drawn from a small pool of distinct
// values in [0, maxValue], so equal values (and zeros) at different indices
// are common.
func (r *RNG) WeightsWithRepeats(n, distinct int, maxValue int64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	pool := make([]int64, distinct)
	for i := range pool {
		pool[i] = r.rand.Int63n(maxValue + 1)
	}
	out := make([]int64, n)
	for i := range out {
		out[i] = pool[r.rand.Intn(distinct)]
	}
	return out
}

// TargetFor picks a target that is usually reachable: the sum of a random
// subset of values, occasionally nudged by one.
func (r *RNG) TargetFor(values []int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	var t int64
	for _, v := range values {
		if r.rand.Intn(2) == 0 {
			t += v
		}
	}
	if r.rand.Intn(4) == 0 {
		t++
	}
	return t
}

// BruteForce enumerates all 2^n index subsets of values and returns those
// summing to target, each as ascending indices, ordered by bitmask.
// It panics if len(values) > MaxBruteForce.
func BruteForce(values []int64, target int64) [][]int {
	n := len(values)
	if n > MaxBruteForce {
		panic(fmt.Sprintf("testutil: brute force over %d weights (max %d)", n, MaxBruteForce))
	}

	var out [][]int
	for mask := uint32(0); mask < 1<<n; mask++ {
		var sum int64
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sum += values[i]
			}
		}
		if sum != target {
			continue
		}
		subset := []int{}
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, i)
			}
		}
		out = append(out, subset)
	}
	return out
}

// ReachableSums returns, for every s in [0, target], whether some index
// subset of values sums to s.
func ReachableSums(values []int64, target int64) []bool {
	reach := make([]bool, target+1)
	reach[0] = true
	for _, v := range values {
		for s := target; s >= v; s-- {
			if reach[s-v] {
				reach[s] = true
			}
		}
	}
	return reach
}

// Key returns the canonical key of an index set, matching model.Subset.Key.
func Key(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ",")
}

// Keys returns the sorted canonical keys of sets, for order-independent
// comparison with assert.Equal.
func Keys[S ~[]int](sets []S) []string {
	out := make([]string, len(sets))
	for i, s := range sets {
		out[i] = Key(s)
	}
	sort.Strings(out)
	return out
}
