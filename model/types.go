package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Weight is a normalized, non-negative input value.
// Index is the position of the value in the caller's input.
type Weight struct {
	Index int
	Value int64
}

// String returns a string representation of the Weight.
func (w Weight) String() string {
	return fmt.Sprintf("W(%d:%d)", w.Index, w.Value)
}

// Subset is an ascending list of distinct weight indices.
// Subsets are immutable once emitted; callers must not modify them.
type Subset []int

// Len returns the number of indices in the subset.
func (s Subset) Len() int { return len(s) }

// Contains reports whether idx is a member of the subset.
func (s Subset) Contains(idx int) bool {
	i := sort.SearchInts(s, idx)
	return i < len(s) && s[i] == idx
}

// Key returns a canonical string key for index-identity comparison.
func (s Subset) Key() string {
	var b strings.Builder
	b.Grow(len(s) * 4)
	for i, idx := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}

// Sum returns the sum of the values referenced by s.
// values is indexed by original input index.
func (s Subset) Sum(values []int64) int64 {
	var sum int64
	for _, idx := range s {
		sum += values[idx]
	}
	return sum
}

// Values resolves the subset to the referenced values, in index order.
func (s Subset) Values(values []int64) []int64 {
	out := make([]int64, len(s))
	for i, idx := range s {
		out[i] = values[idx]
	}
	return out
}

// Bitmap returns the subset as a roaring bitmap.
func (s Subset) Bitmap() *roaring.Bitmap {
	rb := roaring.New()
	for _, idx := range s {
		rb.Add(uint32(idx)) // weights.Set indices fit uint32
	}
	return rb
}

// Valid reports whether s is strictly ascending and every index is in [0, n).
func (s Subset) Valid(n int) bool {
	for i, idx := range s {
		if idx < 0 || idx >= n {
			return false
		}
		if i > 0 && s[i-1] >= idx {
			return false
		}
	}
	return true
}
