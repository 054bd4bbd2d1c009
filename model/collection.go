package model

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Collection is the ordered set of distinct subsets found for one target.
//
// Two subsets are duplicates when their index sets are identical. Subsets with
// equal values at different indices are distinct members.
//
// A Collection is not safe for concurrent mutation. Workers build private
// slices and the merge step adds them once.
type Collection struct {
	subsets []Subset
	seen    map[string]struct{}
}

// NewCollection creates an empty Collection with room for capHint subsets.
func NewCollection(capHint int) *Collection {
	if capHint < 0 {
		capHint = 0
	}
	return &Collection{
		subsets: make([]Subset, 0, capHint),
		seen:    make(map[string]struct{}, capHint),
	}
}

// Add appends s unless an index-identical subset is already present.
// It returns true if s was added.
func (c *Collection) Add(s Subset) bool {
	key := s.Key()
	if _, ok := c.seen[key]; ok {
		return false
	}
	c.seen[key] = struct{}{}
	c.subsets = append(c.subsets, s)
	return true
}

// Len returns the number of subsets.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.subsets)
}

// At returns the i-th subset in emission order.
func (c *Collection) At(i int) Subset {
	return c.subsets[i]
}

// Subsets returns a copy of the subset list in emission order.
// The subsets themselves are shared and must not be modified.
func (c *Collection) Subsets() []Subset {
	if c == nil {
		return nil
	}
	out := make([]Subset, len(c.subsets))
	copy(out, c.subsets)
	return out
}

// All returns an iterator over the subsets in emission order.
func (c *Collection) All() iter.Seq[Subset] {
	return func(yield func(Subset) bool) {
		if c == nil {
			return
		}
		for _, s := range c.subsets {
			if !yield(s) {
				return
			}
		}
	}
}

// Has reports whether an index-identical subset is present.
func (c *Collection) Has(s Subset) bool {
	if c == nil {
		return false
	}
	_, ok := c.seen[s.Key()]
	return ok
}

// Equal reports whether c and other contain the same subsets, ignoring order.
func (c *Collection) Equal(other *Collection) bool {
	if c.Len() != other.Len() {
		return false
	}
	for _, s := range c.subsets {
		if !other.Has(s) {
			return false
		}
	}
	return true
}

// Participants returns every index that occurs in at least one subset.
func (c *Collection) Participants() *roaring.Bitmap {
	rb := roaring.New()
	if c == nil {
		return rb
	}
	for _, s := range c.subsets {
		for _, idx := range s {
			rb.Add(uint32(idx)) // weights.Set indices fit uint32
		}
	}
	return rb
}

// Containing returns the subsets that include idx, in emission order.
func (c *Collection) Containing(idx int) []Subset {
	if c == nil {
		return nil
	}
	var out []Subset
	for _, s := range c.subsets {
		if s.Contains(idx) {
			out = append(out, s)
		}
	}
	return out
}
