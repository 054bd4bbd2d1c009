package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubset(t *testing.T) {
	values := []int64{2, 3, 7, 8, 10}
	s := Subset{1, 3}

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains(3))
	assert.False(t, s.Contains(2))
	assert.Equal(t, "1,3", s.Key())
	assert.Equal(t, int64(11), s.Sum(values))
	assert.Equal(t, []int64{3, 8}, s.Values(values))
	assert.Equal(t, []uint32{1, 3}, s.Bitmap().ToArray())

	t.Run("empty", func(t *testing.T) {
		var empty Subset
		assert.Equal(t, "", empty.Key())
		assert.Equal(t, int64(0), empty.Sum(values))
		assert.True(t, empty.Valid(0))
	})

	t.Run("valid", func(t *testing.T) {
		assert.True(t, Subset{0, 4}.Valid(5))
		assert.False(t, Subset{0, 5}.Valid(5))
		assert.False(t, Subset{2, 2}.Valid(5))
		assert.False(t, Subset{3, 1}.Valid(5))
		assert.False(t, Subset{-1}.Valid(5))
	})
}

func TestCollection(t *testing.T) {
	c := NewCollection(2)

	require.True(t, c.Add(Subset{1, 3}))
	require.True(t, c.Add(Subset{0, 2}))
	assert.False(t, c.Add(Subset{1, 3}), "index-identical subset must be rejected")

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, Subset{1, 3}, c.At(0))
	assert.True(t, c.Has(Subset{0, 2}))
	assert.False(t, c.Has(Subset{0}))
	assert.Equal(t, []uint32{0, 1, 2, 3}, c.Participants().ToArray())
	assert.Equal(t, []Subset{{1, 3}}, c.Containing(3))

	var got []Subset
	for s := range c.All() {
		got = append(got, s)
	}
	assert.Equal(t, []Subset{{1, 3}, {0, 2}}, got)

	// Subsets returns a copy of the list.
	list := c.Subsets()
	list[0] = Subset{9}
	assert.Equal(t, Subset{1, 3}, c.At(0))
}

func TestCollectionEqual(t *testing.T) {
	a := NewCollection(0)
	a.Add(Subset{1})
	a.Add(Subset{0, 2})

	b := NewCollection(0)
	b.Add(Subset{0, 2})
	b.Add(Subset{1})

	assert.True(t, a.Equal(b))

	b.Add(Subset{3})
	assert.False(t, a.Equal(b))
}

func TestNilCollection(t *testing.T) {
	var c *Collection
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Subsets())
	assert.True(t, c.Participants().IsEmpty())
	for range c.All() {
		t.Fatal("nil collection must not yield")
	}
}
