package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{ // Test packed int for edge labeling
		en := NewEdgeKey([2]int{1, 0})
		assert.Equal(t, EdgeKey(1<<32), en)

		en = NewEdgeKey([2]int{0, 1})
		assert.Equal(t, EdgeKey(1<<32), en)

		en = NewEdgeKey([2]int{100, 1})
		assert.Equal(t, EdgeKey(100*(1<<32)+1), en)

		// Test maximum/minimum indices
		en = NewEdgeKey([2]int{1<<32 - 1, 1<<32 - 1})
		assert.Equal(t, EdgeKey(1<<64-1), en)

		assert.Panics(t, func() { NewEdgeKey([2]int{-1, 3}) })
	}
	{ // Facet keys ignore orientation and starting vertex
		assert.Equal(t, FacetKey("2 5 7"), NewFacetKey([]int{7, 2, 5}))
		assert.Equal(t, NewFacetKey([]int{5, 7, 2}), NewFacetKey([]int{2, 7, 5}))
		assert.NotEqual(t, NewFacetKey([]int{1, 2}), NewFacetKey([]int{1, 3}))
		verts := []int{9, 3}
		_ = NewFacetKey(verts)
		assert.Equal(t, []int{9, 3}, verts, "input must not be reordered")
	}
	{ // Sub-facet keys
		assert.Equal(t, NewEdgeKey([2]int{4, 4}), SubFacetKey([]int{4}))
		assert.Equal(t, SubFacetKey([]int{3, 8}), SubFacetKey([]int{8, 3}))
		assert.Panics(t, func() { SubFacetKey([]int{1, 2, 3}) })
	}
}
