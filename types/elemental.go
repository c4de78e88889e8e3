package types

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

/*
EdgeKey is an always positive number that stores an edge's vertices as indices in a way that can be compared
An edge between vertices [4] and [0] will always be stored as [0,4], in the ascending order of the index values
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// This packs two index coordinates into two 32 bit unsigned integers to act as a hash and an indirect access method
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(i1 + i2<<32)
	return
}

/*
FacetKey identifies a facet independently of its orientation and starting node:
the facet's vertices are sorted and joined, so [7,2,5] and [5,7,2] share a key
*/
type FacetKey string

func NewFacetKey(verts []int) FacetKey {
	sorted := make([]int, len(verts))
	copy(sorted, verts)
	sort.Ints(sorted)
	var b strings.Builder
	for i, v := range sorted {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return FacetKey(b.String())
}

// SubFacetKey packs a co-dimension 2 entity: a single node in 2D, an edge in 3D
func SubFacetKey(verts []int) EdgeKey {
	switch len(verts) {
	case 1:
		return NewEdgeKey([2]int{verts[0], verts[0]})
	case 2:
		return NewEdgeKey([2]int{verts[0], verts[1]})
	}
	panic(fmt.Errorf("sub-facet with %d vertices cannot be packed", len(verts)))
}
