package mesh

import (
	"fmt"

	"github.com/notargets/gocrack/types"
	"github.com/notargets/gocrack/utils"
)

// Descending is the co-dimension 1 mesh of a Mesh: every unique facet with its
// owning cells
type Descending struct {
	Facets     [][]int             // Facet to vertex connectivity, oriented as seen from the first owner
	FacetTypes []utils.ElementType // Element type of each facet
	FToE       [][]int             // Facet to owning elements, ascending
	EToF       [][]int             // Element to facet ids [nelems][nfacets_per_elem]

	FaceMap map[types.FacetKey]int // Map from sorted vertex key to facet ID
}

func (d *Descending) NumFacets() int { return len(d.Facets) }

// BuildDescending builds the facet mesh and the element/facet connectivity.
// Facets are numbered in order of first appearance, walking elements in order
// and the local facets of each element in order.
func (m *Mesh) BuildDescending() error {
	if err := m.Validate(); err != nil {
		return err
	}
	d := &Descending{
		EToF:    make([][]int, m.NumElements()),
		FaceMap: make(map[types.FacetKey]int),
	}

	for elemID, verts := range m.EtoV {
		facetVerts := utils.GetElementFacets(m.ElementTypes[elemID], verts)
		d.EToF[elemID] = make([]int, len(facetVerts))

		for localID, fv := range facetVerts {
			key := types.NewFacetKey(fv)
			if facetID, exists := d.FaceMap[key]; exists {
				// Facet already exists - this element is an additional owner
				owners := d.FToE[facetID]
				if owners[len(owners)-1] != elemID {
					d.FToE[facetID] = append(owners, elemID)
				}
				d.EToF[elemID][localID] = facetID
				continue
			}
			facetID := len(d.Facets)
			d.Facets = append(d.Facets, append([]int(nil), fv...))
			d.FacetTypes = append(d.FacetTypes, utils.FacetTypeForNodes(m.Dim, len(fv)))
			d.FToE = append(d.FToE, []int{elemID})
			d.FaceMap[key] = facetID
			d.EToF[elemID][localID] = facetID
		}
	}

	m.Desc = d
	// Groups refer to facet ids of the previous descending mesh
	m.Groups = make(map[string][]int)
	return nil
}

// FindFacet looks up a facet by its vertices in any order
func (d *Descending) FindFacet(verts ...int) (id int, ok bool) {
	id, ok = d.FaceMap[types.NewFacetKey(verts)]
	return
}

// MustFindFacet is FindFacet for literal meshes in tests and builders
func (d *Descending) MustFindFacet(verts ...int) int {
	id, ok := d.FindFacet(verts...)
	if !ok {
		panic(fmt.Errorf("%w: %v", ErrUnknownFacet, verts))
	}
	return id
}

// Skin returns the ids of facets owned by a single element, ascending
func (d *Descending) Skin() (ids []int) {
	for f, owners := range d.FToE {
		if len(owners) == 1 {
			ids = append(ids, f)
		}
	}
	return
}

// LocalFacet returns the local index of facet f within element k, -1 if absent
func (d *Descending) LocalFacet(k, f int) int {
	for i, ff := range d.EToF[k] {
		if ff == f {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the descending connectivity
func (d *Descending) Clone() *Descending {
	c := &Descending{
		Facets:     copy2D(d.Facets),
		FacetTypes: append([]utils.ElementType(nil), d.FacetTypes...),
		FToE:       copy2D(d.FToE),
		EToF:       copy2D(d.EToF),
		FaceMap:    make(map[types.FacetKey]int, len(d.FaceMap)),
	}
	for k, v := range d.FaceMap {
		c.FaceMap[k] = v
	}
	return c
}
