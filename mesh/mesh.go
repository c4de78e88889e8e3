package mesh

import (
	"errors"
	"fmt"
	"sort"

	"github.com/notargets/gocrack/utils"
)

var (
	ErrUnsupportedElement = errors.New("unsupported element type")
	ErrUnknownFacet       = errors.New("facet not found in descending connectivity")
)

// Mesh represents an unstructured mesh of a single dimension plus its
// co-dimension 1 (descending) mesh and named facet groups
type Mesh struct {
	Dim int

	// Geometry
	Vertices [][]float64 // Vertex coordinates [nvertices][3]

	// Element data
	EtoV         [][]int             // Element to vertex connectivity [nelems][nverts_per_elem]
	ElementTypes []utils.ElementType // Element type for each element

	// Level -1 connectivity, built by BuildDescending
	Desc *Descending

	// Named facet groups, ids index into Desc
	Groups map[string][]int
}

// NewMesh creates an empty mesh of dimension dim
func NewMesh(dim int) *Mesh {
	return &Mesh{
		Dim:    dim,
		Groups: make(map[string][]int),
	}
}

func (m *Mesh) NumVertices() int { return len(m.Vertices) }
func (m *Mesh) NumElements() int { return len(m.EtoV) }

// AddVertex appends a vertex and returns its id, coordinates are padded to 3D
func (m *Mesh) AddVertex(coords ...float64) int {
	x := make([]float64, 3)
	copy(x, coords)
	m.Vertices = append(m.Vertices, x)
	return len(m.Vertices) - 1
}

// AddElement appends a cell and returns its id
func (m *Mesh) AddElement(etype utils.ElementType, verts ...int) int {
	conn := make([]int, len(verts))
	copy(conn, verts)
	m.EtoV = append(m.EtoV, conn)
	m.ElementTypes = append(m.ElementTypes, etype)
	return len(m.EtoV) - 1
}

// Validate checks that every element matches the mesh dimension, has the
// expected number of nodes and references existing vertices
func (m *Mesh) Validate() error {
	if len(m.EtoV) != len(m.ElementTypes) {
		return fmt.Errorf("element count %d does not match type count %d",
			len(m.EtoV), len(m.ElementTypes))
	}
	nv := len(m.Vertices)
	for k, verts := range m.EtoV {
		et := m.ElementTypes[k]
		if et.GetNumFacets() == 0 {
			return fmt.Errorf("element %d: %w: %s", k, ErrUnsupportedElement, et)
		}
		if et.GetDimension() != m.Dim {
			return fmt.Errorf("element %d: %s is %dD in a %dD mesh", k, et, et.GetDimension(), m.Dim)
		}
		if len(verts) != et.GetNumNodes() {
			return fmt.Errorf("element %d: %s expects %d nodes, got %d",
				k, et, et.GetNumNodes(), len(verts))
		}
		for _, v := range verts {
			if v < 0 || v >= nv {
				return fmt.Errorf("element %d: node index %d out of range [0,%d)", k, v, nv)
			}
		}
	}
	return nil
}

// AddFacetGroup resolves facets given as vertex lists into a named group
func (m *Mesh) AddFacetGroup(name string, facets [][]int) error {
	if m.Desc == nil {
		return fmt.Errorf("group %s: descending connectivity not built", name)
	}
	ids := make([]int, len(facets))
	for i, verts := range facets {
		id, ok := m.Desc.FindFacet(verts...)
		if !ok {
			return fmt.Errorf("group %s: %w: %v", name, ErrUnknownFacet, verts)
		}
		ids[i] = id
	}
	m.Groups[name] = ids
	return nil
}

// GroupNames returns the facet group names in sorted order
func (m *Mesh) GroupNames() (names []string) {
	for name := range m.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

// Clone returns a deep copy of the mesh, descending connectivity and groups included
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Dim:          m.Dim,
		Vertices:     copy2D(m.Vertices),
		EtoV:         copy2D(m.EtoV),
		ElementTypes: append([]utils.ElementType(nil), m.ElementTypes...),
		Groups:       make(map[string][]int, len(m.Groups)),
	}
	for name, ids := range m.Groups {
		c.Groups[name] = append([]int(nil), ids...)
	}
	if m.Desc != nil {
		c.Desc = m.Desc.Clone()
	}
	return c
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics() {
	fmt.Printf("Mesh Statistics:\n")
	fmt.Printf("  Dimension: %d\n", m.Dim)
	fmt.Printf("  Vertices: %d\n", m.NumVertices())
	fmt.Printf("  Elements: %d\n", m.NumElements())

	// Count element types
	typeCounts := make(map[utils.ElementType]int)
	for _, t := range m.ElementTypes {
		typeCounts[t]++
	}
	types := make([]utils.ElementType, 0, len(typeCounts))
	for t := range typeCounts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	fmt.Printf("  Element types:\n")
	for _, t := range types {
		fmt.Printf("    %s: %d\n", t, typeCounts[t])
	}

	inc := m.NodeToElement()
	node, degree := inc.MaxDegree()
	fmt.Printf("  Max node valence: %d (node %d)\n", degree, node)
	if orphans := inc.Orphans(); len(orphans) != 0 {
		fmt.Printf("  Unreferenced vertices: %d\n", len(orphans))
	}

	if m.Desc != nil {
		fmt.Printf("  Facets: %d\n", m.Desc.NumFacets())
		fmt.Printf("  Boundary facets: %d\n", len(m.Desc.Skin()))
	}
	for _, name := range m.GroupNames() {
		fmt.Printf("  Group %s: %d facets\n", name, len(m.Groups[name]))
	}
}

func copy2D[T any](src [][]T) (dst [][]T) {
	if src == nil {
		return nil
	}
	dst = make([][]T, len(src))
	for i, row := range src {
		dst[i] = append([]T(nil), row...)
	}
	return
}
