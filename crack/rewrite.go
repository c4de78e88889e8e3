package crack

import (
	"fmt"
	"sort"

	"github.com/notargets/gocrack/mesh"
	"github.com/notargets/gocrack/types"
	"github.com/notargets/gocrack/utils"
)

// split is a crack facet separated into one facet per owner
type split struct {
	facet          int // Original facet, kept by ownerA
	ownerA, ownerB int
	local          int   // Local index of the facet within ownerB
	nodes          []int // Vertices of the new facet as seen from ownerB
}

// commit is every mutation of one crack insertion, staged so that nothing
// touches the mesh before all of it has been checked
type commit struct {
	nv, nf   int         // Vertex and facet counts the commit was built against
	vertices [][]float64 // Coordinates of the new nodes, in new id order
	elems    []int       // Rewritten elements, ascending
	conn     [][]int     // New connectivity, parallel to elems
	inPlace  []int       // Facets rewritten without a new id, ascending
	inNodes  [][]int     // New vertices, parallel to inPlace
	splits   []split     // Ascending original facet id
	corr     Correspondence
}

// rewrite stages the connectivity changes for the duplicated nodes
func rewrite(m *mesh.Mesh, fs *facetSet, cl *classification, ds DuplicationSet) (cm *commit) {
	var (
		d      = m.Desc
		dupMap = ds.Map()
		byElem = make(map[int][]int)
	)
	cm = &commit{
		nv:   m.NumVertices(),
		nf:   d.NumFacets(),
		corr: make(Correspondence),
	}
	for _, dup := range ds {
		cm.vertices = append(cm.vertices, append([]float64(nil), m.Vertices[dup.Old]...))
		cm.elems = append(cm.elems, dup.SideB...)
	}
	cm.elems = utils.UniqueInts(cm.elems)

	for _, k := range cm.elems {
		conn := append([]int(nil), m.EtoV[k]...)
		sub := make(map[int]int)
		for i, v := range conn {
			if nv, ok := dupMap[v]; ok {
				conn[i] = nv
				sub[v] = nv
			}
		}
		cm.conn = append(cm.conn, conn)
		cm.corr[k] = sub
		byElem[k] = conn
	}

	var candidates []int
	for _, k := range cm.elems {
		candidates = append(candidates, d.EToF[k]...)
	}
	candidates = utils.UniqueInts(candidates)

	newFacet := func(k, f int) (local int, nodes []int) {
		local = d.LocalFacet(k, f)
		nodes = utils.GetElementFacets(m.ElementTypes[k], byElem[k])[local]
		return
	}
	for _, f := range candidates {
		if !carriesAny(d.Facets[f], dupMap) {
			continue
		}
		owners := d.FToE[f]
		allB := true
		for _, k := range owners {
			if cl.Side(k) != SideB {
				allB = false
			}
		}
		switch {
		case allB:
			_, nodes := newFacet(owners[0], f)
			cm.inPlace = append(cm.inPlace, f)
			cm.inNodes = append(cm.inNodes, nodes)
		case fs.isCrack[f] && len(owners) == 2:
			sp := split{facet: f, ownerA: owners[0], ownerB: owners[1]}
			if cl.Side(sp.ownerA) == SideB {
				sp.ownerA, sp.ownerB = sp.ownerB, sp.ownerA
			}
			sp.local, sp.nodes = newFacet(sp.ownerB, f)
			cm.splits = append(cm.splits, sp)
		}
	}
	return
}

func carriesAny(verts []int, dupMap map[int]int) bool {
	for _, v := range verts {
		if _, ok := dupMap[v]; ok {
			return true
		}
	}
	return false
}

// check verifies the staged changes against the mesh they will be applied to
func (cm *commit) check(m *mesh.Mesh) error {
	var (
		d    = m.Desc
		nv   = cm.nv + len(cm.vertices)
		keys = make(map[types.FacetKey]bool)
	)
	if m.NumVertices() != cm.nv || d.NumFacets() != cm.nf {
		return fmt.Errorf("mesh changed while the crack was staged")
	}
	for i, conn := range cm.conn {
		for _, v := range conn {
			if v < 0 || v >= nv {
				return fmt.Errorf("element %d: vertex %d out of range", cm.elems[i], v)
			}
		}
	}
	staged := make([][]int, 0, len(cm.inNodes)+len(cm.splits))
	staged = append(staged, cm.inNodes...)
	for _, sp := range cm.splits {
		staged = append(staged, sp.nodes)
	}
	for _, nodes := range staged {
		key := types.NewFacetKey(nodes)
		if _, exists := d.FaceMap[key]; exists || keys[key] {
			return fmt.Errorf("%w: facet %v already exists", ErrNonManifold, nodes)
		}
		keys[key] = true
	}
	return nil
}

// apply writes the staged changes and returns the ids of the new facets
func (cm *commit) apply(m *mesh.Mesh) (newFacets []int) {
	d := m.Desc
	m.Vertices = append(m.Vertices, cm.vertices...)
	for i, k := range cm.elems {
		m.EtoV[k] = cm.conn[i]
	}
	for i, f := range cm.inPlace {
		if old := types.NewFacetKey(d.Facets[f]); d.FaceMap[old] == f {
			delete(d.FaceMap, old)
		}
		d.Facets[f] = cm.inNodes[i]
		d.FaceMap[types.NewFacetKey(cm.inNodes[i])] = f
	}
	for _, sp := range cm.splits {
		id := len(d.Facets)
		d.Facets = append(d.Facets, sp.nodes)
		d.FacetTypes = append(d.FacetTypes, d.FacetTypes[sp.facet])
		d.FToE = append(d.FToE, []int{sp.ownerB})
		d.FToE[sp.facet] = []int{sp.ownerA}
		d.EToF[sp.ownerB][sp.local] = id
		d.FaceMap[types.NewFacetKey(sp.nodes)] = id
		newFacets = append(newFacets, id)
	}
	sort.Ints(newFacets)
	return
}
