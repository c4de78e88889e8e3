package crack

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/notargets/gocrack/mesh"
	"github.com/notargets/gocrack/types"
	"github.com/notargets/gocrack/utils"
)

// Duplicate is one node split in two by the crack
type Duplicate struct {
	Old, New  int
	Component int   // Index of the crack component that split the node
	SideA     []int // Incident elements keeping Old, ascending
	SideB     []int // Incident elements switching to New, ascending
}

// DuplicationSet is ordered by component then by original node id, which is
// also the order of the new node ids
type DuplicationSet []Duplicate

// Map returns the original to new node id mapping
func (ds DuplicationSet) Map() map[int]int {
	mp := make(map[int]int, len(ds))
	for _, d := range ds {
		mp[d.Old] = d.New
	}
	return mp
}

// keptCells returns the side A elements incident to a duplicated node
func (ds DuplicationSet) keptCells() []int {
	var cells []int
	for _, d := range ds {
		cells = append(cells, d.SideA...)
	}
	return utils.UniqueInts(cells)
}

// Component is one connected piece of the crack
type Component struct {
	Facets     []int // Facet ids, ascending
	Nodes      []int // Vertices of the facets, ascending
	Duplicated []int // Nodes split by this component, ascending
	Singular   []int // Nodes left whole, ascending
}

// crackComponents groups the crack facets linked through shared sub-facets.
// Components are returned as record indices, each ascending, ordered by their
// smallest facet id.
func crackComponents(fs *facetSet) (comps [][]int) {
	var (
		g     = simple.NewUndirectedGraph()
		bySub = make(map[types.EdgeKey]int)
	)
	for i := range fs.records {
		g.AddNode(simple.Node(i))
	}
	for i, rec := range fs.records {
		for _, sub := range utils.GetSubFacets(rec.Type, rec.Nodes) {
			key := types.SubFacetKey(sub)
			j, ok := bySub[key]
			if !ok {
				bySub[key] = i
				continue
			}
			if j != i {
				g.SetEdge(simple.Edge{F: simple.Node(j), T: simple.Node(i)})
			}
		}
	}
	for _, cc := range topo.ConnectedComponents(g) {
		comp := make([]int, len(cc))
		for i, node := range cc {
			comp[i] = int(node.ID())
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	// Records are sorted by facet id, so the first record is the smallest facet
	sort.Slice(comps, func(i, j int) bool { return comps[i][0] < comps[j][0] })
	return
}

// singularNodes finds the crack nodes that can not be split consistently:
// nodes touching several components, and nodes whose facets within one
// component only meet at the node itself
func singularNodes(fs *facetSet, comps [][]int) map[int]bool {
	compOf := make([]int, len(fs.records))
	for ci, comp := range comps {
		for _, ri := range comp {
			compOf[ri] = ci
		}
	}
	singular := make(map[int]bool)
	for _, n := range fs.nodes {
		recs := fs.nodeFacets[n]
		multi := false
		for _, ri := range recs[1:] {
			if compOf[ri] != compOf[recs[0]] {
				multi = true
				break
			}
		}
		if multi || !fanConnected(fs, n, recs) {
			singular[n] = true
		}
	}
	return singular
}

// fanConnected reports whether the facets around node n are linked through
// sub-facets containing n
func fanConnected(fs *facetSet, n int, recs []int) bool {
	if len(recs) < 2 {
		return true
	}
	var (
		uf    = make(unionFind)
		bySub = make(map[types.EdgeKey]int)
	)
	for p, ri := range recs {
		rec := fs.records[ri]
		for _, sub := range utils.GetSubFacets(rec.Type, rec.Nodes) {
			if !contains(sub, n) {
				continue
			}
			key := types.SubFacetKey(sub)
			if q, ok := bySub[key]; ok {
				uf.union(p, q)
			} else {
				bySub[key] = p
			}
		}
	}
	for p := range recs {
		if uf.find(p) != 0 {
			return false
		}
	}
	return true
}

// duplicate decides which crack nodes are split and allocates their new ids,
// component by component in ascending node order
func duplicate(m *mesh.Mesh, fs *facetSet, comps [][]int, cl *classification) (ds DuplicationSet, components []Component) {
	var (
		singular = singularNodes(fs, comps)
		done     = make(map[int]bool)
		next     = m.NumVertices()
	)
	components = make([]Component, len(comps))
	for ci, comp := range comps {
		c := &components[ci]
		for _, ri := range comp {
			c.Facets = append(c.Facets, fs.records[ri].ID)
			c.Nodes = append(c.Nodes, fs.records[ri].Nodes...)
		}
		c.Nodes = utils.UniqueInts(c.Nodes)
		for _, n := range c.Nodes {
			if singular[n] {
				c.Singular = append(c.Singular, n)
				continue
			}
			if done[n] {
				continue
			}
			done[n] = true
			st := cl.star(n)
			if st.nComp < 2 {
				continue
			}
			var sideA, sideB []int
			for _, k := range st.elems {
				if cl.Side(k) == SideB {
					sideB = append(sideB, k)
				} else {
					sideA = append(sideA, k)
				}
			}
			if len(sideA) == 0 || len(sideB) == 0 {
				continue
			}
			ds = append(ds, Duplicate{
				Old:       n,
				New:       next,
				Component: ci,
				SideA:     sideA,
				SideB:     sideB,
			})
			c.Duplicated = append(c.Duplicated, n)
			next++
		}
	}
	return
}
