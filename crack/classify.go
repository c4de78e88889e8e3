package crack

import (
	"sort"

	"github.com/notargets/gocrack/mesh"
	"github.com/notargets/gocrack/utils"
)

type Side uint8

const (
	SideA Side = iota // Keeps the original nodes
	SideB             // Switches to the duplicates
)

func (s Side) String() string {
	if s == SideB {
		return "B"
	}
	return "A"
}

// star is the set of elements around one crack node, split into the
// components reachable from each other across non-crack facets holding the node
type star struct {
	node  int
	elems []int // Incident elements, ascending
	comp  []int // Component label of each entry of elems
	nComp int
}

// compOf returns the component label of element k within the star
func (st *star) compOf(k int) int {
	return st.comp[sort.SearchInts(st.elems, k)]
}

// classification is the side assignment of every element touching the crack
type classification struct {
	stars     []star      // Parallel to facetSet.nodes
	starIndex map[int]int // Node id to index into stars
	uf        unionFind
	sides     map[int]Side // Zone root to side
	ambiguous []int        // Crack facets not separated by the crack, ascending
}

func (c *classification) star(n int) *star {
	return &c.stars[c.starIndex[n]]
}

// Side returns the side of element k, elements away from the crack are on side A
func (c *classification) Side(k int) Side {
	return c.sides[c.uf.find(k)]
}

// separated reports whether the owners of a two sided crack facet fall in
// different star components around at least one of its nodes
func (c *classification) separated(rec facetRecord) bool {
	for _, n := range rec.Nodes {
		st := c.star(n)
		if st.compOf(rec.Owners[0]) != st.compOf(rec.Owners[1]) {
			return true
		}
	}
	return false
}

// starOf collects the elements around node n, walking facets that contain n
// from the owners of the crack facets at n, then labels the components left
// when crack facets are cut. Only elements incident to n are visited.
func starOf(d *mesh.Descending, fs *facetSet, n int) (st star) {
	st.node = n
	pos := make(map[int]int)
	visit := func(k int) bool {
		if _, ok := pos[k]; ok {
			return false
		}
		pos[k] = len(st.elems)
		st.elems = append(st.elems, k)
		return true
	}
	var work []int
	for _, ri := range fs.nodeFacets[n] {
		for _, k := range fs.records[ri].Owners {
			if visit(k) {
				work = append(work, k)
			}
		}
	}
	for len(work) != 0 {
		k := work[len(work)-1]
		work = work[:len(work)-1]
		for _, f := range d.EToF[k] {
			if !contains(d.Facets[f], n) {
				continue
			}
			for _, kk := range d.FToE[f] {
				if visit(kk) {
					work = append(work, kk)
				}
			}
		}
	}
	sort.Ints(st.elems)
	for i, k := range st.elems {
		pos[k] = i
	}

	st.comp = make([]int, len(st.elems))
	for i := range st.comp {
		st.comp[i] = -1
	}
	for s := range st.elems {
		if st.comp[s] >= 0 {
			continue
		}
		st.comp[s] = st.nComp
		work = append(work[:0], s)
		for len(work) != 0 {
			p := work[len(work)-1]
			work = work[:len(work)-1]
			for _, f := range d.EToF[st.elems[p]] {
				if fs.isCrack[f] || !contains(d.Facets[f], n) {
					continue
				}
				for _, kk := range d.FToE[f] {
					if q := pos[kk]; st.comp[q] < 0 {
						st.comp[q] = st.nComp
						work = append(work, q)
					}
				}
			}
		}
		st.nComp++
	}
	return
}

// classify computes the stars of all crack nodes, merges the star components
// into zones and two-colours the zones across the separating crack facets
func classify(m *mesh.Mesh, fs *facetSet, comps [][]int, workers int) (cl *classification) {
	cl = &classification{
		stars:     make([]star, len(fs.nodes)),
		starIndex: make(map[int]int, len(fs.nodes)),
		uf:        make(unionFind),
		sides:     make(map[int]Side),
	}
	for i, n := range fs.nodes {
		cl.starIndex[n] = i
	}

	// Each node is analysed by the first component that reaches it, components
	// run in parallel and only write the slots of their own nodes
	owner := make([]int, len(fs.nodes))
	for i := range owner {
		owner[i] = -1
	}
	for ci, comp := range comps {
		for _, ri := range comp {
			for _, v := range fs.records[ri].Nodes {
				if i := cl.starIndex[v]; owner[i] < 0 {
					owner[i] = ci
				}
			}
		}
	}
	byComp := make([][]int, len(comps))
	for i, ci := range owner {
		byComp[ci] = append(byComp[ci], i)
	}
	utils.NewPartitionMap(workers, len(comps)).ParallelRange(func(ci int) {
		for _, i := range byComp[ci] {
			cl.stars[i] = starOf(m.Desc, fs, fs.nodes[i])
		}
	})

	for _, st := range cl.stars {
		if st.nComp < 2 {
			continue
		}
		first := make([]int, st.nComp)
		for c := range first {
			first[c] = -1
		}
		for i, k := range st.elems {
			c := st.comp[i]
			if first[c] < 0 {
				first[c] = k
				continue
			}
			cl.uf.union(first[c], k)
		}
	}

	// Zone graph: one edge per crack facet separating two zones
	zoneAdj := make(map[int][]int)
	for _, rec := range fs.records {
		if len(rec.Owners) != 2 {
			continue
		}
		za, zb := cl.uf.find(rec.Owners[0]), cl.uf.find(rec.Owners[1])
		if za == zb || !cl.separated(rec) {
			cl.ambiguous = append(cl.ambiguous, rec.ID)
			continue
		}
		zoneAdj[za] = append(zoneAdj[za], zb)
		zoneAdj[zb] = append(zoneAdj[zb], za)
	}
	roots := make([]int, 0, len(zoneAdj))
	for z, nbrs := range zoneAdj {
		roots = append(roots, z)
		zoneAdj[z] = utils.UniqueInts(nbrs)
	}
	sort.Ints(roots)

	// Zone roots are their smallest element, so ascending roots is ascending
	// smallest element
	colored := make(map[int]bool, len(roots))
	for _, r := range roots {
		if colored[r] {
			continue
		}
		colored[r] = true
		cl.sides[r] = SideA
		queue := []int{r}
		for len(queue) != 0 {
			z := queue[0]
			queue = queue[1:]
			for _, nz := range zoneAdj[z] {
				if colored[nz] {
					continue
				}
				colored[nz] = true
				if cl.sides[z] == SideA {
					cl.sides[nz] = SideB
				} else {
					cl.sides[nz] = SideA
				}
				queue = append(queue, nz)
			}
		}
	}
	return
}

// unionFind keeps the smallest element of a set as its root, elements never
// merged are their own root
type unionFind map[int]int

func (uf unionFind) find(k int) int {
	root := k
	for {
		p, ok := uf[root]
		if !ok || p == root {
			break
		}
		root = p
	}
	for k != root {
		p := uf[k]
		uf[k] = root
		k = p
	}
	return root
}

func (uf unionFind) union(a, b int) {
	ra, rb := uf.find(a), uf.find(b)
	switch {
	case ra < rb:
		uf[rb] = ra
	case rb < ra:
		uf[ra] = rb
	}
}
