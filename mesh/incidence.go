package mesh

import (
	"github.com/james-bowman/sparse"
)

// Incidence is the node to element incidence matrix, [nvertices][nelems] in
// CSR form. Row n lists the elements referencing node n in ascending order.
type Incidence struct {
	M *sparse.CSR
}

// NodeToElement builds the node to element incidence of the mesh
func (m *Mesh) NodeToElement() Incidence {
	var (
		nv, ne = m.NumVertices(), m.NumElements()
		ia     = make([]int, nv+1)
	)
	for _, verts := range m.EtoV {
		for i, v := range verts {
			if !repeated(verts[:i], v) {
				ia[v+1]++
			}
		}
	}
	for n := 0; n < nv; n++ {
		ia[n+1] += ia[n]
	}
	var (
		ja   = make([]int, ia[nv])
		data = make([]float64, ia[nv])
		fill = append([]int(nil), ia[:nv]...)
	)
	// Elements are visited in ascending order, so each row comes out sorted
	for k, verts := range m.EtoV {
		for i, v := range verts {
			if repeated(verts[:i], v) {
				continue
			}
			ja[fill[v]] = k
			data[fill[v]] = 1
			fill[v]++
		}
	}
	return Incidence{M: sparse.NewCSR(nv, ne, ia, ja, data)}
}

// Elements returns the elements incident to node n. The returned slice aliases
// the matrix storage and must not be modified.
func (inc Incidence) Elements(n int) []int {
	raw := inc.M.RawMatrix()
	return raw.Ind[raw.Indptr[n]:raw.Indptr[n+1]]
}

// Degree returns the number of elements incident to node n
func (inc Incidence) Degree(n int) int {
	raw := inc.M.RawMatrix()
	return raw.Indptr[n+1] - raw.Indptr[n]
}

// MaxDegree returns the lowest numbered node of highest valence
func (inc Incidence) MaxDegree() (node, degree int) {
	nr, _ := inc.M.Dims()
	for n := 0; n < nr; n++ {
		if d := inc.Degree(n); d > degree {
			node, degree = n, d
		}
	}
	return
}

// Orphans returns the nodes no element references, ascending
func (inc Incidence) Orphans() (nodes []int) {
	nr, _ := inc.M.Dims()
	for n := 0; n < nr; n++ {
		if inc.Degree(n) == 0 {
			nodes = append(nodes, n)
		}
	}
	return
}

func repeated(verts []int, v int) bool {
	for _, vv := range verts {
		if vv == v {
			return true
		}
	}
	return false
}
