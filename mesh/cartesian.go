package mesh

import (
	"github.com/notargets/gocrack/utils"
)

// NewCartesian2D builds an nx by ny grid of unit quads with spacing dx, dy.
// Node (i,j) has id i+(nx+1)*j, quad (i,j) has id i+nx*j and vertices
// (i,j), (i+1,j), (i+1,j+1), (i,j+1).
func NewCartesian2D(nx, ny int, dx, dy float64) *Mesh {
	m := NewMesh(2)
	addGrid2D(m, nx, ny, dx, dy)
	node := func(i, j int) int { return i + (nx+1)*j }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			m.AddElement(utils.Quad, node(i, j), node(i+1, j), node(i+1, j+1), node(i, j+1))
		}
	}
	mustBuild(m)
	return m
}

// NewCartesianTri2D builds the grid of NewCartesian2D with every quad split
// along its (i,j)-(i+1,j+1) diagonal. Quad q yields triangles 2q with vertices
// (i,j), (i+1,j), (i+1,j+1) and 2q+1 with vertices (i,j), (i+1,j+1), (i,j+1).
func NewCartesianTri2D(nx, ny int, dx, dy float64) *Mesh {
	m := NewMesh(2)
	addGrid2D(m, nx, ny, dx, dy)
	node := func(i, j int) int { return i + (nx+1)*j }
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			a, b, c, d := node(i, j), node(i+1, j), node(i+1, j+1), node(i, j+1)
			m.AddElement(utils.Triangle, a, b, c)
			m.AddElement(utils.Triangle, a, c, d)
		}
	}
	mustBuild(m)
	return m
}

// NewCartesian3D builds an nx by ny by nz grid of hexes with spacing h.
// Node (i,j,k) has id i+(nx+1)*(j+(ny+1)*k), hex (i,j,k) has id i+nx*(j+ny*k).
func NewCartesian3D(nx, ny, nz int, h float64) *Mesh {
	m := NewMesh(3)
	node := func(i, j, k int) int { return i + (nx+1)*(j+(ny+1)*k) }
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				m.AddVertex(float64(i)*h, float64(j)*h, float64(k)*h)
			}
		}
	}
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				m.AddElement(utils.Hex,
					node(i, j, k), node(i+1, j, k), node(i+1, j+1, k), node(i, j+1, k),
					node(i, j, k+1), node(i+1, j, k+1), node(i+1, j+1, k+1), node(i, j+1, k+1))
			}
		}
	}
	mustBuild(m)
	return m
}

func addGrid2D(m *Mesh, nx, ny int, dx, dy float64) {
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			m.AddVertex(float64(i)*dx, float64(j)*dy)
		}
	}
}

func mustBuild(m *Mesh) {
	if err := m.BuildDescending(); err != nil {
		panic(err)
	}
}
