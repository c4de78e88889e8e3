package readfiles

import (
	"fmt"
	"math"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/gocrack/mesh"
	"github.com/notargets/gocrack/utils"
)

// GraphMesh converts a 2D mesh to an AVS triangle mesh, quads are split along
// their first diagonal
func GraphMesh(m *mesh.Mesh) (gm geometry.TriMesh, err error) {
	if m.Dim != 2 {
		return gm, fmt.Errorf("only 2D meshes can be plotted, have %dD", m.Dim)
	}
	gm.XY = make([]float32, 2*m.NumVertices())
	for i, x := range m.Vertices {
		gm.XY[2*i] = float32(x[0])
		gm.XY[2*i+1] = float32(x[1])
	}
	for k, verts := range m.EtoV {
		switch m.ElementTypes[k] {
		case utils.Triangle:
			gm.TriVerts = append(gm.TriVerts,
				[3]int64{int64(verts[0]), int64(verts[1]), int64(verts[2])})
		case utils.Quad:
			gm.TriVerts = append(gm.TriVerts,
				[3]int64{int64(verts[0]), int64(verts[1]), int64(verts[2])},
				[3]int64{int64(verts[0]), int64(verts[2]), int64(verts[3])})
		}
	}
	return
}

// FacetLines returns the 2D facets as line segment pairs x1,y1,x2,y2
func FacetLines(m *mesh.Mesh, facets []int) (lines []float32) {
	for _, f := range facets {
		verts := m.Desc.Facets[f]
		if len(verts) != 2 {
			continue
		}
		a, b := m.Vertices[verts[0]], m.Vertices[verts[1]]
		lines = append(lines, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]))
	}
	return
}

// PlotMesh opens a chart of the mesh with the facets of each listed group
// drawn in red
func PlotMesh(m *mesh.Mesh, groups ...string) (chart *chart2d.Chart2D, err error) {
	var gm geometry.TriMesh
	if gm, err = GraphMesh(m); err != nil {
		return
	}
	var (
		xMin, xMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
		yMin, yMax = float32(math.MaxFloat32), -float32(math.MaxFloat32)
	)
	for i := 0; i < len(gm.XY)/2; i++ {
		x, y := gm.XY[2*i], gm.XY[2*i+1]
		xMin, xMax = min(xMin, x), max(xMax, x)
		yMin, yMax = min(yMin, y), max(yMax, y)
	}
	// Leave a margin around the mesh
	dx, dy := 0.25*(xMax-xMin), 0.25*(yMax-yMin)
	chart = chart2d.NewChart2D(xMin-dx, xMax+dx, yMin-dy, yMax+dy,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	chart.AddTriMesh(gm)
	for _, name := range groups {
		if lines := FacetLines(m, m.Groups[name]); len(lines) != 0 {
			chart.AddLine(lines, utils2.RED)
		}
	}
	return
}
