package readfiles

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gocrack/crack"
	"github.com/notargets/gocrack/mesh"
	"github.com/notargets/gocrack/types"
)

func TestReadSU2(t *testing.T) {
	m, err := ParseSU2(bytes.NewReader(inputFile))
	require.NoError(t, err)
	{ // Test reading the file structure
		assert.Equal(t, 2, m.Dim)
		assert.Equal(t, 22, m.NumElements())
		assert.Equal(t, 18, m.NumVertices())
		assert.Equal(t, []int{15, 11, 17}, m.EtoV[21])
		assert.Equal(t, []float64{-7.100939331382065, 2.889910324036197, 0}, m.Vertices[17])
	}
	{ // Markers become facet groups on the skin
		assert.Equal(t, []string{"bottom", "periodic-left", "periodic-right", "top"}, m.GroupNames())
		nptsBC := map[string]int{"periodic-left": 2, "periodic-right": 2, "top": 4, "bottom": 4}
		for name, n := range nptsBC {
			assert.Len(t, m.Groups[name], n)
		}
		assert.Equal(t, 39, m.Desc.NumFacets())
		skin := m.Desc.Skin()
		assert.Len(t, skin, 12)
		for _, ids := range m.Groups {
			assert.Subset(t, skin, ids)
		}
		assert.Equal(t, m.Desc.MustFindFacet(11, 0), m.Groups["periodic-left"][1])
	}
	{ // The same file read from disk
		fileName := filepath.Join(t.TempDir(), "mesh.su2")
		require.NoError(t, os.WriteFile(fileName, inputFile, 0644))
		mf, err := ReadSU2(fileName, false)
		require.NoError(t, err)
		assert.Equal(t, m, mf)
		_, err = ReadSU2(filepath.Join(t.TempDir(), "missing.su2"), false)
		assert.Error(t, err)
	}
}

func TestReadSU2_Errors(t *testing.T) {
	parse := func(content string) error {
		_, err := ParseSU2(strings.NewReader(content))
		return err
	}
	assert.Error(t, parse("NDIME= 4\n"))
	assert.ErrorContains(t, parse("NDIME= 2\nNELEM= 0\n"), "NPOIN")
	assert.ErrorContains(t, parse("NDIME= 2\nNPOIN= 1\n0 0\n"), "NELEM")
	assert.ErrorContains(t, parse("NDIME= 2\nNPOIN= 2\n0 0\n"), "early end of file")
	assert.ErrorContains(t, parse("NDIME= 2\nNPOIN= 1\n0 zero\n"), "invalid coordinate")
	err := parse("NDIME= 2\nNELEM= 1\n7 0 1 2 0\nNPOIN= 0\n")
	assert.True(t, errors.Is(err, mesh.ErrUnsupportedElement))
	// Nodes outside the point list are caught when the mesh is assembled
	assert.ErrorContains(t, parse("NDIME= 2\nNELEM= 1\n5 0 1 5\nNPOIN= 3\n0 0\n1 0\n0 1\n"), "out of range")
	// Markers must name facets of the mesh
	err = parse(`NDIME= 2
NELEM= 1
5 0 1 2
NPOIN= 3
0 0
1 0
0 1
NMARK= 1
MARKER_TAG= wall
MARKER_ELEMS= 1
3 0 3
`)
	assert.True(t, errors.Is(err, mesh.ErrUnknownFacet))
}

func TestWriteSU2(t *testing.T) {
	m := mesh.NewCartesian2D(6, 5, 0.5, 0.25)
	require.NoError(t, m.AddFacetGroup("crack", [][]int{{14, 15}, {15, 16}, {16, 17}}))
	require.NoError(t, m.AddFacetGroup("inlet", [][]int{{0, 7}, {7, 14}}))
	_, err := crack.Apply(m, "crack", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSU2(&buf, m))
	mr, err := ParseSU2(&buf)
	require.NoError(t, err)

	assert.Equal(t, m.Vertices, mr.Vertices)
	assert.Equal(t, m.EtoV, mr.EtoV)
	assert.Equal(t, m.ElementTypes, mr.ElementTypes)
	assert.Equal(t, m.GroupNames(), mr.GroupNames())
	// Facet ids are renumbered on reading, the facets themselves survive
	facetKeys := func(m *mesh.Mesh, name string) (keys []types.FacetKey) {
		for _, f := range m.Groups[name] {
			keys = append(keys, types.NewFacetKey(m.Desc.Facets[f]))
		}
		return
	}
	for _, name := range m.GroupNames() {
		assert.Equal(t, facetKeys(m, name), facetKeys(mr, name), name)
	}
	assert.Equal(t, len(m.Desc.Skin()), len(mr.Desc.Skin()))

	{ // Through a file
		fileName := filepath.Join(t.TempDir(), "cracked.su2")
		require.NoError(t, WriteSU2File(fileName, m))
		mf, err := ReadSU2(fileName, true)
		require.NoError(t, err)
		assert.Equal(t, mr, mf)
	}
}

func TestGraphMesh(t *testing.T) {
	m := mesh.NewCartesian2D(4, 2, 1, 1)
	gm, err := GraphMesh(m)
	require.NoError(t, err)
	assert.Len(t, gm.XY, 30)
	assert.Len(t, gm.TriVerts, 16)
	assert.Equal(t, [3]int64{0, 6, 5}, gm.TriVerts[1])
	assert.Equal(t, float32(4), gm.XY[8])

	require.NoError(t, m.AddFacetGroup("crack", [][]int{{5, 6}}))
	assert.Equal(t, []float32{1, 1, 0, 1}, FacetLines(m, m.Groups["crack"]))

	_, err = GraphMesh(mesh.NewCartesian3D(1, 1, 1, 1))
	assert.Error(t, err)
}

var (
	inputFile = []byte(` %This is an example input file in SU2 format, output from gmsh
% Comments can appear outside of data areas
NDIME= 2
% Comments can appear outside of data areas
NELEM= 22
5 5 6 13 0
5 9 10 12 1
5 12 5 13 2
5 9 12 13 3
5 13 6 14 4
5 12 10 15 5
5 8 9 13 6
5 4 5 12 7
5 1 7 14 8
5 6 1 14 9
5 3 11 15 10
5 10 3 15 11
5 8 13 16 12
5 4 12 17 13
5 13 14 16 14
5 12 15 17 15
5 7 2 16 16
5 11 0 17 17
5 2 8 16 18
5 0 4 17 19
5 14 7 16 20
5 15 11 17 21
% Comments can appear outside of data areas
NPOIN= 18
-10 0 0
10 0 1
10 10 2
-10 10 3
-5.000000000004944 0 4
-1.231725832440134e-11 0 5
4.99999999999384 0 6
10 4.999999999992398 7
5.000000000004944 10 8
1.231725832440134e-11 10 9
-4.99999999999384 10 10
-10 5 11
-2.500000000008632 4.330127018915808 12
2.50000000000863 5.669872981084192 13
6.712741669205853 3.668411415814691 14
-6.712741669205681 6.331588584184096 15
7.100939331384343 7.110089675963254 16
-7.100939331382065 2.889910324036197 17
NMARK= 4
% Comments can appear outside of data areas
MARKER_TAG= periodic-left
% Comments can appear outside of data areas
MARKER_ELEMS= 2
3 3 11
3 11 0
% Comments can appear outside of data areas
MARKER_TAG= periodic-right
MARKER_ELEMS= 2
3 1 7
3 7 2
% Comments can appear outside of data areas
MARKER_TAG= top
MARKER_ELEMS= 4
3 2 8
3 8 9
3 9 10
3 10 3
MARKER_TAG= bottom
% Comments can appear outside of data areas
MARKER_ELEMS= 4
3 0 4
3 4 5
3 5 6
3 6 1
% Comments can appear outside of data areas
`)
)
