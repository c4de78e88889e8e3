package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/notargets/gocrack/mesh"
)

// WriteSU2 writes the mesh in SU2 native format with one marker per facet
// group, groups in name order
func WriteSU2(w io.Writer, m *mesh.Mesh) (err error) {
	if m.Desc == nil && len(m.Groups) != 0 {
		return fmt.Errorf("facet groups present without descending connectivity")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "NDIME= %d\n", m.Dim)

	fmt.Fprintf(bw, "NELEM= %d\n", m.NumElements())
	for k, verts := range m.EtoV {
		st, ok := su2Type(m.ElementTypes[k])
		if !ok {
			return fmt.Errorf("element %d: %w: %s", k, mesh.ErrUnsupportedElement, m.ElementTypes[k])
		}
		fmt.Fprintf(bw, "%d", st)
		for _, v := range verts {
			fmt.Fprintf(bw, " %d", v)
		}
		fmt.Fprintf(bw, " %d\n", k)
	}

	fmt.Fprintf(bw, "NPOIN= %d\n", m.NumVertices())
	for i, x := range m.Vertices {
		for j := 0; j < m.Dim; j++ {
			bw.WriteString(strconv.FormatFloat(x[j], 'g', -1, 64))
			bw.WriteByte(' ')
		}
		fmt.Fprintf(bw, "%d\n", i)
	}

	names := m.GroupNames()
	fmt.Fprintf(bw, "NMARK= %d\n", len(names))
	for _, name := range names {
		ids := m.Groups[name]
		fmt.Fprintf(bw, "MARKER_TAG= %s\n", name)
		fmt.Fprintf(bw, "MARKER_ELEMS= %d\n", len(ids))
		for _, f := range ids {
			st, ok := su2Type(m.Desc.FacetTypes[f])
			if !ok {
				return fmt.Errorf("group %s: facet %d: %w: %s",
					name, f, mesh.ErrUnsupportedElement, m.Desc.FacetTypes[f])
			}
			fmt.Fprintf(bw, "%d", st)
			for _, v := range m.Desc.Facets[f] {
				fmt.Fprintf(bw, " %d", v)
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

func WriteSU2File(filename string, m *mesh.Mesh) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return
	}
	if err = WriteSU2(file, m); err != nil {
		file.Close()
		return
	}
	return file.Close()
}
