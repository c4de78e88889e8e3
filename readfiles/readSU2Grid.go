package readfiles

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/gocrack/mesh"
	"github.com/notargets/gocrack/utils"
)

// From here: https://su2code.github.io/docs_v7/Mesh-File/
type SU2ElementType uint8

const (
	ELType_LINE          SU2ElementType = 3
	ELType_Triangle      SU2ElementType = 5
	ELType_Quadrilateral SU2ElementType = 9
	ELType_Tetrahedral   SU2ElementType = 10
	ELType_Hexahedral    SU2ElementType = 12
	ELType_Prism         SU2ElementType = 13
	ELType_Pyramid       SU2ElementType = 14
)

var su2ElementTypeMap = map[SU2ElementType]utils.ElementType{
	ELType_LINE:          utils.Line,
	ELType_Triangle:      utils.Triangle,
	ELType_Quadrilateral: utils.Quad,
	ELType_Tetrahedral:   utils.Tet,
	ELType_Hexahedral:    utils.Hex,
	ELType_Prism:         utils.Prism,
	ELType_Pyramid:       utils.Pyramid,
}

func su2Type(et utils.ElementType) (SU2ElementType, bool) {
	for st, t := range su2ElementTypeMap {
		if t == et {
			return st, true
		}
	}
	return 0, false
}

// su2Reader walks the data lines of an SU2 file, skipping comments
type su2Reader struct {
	scanner *bufio.Scanner
	lineNum int
	pending *string
}

func (r *su2Reader) pushBack(line string) { r.pending = &line }

func (r *su2Reader) getLine() (line string, err error) {
	if r.pending != nil {
		line, r.pending = *r.pending, nil
		return
	}
	for r.scanner.Scan() {
		r.lineNum++
		line = r.scanner.Text()
		if ind := strings.Index(line, "%"); ind >= 0 {
			line = line[:ind]
		}
		if line = strings.TrimSpace(line); line != "" {
			return
		}
	}
	if err = r.scanner.Err(); err == nil {
		err = fmt.Errorf("early end of file after line %d: %w", r.lineNum, io.EOF)
	}
	return
}

// getToken reads the value of a "KEY= value" line
func (r *su2Reader) getToken(key string) (token string, err error) {
	var line string
	if line, err = r.getLine(); err != nil {
		return
	}
	ind := strings.Index(line, "=")
	if ind < 0 || strings.TrimSpace(line[:ind]) != key {
		err = fmt.Errorf("line %d: expected %s=, got [%s]", r.lineNum, key, line)
		return
	}
	token = strings.TrimSpace(line[ind+1:])
	return
}

func (r *su2Reader) readNumber(key string) (num int, err error) {
	var token string
	if token, err = r.getToken(key); err != nil {
		return
	}
	fields := strings.Fields(token)
	if len(fields) == 0 {
		err = fmt.Errorf("line %d: missing count for %s", r.lineNum, key)
		return
	}
	if num, err = strconv.Atoi(fields[0]); err != nil {
		err = fmt.Errorf("line %d: unable to read number from token: [%s]", r.lineNum, token)
	}
	return
}

// readCell reads "type v1 v2 ... [id]" and returns the element type and vertices
func (r *su2Reader) readCell() (et utils.ElementType, verts []int, err error) {
	var line string
	if line, err = r.getLine(); err != nil {
		return
	}
	fields := strings.Fields(line)
	var code int
	if code, err = strconv.Atoi(fields[0]); err != nil {
		err = fmt.Errorf("line %d: invalid element type [%s]", r.lineNum, fields[0])
		return
	}
	var ok bool
	if et, ok = su2ElementTypeMap[SU2ElementType(code)]; !ok {
		err = fmt.Errorf("line %d: %w: SU2 type %d", r.lineNum, mesh.ErrUnsupportedElement, code)
		return
	}
	nn := et.GetNumNodes()
	if len(fields) < nn+1 {
		err = fmt.Errorf("line %d: %s expects %d nodes, got %d fields", r.lineNum, et, nn, len(fields)-1)
		return
	}
	verts = make([]int, nn)
	for i := range verts {
		if verts[i], err = strconv.Atoi(fields[1+i]); err != nil {
			err = fmt.Errorf("line %d: invalid node index [%s]", r.lineNum, fields[1+i])
			return
		}
	}
	return
}

func (r *su2Reader) readElements(m *mesh.Mesh) (err error) {
	var K int
	if K, err = r.readNumber("NELEM"); err != nil {
		return
	}
	for k := 0; k < K; k++ {
		var (
			et    utils.ElementType
			verts []int
		)
		if et, verts, err = r.readCell(); err != nil {
			return
		}
		m.AddElement(et, verts...)
	}
	return
}

func (r *su2Reader) readVertices(m *mesh.Mesh) (err error) {
	var Nv int
	if Nv, err = r.readNumber("NPOIN"); err != nil {
		return
	}
	coords := make([]float64, m.Dim)
	for i := 0; i < Nv; i++ {
		var line string
		if line, err = r.getLine(); err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) < m.Dim {
			return fmt.Errorf("line %d: expected %d coordinates, got [%s]", r.lineNum, m.Dim, line)
		}
		for j := range coords {
			if coords[j], err = strconv.ParseFloat(fields[j], 64); err != nil {
				return fmt.Errorf("line %d: invalid coordinate: %v", r.lineNum, err)
			}
		}
		m.AddVertex(coords...)
	}
	return
}

// readMarkers reads the marker sections as facet vertex lists. Repeated tags
// accumulate into one list, markers are returned in order of first appearance.
func (r *su2Reader) readMarkers() (tags []string, facets map[string][][]int, err error) {
	var NBCs int
	if NBCs, err = r.readNumber("NMARK"); err != nil {
		return
	}
	facets = make(map[string][][]int, NBCs)
	for n := 0; n < NBCs; n++ {
		var label string
		if label, err = r.getToken("MARKER_TAG"); err != nil {
			return
		}
		var nFacets int
		if nFacets, err = r.readNumber("MARKER_ELEMS"); err != nil {
			return
		}
		if _, ok := facets[label]; !ok {
			tags = append(tags, label)
			facets[label] = make([][]int, 0, nFacets)
		}
		for i := 0; i < nFacets; i++ {
			var verts []int
			if _, verts, err = r.readCell(); err != nil {
				return
			}
			facets[label] = append(facets[label], verts)
		}
	}
	return
}

// ParseSU2 reads an SU2 native mesh, builds its descending connectivity and
// turns every marker into a facet group
func ParseSU2(rd io.Reader) (m *mesh.Mesh, err error) {
	r := &su2Reader{scanner: bufio.NewScanner(rd)}
	var dim int
	if dim, err = r.readNumber("NDIME"); err != nil {
		return
	}
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("unsupported dimension: NDIME=%d", dim)
	}
	m = mesh.NewMesh(dim)

	var (
		tags               []string
		markers            map[string][][]int
		hasNELEM, hasNPOIN bool
	)
	// Sections may come in any order after NDIME
	for {
		var line string
		if line, err = r.getLine(); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		r.pushBack(line)
		switch {
		case strings.HasPrefix(line, "NELEM"):
			hasNELEM = true
			err = r.readElements(m)
		case strings.HasPrefix(line, "NPOIN"):
			hasNPOIN = true
			err = r.readVertices(m)
		case strings.HasPrefix(line, "NMARK"):
			tags, markers, err = r.readMarkers()
		default:
			err = fmt.Errorf("line %d: unexpected section [%s]", r.lineNum, line)
		}
		if err != nil {
			return nil, err
		}
	}
	if !hasNELEM {
		return nil, fmt.Errorf("missing required NELEM= section")
	}
	if !hasNPOIN {
		return nil, fmt.Errorf("missing required NPOIN= section")
	}

	if err = m.BuildDescending(); err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if err = m.AddFacetGroup(tag, markers[tag]); err != nil {
			return nil, err
		}
	}
	return
}

func ReadSU2(filename string, verbose bool) (m *mesh.Mesh, err error) {
	var file *os.File
	if verbose {
		fmt.Printf("Reading SU2 file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		return nil, fmt.Errorf("unable to open file %s: %w", filename, err)
	}
	defer file.Close()
	if m, err = ParseSU2(file); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if verbose {
		fmt.Printf("Read file with %d dimensional data, %d elements, %d vertices\n",
			m.Dim, m.NumElements(), m.NumVertices())
	}
	return
}
