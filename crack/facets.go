package crack

import (
	"fmt"
	"sort"

	"github.com/notargets/gocrack/mesh"
	"github.com/notargets/gocrack/utils"
)

// facetRecord is one crack facet as seen from level -1
type facetRecord struct {
	ID     int
	Type   utils.ElementType
	Nodes  []int // Facet vertices, oriented as seen from the first owner
	Owners []int // One or two owning elements, ascending
}

// facetSet is the crack: its facets sorted by id plus lookups used by the later stages
type facetSet struct {
	records    []facetRecord
	isCrack    map[int]bool  // Facet ids of the crack
	nodes      []int         // Distinct vertices lying on the crack, ascending
	nodeFacets map[int][]int // Vertex to indices into records
}

// extractFacets validates the facet ids and gathers each crack facet with its
// owners. Nothing is mutated.
func extractFacets(m *mesh.Mesh, facetIDs []int) (*facetSet, error) {
	if m.Desc == nil {
		return nil, ErrNoDescending
	}
	var (
		d       = m.Desc
		nf      = d.NumFacets()
		seen    = make(map[int]bool, len(facetIDs))
		records = make([]facetRecord, 0, len(facetIDs))
	)
	for _, f := range facetIDs {
		if f < 0 || f >= nf {
			return nil, fmt.Errorf("%w: facet id %d out of range [0,%d)", ErrMalformedGroup, f, nf)
		}
		if seen[f] {
			return nil, fmt.Errorf("%w: facet id %d listed twice", ErrMalformedGroup, f)
		}
		seen[f] = true
		owners := d.FToE[f]
		if len(owners) > 2 {
			return nil, fmt.Errorf("%w: facet %d has %d owners %v", ErrNonManifold, f, len(owners), owners)
		}
		if len(owners) == 0 {
			return nil, fmt.Errorf("%w: facet %d has no owner", ErrMalformedGroup, f)
		}
		records = append(records, facetRecord{
			ID:     f,
			Type:   d.FacetTypes[f],
			Nodes:  append([]int(nil), d.Facets[f]...),
			Owners: append([]int(nil), owners...),
		})
	}
	return newFacetSet(records), nil
}

// newFacetSet sorts the records by facet id and indexes their vertices
func newFacetSet(records []facetRecord) (fs *facetSet) {
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	fs = &facetSet{
		records:    records,
		isCrack:    make(map[int]bool, len(records)),
		nodeFacets: make(map[int][]int),
	}
	for i, rec := range fs.records {
		fs.isCrack[rec.ID] = true
		for _, v := range rec.Nodes {
			if len(fs.nodeFacets[v]) == 0 {
				fs.nodes = append(fs.nodes, v)
			}
			fs.nodeFacets[v] = append(fs.nodeFacets[v], i)
		}
	}
	sort.Ints(fs.nodes)
	return
}

func contains(verts []int, v int) bool {
	for _, vv := range verts {
		if vv == v {
			return true
		}
	}
	return false
}
