package crack

import (
	"errors"
	"fmt"
	"log"

	"github.com/notargets/gocrack/mesh"
)

var (
	ErrNoDescending   = errors.New("descending connectivity has not been built")
	ErrMalformedGroup = errors.New("malformed crack group")
	ErrNonManifold    = errors.New("non-manifold crack facet")
)

const DefaultDupSuffix = "_dup"

type Options struct {
	DupSuffix string // Appended to the crack group name to name the duplicated facet group
	Workers   int    // Parallel degree of the star analysis
	Verbose   bool
}

func DefaultOptions() *Options {
	return &Options{
		DupSuffix: DefaultDupSuffix,
		Workers:   1,
	}
}

func (o *Options) fill() *Options {
	opts := DefaultOptions()
	if o == nil {
		return opts
	}
	*opts = *o
	if opts.DupSuffix == "" {
		opts.DupSuffix = DefaultDupSuffix
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return opts
}

// Result reports everything one crack insertion changed
type Result struct {
	Group            string
	DupGroup         string
	NodesBefore      int
	FacetsBefore     int
	Duplicates       DuplicationSet
	Correspondence   Correspondence
	CellsModified    []int // Elements rewritten to reference duplicates, ascending
	CellsNotModified []int // Elements incident to a duplicated node that keep the original
	DuplicatedFacets []int // Facets appended for the side B owners, ascending
	Components       []Component
	Ambiguous        []int // Crack facets whose owners could not be separated
}

// Apply opens the crack described by the facet group named group
func Apply(m *mesh.Mesh, group string, opts *Options) (*Result, error) {
	if m.Desc == nil {
		return nil, ErrNoDescending
	}
	facetIDs, ok := m.Groups[group]
	if !ok {
		return nil, fmt.Errorf("%w: unknown group %q", ErrMalformedGroup, group)
	}
	opts = opts.fill()
	res, err := ApplyFacets(m, facetIDs, group+opts.DupSuffix, opts)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", group, err)
	}
	res.Group = group
	return res, nil
}

// ApplyGroups applies several crack groups in order, stopping at the first
// failure. Groups applied before the failure stay applied.
func ApplyGroups(m *mesh.Mesh, groups []string, opts *Options) (results []*Result, err error) {
	for _, group := range groups {
		var res *Result
		if res, err = Apply(m, group, opts); err != nil {
			return
		}
		results = append(results, res)
	}
	return
}

// ApplyFacets opens the crack made of the listed facets. The new facets are
// added to the group named dupGroup, no group is touched when dupGroup is empty.
// The mesh is left untouched when an error is returned.
func ApplyFacets(m *mesh.Mesh, facetIDs []int, dupGroup string, opts *Options) (*Result, error) {
	opts = opts.fill()
	fs, err := extractFacets(m, facetIDs)
	if err != nil {
		return nil, err
	}
	var (
		comps = crackComponents(fs)
		cl    = classify(m, fs, comps, opts.Workers)
	)
	ds, components := duplicate(m, fs, comps, cl)
	cm := rewrite(m, fs, cl, ds)
	if err = cm.check(m); err != nil {
		return nil, err
	}

	res := &Result{
		DupGroup:       dupGroup,
		NodesBefore:    m.NumVertices(),
		FacetsBefore:   m.Desc.NumFacets(),
		Duplicates:     ds,
		Correspondence: cm.corr,
		Components:     components,
		Ambiguous:      cl.ambiguous,
	}
	res.DuplicatedFacets = cm.apply(m)
	res.CellsModified = cm.corr.Cells()
	res.CellsNotModified = ds.keptCells()
	addDupGroup(m, dupGroup, res.DuplicatedFacets)

	if opts.Verbose {
		log.Printf("crack %q: %d facets in %d components, %d ambiguous",
			dupGroup, len(fs.records), len(comps), len(cl.ambiguous))
		log.Printf("crack %q: %d nodes duplicated, %d cells rewritten, %d facets split",
			dupGroup, len(ds), len(res.CellsModified), len(res.DuplicatedFacets))
	}
	return res, nil
}
