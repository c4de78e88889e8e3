package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/cyberphone/json-canonicalization/go/src/webpki.org/jsoncanonicalizer"

	"github.com/notargets/gocrack/crack"
	"github.com/notargets/gocrack/utils"
)

// Report is the machine readable summary of the cracks applied to one mesh
type Report struct {
	Mesh   string  `json:"mesh"`
	Cracks []Crack `json:"cracks"`
}

type Crack struct {
	Group            string                    `json:"group"`
	DupGroup         string                    `json:"dupGroup"`
	NodesBefore      int                       `json:"nodesBefore"`
	FacetsBefore     int                       `json:"facetsBefore"`
	Duplicates       [][2]int                  `json:"duplicates"` // Original and new node id
	Correspondence   map[string]map[string]int `json:"correspondence"`
	CellsModified    []int                     `json:"cellsModified"`
	CellsNotModified []int                     `json:"cellsNotModified"`
	DuplicatedFacets []int                     `json:"duplicatedFacets"`
	Singular         []int                     `json:"singular"`
	Ambiguous        []int                     `json:"ambiguous"`
}

func New(meshName string, results []*crack.Result) (r *Report) {
	r = &Report{
		Mesh:   meshName,
		Cracks: make([]Crack, len(results)),
	}
	for i, res := range results {
		r.Cracks[i] = newCrack(res)
	}
	return
}

func newCrack(res *crack.Result) (c Crack) {
	c = Crack{
		Group:            res.Group,
		DupGroup:         res.DupGroup,
		NodesBefore:      res.NodesBefore,
		FacetsBefore:     res.FacetsBefore,
		Duplicates:       make([][2]int, len(res.Duplicates)),
		Correspondence:   make(map[string]map[string]int, len(res.Correspondence)),
		CellsModified:    ints(res.CellsModified),
		CellsNotModified: ints(res.CellsNotModified),
		DuplicatedFacets: ints(res.DuplicatedFacets),
		Ambiguous:        ints(res.Ambiguous),
	}
	for i, d := range res.Duplicates {
		c.Duplicates[i] = [2]int{d.Old, d.New}
	}
	for k, sub := range res.Correspondence {
		pairs := make(map[string]int, len(sub))
		for old, nv := range sub {
			pairs[strconv.Itoa(old)] = nv
		}
		c.Correspondence[strconv.Itoa(k)] = pairs
	}
	var singular []int
	for _, comp := range res.Components {
		singular = append(singular, comp.Singular...)
	}
	c.Singular = ints(utils.UniqueInts(singular))
	return
}

// Canonical renders the report as RFC 8785 canonical JSON, byte identical for
// identical crack results
func (r *Report) Canonical() (out []byte, err error) {
	var raw []byte
	if raw, err = json.Marshal(r); err != nil {
		return
	}
	if out, err = jsoncanonicalizer.Transform(raw); err != nil {
		err = fmt.Errorf("unable to canonicalize report: %w", err)
	}
	return
}

// Digest is the hex SHA-256 of the canonical form
func (r *Report) Digest() (digest string, err error) {
	var out []byte
	if out, err = r.Canonical(); err != nil {
		return
	}
	sum := sha256.Sum256(out)
	digest = hex.EncodeToString(sum[:])
	return
}

func (r *Report) Write(filename string) (err error) {
	var out []byte
	if out, err = r.Canonical(); err != nil {
		return
	}
	return os.WriteFile(filename, append(out, '\n'), 0644)
}

func ints(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
