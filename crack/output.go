package crack

import (
	"sort"

	"github.com/notargets/gocrack/mesh"
	"github.com/notargets/gocrack/utils"
)

// Correspondence maps each rewritten element to its old to new node ids
type Correspondence map[int]map[int]int

// Cells returns the rewritten elements, ascending
func (c Correspondence) Cells() []int {
	cells := make([]int, 0, len(c))
	for k := range c {
		cells = append(cells, k)
	}
	sort.Ints(cells)
	return cells
}

// Len is the number of node substitutions over all elements
func (c Correspondence) Len() (n int) {
	for _, sub := range c {
		n += len(sub)
	}
	return
}

// Pairs returns the substitutions of element k sorted by old node id
func (c Correspondence) Pairs(k int) (pairs [][2]int) {
	for old, nv := range c[k] {
		pairs = append(pairs, [2]int{old, nv})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i][0] < pairs[j][0] })
	return
}

// addDupGroup creates or extends the group holding the duplicated facets
func addDupGroup(m *mesh.Mesh, name string, facets []int) {
	if name == "" || len(facets) == 0 {
		return
	}
	if m.Groups == nil {
		m.Groups = make(map[string][]int)
	}
	ids := append(append([]int(nil), m.Groups[name]...), facets...)
	m.Groups[name] = utils.UniqueInts(ids)
}
