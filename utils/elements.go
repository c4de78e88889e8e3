package utils

// ElementType represents the linear element types a crack can run through
type ElementType int

const (
	Unknown ElementType = iota
	// 0D elements
	Point
	// 1D elements
	Line
	// 2D elements
	Triangle
	Quad
	// 3D elements
	Tet
	Hex
	Prism
	Pyramid
)

// String representation of element types
func (e ElementType) String() string {
	names := []string{
		"Unknown",
		"Point",
		"Line",
		"Triangle", "Quad",
		"Tet", "Hex", "Prism", "Pyramid",
	}
	if int(e) >= 0 && int(e) < len(names) {
		return names[e]
	}
	return "Invalid"
}

// GetDimension returns the spatial dimension of the element
func (e ElementType) GetDimension() int {
	switch e {
	case Point:
		return 0
	case Line:
		return 1
	case Triangle, Quad:
		return 2
	case Tet, Hex, Prism, Pyramid:
		return 3
	default:
		return -1
	}
}

// GetNumNodes returns the number of nodes for each element type
func (e ElementType) GetNumNodes() int {
	switch e {
	case Point:
		return 1
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	case Tet:
		return 4
	case Hex:
		return 8
	case Prism:
		return 6
	case Pyramid:
		return 5
	default:
		return 0
	}
}

// GetNumFacets returns the number of co-dimension 1 entities bounding the element
func (e ElementType) GetNumFacets() int {
	switch e {
	case Line:
		return 2
	case Triangle:
		return 3
	case Quad:
		return 4
	case Tet:
		return 4
	case Hex:
		return 6
	case Prism, Pyramid:
		return 5
	default:
		return 0
	}
}

// FacetTypeForNodes returns the facet element type matching a facet node count
// within an element of dimension dim
func FacetTypeForNodes(dim, nNodes int) ElementType {
	switch dim {
	case 1:
		return Point
	case 2:
		return Line
	case 3:
		if nNodes == 3 {
			return Triangle
		}
		return Quad
	}
	return Unknown
}

// GetElementFacets returns the co-dimension 1 entities of an element as vertex
// lists, oriented outward for the 2D and 3D types
func GetElementFacets(elemType ElementType, v []int) [][]int {
	switch elemType {
	case Line:
		return [][]int{
			{v[0]},
			{v[1]},
		}

	case Triangle:
		return [][]int{
			{v[0], v[1]},
			{v[1], v[2]},
			{v[2], v[0]},
		}

	case Quad:
		return [][]int{
			{v[0], v[1]},
			{v[1], v[2]},
			{v[2], v[3]},
			{v[3], v[0]},
		}

	case Tet:
		return [][]int{
			{v[0], v[2], v[1]}, // Face 0
			{v[0], v[1], v[3]}, // Face 1
			{v[0], v[3], v[2]}, // Face 2
			{v[1], v[2], v[3]}, // Face 3
		}

	case Hex:
		return [][]int{
			{v[0], v[3], v[2], v[1]}, // Face 0 (bottom)
			{v[4], v[5], v[6], v[7]}, // Face 1 (top)
			{v[0], v[1], v[5], v[4]}, // Face 2
			{v[1], v[2], v[6], v[5]}, // Face 3
			{v[2], v[3], v[7], v[6]}, // Face 4
			{v[3], v[0], v[4], v[7]}, // Face 5
		}

	case Prism:
		return [][]int{
			{v[0], v[2], v[1]},       // Face 0 (bottom tri)
			{v[3], v[4], v[5]},       // Face 1 (top tri)
			{v[0], v[1], v[4], v[3]}, // Face 2 (quad)
			{v[1], v[2], v[5], v[4]}, // Face 3 (quad)
			{v[2], v[0], v[3], v[5]}, // Face 4 (quad)
		}

	case Pyramid:
		return [][]int{
			{v[0], v[3], v[2], v[1]}, // Face 0 (base quad)
			{v[0], v[1], v[4]},       // Face 1 (tri)
			{v[1], v[2], v[4]},       // Face 2 (tri)
			{v[2], v[3], v[4]},       // Face 3 (tri)
			{v[3], v[0], v[4]},       // Face 4 (tri)
		}

	default:
		return [][]int{}
	}
}

// GetSubFacets returns the co-dimension 2 entities of an element's facet:
// nothing for a point, the two end nodes of a line, the cyclic edges of a face
func GetSubFacets(facetType ElementType, v []int) [][]int {
	switch facetType {
	case Line:
		return [][]int{{v[0]}, {v[1]}}
	case Triangle, Quad:
		n := len(v)
		sub := make([][]int, n)
		for i := 0; i < n; i++ {
			sub[i] = []int{v[i], v[(i+1)%n]}
		}
		return sub
	default:
		return nil
	}
}
