package detection

import (
	"errors"
	"fmt"
)

// NoParent marks a root shape in a parent-index array.
const NoParent = -1

// ErrCorruptHierarchy is returned when a parent-index array does not describe
// a finite forest: a chain longer than the number of shapes (a cycle) or a
// parent index outside the array.
var ErrCorruptHierarchy = errors.New("corrupt contour hierarchy")

// Forest is the containment forest produced by a contour finder.
//
// Parents[i] is the index of the shape immediately enclosing Shapes[i], or
// NoParent when Shapes[i] is a root. The two slices always have equal length.
type Forest struct {
	Shapes  []Shape `json:"shapes"`
	Parents []int   `json:"parents"`
}

// Len returns the number of shapes in the forest.
func (f Forest) Len() int {
	return len(f.Shapes)
}

// Depths computes the nesting depth of every shape in the forest.
//
// It validates that Shapes and Parents agree in length before delegating to
// the package-level Depths function.
func (f Forest) Depths() ([]int, error) {
	if len(f.Shapes) != len(f.Parents) {
		return nil, fmt.Errorf("%w: %d shapes but %d parent entries",
			ErrCorruptHierarchy, len(f.Shapes), len(f.Parents))
	}
	return Depths(f.Parents)
}

// Depths returns, for every entry of parents, the number of parent hops
// needed to reach a root. Roots have depth 0.
//
// Parameters:
//   - parents: parents[i] is a valid index into parents or NoParent.
//
// Returns:
//   - []int: depth per shape, same length as parents.
//   - error: wraps ErrCorruptHierarchy when an index is out of range or a
//     chain exceeds len(parents) hops (a cycle).
//
// # Algorithm
//
// Each chain is walked upward until it reaches a root or a shape whose depth
// is already known. The walked path is then filled in from the top down, so
// every shape is resolved once and the total work is O(N).
func Depths(parents []int) ([]int, error) {
	n := len(parents)
	depths := make([]int, n)
	known := make([]bool, n)
	path := make([]int, 0, 8)

	for i := 0; i < n; i++ {
		if known[i] {
			continue
		}

		path = path[:0]
		base := -1 // depth of the shape the walk stopped at, -1 for "above a root"
		cur := i
		for {
			if cur < 0 || cur >= n {
				return nil, fmt.Errorf("%w: shape %d has parent index %d outside [0,%d)",
					ErrCorruptHierarchy, path[len(path)-1], cur, n)
			}
			if known[cur] {
				base = depths[cur]
				break
			}
			path = append(path, cur)
			if len(path) > n {
				return nil, fmt.Errorf("%w: parent chain from shape %d exceeds %d hops",
					ErrCorruptHierarchy, i, n)
			}
			if parents[cur] == NoParent {
				break
			}
			cur = parents[cur]
		}

		for k := len(path) - 1; k >= 0; k-- {
			base++
			depths[path[k]] = base
			known[path[k]] = true
		}
	}

	return depths, nil
}
