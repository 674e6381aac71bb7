package detection

import (
	"math"
	"sort"
)

// Candidate is a shape selected from a forest together with the values the
// classification rules compare.
type Candidate struct {
	// Index is the shape's position in the forest it was selected from.
	Index int `json:"index"`

	// Depth is the nesting level of the shape.
	Depth int `json:"depth"`

	// Shape is the traced outline. It shares points with the forest.
	Shape Shape `json:"-"`

	// Box is the shape's bounding box.
	Box BoundingBox `json:"box"`

	// Area is the enclosed polygon area of the shape.
	Area float64 `json:"area"`
}

// Top returns the smallest Y of the candidate's shape, or math.MaxInt for an
// empty shape, matching Shape.Top.
func (c Candidate) Top() int {
	if len(c.Shape.Points) == 0 {
		return math.MaxInt
	}
	return c.Box.Y
}

// Bottom returns the bounding box bottom, Box.Y plus Box.Height.
func (c Candidate) Bottom() int {
	return c.Box.Bottom()
}

// NewCandidate wraps a shape with its precomputed box and area.
func NewCandidate(index, depth int, s Shape) Candidate {
	return Candidate{
		Index: index,
		Depth: depth,
		Shape: s,
		Box:   s.Box(),
		Area:  s.Area(),
	}
}

// SelectLevel picks the shapes at a given nesting depth and ranks them by area.
//
// Parameters:
//   - forest: The extracted shapes.
//   - depths: Depth per shape, as returned by Depths. Must match forest length.
//   - level: Target depth. Only shapes with exactly this depth are kept.
//   - topK: Maximum number of candidates to return. Values <= 0 keep all.
//
// Returns the matching candidates ordered by descending area. Shapes with
// equal area keep their extraction order. An empty, non-nil slice is returned
// when no shape sits at the requested level; the caller decides whether that
// is an error.
func SelectLevel(forest Forest, depths []int, level, topK int) []Candidate {
	cands := make([]Candidate, 0)
	for i, s := range forest.Shapes {
		if i >= len(depths) || depths[i] != level {
			continue
		}
		cands = append(cands, NewCandidate(i, depths[i], s))
	}

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Area > cands[j].Area
	})

	if topK > 0 && len(cands) > topK {
		cands = cands[:topK]
	}
	return cands
}
