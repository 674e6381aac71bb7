package segment

import (
	"fmt"

	"github.com/ironsheep/chart-segmenter/internal/detection"
)

// Split is the result of cutting a graph-with-label crop in two.
type Split struct {
	// GraphLine is the largest shape, taken to be the plot.
	GraphLine detection.Candidate `json:"graph_line"`

	// LabelAnchor is the shape reaching lowest, taken to be label text.
	LabelAnchor detection.Candidate `json:"label_anchor"`

	// SplitY is the row where the label strip starts, relative to the crop.
	SplitY int `json:"split_y"`

	// Graph is the tight box around GraphLine.
	Graph Region `json:"graph"`

	// Label spans the full crop width from SplitY to the bottom edge.
	Label Region `json:"label"`
}

// SplitCandidates computes the graph/label cut for a crop of the given size.
//
// Parameters:
//   - cands: Shapes found inside the crop at the split depth, any order.
//   - width, height: Size of the crop the shapes were traced from.
//   - minCandidates: The fewest candidates accepted (raised to 2 if lower).
//
// # Rules
//
//  1. GraphLine is the candidate with the largest area.
//  2. LabelAnchor is the candidate with the largest bottom edge.
//  3. SplitY is the integer midpoint between GraphLine's bottom and
//     LabelAnchor's top, so the cut falls in the gap between plot and text
//     rather than on either edge.
//  4. SplitY is clamped into [1, height-1] so both halves are non-empty even
//     when the two shapes overlap.
//
// On ties the earlier candidate wins for both picks. The label strip is kept
// full width because label text is many small shapes that are not identified
// individually.
func SplitCandidates(cands []detection.Candidate, width, height, minCandidates int) (*Split, error) {
	if minCandidates < 2 {
		minCandidates = 2
	}
	if len(cands) < minCandidates {
		return nil, fmt.Errorf("%w: need %d shapes for graph/label split, found %d",
			ErrInsufficientCandidates, minCandidates, len(cands))
	}
	if height < 2 || width < 1 {
		return nil, fmt.Errorf("%w: crop of %dx%d is too small to split",
			ErrInsufficientCandidates, width, height)
	}

	graph, label := 0, 0
	for i := 1; i < len(cands); i++ {
		if cands[i].Area > cands[graph].Area {
			graph = i
		}
		if cands[i].Bottom() > cands[label].Bottom() {
			label = i
		}
	}

	splitY := (cands[graph].Bottom() + cands[label].Top()) / 2
	if splitY < 1 {
		splitY = 1
	}
	if splitY > height-1 {
		splitY = height - 1
	}

	return &Split{
		GraphLine:   cands[graph],
		LabelAnchor: cands[label],
		SplitY:      splitY,
		Graph:       regionFrom(GraphRegion, cands[graph]),
		Label: Region{
			Label: LabelRegion,
			Shape: cands[label].Shape,
			Box: detection.BoundingBox{
				X:      0,
				Y:      splitY,
				Width:  width,
				Height: height - splitY,
			},
		},
	}, nil
}
