package segment

import (
	"encoding/json"
	"fmt"
	"image"

	"github.com/ironsheep/chart-segmenter/internal/detection"
)

// Label names the semantic role of a region.
type Label int

const (
	// DateRegion is the date stamp at the top of the capture.
	DateRegion Label = iota
	// GraphRegion is the plot area alone.
	GraphRegion
	// GraphWithLabelRegion is the plot area together with its x-axis labels.
	GraphWithLabelRegion
	// LabelRegion is the x-axis label strip under the plot.
	LabelRegion
)

// String returns the lowercase name used in logs, file names and JSON.
func (l Label) String() string {
	switch l {
	case DateRegion:
		return "date"
	case GraphRegion:
		return "graph"
	case GraphWithLabelRegion:
		return "graph_with_label"
	case LabelRegion:
		return "label"
	default:
		return fmt.Sprintf("label(%d)", int(l))
	}
}

// MarshalJSON encodes the label by name.
func (l Label) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON decodes a label name written by MarshalJSON.
func (l *Label) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseLabel(name)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLabel returns the label with the given name.
func ParseLabel(name string) (Label, error) {
	for _, l := range []Label{DateRegion, GraphRegion, GraphWithLabelRegion, LabelRegion} {
		if l.String() == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown region label %q", name)
}

// Region is a classified rectangle of the image.
type Region struct {
	// Label is the region's role.
	Label Label `json:"label"`

	// Shape is the contour the region was derived from.
	Shape detection.Shape `json:"-"`

	// Box is the rectangle to crop, relative to the image the shape was
	// traced from.
	Box detection.BoundingBox `json:"box"`
}

// Rect returns the crop rectangle.
func (r Region) Rect() image.Rectangle {
	return r.Box.Rect()
}

// Classification is the result of the top-level date/graph decision.
type Classification struct {
	Date  Region `json:"date"`
	Graph Region `json:"graph"`

	// Candidates are the shapes the decision was made from, in rank order.
	Candidates []detection.Candidate `json:"candidates"`
}

// ClassifyTopLevel picks the date stamp and the graph out of a small set of
// candidate shapes.
//
// Parameters:
//   - cands: Candidate shapes, normally the top-level shapes ranked by area.
//     Any length is accepted.
//   - minCandidates: The fewest candidates accepted (raised to 2 if lower).
//
// Returns the Date and Graph regions, both referencing shapes from cands.
//
// # Rules
//
//  1. Date is the candidate whose highest point is nearest the top of the
//     image. On equal tops the earlier candidate wins.
//  2. Graph is chosen among the other candidates whose area is strictly
//     greater than Date's: the one reaching lowest, i.e. with the largest
//     top. On equal tops the earlier candidate wins.
//
// The date stamp is assumed to be the smallest panel and to sit above
// everything else; nothing is compared against absolute pixel sizes.
//
// # Errors
//
//   - ErrInsufficientCandidates if len(cands) < minCandidates
//   - ErrAmbiguousClassification if no candidate is larger than Date
func ClassifyTopLevel(cands []detection.Candidate, minCandidates int) (*Classification, error) {
	if minCandidates < 2 {
		minCandidates = 2
	}
	if len(cands) < minCandidates {
		return nil, fmt.Errorf("%w: need %d shapes for date/graph classification, found %d",
			ErrInsufficientCandidates, minCandidates, len(cands))
	}

	date := 0
	for i := 1; i < len(cands); i++ {
		if cands[i].Top() < cands[date].Top() {
			date = i
		}
	}

	dateArea := cands[date].Area
	graph := -1
	for i, c := range cands {
		if i == date || c.Area <= dateArea {
			continue
		}
		if graph < 0 || c.Top() > cands[graph].Top() {
			graph = i
		}
	}
	if graph < 0 {
		return nil, fmt.Errorf("%w: no shape larger than the date candidate (area %.0f, top %d) among %d candidates",
			ErrAmbiguousClassification, dateArea, cands[date].Top(), len(cands))
	}

	return &Classification{
		Date:       regionFrom(DateRegion, cands[date]),
		Graph:      regionFrom(GraphRegion, cands[graph]),
		Candidates: cands,
	}, nil
}

func regionFrom(label Label, c detection.Candidate) Region {
	return Region{Label: label, Shape: c.Shape, Box: c.Box}
}
