package pipeline

import (
	"fmt"
	"image"

	"github.com/ironsheep/chart-segmenter/internal/detection"
	"github.com/ironsheep/chart-segmenter/internal/segment"
)

// ContourInfo summarizes one traced shape.
type ContourInfo struct {
	Index  int                   `json:"index"`
	Parent int                   `json:"parent"`
	Depth  int                   `json:"depth"`
	Box    detection.BoundingBox `json:"box"`
	Area   float64               `json:"area"`
	Points int                   `json:"points"`
}

// ContourReport lists the contour forest of an image, for tuning depth and
// threshold settings against real captures.
type ContourReport struct {
	Threshold     uint8         `json:"threshold"`
	AutoThreshold bool          `json:"auto_threshold"`
	Total         int           `json:"total"`
	Contours      []ContourInfo `json:"contours"`
}

// Stage selects which level policy a contour report uses.
type Stage string

const (
	// StageTop uses the full-image policy.
	StageTop Stage = "top"
	// StageSub uses the graph/label split policy.
	StageSub Stage = "sub"
)

// Contours traces img with the stage's binarization settings and reports
// every shape, or only those at depth when depth >= 0.
func (p *Pipeline) Contours(img image.Image, stage Stage, depth int) (*ContourReport, error) {
	var policy segment.LevelPolicy
	switch stage {
	case StageTop, "":
		policy = p.seg.Config().Top
	case StageSub:
		policy = p.seg.Config().Sub
	default:
		return nil, fmt.Errorf("unknown stage %q: want %q or %q", stage, StageTop, StageSub)
	}

	lvl, err := p.seg.Extract(img, policy)
	if err != nil {
		return nil, err
	}

	report := &ContourReport{
		Threshold:     lvl.Binary.Level,
		AutoThreshold: lvl.Binary.Auto,
		Total:         lvl.Forest.Len(),
		Contours:      make([]ContourInfo, 0),
	}
	for i, s := range lvl.Forest.Shapes {
		if depth >= 0 && lvl.Depths[i] != depth {
			continue
		}
		report.Contours = append(report.Contours, ContourInfo{
			Index:  i,
			Parent: lvl.Forest.Parents[i],
			Depth:  lvl.Depths[i],
			Box:    s.Box(),
			Area:   s.Area(),
			Points: len(s.Points),
		})
	}
	return report, nil
}
