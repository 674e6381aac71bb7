package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ironsheep/chart-segmenter/internal/detection"
	"github.com/ironsheep/chart-segmenter/internal/imaging"
	"github.com/ironsheep/chart-segmenter/internal/segment"
)

// Output file names written into the output directory.
const (
	DateFile  = "date.png"
	GraphFile = "graph.png"
	LabelFile = "label.png"
	DebugFile = "debug.png"
)

// Options controls what a run writes.
type Options struct {
	// OutputDir receives the region images. Default "output".
	OutputDir string

	// DebugOverlay also writes the original image with every region outlined.
	DebugOverlay bool

	// DryRun computes the regions without writing any file.
	DryRun bool
}

func (o Options) outputDir() string {
	if o.OutputDir == "" {
		return "output"
	}
	return o.OutputDir
}

// Segmentation holds the regions of one image and their cropped pixels.
//
// Region boxes are in the coordinates of the original image.
type Segmentation struct {
	Date  segment.Region  `json:"date"`
	Graph segment.Region  `json:"graph"`
	Label *segment.Region `json:"label,omitempty"`

	// SplitY is the graph/label cut row in original image coordinates.
	SplitY *int `json:"split_y,omitempty"`

	Images map[segment.Label]image.Image `json:"-"`
}

// Result describes a completed run.
type Result struct {
	RunID  string `json:"run_id"`
	Source string `json:"source"`
	Segmentation
	Outputs map[string]string `json:"outputs,omitempty"`
}

// Pipeline wires a Segmenter to image loading and file output.
type Pipeline struct {
	seg    *segment.Segmenter
	cache  *imaging.ImageCache
	logger *slog.Logger
}

// New creates a pipeline. A nil cache or logger is replaced by a default.
func New(seg *segment.Segmenter, cache *imaging.ImageCache, logger *slog.Logger) *Pipeline {
	if cache == nil {
		cache = imaging.NewImageCache()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{seg: seg, cache: cache, logger: logger}
}

// Segmenter returns the segmenter the pipeline runs.
func (p *Pipeline) Segmenter() *segment.Segmenter {
	return p.seg
}

// Cache returns the image cache used to load inputs.
func (p *Pipeline) Cache() *imaging.ImageCache {
	return p.cache
}

// Segment classifies img and crops every region out of it.
//
// In three-way mode the graph-with-label crop is split further, and the
// graph and label regions are translated back into img's coordinates.
func (p *Pipeline) Segment(img image.Image) (*Segmentation, error) {
	cls, err := p.seg.Classify(img)
	if err != nil {
		return nil, err
	}

	dateImg, err := imaging.CropRect(img, cls.Date.Rect())
	if err != nil {
		return nil, fmt.Errorf("crop %s region: %w", cls.Date.Label, err)
	}
	graphImg, err := imaging.CropRect(img, cls.Graph.Rect())
	if err != nil {
		return nil, fmt.Errorf("crop %s region: %w", cls.Graph.Label, err)
	}

	out := &Segmentation{
		Date:  cls.Date,
		Graph: cls.Graph,
		Images: map[segment.Label]image.Image{
			segment.DateRegion: dateImg,
		},
	}

	if cls.Graph.Label != segment.GraphWithLabelRegion {
		out.Images[segment.GraphRegion] = graphImg
		return out, nil
	}

	split, err := p.seg.SplitGraphAndLabel(graphImg)
	if err != nil {
		return nil, err
	}

	plotImg, err := imaging.CropRect(graphImg, split.Graph.Rect())
	if err != nil {
		return nil, fmt.Errorf("crop %s region: %w", split.Graph.Label, err)
	}
	labelImg, err := imaging.CropRect(graphImg, split.Label.Rect())
	if err != nil {
		return nil, fmt.Errorf("crop %s region: %w", split.Label.Label, err)
	}

	origin := cls.Graph.Box
	graph := split.Graph
	graph.Box = offset(graph.Box, origin)
	label := split.Label
	label.Box = offset(label.Box, origin)
	splitY := split.SplitY + origin.Y

	out.Graph = graph
	out.Label = &label
	out.SplitY = &splitY
	out.Images[segment.GraphRegion] = plotImg
	out.Images[segment.LabelRegion] = labelImg
	return out, nil
}

// Run segments the image at path and writes the region crops.
//
// Nothing is written if any step fails. The returned error wraps the
// segment or detection sentinel errors so callers can report the failure
// kind with errors.Is.
func (p *Pipeline) Run(ctx context.Context, path string, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID, "source", path)

	img, err := p.cache.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded image", "width", img.Bounds().Dx(), "height", img.Bounds().Dy())

	seg, err := p.Segment(img)
	if err != nil {
		logger.Warn("segmentation failed", "error", err)
		return nil, fmt.Errorf("segment %s: %w", path, err)
	}

	result := &Result{
		RunID:        runID,
		Source:       path,
		Segmentation: *seg,
		Outputs:      map[string]string{},
	}

	if opts.DryRun {
		return result, nil
	}

	dir := opts.outputDir()
	files := []struct {
		label segment.Label
		name  string
	}{
		{segment.DateRegion, DateFile},
		{segment.GraphRegion, GraphFile},
		{segment.LabelRegion, LabelFile},
	}
	for _, f := range files {
		crop, ok := seg.Images[f.label]
		if !ok {
			continue
		}
		dst := filepath.Join(dir, f.name)
		if err := imaging.Save(crop, dst); err != nil {
			return nil, err
		}
		result.Outputs[f.label.String()] = dst
	}

	if opts.DebugOverlay {
		dst := filepath.Join(dir, DebugFile)
		if err := imaging.Save(Overlay(img, seg), dst); err != nil {
			return nil, err
		}
		result.Outputs["debug"] = dst
	}

	logger.Info("segmented image", "outputs", len(result.Outputs))
	return result, nil
}

// Overlay draws the segmentation's regions on top of the original image.
func Overlay(img image.Image, seg *Segmentation) image.Image {
	boxes := []imaging.OverlayBox{
		{Label: seg.Date.Label.String(), Rect: seg.Date.Rect()},
		{Label: seg.Graph.Label.String(), Rect: seg.Graph.Rect()},
	}
	if seg.Label != nil {
		boxes = append(boxes, imaging.OverlayBox{Label: seg.Label.Label.String(), Rect: seg.Label.Rect()})
	}
	return imaging.DrawOverlay(img, boxes, imaging.OverlayOptions{SplitY: seg.SplitY})
}

func offset(b, origin detection.BoundingBox) detection.BoundingBox {
	b.X += origin.X
	b.Y += origin.Y
	return b
}
