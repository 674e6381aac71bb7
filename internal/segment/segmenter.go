package segment

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/ironsheep/chart-segmenter/internal/detection"
	"github.com/ironsheep/chart-segmenter/internal/imaging"
)

// Segmenter runs the classification rules against images.
type Segmenter struct {
	cfg    Config
	finder detection.Finder
	logger *slog.Logger
}

// Option customizes a Segmenter.
type Option func(*Segmenter)

// WithFinder replaces the contour finder.
func WithFinder(f detection.Finder) Option {
	return func(s *Segmenter) {
		if f != nil {
			s.finder = f
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Segmenter) {
		if l != nil {
			s.logger = l
		}
	}
}

// New validates cfg and returns a Segmenter using it.
func New(cfg Config, opts ...Option) (*Segmenter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid segment config: %w", err)
	}
	s := &Segmenter{
		cfg:    cfg,
		finder: detection.DefaultFinder(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the configuration the Segmenter was built with.
func (s *Segmenter) Config() Config {
	return s.cfg
}

// Level is everything extracted from one image at one policy.
type Level struct {
	Binary     *imaging.BinarizeResult
	Forest     detection.Forest
	Depths     []int
	Candidates []detection.Candidate
}

// Extract binarizes img with the policy's threshold, traces its contour
// forest and selects the policy's candidates.
func (s *Segmenter) Extract(img image.Image, p LevelPolicy) (*Level, error) {
	bin := imaging.Binarize(img, imaging.BinarizeOptions{
		Threshold: p.Threshold,
		Invert:    s.cfg.Invert,
		Contrast:  s.cfg.Contrast,
	})

	forest, err := s.finder(bin.Image)
	if err != nil {
		return nil, fmt.Errorf("contour extraction failed: %w", err)
	}

	depths, err := forest.Depths()
	if err != nil {
		return nil, err
	}

	cands := detection.SelectLevel(forest, depths, p.Depth, p.TopK)

	s.logger.Debug("extracted contour level",
		"threshold", bin.Level,
		"auto_threshold", bin.Auto,
		"shapes", forest.Len(),
		"depth", p.Depth,
		"candidates", len(cands),
	)

	return &Level{
		Binary:     bin,
		Forest:     forest,
		Depths:     depths,
		Candidates: cands,
	}, nil
}

// Classify finds the date and graph regions of a full chart capture.
//
// With Config.ThreeWay set the graph region is labeled GraphWithLabelRegion,
// ready to be cropped and passed to SplitGraphAndLabel.
func (s *Segmenter) Classify(img image.Image) (*Classification, error) {
	lvl, err := s.Extract(img, s.cfg.Top)
	if err != nil {
		return nil, err
	}

	cls, err := ClassifyTopLevel(lvl.Candidates, s.cfg.Top.MinCandidates)
	if err != nil {
		return nil, err
	}
	if s.cfg.ThreeWay {
		cls.Graph.Label = GraphWithLabelRegion
	}

	s.logger.Debug("classified top level",
		"date", cls.Date.Box,
		"graph", cls.Graph.Box,
	)
	return cls, nil
}

// SplitGraphAndLabel cuts a graph-with-label crop into the plot and the
// x-axis label strip.
//
// The crop is binarized with the fixed Sub threshold, because label text
// contrast differs from the contrast between the outer panels, and the shapes
// at the Sub depth are handed to SplitCandidates. Region boxes are relative to
// sub's top-left corner.
func (s *Segmenter) SplitGraphAndLabel(sub image.Image) (*Split, error) {
	lvl, err := s.Extract(sub, s.cfg.Sub)
	if err != nil {
		return nil, err
	}

	b := sub.Bounds()
	split, err := SplitCandidates(lvl.Candidates, b.Dx(), b.Dy(), s.cfg.Sub.MinCandidates)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("split graph and label",
		"split_y", split.SplitY,
		"graph", split.Graph.Box,
		"label_anchor", split.LabelAnchor.Box,
	)
	return split, nil
}
