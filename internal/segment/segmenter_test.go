package segment

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/chart-segmenter/internal/detection"
	"github.com/ironsheep/chart-segmenter/internal/imaging"
	"github.com/ironsheep/chart-segmenter/internal/testutil"
)

func newTestSegmenter(t *testing.T, cfg Config, opts ...Option) *Segmenter {
	t.Helper()
	opts = append([]Option{WithLogger(testutil.NewTestLogger(t))}, opts...)
	s, err := New(cfg, opts...)
	require.NoError(t, err)
	return s
}

func TestSegmenter_Classify(t *testing.T) {
	s := newTestSegmenter(t, DefaultConfig())

	cls, err := s.Classify(testutil.ChartImage())
	require.NoError(t, err)

	// Panel hole borders run one pixel outside the dark panels.
	assert.Equal(t, detection.BoundingBox{X: 9, Y: 9, Width: 53, Height: 18}, cls.Date.Box)
	assert.Equal(t, detection.BoundingBox{X: 9, Y: 79, Width: 182, Height: 153}, cls.Graph.Box)
	assert.Equal(t, GraphWithLabelRegion, cls.Graph.Label)
	assert.Len(t, cls.Candidates, 3)
}

func TestSegmenter_Classify_TwoWay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ThreeWay = false
	s := newTestSegmenter(t, cfg)

	cls, err := s.Classify(testutil.ChartImage())
	require.NoError(t, err)
	assert.Equal(t, GraphRegion, cls.Graph.Label)
}

func TestSegmenter_Classify_Blank(t *testing.T) {
	s := newTestSegmenter(t, DefaultConfig())

	_, err := s.Classify(testutil.BlankImage(50, 50))
	assert.ErrorIs(t, err, ErrInsufficientCandidates)
}

func TestSegmenter_SplitGraphAndLabel(t *testing.T) {
	s := newTestSegmenter(t, DefaultConfig())
	img := testutil.ChartImage()

	cls, err := s.Classify(img)
	require.NoError(t, err)
	sub, err := imaging.CropRect(img, cls.Graph.Rect())
	require.NoError(t, err)

	split, err := s.SplitGraphAndLabel(sub)
	require.NoError(t, err)

	// Plot bottom 112 and first tick label top 126, in crop coordinates.
	assert.Equal(t, 119, split.SplitY)
	assert.Equal(t, detection.BoundingBox{X: 11, Y: 11, Width: 160, Height: 101}, split.Graph.Box)
	assert.Equal(t, detection.BoundingBox{X: 0, Y: 119, Width: 182, Height: 34}, split.Label.Box)
	assert.Equal(t, detection.BoundingBox{X: 21, Y: 126, Width: 16, Height: 11}, split.LabelAnchor.Box)
}

func TestSegmenter_Extract(t *testing.T) {
	s := newTestSegmenter(t, DefaultConfig())

	lvl, err := s.Extract(testutil.ChartImage(), LevelPolicy{Depth: 2})
	require.NoError(t, err)

	assert.True(t, lvl.Binary.Auto)
	assert.Equal(t, 8, lvl.Forest.Len())
	assert.Len(t, lvl.Depths, 8)
	// The plot and the three tick labels.
	require.Len(t, lvl.Candidates, 4)
	assert.Equal(t, detection.BoundingBox{X: 20, Y: 90, Width: 160, Height: 101}, lvl.Candidates[0].Box)
}

func TestSegmenter_FinderError(t *testing.T) {
	boom := errors.New("boom")
	failing := func(*image.Gray) (detection.Forest, error) {
		return detection.Forest{}, boom
	}
	s := newTestSegmenter(t, DefaultConfig(), WithFinder(failing))

	_, err := s.Classify(testutil.ChartImage())
	assert.ErrorIs(t, err, boom)
}

func TestSegmenter_CorruptHierarchy(t *testing.T) {
	cyclic := func(*image.Gray) (detection.Forest, error) {
		return detection.Forest{
			Shapes:  []detection.Shape{{}, {}},
			Parents: []int{1, 0},
		}, nil
	}
	s := newTestSegmenter(t, DefaultConfig(), WithFinder(cyclic))

	_, err := s.Classify(testutil.ChartImage())
	assert.ErrorIs(t, err, detection.ErrCorruptHierarchy)
}

func TestSegmenter_SyntheticForest(t *testing.T) {
	// A stub finder lets the rules run against a hand-built hierarchy.
	forest := func(*image.Gray) (detection.Forest, error) {
		return detection.Forest{
			Shapes: []detection.Shape{
				detection.RectShape(detection.BoundingBox{X: 0, Y: 0, Width: 600, Height: 600}),
				detection.RectShape(detection.BoundingBox{X: 10, Y: 10, Width: 100, Height: 30}),
				detection.RectShape(detection.BoundingBox{X: 10, Y: 50, Width: 500, Height: 400}),
				detection.RectShape(detection.BoundingBox{X: 10, Y: 460, Width: 500, Height: 50}),
			},
			Parents: []int{detection.NoParent, 0, 0, 0},
		}, nil
	}
	cfg := DefaultConfig()
	cfg.ThreeWay = false
	s := newTestSegmenter(t, cfg, WithFinder(forest))

	cls, err := s.Classify(testutil.BlankImage(10, 10))
	require.NoError(t, err)

	assert.Equal(t, 10, cls.Date.Box.Y)
	assert.Equal(t, 460, cls.Graph.Box.Y)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Top.Depth = -1

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNew_NilOptionsIgnored(t *testing.T) {
	s, err := New(DefaultConfig(), WithFinder(nil), WithLogger(nil))
	require.NoError(t, err)

	assert.NotNil(t, s.finder)
	assert.NotNil(t, s.logger)
	assert.Equal(t, DefaultConfig(), s.Config())
}
