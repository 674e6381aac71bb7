package detection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectForest(parents []int, boxes ...BoundingBox) Forest {
	f := Forest{Parents: parents}
	for _, b := range boxes {
		f.Shapes = append(f.Shapes, RectShape(b))
	}
	return f
}

func TestSelectLevel(t *testing.T) {
	f := rectForest(
		[]int{NoParent, 0, 0, 0, 1},
		BoundingBox{X: 0, Y: 0, Width: 600, Height: 600},   // root
		BoundingBox{X: 10, Y: 10, Width: 100, Height: 30},  // 2871
		BoundingBox{X: 10, Y: 50, Width: 500, Height: 400}, // 199101
		BoundingBox{X: 10, Y: 460, Width: 500, Height: 50}, // 24451
		BoundingBox{X: 20, Y: 20, Width: 5, Height: 5},     // depth 2
	)
	depths, err := f.Depths()
	require.NoError(t, err)

	cands := SelectLevel(f, depths, 1, 0)
	require.Len(t, cands, 3)

	assert.Equal(t, []int{2, 3, 1}, []int{cands[0].Index, cands[1].Index, cands[2].Index})
	assert.Equal(t, 199101.0, cands[0].Area)
	assert.Equal(t, 1, cands[0].Depth)
	assert.Equal(t, 50, cands[0].Top())
	assert.Equal(t, 450, cands[0].Bottom())
}

func TestSelectLevel_TopK(t *testing.T) {
	f := rectForest(
		[]int{NoParent, NoParent, NoParent},
		BoundingBox{Width: 10, Height: 10},
		BoundingBox{Width: 30, Height: 30},
		BoundingBox{Width: 20, Height: 20},
	)
	depths := []int{0, 0, 0}

	cands := SelectLevel(f, depths, 0, 2)
	require.Len(t, cands, 2)
	assert.Equal(t, 1, cands[0].Index)
	assert.Equal(t, 2, cands[1].Index)

	// topK larger than the level keeps everything.
	assert.Len(t, SelectLevel(f, depths, 0, 10), 3)
}

func TestSelectLevel_EqualAreaKeepsOrder(t *testing.T) {
	f := rectForest(
		[]int{NoParent, NoParent, NoParent},
		BoundingBox{X: 50, Width: 10, Height: 10},
		BoundingBox{X: 0, Width: 10, Height: 10},
		BoundingBox{X: 25, Width: 10, Height: 10},
	)

	cands := SelectLevel(f, []int{0, 0, 0}, 0, 0)
	require.Len(t, cands, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{cands[0].Index, cands[1].Index, cands[2].Index})
}

func TestSelectLevel_NoShapesAtLevel(t *testing.T) {
	f := rectForest([]int{NoParent}, BoundingBox{Width: 10, Height: 10})

	cands := SelectLevel(f, []int{0}, 3, 0)
	assert.NotNil(t, cands)
	assert.Empty(t, cands)
}

func TestNewCandidate(t *testing.T) {
	s := RectShape(BoundingBox{X: 4, Y: 8, Width: 11, Height: 6})
	c := NewCandidate(7, 2, s)

	assert.Equal(t, 7, c.Index)
	assert.Equal(t, 2, c.Depth)
	assert.Equal(t, BoundingBox{X: 4, Y: 8, Width: 11, Height: 6}, c.Box)
	assert.Equal(t, 50.0, c.Area)
	assert.Equal(t, 8, c.Top())
	assert.Equal(t, 14, c.Bottom())
}

func TestNewCandidate_EmptyShape(t *testing.T) {
	c := NewCandidate(0, 1, Shape{})

	assert.Equal(t, math.MaxInt, c.Top())
	assert.Equal(t, Shape{}.Top(), c.Top())
	assert.Equal(t, 0.0, c.Area)
}
