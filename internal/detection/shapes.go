package detection

import (
	"image"
	"math"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// BoundingBox is the axis-aligned rectangle enclosing a Shape.
//
// Width and Height are pixel-inclusive: a shape whose points span columns
// 10 through 109 has X=10 and Width=100.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect converts the box to an image.Rectangle with an exclusive Max corner.
func (b BoundingBox) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Bottom returns the first row below the box.
func (b BoundingBox) Bottom() int {
	return b.Y + b.Height
}

// Shape is a closed outline traced from a binary image.
//
// Points are ordered along the border. A Shape is never modified after the
// finder that produced it returns; callers that need to alter points must
// copy them first.
type Shape struct {
	Points []Point `json:"points"`
}

// Box computes the bounding box of the shape.
//
// An empty shape yields the zero box.
func (s Shape) Box() BoundingBox {
	if len(s.Points) == 0 {
		return BoundingBox{}
	}

	minX, minY := s.Points[0].X, s.Points[0].Y
	maxX, maxY := minX, minY
	for _, p := range s.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	return BoundingBox{
		X:      minX,
		Y:      minY,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
	}
}

// Top returns the smallest Y coordinate over the shape's points.
//
// An empty shape has no top; math.MaxInt is returned so it never wins a
// "nearest the top" comparison.
func (s Shape) Top() int {
	if len(s.Points) == 0 {
		return math.MaxInt
	}
	top := s.Points[0].Y
	for _, p := range s.Points[1:] {
		if p.Y < top {
			top = p.Y
		}
	}
	return top
}

// Bottom returns Top plus the bounding box height, the first row below the
// shape.
func (s Shape) Bottom() int {
	if len(s.Points) == 0 {
		return math.MinInt
	}
	return s.Box().Bottom()
}

// Area returns the enclosed polygon area using the shoelace formula.
//
// The points are treated as a closed polygon in trace order. The result is
// always non-negative regardless of winding direction. Shapes with fewer than
// three points have zero area.
func (s Shape) Area() float64 {
	n := len(s.Points)
	if n < 3 {
		return 0
	}

	var sum int64
	for i := 0; i < n; i++ {
		p := s.Points[i]
		q := s.Points[(i+1)%n]
		sum += int64(p.X)*int64(q.Y) - int64(q.X)*int64(p.Y)
	}

	return math.Abs(float64(sum)) / 2
}

// RectShape builds a four-corner shape covering the given box.
//
// It is mainly useful for building synthetic forests; traced shapes from
// real images carry every border pixel.
func RectShape(box BoundingBox) Shape {
	x2 := box.X + box.Width - 1
	y2 := box.Y + box.Height - 1
	return Shape{Points: []Point{
		{X: box.X, Y: box.Y},
		{X: box.X, Y: y2},
		{X: x2, Y: y2},
		{X: x2, Y: box.Y},
	}}
}
