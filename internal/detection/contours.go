package detection

import "image"

// Finder extracts the containment forest from a binary image.
//
// Pixels with a non-zero gray value are foreground. Implementations must be
// deterministic: the same binary image always yields the same shapes in the
// same order.
type Finder func(bin *image.Gray) (Forest, error)

// neighbour offsets in clockwise order (y grows downward), starting east.
var ringDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
var ringDY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}

// FindContours traces every border in a binary image and records which
// border encloses which.
//
// This is the pure Go contour finder and the default Finder. Both outer
// borders (foreground against background outside it) and hole borders
// (background enclosed by foreground) are reported, so nesting alternates
// outer, hole, outer as depth grows. Points are reported in the coordinate
// space of bin, including its Bounds().Min offset.
//
// # Algorithm
//
// Suzuki-Abe topological border following:
//
//  1. Copy the image into a label grid padded with one background pixel on
//     every side, foreground = 1. The padding acts as the frame border.
//  2. Raster scan. A pixel starts an outer border when it is 1 and its west
//     neighbour is 0; it starts a hole border when it is >= 1 and its east
//     neighbour is 0.
//  3. The parent of the new border follows from the type of the last border
//     crossed on the row (LNBD): an outer border inside an outer border
//     shares its parent, inside a hole it is the child of that hole, and
//     symmetrically for holes.
//  4. Follow the border 8-connected, relabelling border pixels with the
//     border number (negated where the east neighbour is background) so the
//     scan never starts the same border twice.
//
// The result matches a full-tree contour retrieval with no point
// approximation. The error is always nil; it exists to satisfy Finder.
func FindContours(bin *image.Gray) (Forest, error) {
	b := bin.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := w + 2

	grid := make([]int32, stride*(h+2))
	for y := 0; y < h; y++ {
		row := (y + 1) * stride
		for x := 0; x < w; x++ {
			if bin.GrayAt(b.Min.X+x, b.Min.Y+y).Y != 0 {
				grid[row+x+1] = 1
			}
		}
	}

	t := &tracer{
		grid:   grid,
		stride: stride,
		// border number 1 is the frame: a hole with no parent
		isHole: []bool{false, true},
		parent: []int32{0, 0},
	}

	forest := Forest{Shapes: make([]Shape, 0), Parents: make([]int, 0)}
	var nbd int32 = 1

	for y := 1; y <= h; y++ {
		lnbd := int32(1)
		for x := 1; x <= w; x++ {
			pos := y*stride + x
			f := grid[pos]
			if f == 0 {
				continue
			}

			startDir := -1
			hole := false
			if f == 1 && grid[pos-1] == 0 {
				startDir = 4 // west
			} else if f >= 1 && grid[pos+1] == 0 {
				startDir = 0 // east
				hole = true
				if f > 1 {
					lnbd = f
				}
			}

			if startDir >= 0 {
				nbd++
				parent := t.parentFor(hole, lnbd)
				t.isHole = append(t.isHole, hole)
				t.parent = append(t.parent, parent)

				pts := t.follow(x, y, startDir, nbd)
				for i := range pts {
					pts[i].X += b.Min.X - 1
					pts[i].Y += b.Min.Y - 1
				}

				forest.Shapes = append(forest.Shapes, Shape{Points: pts})
				if parent <= 1 {
					forest.Parents = append(forest.Parents, NoParent)
				} else {
					forest.Parents = append(forest.Parents, int(parent-2))
				}
			}

			if v := grid[pos]; v != 1 {
				if v < 0 {
					v = -v
				}
				lnbd = v
			}
		}
	}

	return forest, nil
}

// tracer holds the label grid and per-border bookkeeping for FindContours.
type tracer struct {
	grid   []int32
	stride int
	isHole []bool  // indexed by border number
	parent []int32 // indexed by border number, 0 = none
}

// parentFor decides the parent border number of a new border from the last
// border crossed on the current row.
func (t *tracer) parentFor(hole bool, lnbd int32) int32 {
	if hole == t.isHole[lnbd] {
		return t.parent[lnbd]
	}
	return lnbd
}

func (t *tracer) at(x, y, dir int) int32 {
	return t.grid[(y+ringDY[dir])*t.stride+x+ringDX[dir]]
}

// follow traces one border starting at (x, y) in padded grid coordinates.
// startDir points at the background pixel that triggered the border.
func (t *tracer) follow(x, y, startDir int, nbd int32) []Point {
	// Look clockwise from the background pixel for the first foreground neighbour.
	d1 := -1
	for k := 0; k < 8; k++ {
		d := (startDir + k) % 8
		if t.at(x, y, d) != 0 {
			d1 = d
			break
		}
	}
	if d1 < 0 {
		t.grid[y*t.stride+x] = -nbd
		return []Point{{X: x, Y: y}}
	}

	x1, y1 := x+ringDX[d1], y+ringDY[d1]
	x3, y3 := x, y
	prevDir := d1 // direction from (x3,y3) to the previous border pixel

	pts := make([]Point, 0, 64)
	for {
		// Search counterclockwise, starting just after the previous pixel.
		eastZero := false
		d4 := prevDir
		for k := 1; k <= 8; k++ {
			d := (prevDir - k + 8) % 8
			if t.at(x3, y3, d) != 0 {
				d4 = d
				break
			}
			if d == 0 {
				eastZero = true
			}
		}

		pos := y3*t.stride + x3
		if eastZero {
			t.grid[pos] = -nbd
		} else if t.grid[pos] == 1 {
			t.grid[pos] = nbd
		}
		pts = append(pts, Point{X: x3, Y: y3})

		x4, y4 := x3+ringDX[d4], y3+ringDY[d4]
		if x4 == x && y4 == y && x3 == x1 && y3 == y1 {
			break
		}
		prevDir = (d4 + 4) % 8
		x3, y3 = x4, y4
	}

	return pts
}
