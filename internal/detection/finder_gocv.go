//go:build gocv

package detection

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// DefaultFinder returns the contour finder used when no other is configured.
//
// With the gocv build tag the OpenCV finder is preferred.
func DefaultFinder() Finder {
	return FindContoursOpenCV
}

// FindContoursOpenCV extracts the containment forest using OpenCV's
// findContours with full-tree retrieval and no point approximation.
//
// OpenCV reports each contour's hierarchy as [next, previous, first child,
// parent]; only the parent entry is kept. Parent -1 already matches NoParent.
func FindContoursOpenCV(bin *image.Gray) (Forest, error) {
	mat, err := gocv.ImageGrayToMatGray(bin)
	if err != nil {
		return Forest{}, fmt.Errorf("failed to convert binary image: %w", err)
	}
	defer mat.Close()

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()

	contours := gocv.FindContoursWithParams(mat, &hierarchy, gocv.RetrievalTree, gocv.ChainApproxNone)
	defer contours.Close()

	n := contours.Size()
	forest := Forest{
		Shapes:  make([]Shape, 0, n),
		Parents: make([]int, 0, n),
	}
	if n == 0 {
		return forest, nil
	}

	min := bin.Bounds().Min
	for i := 0; i < n; i++ {
		raw := contours.At(i).ToPoints()
		pts := make([]Point, len(raw))
		for j, p := range raw {
			pts[j] = Point{X: p.X + min.X, Y: p.Y + min.Y}
		}

		h := hierarchy.GetVeciAt(0, i)
		forest.Shapes = append(forest.Shapes, Shape{Points: pts})
		forest.Parents = append(forest.Parents, int(h[3]))
	}

	return forest, nil
}
