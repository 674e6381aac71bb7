//go:build !gocv

package detection

// DefaultFinder returns the contour finder used when no other is configured.
//
// Without the gocv build tag this is the pure Go FindContours.
func DefaultFinder() Finder {
	return FindContours
}
