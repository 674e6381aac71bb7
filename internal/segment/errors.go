package segment

import "errors"

var (
	// ErrInsufficientCandidates is returned when fewer shapes sit at the
	// expected depth than the classification rule needs.
	ErrInsufficientCandidates = errors.New("insufficient candidates")

	// ErrAmbiguousClassification is returned when no candidate is larger
	// than the shape chosen as the date stamp, so no graph can be picked.
	ErrAmbiguousClassification = errors.New("ambiguous classification")
)
