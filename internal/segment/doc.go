// Package segment splits a chart screenshot into its date, graph and x-axis
// label regions using contour geometry only.
//
// The input layout is fixed: a small date stamp at the top, a large plot area
// below it, and an x-axis label strip under the plot, stacked vertically. No
// text recognition is involved. Every decision is made from three weak
// signals taken from the contour forest of a binarized image:
//
//   - Depth: how many outlines enclose a shape
//   - Position: the topmost and bottommost rows a shape reaches
//   - Relative area: which shapes are larger than others
//
// No absolute pixel thresholds are used, so the rules are resolution
// independent.
//
// # Two Stages
//
// ClassifyTopLevel picks the date and graph regions from the shapes at the
// top-level depth. When a three-way split is requested the graph region is
// cropped and handed to Segmenter.SplitGraphAndLabel, which re-binarizes the
// crop with a fixed threshold, looks one level deeper, and cuts the plot from
// the label strip at a horizontal line.
//
// # Errors
//
// The rules fail loudly rather than guess. Callers see one of:
//
//   - detection.ErrCorruptHierarchy: the extracted forest is malformed
//   - ErrInsufficientCandidates: too few shapes at the expected depth
//   - ErrAmbiguousClassification: no shape is larger than the date stamp
//
// All errors are wrapped with context and can be tested with errors.Is.
//
// # Concurrency
//
// A Segmenter holds only immutable configuration. Its methods may be called
// from multiple goroutines on different images.
package segment
