// Package imaging provides the pixel-level operations the segmenter builds on:
// loading, binarization, cropping, saving and debug overlays.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based and relative to the
// image's top-left corner, whatever its Bounds().Min:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For rectangles, Min is inclusive and Max is exclusive
//
// Images returned by this package always start at (0,0), so a crop can be
// fed back into Binarize and the contour finder without translating points.
//
// # Binary Images
//
// Binarize produces an *image.Gray holding only 0 (background) and 255
// (foreground). The cutoff is either fixed or chosen by Otsu's method.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images.
//
// # Error Handling
//
// Functions return errors for invalid inputs such as:
//   - Rectangles outside image bounds or with no area
//   - Missing files (ErrImageNotFound) and undecodable data
//   - Encoding errors during image output
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid redundant
// disk reads. Large images may consume significant memory when cached.
// Consider using Evict() or Clear() to manage memory for long-running processes.
package imaging
