// Package detection extracts closed shapes from binary images and organizes
// them by how they nest.
//
// A screenshot of a chart is a set of panels drawn inside each other: the
// capture frame holds a date stamp and a graph panel, the graph panel holds
// the plot and its axis labels. Once the image is binarized, each panel edge
// becomes a border between foreground and background, and the question "which
// panel is inside which" becomes a containment forest over traced borders.
//
// # Pipeline
//
//  1. A Finder traces every border of a binary image and returns a Forest:
//     the shapes plus, for each shape, the index of its enclosing shape.
//  2. Depths turns the parent array into nesting levels (roots are 0).
//  3. SelectLevel keeps the shapes at one level and ranks them by area.
//
// The default Finder is FindContours, a pure Go implementation of
// Suzuki-Abe border following. Building with the gocv tag swaps in OpenCV's
// findContours with full-tree retrieval; both report outer borders and hole
// borders, so depth alternates between the two as nesting grows.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding box Width and Height count pixels inclusively
//
// # Determinism
//
// For a given binary image the finders always return the same shapes in the
// same order (raster order of each border's first pixel), and SelectLevel
// breaks area ties by that order. Classification built on top of these
// functions is therefore reproducible.
//
// # Limitations
//
// Borders are traced at pixel resolution with no smoothing. Anti-aliased or
// JPEG-compressed captures should be binarized with care: a broken panel edge
// turns one closed shape into an open one and changes the forest.
package detection
