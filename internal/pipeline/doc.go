// Package pipeline runs chart segmentation end to end: load an image,
// classify its regions, crop them out of the original pixels and write the
// crops to disk.
//
// It is the only part of the module with side effects. All regions are
// computed before any file is written, so a failed run never leaves partial
// output behind.
package pipeline
