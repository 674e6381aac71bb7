package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/histogram"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// BinarizeOptions controls how Binarize turns a color image into a binary one.
type BinarizeOptions struct {
	// Threshold is the fixed luminance cutoff (1-255). Pixels brighter than
	// the cutoff become foreground. Zero or a negative value selects the
	// cutoff automatically with Otsu's method.
	Threshold int

	// Invert swaps foreground and background after thresholding, for images
	// where the shapes of interest are dark on a light background.
	Invert bool

	// Contrast is an optional contrast change applied before thresholding,
	// in the range [-1, 1]. Zero leaves the image untouched.
	Contrast float64
}

// BinarizeResult holds a binary image and the cutoff that produced it.
type BinarizeResult struct {
	// Image has foreground pixels at 255 and background pixels at 0.
	Image *image.Gray

	// Level is the luminance cutoff used. For automatic thresholds this is
	// the level Otsu's method selected.
	Level uint8

	// Auto reports whether Level was chosen automatically.
	Auto bool
}

// Binarize converts an image to a binary foreground/background image.
//
// Parameters:
//   - img: Source image (color or grayscale).
//   - opts: Threshold, inversion and contrast settings.
//
// Returns a BinarizeResult whose Image has the same bounds as img.
//
// # Algorithm
//
//  1. Optional contrast adjustment (bild adjust.Contrast)
//  2. Grayscale conversion
//  3. Cutoff selection: the fixed Threshold, or Otsu's method over the
//     grayscale histogram when Threshold <= 0
//  4. Thresholding: luminance > cutoff becomes 255, everything else 0
//  5. Optional inversion
func Binarize(img image.Image, opts BinarizeOptions) *BinarizeResult {
	src := img
	if opts.Contrast != 0 {
		src = adjust.Contrast(src, clampFloat(opts.Contrast, -1, 1))
	}

	gray := imaging.Grayscale(src)

	result := &BinarizeResult{}
	if opts.Threshold <= 0 {
		result.Level = OtsuLevel(gray)
		result.Auto = true
	} else {
		result.Level = uint8(clamp(opts.Threshold, 0, 255))
	}

	var bin *image.Gray
	if result.Level == 255 {
		// Nothing is brighter than 255.
		bin = image.NewGray(gray.Bounds())
	} else {
		bin = segment.Threshold(gray, result.Level+1)
	}

	if opts.Invert {
		invertGray(bin)
	}

	result.Image = bin
	return result
}

// OtsuLevel selects a binarization cutoff by maximizing the between-class
// variance of the image's luminance histogram.
//
// The image is expected to be grayscale already; only the red channel of the
// histogram is read. The returned level is the last value of the dark class.
// A uniform image returns its single intensity.
func OtsuLevel(gray image.Image) uint8 {
	bins := histogram.NewRGBAHistogram(gray).R.Bins

	total := 0
	var sum float64
	for i, c := range bins {
		total += c
		sum += float64(i * c)
	}
	if total == 0 {
		return 0
	}

	var (
		sumB    float64
		weightB int
		best    float64
		level   int
		found   bool
	)

	for t := 0; t < len(bins); t++ {
		weightB += bins[t]
		if weightB == 0 {
			continue
		}
		weightF := total - weightB
		if weightF == 0 {
			break
		}

		sumB += float64(t * bins[t])
		meanB := sumB / float64(weightB)
		meanF := (sum - sumB) / float64(weightF)
		between := float64(weightB) * float64(weightF) * (meanB - meanF) * (meanB - meanF)

		if !found || between > best {
			best = between
			level = t
			found = true
		}
	}

	if !found {
		// Single intensity: put everything in the dark class.
		for i := len(bins) - 1; i >= 0; i-- {
			if bins[i] > 0 {
				return uint8(i)
			}
		}
	}
	return uint8(level)
}

// invertGray flips every pixel of a binary image in place.
func invertGray(g *image.Gray) {
	for i, v := range g.Pix {
		g.Pix[i] = 255 - v
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
