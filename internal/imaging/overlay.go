package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// OverlayBox is a labeled rectangle drawn by DrawOverlay.
type OverlayBox struct {
	Label string
	Rect  image.Rectangle
}

// OverlayOptions controls the debug overlay appearance.
type OverlayOptions struct {
	// LineWidth is the rectangle outline thickness in pixels. Default 2.
	LineWidth int

	// SplitY, when non-nil, draws a horizontal line across the image at
	// that row.
	SplitY *int

	// SplitColorHex is the split line color as "#RRGGBB". Default "#FF0000".
	SplitColorHex string
}

// DrawOverlay returns a copy of img with each box outlined in a distinct
// color and labeled with its name.
//
// Box coordinates are relative to the image's top-left corner. Colors come
// from a generated palette so adjacent regions stay distinguishable however
// many boxes are drawn. Boxes partly outside the image are clipped.
func DrawOverlay(img image.Image, boxes []OverlayBox, opts OverlayOptions) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)

	lw := opts.LineWidth
	if lw <= 0 {
		lw = 2
	}

	palette := colorful.FastHappyPalette(len(boxes))
	for i, b := range boxes {
		c := toRGBA(palette[i])
		drawRectOutline(result, b.Rect, lw, c)
		if b.Label != "" {
			drawLabel(result, b.Rect.Min.X+lw+1, b.Rect.Min.Y+lw+1, b.Label, c)
		}
	}

	if opts.SplitY != nil {
		splitColor := color.RGBA{255, 0, 0, 255}
		if opts.SplitColorHex != "" {
			if parsed, err := colorful.Hex(opts.SplitColorHex); err == nil {
				splitColor = toRGBA(parsed)
			}
		}
		y := *opts.SplitY
		fillRect(result, image.Rect(0, y, result.Bounds().Dx(), y+1), splitColor)
	}

	return result
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// drawRectOutline draws the border of r with the given thickness, inside r.
func drawRectOutline(dst *image.RGBA, r image.Rectangle, width int, c color.RGBA) {
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), c)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+width, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Max.X-width, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return
	}
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// drawLabel draws text with a dark backing box so it stays readable on any
// chart background. (x, y) is the top-left of the text.
func drawLabel(dst *image.RGBA, x, y int, text string, fg color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
	}

	width := d.MeasureString(text).Ceil()
	height := face.Metrics().Height.Ceil()
	bg := image.Rect(x-1, y-1, x+width+1, y+height+1)
	fillRect(dst, bg, color.RGBA{0, 0, 0, 180})

	d.Dot = fixed.P(x, y+face.Metrics().Ascent.Ceil())
	d.DrawString(text)
}
