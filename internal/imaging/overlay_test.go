package imaging

import (
	"image"
	"image/color"
	"testing"
)

func rgb8(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestDrawOverlay_Dimensions(t *testing.T) {
	img := createInMemoryImage(100, 80, color.RGBA{128, 128, 128, 255})

	result := DrawOverlay(img, nil, OverlayOptions{})

	if result.Bounds() != image.Rect(0, 0, 100, 80) {
		t.Errorf("bounds: got %v, want (0,0)-(100,80)", result.Bounds())
	}

	// No boxes and no split line: the copy matches the source.
	if r, g, b := rgb8(result.At(50, 40)); r != 128 || g != 128 || b != 128 {
		t.Errorf("pixel (50,40): got (%d,%d,%d), want (128,128,128)", r, g, b)
	}
}

func TestDrawOverlay_DoesNotModifySource(t *testing.T) {
	img := createPatternImage(100, 100)
	before := img.RGBAAt(10, 10)

	DrawOverlay(img, []OverlayBox{{Label: "date", Rect: image.Rect(0, 0, 50, 50)}}, OverlayOptions{})

	if img.RGBAAt(10, 10) != before {
		t.Error("DrawOverlay modified the source image")
	}
}

func TestDrawOverlay_Outline(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{0, 0, 0, 255})
	box := image.Rect(20, 30, 80, 90)

	result := DrawOverlay(img, []OverlayBox{{Rect: box}}, OverlayOptions{LineWidth: 3})

	// Outline pixels take the palette color; black would mean nothing was drawn.
	edges := []image.Point{
		{20, 60}, // left
		{22, 60}, // left, inner edge of a 3px line
		{79, 60}, // right
		{50, 30}, // top
		{50, 89}, // bottom
	}
	for _, p := range edges {
		if r, g, b := rgb8(result.At(p.X, p.Y)); r == 0 && g == 0 && b == 0 {
			t.Errorf("outline pixel %v was not drawn", p)
		}
	}

	inside := []image.Point{{23, 60}, {50, 60}, {19, 60}, {80, 60}}
	for _, p := range inside {
		if r, g, b := rgb8(result.At(p.X, p.Y)); r != 0 || g != 0 || b != 0 {
			t.Errorf("pixel %v should be untouched, got (%d,%d,%d)", p, r, g, b)
		}
	}
}

func TestDrawOverlay_DistinctColors(t *testing.T) {
	img := createInMemoryImage(200, 100, color.RGBA{0, 0, 0, 255})
	boxes := []OverlayBox{
		{Rect: image.Rect(10, 10, 90, 90)},
		{Rect: image.Rect(110, 10, 190, 90)},
	}

	result := DrawOverlay(img, boxes, OverlayOptions{})

	if result.At(10, 50) == result.At(110, 50) {
		t.Errorf("boxes share outline color %v", result.At(10, 50))
	}
}

func TestDrawOverlay_SplitLine(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{0, 0, 0, 255})
	y := 60

	tests := []struct {
		name  string
		hex   string
		wantR uint8
		wantG uint8
		wantB uint8
	}{
		{"default red", "", 255, 0, 0},
		{"custom", "#00ff00", 0, 255, 0},
		{"invalid falls back to red", "not-a-color", 255, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DrawOverlay(img, nil, OverlayOptions{SplitY: &y, SplitColorHex: tt.hex})

			for _, x := range []int{0, 50, 99} {
				r, g, b := rgb8(result.At(x, y))
				if r != tt.wantR || g != tt.wantG || b != tt.wantB {
					t.Errorf("split pixel (%d,%d): got (%d,%d,%d), want (%d,%d,%d)",
						x, y, r, g, b, tt.wantR, tt.wantG, tt.wantB)
				}
			}

			if r, g, b := rgb8(result.At(50, y+1)); r != 0 || g != 0 || b != 0 {
				t.Errorf("row below split line was drawn: (%d,%d,%d)", r, g, b)
			}
		})
	}
}

func TestDrawOverlay_ClipsBoxes(t *testing.T) {
	img := createInMemoryImage(50, 50, color.RGBA{0, 0, 0, 255})

	// Must not panic when a box extends past the image.
	result := DrawOverlay(img, []OverlayBox{{Label: "graph", Rect: image.Rect(-10, -10, 100, 100)}}, OverlayOptions{})

	if result.Bounds().Dx() != 50 || result.Bounds().Dy() != 50 {
		t.Errorf("bounds: got %v, want 50x50", result.Bounds())
	}
}

func TestDrawOverlay_OffsetOrigin(t *testing.T) {
	pattern := createPatternImage(100, 100)
	sub := pattern.SubImage(image.Rect(50, 50, 100, 100)) // white quadrant

	result := DrawOverlay(sub, nil, OverlayOptions{})

	if result.Bounds() != image.Rect(0, 0, 50, 50) {
		t.Fatalf("bounds: got %v, want (0,0)-(50,50)", result.Bounds())
	}
	if r, g, b := rgb8(result.At(0, 0)); r != 255 || g != 255 || b != 255 {
		t.Errorf("pixel (0,0): got (%d,%d,%d), want white", r, g, b)
	}
}
