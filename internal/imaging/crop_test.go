package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	result, err := Crop(img, image.Rect(0, 0, 50, 50), 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	if result.Width != 50 || result.Height != 50 {
		t.Errorf("dimensions: got %dx%d, want 50x50", result.Width, result.Height)
	}

	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	// Verify base64 can be decoded
	_, err = base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Errorf("failed to decode base64: %v", err)
	}
}

func TestCrop_WithScale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	// Scale up 2x
	result, err := Crop(img, image.Rect(0, 0, 50, 50), 2.0)
	if err != nil {
		t.Fatalf("Crop with scale failed: %v", err)
	}

	if result.Width != 100 || result.Height != 100 {
		t.Errorf("scaled dimensions: got %dx%d, want 100x100", result.Width, result.Height)
	}
}

func TestCrop_ScaleDown(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	// Scale down 0.5x
	result, err := Crop(img, image.Rect(0, 0, 100, 100), 0.5)
	if err != nil {
		t.Fatalf("Crop with scale down failed: %v", err)
	}

	if result.Width != 50 || result.Height != 50 {
		t.Errorf("scaled dimensions: got %dx%d, want 50x50", result.Width, result.Height)
	}
}

func TestCropRect_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name string
		r    image.Rectangle
	}{
		{"x1 negative", image.Rect(-1, 0, 50, 50)},
		{"y1 negative", image.Rect(0, -1, 50, 50)},
		{"x2 too large", image.Rect(0, 0, 101, 50)},
		{"y2 too large", image.Rect(0, 0, 50, 101)},
		{"all out of bounds", image.Rect(-1, -1, 200, 200)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CropRect(img, tt.r)
			if err == nil {
				t.Error("CropRect should fail for out-of-bounds coordinates")
			}
		})
	}
}

func TestCropRect_InvalidRegion(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	// Built as literals because image.Rect would reorder the corners.
	tests := []struct {
		name string
		r    image.Rectangle
	}{
		{"x1 == x2", image.Rectangle{Min: image.Pt(50, 0), Max: image.Pt(50, 50)}},
		{"x1 > x2", image.Rectangle{Min: image.Pt(60, 0), Max: image.Pt(50, 50)}},
		{"y1 == y2", image.Rectangle{Min: image.Pt(0, 50), Max: image.Pt(50, 50)}},
		{"y1 > y2", image.Rectangle{Min: image.Pt(0, 60), Max: image.Pt(50, 50)}},
		{"zero area", image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CropRect(img, tt.r)
			if err == nil {
				t.Error("CropRect should fail for invalid region")
			}
		})
	}
}

func TestCropRect_FullImage(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	cropped, err := CropRect(img, image.Rect(0, 0, 100, 100))
	if err != nil {
		t.Fatalf("CropRect full image failed: %v", err)
	}

	b := cropped.Bounds()
	if b.Min != (image.Point{}) || b.Dx() != 100 || b.Dy() != 100 {
		t.Errorf("bounds: got %v, want (0,0)-(100,100)", b)
	}
}

func TestCropRect_OffsetOrigin(t *testing.T) {
	// A sub-image keeps its parent's coordinates; crop rectangles are still
	// relative to its top-left corner.
	pattern := createPatternImage(100, 100)
	sub := pattern.SubImage(image.Rect(50, 0, 100, 50)) // green quadrant

	cropped, err := CropRect(sub, image.Rect(0, 0, 10, 10))
	if err != nil {
		t.Fatalf("CropRect failed: %v", err)
	}

	r, g, b, _ := cropped.At(5, 5).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 0 {
		t.Errorf("cropped color: got (%d,%d,%d), want (0,255,0)", r>>8, g>>8, b>>8)
	}

	if _, err := CropRect(sub, image.Rect(0, 0, 60, 10)); err == nil {
		t.Error("CropRect should reject a rectangle wider than the sub-image")
	}
}

func TestCrop_VerifyContent(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name       string
		r          image.Rectangle
		r8, g8, b8 uint8
	}{
		{"top-left", image.Rect(0, 0, 50, 50), 255, 0, 0},
		{"top-right", image.Rect(50, 0, 100, 50), 0, 255, 0},
		{"bottom-left", image.Rect(0, 50, 50, 100), 0, 0, 255},
		{"bottom-right", image.Rect(50, 50, 100, 100), 255, 255, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Crop(img, tt.r, 1.0)
			if err != nil {
				t.Fatalf("Crop failed: %v", err)
			}

			decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
			if err != nil {
				t.Fatalf("failed to decode base64: %v", err)
			}

			croppedImg, err := png.Decode(strings.NewReader(string(decoded)))
			if err != nil {
				t.Fatalf("failed to decode PNG: %v", err)
			}

			// Sample center pixel
			r, g, b, _ := croppedImg.At(25, 25).RGBA()
			r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

			if r8 != tt.r8 || g8 != tt.g8 || b8 != tt.b8 {
				t.Errorf("cropped image color: got (%d,%d,%d), want (%d,%d,%d)",
					r8, g8, b8, tt.r8, tt.g8, tt.b8)
			}
		})
	}
}

func TestSave(t *testing.T) {
	img := createPatternImage(40, 20)
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.png")

	if err := Save(img, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("saved file is not a PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 40 || decoded.Bounds().Dy() != 20 {
		t.Errorf("saved dimensions: got %dx%d, want 40x20",
			decoded.Bounds().Dx(), decoded.Bounds().Dy())
	}
}
