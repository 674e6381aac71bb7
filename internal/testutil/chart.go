package testutil

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// Layout of the capture drawn by ChartImage. Panels are dark holes in a
// light page; the plot and tick labels are light shapes inside the graph
// panel. Rectangles use exclusive Max corners.
var (
	ChartSize  = image.Rect(0, 0, 200, 240)
	ChartPage  = image.Rect(2, 2, 198, 238)
	ChartDate  = image.Rect(10, 10, 61, 26)
	ChartInfo  = image.Rect(10, 35, 190, 71)
	ChartGraph = image.Rect(10, 80, 190, 231)
	ChartPlot  = image.Rect(20, 90, 180, 191)
	ChartTicks = []image.Rectangle{
		image.Rect(30, 205, 46, 216),
		image.Rect(80, 205, 96, 216),
		image.Rect(130, 205, 146, 216),
	}
)

// ChartImage draws a synthetic chart capture: a date stamp at the top, an
// info panel below it and a graph panel holding a plot and a row of tick
// labels at the bottom.
func ChartImage() *image.RGBA {
	img := image.NewRGBA(ChartSize)
	fill(img, ChartSize, color.Black)
	fill(img, ChartPage, color.White)
	fill(img, ChartDate, color.Black)
	fill(img, ChartInfo, color.Black)
	fill(img, ChartGraph, color.Black)
	fill(img, ChartPlot, color.White)
	for _, r := range ChartTicks {
		fill(img, r, color.White)
	}
	return img
}

// BlankImage returns a uniformly black image with no shapes at all.
func BlankImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fill(img, img.Bounds(), color.Black)
	return img
}

// WritePNG encodes img into dir under name and returns the file path. The
// directory is created if needed.
func WritePNG(t testing.TB, dir, name string, img image.Image) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}

func fill(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}
