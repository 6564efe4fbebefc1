package tui

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/vovakirdan/mr-beerpong/internal/core"
)

func TestRasterizeScreenSize(t *testing.T) {
	s := core.NewScreen(10, 3)

	tests := []struct {
		scale int
		w, h  int
	}{
		{1, 70, 39},
		{2, 140, 78},
		{0, 70, 39},
	}
	for _, tc := range tests {
		img := RasterizeScreen(s, tc.scale)
		b := img.Bounds()
		if b.Dx() != tc.w || b.Dy() != tc.h {
			t.Errorf("scale %d: size = %dx%d, want %dx%d", tc.scale, b.Dx(), b.Dy(), tc.w, tc.h)
		}
	}
}

func TestRasterizeScreenDrawsGlyphs(t *testing.T) {
	s := core.NewScreen(3, 1)
	s.SetColored(1, 0, '#', core.ColorBrightRed)
	s.SetColored(2, 0, '─', core.ColorGreen)

	img := RasterizeScreen(s, 1)

	count := func(x0 int, want color.RGBA) int {
		n := 0
		for y := 0; y < cellH; y++ {
			for x := x0; x < x0+cellW; x++ {
				if img.RGBAAt(x, y) == want {
					n++
				}
			}
		}
		return n
	}

	if n := count(0, screenshotBackground); n != cellW*cellH {
		t.Errorf("blank cell has %d background pixels, want %d", n, cellW*cellH)
	}
	if count(cellW, swatchFor(core.ColorBrightRed).rgb) == 0 {
		t.Error("expected red pixels for '#'")
	}
	if count(2*cellW, swatchFor(core.ColorGreen).rgb) == 0 {
		t.Error("box-drawing rune should still be drawn")
	}
}

func TestWriteScreenshotWebP(t *testing.T) {
	s := core.NewScreen(8, 2)
	s.DrawText(0, 0, "HITS: 3")

	var buf bytes.Buffer
	if err := WriteScreenshot(&buf, s); err != nil {
		t.Fatalf("WriteScreenshot failed: %v", err)
	}
	data := buf.Bytes()
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Errorf("output is not a WebP container: % x", data[:min(len(data), 12)])
	}
}
