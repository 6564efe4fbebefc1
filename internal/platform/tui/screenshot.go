package tui

import (
	"image"
	"image/color"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/mr-beerpong/internal/core"
)

// Cell size of basicfont.Face7x13 in pixels.
const (
	cellW = 7
	cellH = 13
)

var screenshotBackground = color.RGBA{0x12, 0x12, 0x18, 0xff}

// asciiFallback replaces runes the bitmap font cannot draw.
var asciiFallback = map[rune]rune{
	'┌': '+', '┐': '+', '└': '+', '┘': '+',
	'─': '-', '│': '|',
	'←': '<', '→': '>', '↑': '^', '↓': 'v',
	'°': 'o', '♪': '*',
}

// RasterizeScreen draws the screen buffer into an image, one 7x13 glyph per
// cell, then scales it up by scale with nearest-neighbour sampling.
func RasterizeScreen(s *core.Screen, scale int) *image.RGBA {
	base := image.NewRGBA(image.Rect(0, 0, s.Width()*cellW, s.Height()*cellH))
	draw.Draw(base, base.Bounds(), image.NewUniform(screenshotBackground), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{Dst: base, Face: face}
	for y := range s.Height() {
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			r := cell.Rune
			if r == ' ' || r == 0 {
				continue
			}
			if _, _, _, _, ok := face.Glyph(fixed.Point26_6{}, r); !ok {
				fb, known := asciiFallback[r]
				if !known {
					fb = '?'
				}
				r = fb
			}
			c := swatchFor(cell.Color).rgb
			d.Src = image.NewUniform(c)
			d.Dot = fixed.P(x*cellW, y*cellH+face.Ascent)
			d.DrawString(string(r))
		}
	}

	if scale <= 1 {
		return base
	}
	out := image.NewRGBA(image.Rect(0, 0, base.Bounds().Dx()*scale, base.Bounds().Dy()*scale))
	draw.NearestNeighbor.Scale(out, out.Bounds(), base, base.Bounds(), draw.Src, nil)
	return out
}

// WriteScreenshot encodes the screen as a lossless WebP image.
func WriteScreenshot(w io.Writer, s *core.Screen) error {
	return nativewebp.Encode(w, RasterizeScreen(s, 2), nil)
}
