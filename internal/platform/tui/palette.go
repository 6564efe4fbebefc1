package tui

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/mr-beerpong/internal/core"
)

// swatch pairs the ANSI colour used in the terminal with the RGB value used
// for screenshots.
type swatch struct {
	ansi string
	rgb  color.RGBA
}

var palette = map[core.Color]swatch{
	core.ColorDefault:      {"", color.RGBA{0xd0, 0xd0, 0xd0, 0xff}},
	core.ColorRed:          {"1", color.RGBA{0xcd, 0x31, 0x31, 0xff}},
	core.ColorGreen:        {"2", color.RGBA{0x0d, 0xbc, 0x79, 0xff}},
	core.ColorYellow:       {"3", color.RGBA{0xe5, 0xe5, 0x10, 0xff}},
	core.ColorBlue:         {"4", color.RGBA{0x24, 0x72, 0xc8, 0xff}},
	core.ColorMagenta:      {"5", color.RGBA{0xbc, 0x3f, 0xbc, 0xff}},
	core.ColorCyan:         {"6", color.RGBA{0x11, 0xa8, 0xcd, 0xff}},
	core.ColorWhite:        {"7", color.RGBA{0xe5, 0xe5, 0xe5, 0xff}},
	core.ColorBrightRed:    {"9", color.RGBA{0xf1, 0x4c, 0x4c, 0xff}},
	core.ColorBrightGreen:  {"10", color.RGBA{0x23, 0xd1, 0x8b, 0xff}},
	core.ColorBrightYellow: {"11", color.RGBA{0xf5, 0xf5, 0x43, 0xff}},
	core.ColorBrightBlue:   {"12", color.RGBA{0x3b, 0x8e, 0xea, 0xff}},
	core.ColorBrightWhite:  {"15", color.RGBA{0xff, 0xff, 0xff, 0xff}},
	core.ColorOrange:       {"208", color.RGBA{0xff, 0x87, 0x00, 0xff}},
	core.ColorGray:         {"245", color.RGBA{0x8a, 0x8a, 0x8a, 0xff}},
}

// swatchFor falls back to the default colour for unknown values.
func swatchFor(c core.Color) swatch {
	if sw, ok := palette[c]; ok {
		return sw
	}
	return palette[core.ColorDefault]
}

// cellStyles caches one lipgloss style per palette entry.
var cellStyles = func() map[core.Color]lipgloss.Style {
	out := make(map[core.Color]lipgloss.Style, len(palette))
	for c, sw := range palette {
		st := lipgloss.NewStyle()
		if sw.ansi != "" {
			st = st.Foreground(lipgloss.Color(sw.ansi))
		}
		out[c] = st
	}
	return out
}()
