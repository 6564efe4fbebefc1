package tui

import (
	"strings"

	"github.com/vovakirdan/mr-beerpong/internal/core"
)

// RenderScreen turns a screen buffer into styled terminal text. Runs of
// equally coloured cells share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var out, run strings.Builder
	out.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			out.WriteByte('\n')
		}
		for x := 0; x < s.Width(); {
			c := s.GetCell(x, y).Color
			run.Reset()
			for ; x < s.Width() && s.GetCell(x, y).Color == c; x++ {
				run.WriteRune(s.Get(x, y))
			}
			st, ok := cellStyles[c]
			if !ok {
				st = cellStyles[core.ColorDefault]
			}
			out.WriteString(st.Render(run.String()))
		}
	}
	return out.String()
}
