package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	want := strings.Repeat("      \n", 2) + "      "
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	empty := NewScreen(-2, 4)
	if empty.Width() != 0 || empty.String() != "\n\n\n" {
		t.Errorf("negative width screen = %dx%d %q", empty.Width(), empty.Height(), empty.String())
	}
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		x, y int
	}{
		{"left", -1, 0},
		{"right", 4, 0},
		{"above", 0, -1},
		{"below", 0, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(4, 2)
			s.Set(tt.x, tt.y, 'X')
			if strings.ContainsRune(s.String(), 'X') {
				t.Errorf("write at (%d,%d) leaked into %q", tt.x, tt.y, s.String())
			}
			if got := s.Get(tt.x, tt.y); got != ' ' {
				t.Errorf("Get(%d,%d) = %q, want space", tt.x, tt.y, got)
			}
		})
	}
}

func TestScreenText(t *testing.T) {
	tests := []struct {
		name string
		draw func(*Screen)
		want string
	}{
		{"plain", func(s *Screen) { s.DrawText(1, 0, "cup") }, " cup    "},
		{"clipped", func(s *Screen) { s.DrawText(6, 0, "hit") }, "      hi"},
		{"negative start", func(s *Screen) { s.DrawText(-2, 0, "miss") }, "ss      "},
		{"centered", func(s *Screen) { s.DrawTextCentered(0, "ball") }, "  ball  "},
		{"runes", func(s *Screen) { s.DrawText(0, 0, "°♪x") }, "°♪x     "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(8, 1)
			tt.draw(s)
			if got := s.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawTextColored(1, 0, "ok", ColorGreen)

	if c := s.GetCell(2, 0); c != (Cell{Rune: 'k', Color: ColorGreen}) {
		t.Errorf("GetCell(2,0) = %+v", c)
	}
	if c := s.GetCell(0, 0); c.Color != ColorDefault {
		t.Errorf("untouched cell color = %v", c.Color)
	}
	s.Clear()
	if c := s.GetCell(1, 0); c != blankCell {
		t.Errorf("Clear left %+v", c)
	}
}

func TestScreenShapes(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawRect(Rect{X: 1, Y: 1, W: 2, H: 2}, '#')
	if got := s.String(); got != "      \n ##   \n ##   \n      " {
		t.Errorf("rect:\n%s", got)
	}

	s.Clear()
	s.DrawBox(Rect{X: 0, Y: 0, W: 4, H: 3}, ColorGray)
	want := "┌──┐  \n│  │  \n└──┘  \n      "
	if got := s.String(); got != want {
		t.Errorf("box:\n%s\nwant:\n%s", got, want)
	}
	if c := s.GetCell(3, 2); c.Color != ColorGray {
		t.Errorf("corner color = %v, want gray", c.Color)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawText(0, 0, "rack")
	s.DrawText(0, 2, "cups")

	s.Resize(3, 2)
	if got := s.String(); got != "rac\n   " {
		t.Errorf("after shrink = %q", got)
	}

	s.Resize(5, 3)
	if got := s.String(); got != "rac  \n     \n     " {
		t.Errorf("after grow = %q", got)
	}

	s.Resize(5, 3)
	if s.Get(0, 0) != 'r' {
		t.Error("same-size resize cleared the screen")
	}
}
