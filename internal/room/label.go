package room

import (
	"strings"

	"github.com/vovakirdan/mr-beerpong/internal/core"
)

// Label is the semantic category of a scanned surface. It is decided once when
// the room is ingested; nothing downstream re-parses label strings.
type Label int

const (
	LabelOther Label = iota
	LabelWall
	LabelFloor
	LabelCeiling
	LabelTable
	LabelDesk
)

// ParseLabel maps a scanner label string onto a Label. Scanners emit
// decorated names (WALL_FACE, INVISIBLE_WALL_FACE, TABLE), so matching is by
// substring, case-insensitive.
func ParseLabel(raw string) Label {
	s := strings.ToUpper(raw)
	switch {
	case strings.Contains(s, "WALL"):
		return LabelWall
	case strings.Contains(s, "FLOOR"):
		return LabelFloor
	case strings.Contains(s, "CEILING"):
		return LabelCeiling
	case strings.Contains(s, "TABLE"):
		return LabelTable
	case strings.Contains(s, "DESK"):
		return LabelDesk
	default:
		return LabelOther
	}
}

// String returns the canonical upper-case label name.
func (l Label) String() string {
	switch l {
	case LabelWall:
		return "WALL"
	case LabelFloor:
		return "FLOOR"
	case LabelCeiling:
		return "CEILING"
	case LabelTable:
		return "TABLE"
	case LabelDesk:
		return "DESK"
	default:
		return "OTHER"
	}
}

// Playable reports whether a game can be set up on surfaces with this label.
func (l Label) Playable() bool {
	return l == LabelTable || l == LabelDesk
}

// DebugColor is the color used to visualize surfaces with this label.
func (l Label) DebugColor() core.Color {
	switch l {
	case LabelWall:
		return core.ColorBlue
	case LabelFloor:
		return core.ColorGray
	case LabelCeiling:
		return core.ColorWhite
	case LabelTable, LabelDesk:
		return core.ColorRed
	default:
		return core.ColorYellow
	}
}

// UnmarshalText lets YAML room files carry raw scanner labels.
func (l *Label) UnmarshalText(text []byte) error {
	*l = ParseLabel(string(text))
	return nil
}

// MarshalText writes the canonical label name.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
