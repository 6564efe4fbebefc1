package beerpong

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/mr-beerpong/internal/core"
)

// MaxCups is the largest formation a rack can hold.
const MaxCups = 6

// ErrInvalidLayout is returned for non-positive layout dimensions.
var ErrInvalidLayout = errors.New("beerpong: invalid cup layout")

// rowFactor is the height of an equilateral triangle with unit side.
const rowFactor = 0.866

// LayoutTable maps a cup count to rack-local cup offsets. Rows grow along +Z
// away from the front cup, lateral spread is along X and every offset has Y=0.
type LayoutTable struct {
	spacing float64
	offsets [MaxCups + 1][]core.Vec3
}

// NewLayoutTable precomputes the formations for 1..6 cups.
func NewLayoutTable(cupDiameter, spacingRatio float64) (LayoutTable, error) {
	if cupDiameter <= 0 || spacingRatio <= 0 {
		return LayoutTable{}, fmt.Errorf("%w: diameter %v, spacing ratio %v", ErrInvalidLayout, cupDiameter, spacingRatio)
	}

	s := cupDiameter * spacingRatio
	h := s * rowFactor
	v := func(x, z float64) core.Vec3 { return core.V3(x, 0, z) }

	t := LayoutTable{spacing: s}
	t.offsets[1] = []core.Vec3{v(0, 0)}
	t.offsets[2] = []core.Vec3{v(0, 0), v(0, s)}
	t.offsets[3] = []core.Vec3{v(0, 0), v(-s/2, h), v(s/2, h)}
	t.offsets[4] = []core.Vec3{v(0, 0), v(-s/2, h), v(s/2, h), v(0, 2*h)}
	t.offsets[5] = []core.Vec3{v(-s/2, 0), v(s/2, 0), v(-s, h), v(0, h), v(s, h)}
	t.offsets[6] = []core.Vec3{v(0, 0), v(-s/2, h), v(s/2, h), v(-s, 2*h), v(0, 2*h), v(s, 2*h)}
	return t, nil
}

// Offsets returns a copy of the formation for n cups. ok is false for any
// count outside 1..6.
func (t LayoutTable) Offsets(n int) ([]core.Vec3, bool) {
	if n < 1 || n > MaxCups || t.offsets[n] == nil {
		return nil, false
	}
	out := make([]core.Vec3, len(t.offsets[n]))
	copy(out, t.offsets[n])
	return out, true
}

// Counts returns the defined cup counts in ascending order.
func (t LayoutTable) Counts() []int {
	return []int{1, 2, 3, 4, 5, 6}
}

// Spacing returns the centre distance between neighbouring cups.
func (t LayoutTable) Spacing() float64 {
	return t.spacing
}
