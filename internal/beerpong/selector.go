package beerpong

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mr-beerpong/internal/engine"
	"github.com/vovakirdan/mr-beerpong/internal/room"
)

// SelectRange is how far the pointer ray reaches.
const SelectRange = 3.0

// Pointer is one frame of hand input.
type Pointer struct {
	Ray   room.Ray
	Pinch bool
}

// TableSelector lets the player pick a table by pointing at it and pinching.
// It disables itself after the first selection.
type TableSelector struct {
	ray      engine.Raycaster
	onSelect func(room.Surface)
	logger   *log.Logger

	enabled  bool
	hovered  room.Surface
	hovering bool
	pinching bool
}

// NewTableSelector creates an enabled selector. onSelect runs once, on the
// pinch that picks a table.
func NewTableSelector(r engine.Raycaster, onSelect func(room.Surface), logger *log.Logger) *TableSelector {
	return &TableSelector{ray: r, onSelect: onSelect, logger: logger, enabled: true}
}

// Enabled reports whether the selector still accepts input.
func (t *TableSelector) Enabled() bool { return t.enabled }

// Hovered returns the table under the pointer, if any.
func (t *TableSelector) Hovered() (room.Surface, bool) {
	return t.hovered, t.hovering
}

// Update processes one frame of pointer input.
func (t *TableSelector) Update(p Pointer) {
	if !t.enabled {
		return
	}

	pressed := p.Pinch && !t.pinching
	t.pinching = p.Pinch

	hit, ok := t.ray.Raycast(p.Ray, SelectRange)
	if !ok || !hit.Surface.Label.Playable() {
		t.clearHover()
		return
	}
	if !t.hovering || t.hovered.ID != hit.Surface.ID {
		t.logger.Debug("hover", "surface", hit.Surface.ID)
	}
	t.hovered, t.hovering = hit.Surface, true

	if pressed {
		t.pick(t.hovered)
	}
}

// Select picks table without going through the pointer. It reports false
// when the selector is already done or the surface is not playable.
func (t *TableSelector) Select(table room.Surface) bool {
	if !t.enabled || !table.Label.Playable() {
		return false
	}
	t.pick(table)
	return true
}

func (t *TableSelector) pick(table room.Surface) {
	t.clearHover()
	t.enabled = false
	t.logger.Info("table selected", "surface", table.ID)
	if t.onSelect != nil {
		t.onSelect(table)
	}
}

func (t *TableSelector) clearHover() {
	t.hovered, t.hovering = room.Surface{}, false
}
