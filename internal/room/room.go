// Package room models the scanned room: a read-only set of labelled planar
// surfaces with world poses, loaded from YAML scene descriptions.
package room

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/mr-beerpong/internal/core"
)

//go:embed defaults/room.yaml
var defaultRoomYAML []byte

// ErrUnknownSurface is returned when a surface ID is not part of the room.
var ErrUnknownSurface = errors.New("room: unknown surface")

// Extent is the planar size of a surface along its local X (width) and Y (depth).
type Extent struct {
	W, D float64
}

// Surface is a detected real-world plane. It is immutable once loaded.
type Surface struct {
	ID     string
	Label  Label
	Extent Extent
	Pose   core.Pose
}

// HasExtent reports whether the surface carries a usable plane rectangle.
func (s Surface) HasExtent() bool {
	return s.Extent.W > 0 && s.Extent.D > 0
}

// Normal returns the world-space surface normal (local +Z).
func (s Surface) Normal() core.Vec3 {
	return s.Pose.TransformDir(core.V3(0, 0, 1))
}

// Room is an immutable collection of surfaces.
type Room struct {
	Name     string
	surfaces []Surface
	byID     map[string]int
}

// New builds a room from surfaces. Surface IDs must be unique and non-empty.
func New(name string, surfaces []Surface) (*Room, error) {
	r := &Room{
		Name:     name,
		surfaces: make([]Surface, len(surfaces)),
		byID:     make(map[string]int, len(surfaces)),
	}
	copy(r.surfaces, surfaces)

	for i, s := range r.surfaces {
		if s.ID == "" {
			return nil, fmt.Errorf("room: surface %d has no id", i)
		}
		if _, dup := r.byID[s.ID]; dup {
			return nil, fmt.Errorf("room: duplicate surface id %q", s.ID)
		}
		r.byID[s.ID] = i
	}
	return r, nil
}

// Surfaces returns a copy of all surfaces in load order.
func (r *Room) Surfaces() []Surface {
	out := make([]Surface, len(r.surfaces))
	copy(out, r.surfaces)
	return out
}

// Surface looks up a surface by ID.
func (r *Room) Surface(id string) (Surface, error) {
	i, ok := r.byID[id]
	if !ok {
		return Surface{}, fmt.Errorf("%w: %q", ErrUnknownSurface, id)
	}
	return r.surfaces[i], nil
}

// Tables returns the playable surfaces (tables and desks).
func (r *Room) Tables() []Surface {
	var out []Surface
	for _, s := range r.surfaces {
		if s.Label.Playable() {
			out = append(out, s)
		}
	}
	return out
}

// fileSurface is the YAML shape of a surface.
type fileSurface struct {
	ID       string     `yaml:"id"`
	Label    Label      `yaml:"label"`
	Position [3]float64 `yaml:"position"`
	Rotation [3]float64 `yaml:"rotation"` // Euler degrees
	Extent   [2]float64 `yaml:"extent"`
}

type fileRoom struct {
	Name     string        `yaml:"name"`
	Surfaces []fileSurface `yaml:"surfaces"`
}

// Parse decodes a YAML room description.
func Parse(data []byte) (*Room, error) {
	var fr fileRoom
	if err := yaml.Unmarshal(data, &fr); err != nil {
		return nil, fmt.Errorf("room: cannot parse: %w", err)
	}

	surfaces := make([]Surface, 0, len(fr.Surfaces))
	for _, fs := range fr.Surfaces {
		surfaces = append(surfaces, Surface{
			ID:     fs.ID,
			Label:  fs.Label,
			Extent: Extent{W: fs.Extent[0], D: fs.Extent[1]},
			Pose: core.NewPose(
				core.V3(fs.Position[0], fs.Position[1], fs.Position[2]),
				core.Euler(fs.Rotation[0], fs.Rotation[1], fs.Rotation[2]),
			),
		})
	}
	return New(fr.Name, surfaces)
}

// Load reads a room description from path, or the embedded sample room when
// path is empty.
func Load(path string) (*Room, error) {
	if path == "" {
		return Parse(defaultRoomYAML)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("room: cannot read %s: %w", path, err)
	}
	return Parse(data)
}
