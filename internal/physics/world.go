// Package physics is a small fixed-step rigid-body world: dynamic spheres,
// trigger volumes and the static planes of the scanned room. It implements
// engine.World and dispatches trigger/collision callbacks on the caller's
// goroutine after each step, the way a game engine does at the end of its
// physics update.
package physics

import (
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/engine"
	"github.com/vovakirdan/mr-beerpong/internal/room"
)

// Config holds the physical constants of the world.
type Config struct {
	Gravity     float64 // m/s^2, applied along -Y
	Restitution float64 // Normal velocity kept after a bounce
	Friction    float64 // Tangential velocity kept after a bounce
	RestSpeed   float64 // Below this normal speed a contact becomes resting
	SettleSpeed float64 // Corrals stop horizontal drift below this speed
	KillHeight  float64 // Bodies falling below this count as hitting the floor
}

// DefaultConfig returns earth-like constants for a table-tennis ball.
func DefaultConfig() Config {
	return Config{
		Gravity:     9.81,
		Restitution: 0.6,
		Friction:    0.9,
		RestSpeed:   0.08,
		SettleSpeed: 0.3,
		KillHeight:  -5,
	}
}

type entity struct {
	id         engine.EntityID
	spec       engine.Spec
	pose       core.Pose
	vel        core.Vec3
	angVel     core.Vec3
	responsive bool
	inside     map[engine.EntityID]bool // Trigger volumes currently containing the body
	touching   map[string]bool          // Surfaces currently in contact
}

func (e *entity) dynamic() bool {
	return e.spec.Shape == engine.ShapeSphere && !e.spec.Trigger
}

func (e *entity) radius() float64 {
	return e.spec.Size.X
}

// World implements engine.World.
type World struct {
	room     *room.Room
	cfg      Config
	logger   *log.Logger
	entities map[engine.EntityID]*entity
	nextID   engine.EntityID
	hidden   map[string]bool
	pending  []func()
	ticks    uint64
}

var _ engine.World = (*World)(nil)

// New creates a world over the given room. A nil logger discards output.
func New(r *room.Room, cfg Config, logger *log.Logger) *World {
	if logger == nil {
		logger = log.Default()
	}
	return &World{
		room:     r,
		cfg:      cfg,
		logger:   logger.WithPrefix("physics"),
		entities: make(map[engine.EntityID]*entity),
		hidden:   make(map[string]bool),
	}
}

// Room returns the room the world was built over.
func (w *World) Room() *room.Room {
	return w.room
}

// Spawn implements engine.Spawner.
func (w *World) Spawn(spec engine.Spec) engine.EntityID {
	w.nextID++
	e := &entity{
		id:         w.nextID,
		spec:       spec,
		pose:       core.NewPose(spec.Pose.Position, spec.Pose.Rotation),
		responsive: true,
		inside:     make(map[engine.EntityID]bool),
		touching:   make(map[string]bool),
	}
	w.entities[e.id] = e
	if e.dynamic() {
		w.refreshInside(e)
	}
	w.logger.Debug("spawn", "id", e.id, "kind", spec.Kind, "name", spec.Name)
	return e.id
}

// Destroy implements engine.Spawner. Unknown IDs are ignored.
func (w *World) Destroy(id engine.EntityID) {
	if _, ok := w.entities[id]; !ok {
		return
	}
	delete(w.entities, id)
	for _, e := range w.entities {
		delete(e.inside, id)
	}
	w.logger.Debug("destroy", "id", id)
}

// Exists implements engine.Spawner.
func (w *World) Exists(id engine.EntityID) bool {
	_, ok := w.entities[id]
	return ok
}

// Pose implements engine.Bodies.
func (w *World) Pose(id engine.EntityID) (core.Pose, bool) {
	e, ok := w.entities[id]
	if !ok {
		return core.Pose{}, false
	}
	return e.pose, true
}

// Teleport implements engine.Bodies. Trigger occupancy is recomputed
// silently so a teleport never raises entry callbacks.
func (w *World) Teleport(id engine.EntityID, pose core.Pose) {
	e, ok := w.entities[id]
	if !ok {
		return
	}
	e.pose = core.NewPose(pose.Position, pose.Rotation)
	clear(e.touching)
	if e.dynamic() {
		w.refreshInside(e)
	}
}

// SetVelocity implements engine.Bodies.
func (w *World) SetVelocity(id engine.EntityID, linear, angular core.Vec3) {
	if e, ok := w.entities[id]; ok {
		e.vel = linear
		e.angVel = angular
	}
}

// Velocity implements engine.Bodies.
func (w *World) Velocity(id engine.EntityID) (core.Vec3, core.Vec3) {
	if e, ok := w.entities[id]; ok {
		return e.vel, e.angVel
	}
	return core.Vec3{}, core.Vec3{}
}

// SetResponsive implements engine.Bodies.
func (w *World) SetResponsive(id engine.EntityID, responsive bool) {
	if e, ok := w.entities[id]; ok {
		e.responsive = responsive
	}
}

// Raycast implements engine.Raycaster against the room geometry.
func (w *World) Raycast(ray room.Ray, maxDist float64) (room.Hit, bool) {
	if w.room == nil {
		return room.Hit{}, false
	}
	return w.room.Raycast(ray, maxDist)
}

// SetSurfaceVisible implements engine.Visuals.
func (w *World) SetSurfaceVisible(surfaceID string, visible bool) {
	if visible {
		delete(w.hidden, surfaceID)
		return
	}
	w.hidden[surfaceID] = true
}

// SurfaceVisible implements engine.Visuals.
func (w *World) SurfaceVisible(surfaceID string) bool {
	return !w.hidden[surfaceID]
}

// Ticks returns the number of completed steps.
func (w *World) Ticks() uint64 {
	return w.ticks
}

// Step advances every responsive dynamic body by dt seconds, then dispatches
// the callbacks raised during the step in entity-ID order.
func (w *World) Step(dt float64) {
	w.ticks++
	for _, id := range w.sortedIDs() {
		e := w.entities[id]
		if !e.dynamic() || !e.responsive {
			continue
		}
		w.integrate(e, dt)
	}
	w.flush()
}

func (w *World) integrate(e *entity, dt float64) {
	prev := e.pose.Position
	e.vel.Y -= w.cfg.Gravity * dt
	pos := prev.Add(e.vel.Scale(dt))
	e.pose.Position = pos

	w.collideSurfaces(e, prev)
	w.settleInCorrals(e)
	w.detectTriggers(e, prev)

	if e.pose.Position.Y < w.cfg.KillHeight {
		void := room.Surface{ID: "void", Label: room.LabelFloor}
		w.raiseCollision(e, engine.Contact{Surface: void, Point: e.pose.Position, RelativeSpeed: e.vel.Len()})
		e.responsive = false
	}
}

// collideSurfaces bounces the body off up-facing room planes it crossed.
func (w *World) collideSurfaces(e *entity, prev core.Vec3) {
	if w.room == nil {
		return
	}
	r := e.radius()
	for _, s := range w.room.Surfaces() {
		if !s.HasExtent() {
			continue
		}
		n := s.Normal()
		if n.Y < 0.7 {
			continue
		}
		pos := e.pose.Position
		hPrev := prev.Sub(s.Pose.Position).Dot(n)
		hNow := pos.Sub(s.Pose.Position).Dot(n)

		if hNow > r+0.005 {
			delete(e.touching, s.ID)
			continue
		}
		if hPrev < r-0.01 || !s.ContainsPlanar(pos) {
			continue
		}

		e.pose.Position = pos.Add(n.Scale(r - hNow))
		vn := e.vel.Dot(n)
		if vn >= 0 {
			continue
		}
		impact := -vn
		tangent := e.vel.Sub(n.Scale(vn))
		bounce := impact * w.cfg.Restitution
		if bounce < w.cfg.RestSpeed {
			bounce = 0
		}
		e.vel = tangent.Scale(w.cfg.Friction).Add(n.Scale(bounce))

		if !e.touching[s.ID] {
			w.raiseCollision(e, engine.Contact{Surface: s, Point: e.pose.Position, RelativeSpeed: impact})
		}
		e.touching[s.ID] = bounce == 0
	}
}

// settleInCorrals stops slow horizontal drift inside corral volumes.
func (w *World) settleInCorrals(e *entity) {
	for _, v := range w.entities {
		if v.spec.Kind != engine.KindCorral {
			continue
		}
		if !contains(v, e.pose.Position) {
			continue
		}
		if e.vel.Len() < w.cfg.SettleSpeed {
			e.vel.X, e.vel.Z = 0, 0
		}
	}
}

// detectTriggers raises entry callbacks for trigger volumes the body swept into.
func (w *World) detectTriggers(e *entity, prev core.Vec3) {
	for _, id := range w.sortedIDs() {
		v := w.entities[id]
		if !v.spec.Trigger || v.id == e.id {
			continue
		}
		in := sweptContains(v, prev, e.pose.Position)
		was := e.inside[v.id]
		e.inside[v.id] = contains(v, e.pose.Position)
		if in && !was {
			if obs, ok := v.spec.Observer.(engine.TriggerObserver); ok {
				volumeID := v.id
				other := engine.Collider{ID: e.id, Kind: e.spec.Kind}
				w.pending = append(w.pending, func() {
					if w.Exists(volumeID) {
						obs.OnTriggerEnter(other)
					}
				})
			}
		}
	}
}

func (w *World) raiseCollision(e *entity, c engine.Contact) {
	obs, ok := e.spec.Observer.(engine.CollisionObserver)
	if !ok {
		return
	}
	bodyID := e.id
	w.pending = append(w.pending, func() {
		if w.Exists(bodyID) {
			obs.OnCollisionEnter(c)
		}
	})
}

func (w *World) flush() {
	// Callbacks may spawn or destroy entities, so take the queue first.
	queue := w.pending
	w.pending = nil
	for _, fn := range queue {
		fn()
	}
}

func (w *World) refreshInside(e *entity) {
	clear(e.inside)
	for _, v := range w.entities {
		if v.spec.Trigger && v.id != e.id && contains(v, e.pose.Position) {
			e.inside[v.id] = true
		}
	}
}

func (w *World) sortedIDs() []engine.EntityID {
	ids := make([]engine.EntityID, 0, len(w.entities))
	for id := range w.entities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EntityView is a read-only snapshot of an entity for rendering.
type EntityView struct {
	ID      engine.EntityID
	Kind    engine.Kind
	Name    string
	Pose    core.Pose
	Shape   engine.Shape
	Size    core.Vec3
	Visible bool
}

// Entities returns snapshots of all entities in ID order.
func (w *World) Entities() []EntityView {
	ids := w.sortedIDs()
	out := make([]EntityView, 0, len(ids))
	for _, id := range ids {
		e := w.entities[id]
		out = append(out, EntityView{
			ID:      e.id,
			Kind:    e.spec.Kind,
			Name:    e.spec.Name,
			Pose:    e.pose,
			Shape:   e.spec.Shape,
			Size:    e.spec.Size,
			Visible: e.spec.Visible,
		})
	}
	return out
}

// contains reports whether a world point lies inside the entity's volume.
func contains(e *entity, p core.Vec3) bool {
	local := e.pose.InverseTransformPoint(p)
	switch e.spec.Shape {
	case engine.ShapeBox:
		return math.Abs(local.X) <= e.spec.Size.X/2 &&
			math.Abs(local.Y) <= e.spec.Size.Y/2 &&
			math.Abs(local.Z) <= e.spec.Size.Z/2
	case engine.ShapeCylinder:
		r := e.spec.Size.X / 2
		return local.X*local.X+local.Z*local.Z <= r*r && math.Abs(local.Y) <= e.spec.Size.Y/2
	case engine.ShapeSphere:
		return local.Len() <= e.spec.Size.X
	default:
		return false
	}
}

// sweptContains samples the segment a..b so fast bodies cannot tunnel
// through thin volumes.
func sweptContains(e *entity, a, b core.Vec3) bool {
	const step = 0.01
	d := b.Sub(a)
	n := int(math.Ceil(d.Len() / step))
	if n < 1 {
		n = 1
	}
	for i := 1; i <= n; i++ {
		if contains(e, a.Add(d.Scale(float64(i)/float64(n)))) {
			return true
		}
	}
	return false
}
