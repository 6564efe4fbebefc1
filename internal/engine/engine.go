// Package engine declares the services the game consumes from its host:
// entity spawning, rigid-body control, trigger and collision callbacks,
// raycasts against the scanned room and surface visuals. The game depends
// only on these interfaces; internal/physics provides the implementation.
package engine

import (
	"github.com/vovakirdan/mr-beerpong/internal/core"
	"github.com/vovakirdan/mr-beerpong/internal/room"
)

// EntityID identifies a spawned entity. Zero is never a valid ID.
type EntityID uint64

// Kind tags what an entity represents so observers can tell the ball apart
// from everything else without inspecting components.
type Kind int

const (
	KindBall Kind = iota + 1
	KindCup
	KindBoundary
	KindCorral
	KindScoreboard
)

// String returns a short lower-case name for logs.
func (k Kind) String() string {
	switch k {
	case KindBall:
		return "ball"
	case KindCup:
		return "cup"
	case KindBoundary:
		return "boundary"
	case KindCorral:
		return "corral"
	case KindScoreboard:
		return "scoreboard"
	default:
		return "unknown"
	}
}

// Shape selects the collision volume of an entity.
type Shape int

const (
	// ShapeMarker has no volume; it only carries a pose (UI anchors).
	ShapeMarker Shape = iota
	// ShapeSphere uses Size.X as the radius.
	ShapeSphere
	// ShapeBox uses Size as full extents in the entity's local frame.
	ShapeBox
	// ShapeCylinder is upright along local Y; Size.X is the diameter, Size.Y the height.
	ShapeCylinder
)

// Spec describes an entity to spawn.
type Spec struct {
	Kind     Kind
	Name     string
	Pose     core.Pose // World pose
	Shape    Shape
	Size     core.Vec3
	Trigger  bool // Volumes report entries instead of blocking
	Visible  bool
	Observer any // Optional TriggerObserver and/or CollisionObserver
}

// Collider identifies the other party of a trigger entry.
type Collider struct {
	ID   EntityID
	Kind Kind
}

// Contact describes a collision between a body and room geometry.
type Contact struct {
	Surface       room.Surface
	Point         core.Vec3
	RelativeSpeed float64
}

// TriggerObserver is notified when a body enters a trigger volume.
type TriggerObserver interface {
	OnTriggerEnter(other Collider)
}

// CollisionObserver is notified when a body collides with room geometry.
type CollisionObserver interface {
	OnCollisionEnter(c Contact)
}

// Spawner creates and destroys entities.
type Spawner interface {
	Spawn(spec Spec) EntityID
	Destroy(id EntityID)
	Exists(id EntityID) bool
}

// Bodies controls dynamic bodies.
type Bodies interface {
	Pose(id EntityID) (core.Pose, bool)
	Teleport(id EntityID, pose core.Pose)
	SetVelocity(id EntityID, linear, angular core.Vec3)
	Velocity(id EntityID) (linear, angular core.Vec3)
	// SetResponsive toggles physics response. A non-responsive body neither
	// moves nor raises callbacks.
	SetResponsive(id EntityID, responsive bool)
}

// Raycaster casts rays against the room's physical geometry.
type Raycaster interface {
	Raycast(ray room.Ray, maxDist float64) (room.Hit, bool)
}

// Visuals toggles debug visuals of scanned surfaces.
type Visuals interface {
	SetSurfaceVisible(surfaceID string, visible bool)
	SurfaceVisible(surfaceID string) bool
}

// World is the full host surface used by the game.
type World interface {
	Spawner
	Bodies
	Raycaster
	Visuals
}
