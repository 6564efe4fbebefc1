package room

import (
	"math"

	"github.com/vovakirdan/mr-beerpong/internal/core"
)

// Ray is a half-line in world space. Direction need not be normalized.
type Ray struct {
	Origin    core.Vec3
	Direction core.Vec3
}

// Hit describes where a ray met a surface.
type Hit struct {
	Surface  Surface
	Point    core.Vec3 // World-space hit point
	Distance float64
}

// Raycast returns the nearest surface crossed by the ray within maxDist.
// Surfaces are two-sided; surfaces without an extent are not collidable.
func (r *Room) Raycast(ray Ray, maxDist float64) (Hit, bool) {
	dir := ray.Direction.Normalize()
	if dir == (core.Vec3{}) {
		return Hit{}, false
	}

	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, s := range r.surfaces {
		if !s.HasExtent() {
			continue
		}
		t, p, ok := intersect(s, ray.Origin, dir)
		if !ok || t > maxDist || t >= best.Distance {
			continue
		}
		best = Hit{Surface: s, Point: p, Distance: t}
		found = true
	}
	return best, found
}

// intersect tests a normalized ray against the surface rectangle.
func intersect(s Surface, origin, dir core.Vec3) (float64, core.Vec3, bool) {
	n := s.Normal()
	denom := dir.Dot(n)
	if math.Abs(denom) < 1e-9 {
		return 0, core.Vec3{}, false
	}
	t := s.Pose.Position.Sub(origin).Dot(n) / denom
	if t < 0 {
		return 0, core.Vec3{}, false
	}
	p := origin.Add(dir.Scale(t))
	if !s.ContainsPlanar(p) {
		return 0, core.Vec3{}, false
	}
	return t, p, true
}

// ContainsPlanar reports whether the world point projects inside the
// surface rectangle (ignoring distance from the plane).
func (s Surface) ContainsPlanar(world core.Vec3) bool {
	local := s.Pose.InverseTransformPoint(world)
	const tol = 1e-9
	return math.Abs(local.X) <= s.Extent.W/2+tol && math.Abs(local.Y) <= s.Extent.D/2+tol
}
