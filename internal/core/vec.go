package core

import "math"

// Vec3 is a 3-component vector in metres.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for constructing a Vec3.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Common axes.
var (
	Zero3 = Vec3{}
	Up    = Vec3{Y: 1}
	Down  = Vec3{Y: -1}
)

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

// Len returns the Euclidean length.
func (a Vec3) Len() float64 {
	return math.Sqrt(a.Dot(a))
}

// Normalize returns the unit vector, or the zero vector for degenerate input.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l < 1e-12 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

// ApproxEqual reports whether every component differs by at most eps.
func (a Vec3) ApproxEqual(b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

// Quat is a unit quaternion rotation.
type Quat struct {
	X, Y, Z, W float64
}

// Identity is the no-op rotation.
var Identity = Quat{W: 1}

// AxisAngle builds a rotation of rad radians about axis.
func AxisAngle(axis Vec3, rad float64) Quat {
	a := axis.Normalize()
	s, c := math.Sincos(rad / 2)
	return Quat{a.X * s, a.Y * s, a.Z * s, c}
}

// Euler builds a rotation from degrees applied Z first, then X, then Y.
func Euler(xDeg, yDeg, zDeg float64) Quat {
	qx := AxisAngle(Vec3{X: 1}, xDeg*math.Pi/180)
	qy := AxisAngle(Vec3{Y: 1}, yDeg*math.Pi/180)
	qz := AxisAngle(Vec3{Z: 1}, zDeg*math.Pi/180)
	return qy.Mul(qx).Mul(qz)
}

// Mul composes rotations: the result applies b first, then q.
func (q Quat) Mul(b Quat) Quat {
	return Quat{
		X: q.W*b.X + q.X*b.W + q.Y*b.Z - q.Z*b.Y,
		Y: q.W*b.Y - q.X*b.Z + q.Y*b.W + q.Z*b.X,
		Z: q.W*b.Z + q.X*b.Y - q.Y*b.X + q.Z*b.W,
		W: q.W*b.W - q.X*b.X - q.Y*b.Y - q.Z*b.Z,
	}
}

// Conj returns the inverse of a unit quaternion.
func (q Quat) Conj() Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}

// Rotate applies the rotation to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// FromAxes builds the rotation mapping local X, Y, Z onto the given orthonormal axes.
func FromAxes(x, y, z Vec3) Quat {
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	trace := m00 + m11 + m22
	var q Quat
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q = Quat{(m21 - m12) / s, (m02 - m20) / s, (m10 - m01) / s, s / 4}
	case m00 > m11 && m00 > m22:
		s := math.Sqrt(1+m00-m11-m22) * 2
		q = Quat{s / 4, (m01 + m10) / s, (m02 + m20) / s, (m21 - m12) / s}
	case m11 > m22:
		s := math.Sqrt(1+m11-m00-m22) * 2
		q = Quat{(m01 + m10) / s, s / 4, (m12 + m21) / s, (m02 - m20) / s}
	default:
		s := math.Sqrt(1+m22-m00-m11) * 2
		q = Quat{(m02 + m20) / s, (m12 + m21) / s, s / 4, (m10 - m01) / s}
	}
	return q.normalized()
}

func (q Quat) normalized() Quat {
	l := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l < 1e-12 {
		return Identity
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Pose is a rigid transform from a local frame into its parent frame.
type Pose struct {
	Position Vec3
	Rotation Quat
}

// NewPose creates a pose; a zero rotation is treated as identity.
func NewPose(pos Vec3, rot Quat) Pose {
	if rot == (Quat{}) {
		rot = Identity
	}
	return Pose{Position: pos, Rotation: rot}
}

// TransformPoint maps a local point into the parent frame.
func (p Pose) TransformPoint(local Vec3) Vec3 {
	return p.Position.Add(p.Rotation.Rotate(local))
}

// TransformDir maps a local direction into the parent frame.
func (p Pose) TransformDir(local Vec3) Vec3 {
	return p.Rotation.Rotate(local)
}

// InverseTransformPoint maps a parent-frame point into the local frame.
func (p Pose) InverseTransformPoint(world Vec3) Vec3 {
	return p.Rotation.Conj().Rotate(world.Sub(p.Position))
}

// Mul composes poses: child expressed in p's frame becomes expressed in p's parent.
func (p Pose) Mul(child Pose) Pose {
	return Pose{
		Position: p.TransformPoint(child.Position),
		Rotation: p.Rotation.Mul(child.Rotation),
	}
}
