package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestVecBasics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Add(b); got != V3(5, 7, 9) {
		t.Errorf("Add() = %v", got)
	}
	if got := b.Sub(a); got != V3(3, 3, 3) {
		t.Errorf("Sub() = %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot() = %v, expected 32", got)
	}
	if got := V3(1, 0, 0).Cross(V3(0, 1, 0)); got != V3(0, 0, 1) {
		t.Errorf("Cross() = %v, expected +Z", got)
	}
	if got := V3(3, 4, 0).Len(); got != 5 {
		t.Errorf("Len() = %v, expected 5", got)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("Normalize() of zero = %v", got)
	}
}

func TestEulerMapsSurfaceNormalUp(t *testing.T) {
	// A horizontal surface is tipped -90 degrees about X so its +Z faces world up.
	q := Euler(-90, 0, 0)
	if got := q.Rotate(V3(0, 0, 1)); !got.ApproxEqual(Up, eps) {
		t.Errorf("local +Z -> %v, expected world up", got)
	}
	if got := q.Rotate(V3(1, 0, 0)); !got.ApproxEqual(V3(1, 0, 0), eps) {
		t.Errorf("local +X -> %v, expected +X", got)
	}
}

func TestEulerOrder(t *testing.T) {
	// Z is applied first, then Y: (0,1,0) -> (-1,0,0) -> (0,0,1).
	q := Euler(0, 90, 90)
	if got := q.Rotate(V3(0, 1, 0)); !got.ApproxEqual(V3(0, 0, 1), eps) {
		t.Errorf("Rotate(+Y) = %v, expected +Z", got)
	}
}

func TestFromAxes(t *testing.T) {
	x := V3(0, 1, 0)
	y := V3(0, 0, 1)
	z := V3(1, 0, 0)
	q := FromAxes(x, y, z)

	if got := q.Rotate(V3(1, 0, 0)); !got.ApproxEqual(x, eps) {
		t.Errorf("X -> %v, expected %v", got, x)
	}
	if got := q.Rotate(V3(0, 1, 0)); !got.ApproxEqual(y, eps) {
		t.Errorf("Y -> %v, expected %v", got, y)
	}
	if got := q.Rotate(V3(0, 0, 1)); !got.ApproxEqual(z, eps) {
		t.Errorf("Z -> %v, expected %v", got, z)
	}
}

func TestPoseRoundTrip(t *testing.T) {
	p := NewPose(V3(1, 0.75, -2), Euler(-90, 30, 0))
	local := V3(0.3, -0.1, 0.05)

	world := p.TransformPoint(local)
	back := p.InverseTransformPoint(world)
	if !back.ApproxEqual(local, eps) {
		t.Errorf("InverseTransformPoint(TransformPoint(%v)) = %v", local, back)
	}
}

func TestPoseMul(t *testing.T) {
	parent := NewPose(V3(0, 1, 0), AxisAngle(Up, math.Pi/2))
	child := NewPose(V3(1, 0, 0), Identity)

	got := parent.Mul(child).Position
	// +X rotated 90 degrees about Y becomes -Z.
	if !got.ApproxEqual(V3(0, 1, -1), eps) {
		t.Errorf("Mul().Position = %v, expected (0,1,-1)", got)
	}
}

func TestNewPoseZeroRotation(t *testing.T) {
	p := NewPose(V3(1, 2, 3), Quat{})
	if p.Rotation != Identity {
		t.Errorf("zero rotation should become identity, got %v", p.Rotation)
	}
}
