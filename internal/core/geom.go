// Package core provides the engine-neutral building blocks shared by the game,
// the physics world and the terminal platform: vectors and poses, screen
// buffers, input actions and runtime configuration. It has no external
// dependencies (especially no Bubble Tea) to keep game logic pure and testable.
package core

import "math"

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right is the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom is the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// ClampF restricts v to [lo, hi].
func ClampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Lerp interpolates from a to b; t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*ClampF(t, 0, 1)
}

func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180
}
