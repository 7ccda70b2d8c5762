package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// NormalizeOrZero returns v scaled to unit length, or the zero vector when v
// has no length.
func NormalizeOrZero(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return cp.Vector{}
	}
	return cp.Vector{X: v.X / l, Y: v.Y / l}
}

// Angle returns the heading of v in radians.
func Angle(v cp.Vector) float64 {
	return math.Atan2(v.Y, v.X)
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ScreenToWorld maps a screen pixel onto the arena, whose origin is drawn at
// the center of the screen.
func ScreenToWorld(x, y float64) cp.Vector {
	return cp.Vector{X: x - ScreenWidth/2, Y: y - ScreenHeight/2}
}

func WorldToScreen(v cp.Vector) (float64, float64) {
	return v.X + ScreenWidth/2, v.Y + ScreenHeight/2
}
