// Package smooth implements the distance combination kernel used by field
// booleans: scalar minimum/maximum functions with optional smoothing and
// in-place reductions over distance buffers.
//
// A smoothing coefficient k of zero selects the hard operation everywhere
// in this package.
package smooth

import (
	"math"
)

const sqrtHalf = 0.7071067811865476

// MinFunc is a minimum function for SDF blending.
type MinFunc func(a, b float64) float64

// MaxFunc is a maximum function for SDF blending.
type MaxFunc func(a, b float64) float64

// Clamp x between a and b, assume a <= b
func Clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

// Mix does a linear interpolation from x to y, a = [0,1]
func Mix(x, y, a float64) float64 {
	return x + (a * (y - x))
}

// Min returns the polynomial smooth minimum for k != 0 and math.Min otherwise.
func Min(k float64) MinFunc {
	if k == 0 {
		return math.Min
	}
	return PolyMin(k)
}

// Max returns the polynomial smooth maximum for k != 0 and math.Max otherwise.
func Max(k float64) MaxFunc {
	if k == 0 {
		return math.Max
	}
	return PolyMax(k)
}

func poly(a, b, k float64) float64 {
	h := Clamp(0.5+0.5*(b-a)/k, 0.0, 1.0)
	return Mix(b, a, h) - k*h*(1.0-h)
}

// PolyMin returns a minimum function (Try k = 0.1, a bigger k gives a bigger fillet).
func PolyMin(k float64) MinFunc {
	return func(a, b float64) float64 {
		return poly(a, b, k)
	}
}

// PolyMax returns a maximum function (Try k = 0.1, a bigger k gives a bigger fillet).
func PolyMax(k float64) MaxFunc {
	return func(a, b float64) float64 {
		return -poly(-a, -b, k)
	}
}

// RoundMin returns a minimum function that uses a quarter-circle to join the two objects smoothly.
func RoundMin(k float64) MinFunc {
	return func(a, b float64) float64 {
		ux := math.Max(k-a, 0)
		uy := math.Max(k-b, 0)
		return math.Max(k, math.Min(a, b)) - math.Hypot(ux, uy)
	}
}

// ChamferMin returns a minimum function that makes a 45-degree chamfered edge (the diagonal of a square of size k).
func ChamferMin(k float64) MinFunc {
	return func(a, b float64) float64 {
		return math.Min(math.Min(a, b), (a-k+b)*sqrtHalf)
	}
}

// ExpMin returns a minimum function with exponential smoothing (k = 32).
func ExpMin(k float64) MinFunc {
	return func(a, b float64) float64 {
		return -math.Log(math.Exp(-k*a)+math.Exp(-k*b)) / k
	}
}
