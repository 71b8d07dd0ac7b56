package fsdf

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	pi      = math.Pi
	tau     = 2 * pi
	epsilon = 1e-12
)

// Axis and point constants.
var (
	Origin = r3.Vec{}
	X      = r3.Vec{X: 1}
	Y      = r3.Vec{Y: 1}
	Z      = r3.Vec{Z: 1}
	// Up is the canonical up direction used by orient and mirror.
	Up = Z
)

// Vec is shorthand for r3.Vec{X: x, Y: y, Z: z}.
func Vec(x, y, z float64) r3.Vec { return r3.Vec{X: x, Y: y, Z: z} }

// DtoR converts degrees to radians
func DtoR(degrees float64) float64 {
	return (pi / 180) * degrees
}

// RtoD converts radians to degrees
func RtoD(radians float64) float64 {
	return (180 / pi) * radians
}

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

// Sign returns the sign of x
func Sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}

// logistic returns 1/(1+exp(x)), the weight used by the sigmoid transitions.
func logistic(x float64) float64 {
	return 1 / (1 + math.Exp(x))
}

// segmentProgress returns the clamped projection parameter of p onto the
// segment a→b.
func segmentProgress(p, a, b r3.Vec) float64 {
	ab := r3.Sub(b, a)
	return Clamp(r3.Dot(r3.Sub(p, a), ab)/r3.Dot(ab, ab), 0, 1)
}

// dot2 is the squared norm of v.
func dot2(v r3.Vec) float64 { return r3.Dot(v, v) }
