package d3

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrDegenerateAxis is returned when a direction is required from a zero vector.
var ErrDegenerateAxis = errors.New("degenerate axis")

var (
	xAxis = r3.Vec{X: 1}
	yAxis = r3.Vec{Y: 1}
)

// Rotation returns the right handed rotation matrix of angle radians about
// axis using Rodrigues' formula R = I + sin(a)K + (1-cos(a))K², where K is
// the cross product matrix of the normalized axis.
func Rotation(angle float64, axis r3.Vec) *r3.Mat {
	k := r3.Skew(r3.Unit(axis))
	k2 := r3.NewMat(nil)
	k2.Mul(k, k)
	k2.Scale(1-math.Cos(angle), k2)
	k.Scale(math.Sin(angle), k)
	k.Add(k, r3.Eye())
	k.Add(k, k2)
	return k
}

// FlipZ returns the reflection matrix diag(1, 1, -1).
func FlipZ() *r3.Mat {
	return r3.NewMat([]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, -1,
	})
}

// Perpendicular returns a vector perpendicular to v obtained by crossing v
// with a reference axis it is not parallel to. It returns ErrDegenerateAxis
// if v is the zero vector.
func Perpendicular(v r3.Vec) (r3.Vec, error) {
	if v.Y == 0 && v.Z == 0 {
		if v.X == 0 {
			return r3.Vec{}, ErrDegenerateAxis
		}
		return r3.Cross(v, yAxis), nil
	}
	return r3.Cross(v, xAxis), nil
}
