package d3

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestRotationOrthonormal(t *testing.T) {
	for _, axis := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}, {X: 1, Y: 2, Z: 3}, {X: -0.5, Z: 4}} {
		for _, angle := range []float64{0, 0.3, math.Pi / 2, math.Pi, -2} {
			m := Rotation(angle, axis)
			cols := [3]r3.Vec{m.MulVec(r3.Vec{X: 1}), m.MulVec(r3.Vec{Y: 1}), m.MulVec(r3.Vec{Z: 1})}
			for i := range cols {
				for j := range cols {
					want := 0.0
					if i == j {
						want = 1
					}
					assert.InDelta(t, want, r3.Dot(cols[i], cols[j]), 1e-12)
				}
			}
			// Proper rotation, no reflection.
			assert.InDelta(t, 1, r3.Dot(r3.Cross(cols[0], cols[1]), cols[2]), 1e-12)
			// The axis is fixed by the rotation.
			assert.True(t, EqualWithin(axis, m.MulVec(axis), 1e-12))
		}
	}
	// Right handed: a quarter turn about z takes x onto y.
	got := Rotation(math.Pi/2, r3.Vec{Z: 1}).MulVec(r3.Vec{X: 1})
	assert.True(t, EqualWithin(r3.Vec{Y: 1}, got, 1e-15), "got %v", got)
}

func TestPerpendicular(t *testing.T) {
	for _, v := range []r3.Vec{{X: 1}, {X: -3}, {Y: 1}, {Z: 2}, {X: 1, Y: 1, Z: 1}} {
		p, err := Perpendicular(v)
		require.NoError(t, err)
		assert.Zero(t, r3.Dot(v, p))
		assert.NotZero(t, r3.Norm(p))
	}
	_, err := Perpendicular(r3.Vec{})
	assert.ErrorIs(t, err, ErrDegenerateAxis)
}

func TestElementwise(t *testing.T) {
	a := r3.Vec{X: 1, Y: -2, Z: 3}
	b := r3.Vec{X: -1, Y: 5, Z: 0}
	assert.Equal(t, r3.Vec{X: -1, Y: -2, Z: 0}, MinElem(a, b))
	assert.Equal(t, r3.Vec{X: 1, Y: 5, Z: 3}, MaxElem(a, b))
	assert.Equal(t, r3.Vec{X: 1, Y: 2, Z: 3}, AbsElem(a))
	assert.Equal(t, r3.Vec{X: 0, Y: -1, Z: 1}, Clamp(a, Elem(-1), r3.Vec{X: 0, Y: 1, Z: 1}))
	assert.Equal(t, 3.0, Max(a))
	assert.Equal(t, -2.0, Min(a))
	assert.Equal(t, r3.Vec{X: 2, Y: 0, Z: -2}, RoundElem(r3.Vec{X: 2.5, Y: 0.4, Z: -1.5}))
	assert.Equal(t, -0.5, BoxDist(r3.Vec{}, Elem(1)))
	assert.Equal(t, 1.0, BoxDist(r3.Vec{X: 1.5}, Elem(1)))
}
