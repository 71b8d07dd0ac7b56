// Package fsdf composes signed distance fields. Primitives, transforms and
// booleans build immutable Field trees that are evaluated over batches of
// points. Operators are also reachable by name through a registry for
// dynamic front ends such as the script package.
package fsdf

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// SDF3 is a 3D signed distance field evaluated over batches of points.
// Evaluate writes the signed distance of pos[i] into dist[i]: negative
// inside, positive outside. len(pos) must equal len(dist). userData carries
// a *VecPool for scratch buffers.
type SDF3 interface {
	Evaluate(pos []r3.Vec, dist []float64, userData any) error
}

// Shape is implemented by Field and Field2, the results of registered operators.
type Shape interface {
	// Dims returns 3 for Field and 2 for Field2.
	Dims() int
}

// Field is an immutable 3D signed distance field plus an optional smoothing
// coefficient consumed by booleans. Every method returns a new Field and
// leaves the receiver untouched, so Fields may be shared freely between
// goroutines and between composition trees.
//
// The zero Field is not valid.
type Field struct {
	sdf SDF3
	// k is the smoothing coefficient. Zero selects hard booleans.
	k float64
}

var _ SDF3 = Field{}

// NewField wraps an SDF3 implementation as a Field.
func NewField(s SDF3) Field {
	if f, ok := s.(Field); ok {
		return f
	}
	if s == nil {
		panic("nil SDF3 argument")
	}
	return Field{sdf: s}
}

func (f Field) Dims() int { return 3 }

// K returns a copy of f carrying smoothing coefficient k. Booleans combining
// f as a right hand operand use k when no explicit coefficient is given.
// k == 0 restores hard booleans.
func (f Field) K(k float64) Field {
	f.k = k
	return f
}

// Smoothing returns the smoothing coefficient set with K.
func (f Field) Smoothing() float64 { return f.k }

// IsZero reports whether f is the invalid zero Field.
func (f Field) IsZero() bool { return f.sdf == nil }

// Evaluate implements SDF3. A nil userData is replaced by a fresh VecPool
// which is checked for leaks before returning. Any other userData must be
// accepted by GetVecPool.
func (f Field) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	if f.sdf == nil {
		return errNilField
	}
	if len(pos) != len(dist) {
		return errMismatchedLength
	}
	if userData != nil {
		if _, err := GetVecPool(userData); err != nil {
			return err
		}
		if len(pos) == 0 {
			return nil
		}
		return f.sdf.Evaluate(pos, dist, userData)
	}
	if len(pos) == 0 {
		return nil
	}
	vp := &VecPool{}
	err := f.sdf.Evaluate(pos, dist, vp)
	if err != nil {
		return err
	}
	return vp.AssertAllReleased()
}

// Evaluate returns the signed distances of s at every point of pos, in order.
// An empty batch yields an empty result.
func Evaluate(s SDF3, pos []r3.Vec) ([]float64, error) {
	dist := make([]float64, len(pos))
	err := NewField(s).Evaluate(pos, dist, nil)
	if err != nil {
		return nil, err
	}
	return dist, nil
}

// inner returns the SDF3 wrapped by f and panics on the zero Field.
func (f Field) inner() SDF3 {
	if f.sdf == nil {
		panic("nil Field argument")
	}
	return f.sdf
}

// remapper maps a query point into the coordinate system of a wrapped field.
type remapper interface {
	remap(p r3.Vec) r3.Vec
}

// evaluateRemapped evaluates s at rm.remap(p) for every p in pos.
func evaluateRemapped(s SDF3, rm remapper, pos []r3.Vec, dist []float64, userData any) error {
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	q := vp.V3.Acquire(len(pos))
	defer vp.V3.Release(q)
	for i, p := range pos {
		q[i] = rm.remap(p)
	}
	return s.Evaluate(q, dist, userData)
}

// funcSDF3 adapts a scalar distance function to the batch contract.
type funcSDF3 struct {
	fn func(p r3.Vec) float64
}

func (s funcSDF3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	for i, p := range pos {
		dist[i] = s.fn(p)
	}
	return nil
}

// FieldFunc returns a Field evaluating fn point by point. fn must be pure.
func FieldFunc(fn func(p r3.Vec) float64) Field {
	if fn == nil {
		panic("nil distance function")
	}
	return Field{sdf: funcSDF3{fn: fn}}
}
