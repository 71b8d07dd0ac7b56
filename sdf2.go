package fsdf

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// SliceHalfWidth is the half thickness of the slab Slice intersects a field with.
const SliceHalfWidth = 1e-9

// SDF2 is a 2D signed distance field evaluated over batches of points. It
// follows the same conventions as SDF3.
type SDF2 interface {
	Evaluate(pos []r2.Vec, dist []float64, userData any) error
}

// Field2 is an immutable 2D signed distance field. Most Field2 values are
// produced by Field.Slice.
//
// The zero Field2 is not valid.
type Field2 struct {
	sdf SDF2
}

var _ SDF2 = Field2{}

// NewField2 wraps an SDF2 implementation as a Field2.
func NewField2(s SDF2) Field2 {
	if f, ok := s.(Field2); ok {
		return f
	}
	if s == nil {
		panic("nil SDF2 argument")
	}
	return Field2{sdf: s}
}

func (f Field2) Dims() int { return 2 }

// Evaluate implements SDF2. A nil userData is replaced by a fresh VecPool
// which is checked for leaks before returning. Any other userData must be
// accepted by GetVecPool.
func (f Field2) Evaluate(pos []r2.Vec, dist []float64, userData any) error {
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

// Evaluate2 returns the signed distances of s at every point of pos, in order.
func Evaluate2(s SDF2, pos []r2.Vec) ([]float64, error) {
	dist := make([]float64, len(pos))
	err := NewField2(s).Evaluate(pos, dist, nil)
	if err != nil {
		return nil, err
	}
	return dist, nil
}

type circle struct {
	radius float64
	center r2.Vec
}

// Circle returns a 2D disk of the given radius centered at center.
func Circle(radius float64, center r2.Vec) Field2 {
	return Field2{sdf: &circle{radius: radius, center: center}}
}

func (c *circle) Evaluate(pos []r2.Vec, dist []float64, userData any) error {
	for i, p := range pos {
		dist[i] = r2.Norm(r2.Sub(p, c.center)) - c.radius
	}
	return nil
}

type offset2 struct {
	s      SDF2
	offset float64
}

// Offset returns f grown outward by offset, or shrunk for negative offsets.
func (f Field2) Offset(offset float64) Field2 {
	if f.sdf == nil {
		panic("nil Field2 argument")
	}
	return Field2{sdf: &offset2{s: f.sdf, offset: offset}}
}

func (o *offset2) Evaluate(pos []r2.Vec, dist []float64, userData any) error {
	err := o.s.Evaluate(pos, dist, userData)
	if err != nil {
		return err
	}
	for i := range dist {
		dist[i] -= o.offset
	}
	return nil
}

// slice2 reads a 3D field on the z = 0 plane.
type slice2 struct {
	// in is the field clipped to a thin slab around z = 0 and out is its
	// negation clipped the same way.
	in, out SDF3
}

// Slice returns the cross section of f on the z = 0 plane. The 2D point
// (x, y) reads f at (x, y, 0). Both f and its negation are intersected with
// a slab of half width SliceHalfWidth. Wherever the first reading is not
// positive the negated second reading is used instead, recovering the
// interior distance the slab would otherwise clip.
func (f Field) Slice() Field2 {
	s := ZSlab(-SliceHalfWidth, SliceHalfWidth)
	return Field2{sdf: &slice2{
		in:  Intersection(f, s).inner(),
		out: Intersection(f.Negate(), s).inner(),
	}}
}

func (s *slice2) Evaluate(pos []r2.Vec, dist []float64, userData any) error {
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	q := vp.V3.Acquire(len(pos))
	defer vp.V3.Release(q)
	for i, p := range pos {
		q[i] = r3.Vec{X: p.X, Y: p.Y}
	}
	err = s.in.Evaluate(q, dist, userData)
	if err != nil {
		return err
	}
	aux := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(aux)
	err = s.out.Evaluate(q, aux, userData)
	if err != nil {
		return err
	}
	for i, d := range dist {
		if d <= 0 {
			dist[i] = -aux[i]
		}
	}
	return nil
}
