package fsdf

import (
	"math"

	"github.com/soypat/fsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Rigid and scaling transforms. Each node maps the query point back into the
// wrapped field's frame before delegating, so a transform T of a shape is
// evaluated as inner(T⁻¹(p)).

type translate3 struct {
	s      SDF3
	offset r3.Vec
}

// Translate returns f moved by offset.
func (f Field) Translate(offset r3.Vec) Field {
	return Field{sdf: &translate3{s: f.inner(), offset: offset}}
}

func (t *translate3) remap(p r3.Vec) r3.Vec { return r3.Sub(p, t.offset) }

// Evaluate returns the distance of the translated field.
func (t *translate3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	return evaluateRemapped(t.s, t, pos, dist, userData)
}

type scale3 struct {
	s      SDF3
	factor r3.Vec
	// min is the smallest factor, used to keep the result a distance bound.
	min float64
}

// Scale returns f scaled by factor about the origin. Distances are multiplied
// by the smallest factor so non-uniform scales yield a bound rather than an
// exact distance.
func (f Field) Scale(factor r3.Vec) Field {
	return Field{sdf: &scale3{s: f.inner(), factor: factor, min: d3.Min(factor)}}
}

// ScaleBy returns f scaled uniformly by factor. The result is exact.
func (f Field) ScaleBy(factor float64) Field {
	return f.Scale(d3.Elem(factor))
}

func (t *scale3) remap(p r3.Vec) r3.Vec { return d3.DivElem(p, t.factor) }

// Evaluate returns the distance bound of the scaled field.
func (t *scale3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	err := evaluateRemapped(t.s, t, pos, dist, userData)
	if err != nil {
		return err
	}
	for i := range dist {
		dist[i] *= t.min
	}
	return nil
}

// linear3 applies a 3x3 matrix about a center: q = m·(p-c) + c.
// The matrix is stored already inverted.
type linear3 struct {
	s      SDF3
	inv    *r3.Mat
	center r3.Vec
}

func (t *linear3) remap(p r3.Vec) r3.Vec {
	return r3.Add(t.inv.MulVec(r3.Sub(p, t.center)), t.center)
}

// Evaluate returns the distance of the linearly transformed field.
func (t *linear3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	return evaluateRemapped(t.s, t, pos, dist, userData)
}

// Rotate returns f rotated by angle radians about axis through the origin,
// following the right hand rule. It panics with ErrDegenerateAxis if axis is zero.
func (f Field) Rotate(angle float64, axis r3.Vec) Field {
	if axis == (r3.Vec{}) {
		panic(ErrDegenerateAxis)
	}
	// Rotation matrices are orthonormal so the inverse is the transpose,
	// which equals the rotation by -angle.
	return Field{sdf: &linear3{s: f.inner(), inv: d3.Rotation(-angle, axis)}}
}

// RotateD is Rotate with the angle given in degrees.
func (f Field) RotateD(degrees float64, axis r3.Vec) Field {
	return f.Rotate(DtoR(degrees), axis)
}

// RotateTo returns f rotated so that direction from points along direction to.
// The rotation carries from onto to, not to onto from: a feature of f lying
// along from ends up along to, and RotateTo(to, from) undoes it. Orient(X)
// therefore sends the +Z end of f to +X. Coinciding directions return f
// unchanged. Opposite directions rotate by π about an axis perpendicular to
// from. It panics with ErrDegenerateAxis if either direction is zero.
func (f Field) RotateTo(from, to r3.Vec) Field {
	if from == (r3.Vec{}) || to == (r3.Vec{}) {
		panic(ErrDegenerateAxis)
	}
	a := r3.Unit(from)
	b := r3.Unit(to)
	if d3.EqualWithin(a, b, epsilon) {
		return f
	}
	if d3.EqualWithin(r3.Scale(-1, a), b, epsilon) {
		axis, err := d3.Perpendicular(a)
		if err != nil {
			panic(err)
		}
		Logger().Debug("rotate_to of opposite directions", "from", from, "axis", axis)
		return f.Rotate(pi, axis)
	}
	angle := math.Acos(Clamp(r3.Dot(a, b), -1, 1))
	return f.Rotate(angle, r3.Cross(a, b))
}

// Orient returns f rotated so that its Up direction points along axis.
func (f Field) Orient(axis r3.Vec) Field {
	return f.RotateTo(Up, axis)
}

// reflection returns the matrix reflecting across the plane through the
// origin with normal axis. The reflection is its own inverse.
func reflection(axis r3.Vec) *r3.Mat {
	if axis == (r3.Vec{}) {
		panic(ErrDegenerateAxis)
	}
	a := r3.Unit(axis)
	dot := r3.Dot(Up, a)
	if dot == 1 || dot == -1 {
		return d3.FlipZ()
	}
	Logger().Debug("mirror about oblique axis", "axis", axis)
	// Rotate axis onto Up, flip the Up component and rotate back.
	angle := math.Acos(dot)
	n := r3.Cross(Up, a)
	toUp := d3.Rotation(-angle, n)
	back := d3.Rotation(angle, n)
	flipped := r3.NewMat(nil)
	flipped.Mul(d3.FlipZ(), toUp)
	m := r3.NewMat(nil)
	m.Mul(back, flipped)
	return m
}

// Mirror returns f reflected across the plane through center with normal axis.
func (f Field) Mirror(axis, center r3.Vec) Field {
	return Field{sdf: &linear3{s: f.inner(), inv: reflection(axis), center: center}}
}

// MirrorCopy returns the union of f and its reflection across the plane
// through center with normal axis.
func (f Field) MirrorCopy(axis, center r3.Vec) Field {
	return Union(f.Mirror(axis, center), f)
}

type circularArray3 struct {
	s SDF3
	// da is the angular width of one cell.
	da float64
}

// CircularArray returns count copies of f spaced evenly around the z axis,
// after moving f by offset along x. Only the two copies bounding the query
// point's angular cell are evaluated. It panics if count < 1.
func (f Field) CircularArray(count int, offset float64) Field {
	if count < 1 {
		panic("circular array count must be at least 1")
	}
	return Field{sdf: &circularArray3{
		s:  f.Translate(r3.Scale(offset, X)).inner(),
		da: tau / float64(count),
	}}
}

// Evaluate returns the minimum distance to the two copies nearest each point.
func (c *circularArray3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	q := vp.V3.Acquire(len(pos))
	defer vp.V3.Release(q)
	aux := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(aux)
	for i, p := range pos {
		a := c.fold(p)
		d := math.Hypot(p.X, p.Y)
		q[i] = r3.Vec{X: math.Cos(a-c.da) * d, Y: math.Sin(a-c.da) * d, Z: p.Z}
	}
	err = c.s.Evaluate(q, aux, userData)
	if err != nil {
		return err
	}
	for i, p := range pos {
		a := c.fold(p)
		d := math.Hypot(p.X, p.Y)
		q[i] = r3.Vec{X: math.Cos(a) * d, Y: math.Sin(a) * d, Z: p.Z}
	}
	err = c.s.Evaluate(q, dist, userData)
	if err != nil {
		return err
	}
	for i, d := range aux {
		dist[i] = math.Min(dist[i], d)
	}
	return nil
}

// fold returns the azimuth of p reduced into [0, da).
func (c *circularArray3) fold(p r3.Vec) float64 {
	a := math.Mod(math.Atan2(p.Y, p.X), c.da)
	if a < 0 {
		a += c.da
	}
	return a
}
