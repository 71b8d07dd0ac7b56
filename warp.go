package fsdf

import (
	"math"

	"github.com/soypat/fsdf/ease"
	"github.com/soypat/fsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Non-isometric warps. Distances of warped fields are approximate away from
// small deformation regimes.

type elongate3 struct {
	s    SDF3
	size r3.Vec
}

// Elongate stretches f by inserting a straight section of half-extent size
// along each axis at the origin.
func (f Field) Elongate(size r3.Vec) Field {
	return Field{sdf: &elongate3{s: f.inner(), size: size}}
}

func (e *elongate3) remap(p r3.Vec) r3.Vec {
	q := r3.Sub(d3.AbsElem(p), e.size)
	return d3.MaxElem(q, r3.Vec{})
}

// Evaluate returns the distance to the elongated field.
func (e *elongate3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	err := evaluateRemapped(e.s, e, pos, dist, userData)
	if err != nil {
		return err
	}
	for i, p := range pos {
		q := r3.Sub(d3.AbsElem(p), e.size)
		dist[i] += math.Min(d3.Max(q), 0)
	}
	return nil
}

type twist3 struct {
	s SDF3
	k float64
}

// Twist rotates each horizontal section of f about the z axis by k·z radians.
func (f Field) Twist(k float64) Field {
	return Field{sdf: &twist3{s: f.inner(), k: k}}
}

func (t *twist3) remap(p r3.Vec) r3.Vec {
	s, c := math.Sincos(t.k * p.Z)
	return r3.Vec{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y, Z: p.Z}
}

// Evaluate returns the approximate distance to the twisted field.
func (t *twist3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	return evaluateRemapped(t.s, t, pos, dist, userData)
}

type bend3 struct {
	s SDF3
	k float64
}

// Bend rotates each section of f about the z axis by k·x radians.
func (f Field) Bend(k float64) Field {
	return Field{sdf: &bend3{s: f.inner(), k: k}}
}

func (b *bend3) remap(p r3.Vec) r3.Vec {
	s, c := math.Sincos(b.k * p.X)
	return r3.Vec{X: c*p.X - s*p.Y, Y: s*p.X + c*p.Y, Z: p.Z}
}

// Evaluate returns the approximate distance to the bent field.
func (b *bend3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	return evaluateRemapped(b.s, b, pos, dist, userData)
}

type bendLinear3 struct {
	s      SDF3
	p0, p1 r3.Vec
	v      r3.Vec
	e      ease.Func
}

// BendLinear displaces f by v progressively along the segment p0→p1. Points
// before p0 are not moved and points past p1 are moved by the full v. The
// progress is shaped by e, nil meaning linear.
func (f Field) BendLinear(p0, p1, v r3.Vec, e ease.Func) Field {
	return Field{sdf: &bendLinear3{s: f.inner(), p0: p0, p1: p1, v: r3.Scale(-1, v), e: ease.OrLinear(e)}}
}

func (b *bendLinear3) remap(p r3.Vec) r3.Vec {
	t := b.e(segmentProgress(p, b.p0, b.p1))
	return r3.Add(p, r3.Scale(t, b.v))
}

// Evaluate returns the approximate distance to the bent field.
func (b *bendLinear3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	return evaluateRemapped(b.s, b, pos, dist, userData)
}

type bendRadial3 struct {
	s          SDF3
	r0, r1, dz float64
	e          ease.Func
}

// BendRadial raises f by dz progressively across the radial band r0..r1
// around the z axis. The progress is shaped by e, nil meaning linear.
func (f Field) BendRadial(r0, r1, dz float64, e ease.Func) Field {
	return Field{sdf: &bendRadial3{s: f.inner(), r0: r0, r1: r1, dz: dz, e: ease.OrLinear(e)}}
}

func (b *bendRadial3) remap(p r3.Vec) r3.Vec {
	r := math.Hypot(p.X, p.Y)
	t := Clamp((r-b.r0)/(b.r1-b.r0), 0, 1)
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z - b.dz*b.e(t)}
}

// Evaluate returns the approximate distance to the bent field.
func (b *bendRadial3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	return evaluateRemapped(b.s, b, pos, dist, userData)
}

type wrapAround3 struct {
	s      SDF3
	x0, x1 float64
	r      float64
	e      ease.Func
}

// WrapAround rolls the strip x0 <= x <= x1 of f around the z axis into a
// cylinder of radius r. The strip's -y side faces outward. r <= 0 picks the
// radius whose circumference equals the strip length. The angular progress is
// shaped by e, nil meaning linear.
func (f Field) WrapAround(x0, x1, r float64, e ease.Func) Field {
	if r <= 0 {
		r = math.Abs(x1-x0) / tau
	}
	return Field{sdf: &wrapAround3{s: f.inner(), x0: x0, x1: x1, r: r, e: ease.OrLinear(e)}}
}

func (w *wrapAround3) remap(p r3.Vec) r3.Vec {
	d := math.Hypot(p.X, p.Y) - w.r
	t := w.e((math.Atan2(p.Y, p.X) + pi) / tau)
	return r3.Vec{X: w.x0 + (w.x1-w.x0)*t, Y: -d, Z: p.Z}
}

// Evaluate returns the approximate distance to the wrapped field.
func (w *wrapAround3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	return evaluateRemapped(w.s, w, pos, dist, userData)
}

type skin3 struct {
	s     SDF3
	depth float64
}

// Skin returns max(f - depth, 0), which reads zero wherever f < depth.
func (f Field) Skin(depth float64) Field {
	return Field{sdf: &skin3{s: f.inner(), depth: depth}}
}

// Evaluate returns the clamped distance.
func (s *skin3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	err := s.s.Evaluate(pos, dist, userData)
	if err != nil {
		return err
	}
	for i, d := range dist {
		dist[i] = math.Max(d-s.depth, 0)
	}
	return nil
}
