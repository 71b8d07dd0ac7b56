package fsdf

import (
	"math"

	"github.com/soypat/fsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// distancer is a primitive evaluated one point at a time.
type distancer interface {
	distance(p r3.Vec) float64
}

// pointwise adapts a distancer to the batch SDF3 contract.
type pointwise struct {
	d distancer
}

func (s pointwise) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	for i, p := range pos {
		dist[i] = s.d.distance(p)
	}
	return nil
}

func primitive(d distancer) Field { return Field{sdf: pointwise{d: d}} }

type sphere struct {
	radius float64
	center r3.Vec
}

// Sphere returns a sphere of the given radius centered at center.
func Sphere(radius float64, center r3.Vec) Field {
	return primitive(sphere{radius: radius, center: center})
}

func (s sphere) distance(p r3.Vec) float64 {
	return r3.Norm(r3.Sub(p, s.center)) - s.radius
}

type plane struct {
	normal, point r3.Vec
}

// Plane returns an infinite plane through point. Points on the side normal
// points towards are inside (negative distance), which is the opposite of
// the usual half-space convention.
func Plane(normal, point r3.Vec) Field {
	return primitive(plane{normal: r3.Unit(normal), point: point})
}

func (s plane) distance(p r3.Vec) float64 {
	return r3.Dot(r3.Sub(s.point, p), s.normal)
}

// Slab returns the region between lo and hi on each axis as an
// intersection of up to six planes. Infinite bounds are omitted, so
// math.Inf(-1) in lo or math.Inf(1) in hi leaves that side open.
// k smooths the intersection. A slab with no finite bounds is all of space.
func Slab(lo, hi r3.Vec, k float64) Field {
	var fs []Field
	if !math.IsInf(lo.X, 0) {
		fs = append(fs, Plane(X, r3.Vec{X: lo.X}))
	}
	if !math.IsInf(hi.X, 0) {
		fs = append(fs, Plane(r3.Scale(-1, X), r3.Vec{X: hi.X}))
	}
	if !math.IsInf(lo.Y, 0) {
		fs = append(fs, Plane(Y, r3.Vec{Y: lo.Y}))
	}
	if !math.IsInf(hi.Y, 0) {
		fs = append(fs, Plane(r3.Scale(-1, Y), r3.Vec{Y: hi.Y}))
	}
	if !math.IsInf(lo.Z, 0) {
		fs = append(fs, Plane(Z, r3.Vec{Z: lo.Z}))
	}
	if !math.IsInf(hi.Z, 0) {
		fs = append(fs, Plane(r3.Scale(-1, Z), r3.Vec{Z: hi.Z}))
	}
	if len(fs) == 0 {
		return primitive(space{})
	}
	return SmoothIntersection(k, fs[0], fs[1:]...)
}

// space contains every point.
type space struct{}

func (space) distance(r3.Vec) float64 { return math.Inf(-1) }

// ZSlab returns the slab z0 <= z <= z1 unbounded in x and y.
func ZSlab(z0, z1 float64) Field {
	inf := math.Inf(1)
	return Slab(r3.Vec{X: -inf, Y: -inf, Z: z0}, r3.Vec{X: inf, Y: inf, Z: z1}, 0)
}

type box struct {
	size, center r3.Vec
}

// Box returns an axis aligned box with side lengths size centered at center.
func Box(size, center r3.Vec) Field {
	return primitive(box{size: size, center: center})
}

// BoxBounds returns the axis aligned box with opposite corners a and b.
func BoxBounds(a, b r3.Vec) Field {
	size := r3.Sub(b, a)
	return Box(size, r3.Add(a, r3.Scale(0.5, size)))
}

func (s box) distance(p r3.Vec) float64 {
	return d3.BoxDist(r3.Sub(p, s.center), s.size)
}

type roundedBox struct {
	size, center r3.Vec
	radius       float64
}

// RoundedBox returns a box whose edges are rounded with the given radius.
// The outer extent stays size.
func RoundedBox(size r3.Vec, radius float64, center r3.Vec) Field {
	return primitive(roundedBox{size: size, radius: radius, center: center})
}

func (s roundedBox) distance(p r3.Vec) float64 {
	q := r3.Sub(d3.AbsElem(r3.Sub(p, s.center)), r3.Scale(0.5, s.size))
	q = r3.Add(q, d3.Elem(s.radius))
	return r3.Norm(d3.MaxElem(q, r3.Vec{})) + math.Min(d3.Max(q), 0) - s.radius
}

type wireframeBox struct {
	size, center r3.Vec
	thickness    float64
}

// WireframeBox returns the twelve edges of a box as square bars of the given thickness.
func WireframeBox(size r3.Vec, thickness float64, center r3.Vec) Field {
	return primitive(wireframeBox{size: size, thickness: thickness, center: center})
}

func (s wireframeBox) distance(p r3.Vec) float64 {
	g := func(a, b, c float64) float64 {
		v := r3.Vec{X: math.Max(a, 0), Y: math.Max(b, 0), Z: math.Max(c, 0)}
		return r3.Norm(v) + math.Min(math.Max(a, math.Max(b, c)), 0)
	}
	t := s.thickness / 2
	p = r3.Sub(d3.AbsElem(r3.Sub(p, s.center)), r3.Add(r3.Scale(0.5, s.size), d3.Elem(t)))
	q := r3.Sub(d3.AbsElem(r3.Add(p, d3.Elem(t))), d3.Elem(t))
	return math.Min(math.Min(g(p.X, q.Y, q.Z), g(q.X, p.Y, q.Z)), g(q.X, q.Y, p.Z))
}

type torus struct {
	r1, r2 float64
}

// Torus returns a torus around the z axis with major radius r1 and tube radius r2.
func Torus(r1, r2 float64) Field {
	return primitive(torus{r1: r1, r2: r2})
}

func (s torus) distance(p r3.Vec) float64 {
	a := math.Hypot(p.X, p.Y) - s.r1
	return math.Hypot(a, p.Z) - s.r2
}

type capsule struct {
	a, b   r3.Vec
	radius float64
}

// Capsule returns the set of points within radius of segment a→b.
// A zero length segment yields non-finite distances.
func Capsule(a, b r3.Vec, radius float64) Field {
	return primitive(capsule{a: a, b: b, radius: radius})
}

func (s capsule) distance(p r3.Vec) float64 {
	pa := r3.Sub(p, s.a)
	ba := r3.Sub(s.b, s.a)
	h := Clamp(r3.Dot(pa, ba)/dot2(ba), 0, 1)
	return r3.Norm(r3.Sub(pa, r3.Scale(h, ba))) - s.radius
}

type cylinder struct {
	radius float64
}

// Cylinder returns an infinite cylinder of the given radius along the z axis.
func Cylinder(radius float64) Field {
	return primitive(cylinder{radius: radius})
}

func (s cylinder) distance(p r3.Vec) float64 {
	return math.Hypot(p.X, p.Y) - s.radius
}

type cappedCylinder struct {
	a, b   r3.Vec
	radius float64
}

// CappedCylinder returns a cylinder of the given radius with flat caps at a and b.
func CappedCylinder(a, b r3.Vec, radius float64) Field {
	return primitive(cappedCylinder{a: a, b: b, radius: radius})
}

func (s cappedCylinder) distance(p r3.Vec) float64 {
	ba := r3.Sub(s.b, s.a)
	pa := r3.Sub(p, s.a)
	baba := dot2(ba)
	paba := r3.Dot(pa, ba)
	x := r3.Norm(r3.Sub(r3.Scale(baba, pa), r3.Scale(paba, ba))) - s.radius*baba
	y := math.Abs(paba-baba*0.5) - baba*0.5
	x2 := x * x
	y2 := y * y * baba
	var d float64
	if math.Max(x, y) < 0 {
		d = -math.Min(x2, y2)
	} else {
		if x > 0 {
			d += x2
		}
		if y > 0 {
			d += y2
		}
	}
	return Sign(d) * math.Sqrt(math.Abs(d)) / baba
}

type roundedCylinder struct {
	ra, rb, h, z float64
}

// RoundedCylinder returns a z aligned cylinder of radius ra spanning heights
// a to b whose rims are rounded with radius rb.
func RoundedCylinder(a, b, ra, rb float64) Field {
	return primitive(roundedCylinder{ra: ra, rb: rb, h: math.Abs(a - b), z: (a + b) / 2})
}

func (s roundedCylinder) distance(p r3.Vec) float64 {
	dx := math.Hypot(p.X, p.Y) - s.ra + s.rb
	dy := math.Abs(p.Z-s.z) - s.h/2 + s.rb
	return math.Min(math.Max(dx, dy), 0) + math.Hypot(math.Max(dx, 0), math.Max(dy, 0)) - s.rb
}

type cappedCone struct {
	a, b   r3.Vec
	ra, rb float64
}

// CappedCone returns a truncated cone from a with radius ra to b with radius rb.
func CappedCone(a, b r3.Vec, ra, rb float64) Field {
	return primitive(cappedCone{a: a, b: b, ra: ra, rb: rb})
}

func (s cappedCone) distance(p r3.Vec) float64 {
	rba := s.rb - s.ra
	ba := r3.Sub(s.b, s.a)
	pa := r3.Sub(p, s.a)
	baba := dot2(ba)
	papa := dot2(pa)
	paba := r3.Dot(pa, ba) / baba
	x := math.Sqrt(papa - paba*paba*baba)
	r := s.rb
	if paba < 0.5 {
		r = s.ra
	}
	cax := math.Max(0, x-r)
	cay := math.Abs(paba-0.5) - 0.5
	k := rba*rba + baba
	f := Clamp((rba*(x-s.ra)+paba*baba)/k, 0, 1)
	cbx := x - s.ra - f*rba
	cby := paba - f
	sign := 1.0
	if cbx < 0 && cay < 0 {
		sign = -1
	}
	return sign * math.Sqrt(math.Min(cax*cax+cay*cay*baba, cbx*cbx+cby*cby*baba))
}

type roundedCone struct {
	r1, r2, h float64
}

// RoundedCone returns a cone along z with a sphere of radius r1 at the
// origin and a sphere of radius r2 at height h, joined tangentially.
func RoundedCone(r1, r2, h float64) Field {
	return primitive(roundedCone{r1: r1, r2: r2, h: h})
}

func (s roundedCone) distance(p r3.Vec) float64 {
	qx, qy := math.Hypot(p.X, p.Y), p.Z
	b := (s.r1 - s.r2) / s.h
	a := math.Sqrt(1 - b*b)
	k := -b*qx + a*qy
	switch {
	case k < 0:
		return math.Hypot(qx, qy) - s.r1
	case k > a*s.h:
		return math.Hypot(qx, qy-s.h) - s.r2
	}
	return a*qx + b*qy - s.r1
}

type ellipsoid struct {
	size r3.Vec
}

// Ellipsoid returns an origin centered ellipsoid with semi-axes size.
// The distance is a bound, exact only on the surface, and NaN at the center.
func Ellipsoid(size r3.Vec) Field {
	return primitive(ellipsoid{size: size})
}

func (s ellipsoid) distance(p r3.Vec) float64 {
	k0 := r3.Norm(d3.DivElem(p, s.size))
	k1 := r3.Norm(d3.DivElem(p, d3.MulElem(s.size, s.size)))
	return k0 * (k0 - 1) / k1
}

type pyramid struct {
	h float64
}

// Pyramid returns a square based pyramid of unit base centered at the
// origin on the z = 0 plane with apex at height h.
func Pyramid(h float64) Field {
	return primitive(pyramid{h: h})
}

func (s pyramid) distance(p r3.Vec) float64 {
	ax, ay := math.Abs(p.X)-0.5, math.Abs(p.Y)-0.5
	if ay > ax {
		ax, ay = ay, ax
	}
	px, py, pz := ax, p.Z, ay
	h := s.h
	m2 := h*h + 0.25
	qx := pz
	qy := h*py - 0.5*px
	qz := h*px + 0.5*py
	sm := math.Max(-qx, 0)
	t := Clamp((qy-0.5*pz)/(m2+0.25), 0, 1)
	a := m2*(qx+sm)*(qx+sm) + qy*qy
	b := m2*(qx+0.5*t)*(qx+0.5*t) + (qy-m2*t)*(qy-m2*t)
	d2 := math.Min(a, b)
	if math.Min(qy, -qx*m2-qy*0.5) > 0 {
		d2 = 0
	}
	return math.Sqrt((d2+qz*qz)/m2) * Sign(math.Max(qz, -py))
}
