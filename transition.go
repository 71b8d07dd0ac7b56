package fsdf

import (
	"math"

	"github.com/soypat/fsdf/ease"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultTransitionSDFK is the logistic steepness conventionally used with TransitionSDF.
const DefaultTransitionSDFK = 0.25

// Transitions interpolate the raw distances of two fields,
//
//	d = t·d2 + (1-t)·d1
//
// with a per point weight t in [0,1] passed through an easing function.
// The result is not a true distance inside the blended region.

type weightKind uint8

const (
	weightLinear weightKind = iota
	weightSpherical
	weightSDF
	weightRadial
	weightSigmoid
	weightGeneral
)

type transition3 struct {
	kind weightKind
	a, b SDF3
	// driver is the third field read by the sdf and general weights.
	driver SDF3
	e      ease.Func
	p0, p1 r3.Vec
	center r3.Vec
	r0, r1 float64
	k, h   float64
}

func newTransition(t transition3) Field {
	t.e = ease.OrLinear(t.e)
	return Field{sdf: &t}
}

// TransitionLinear moves from f to other along the segment p0→p1. Points
// before p0 read f and points past p1 read other.
func (f Field) TransitionLinear(other Field, p0, p1 r3.Vec, e ease.Func) Field {
	return newTransition(transition3{kind: weightLinear, a: f.inner(), b: other.inner(), p0: p0, p1: p1, e: e})
}

// TransitionSpherical reads other inside the sphere of radius r0 at center
// and f outside of it. k sets the steepness of the logistic falloff in
// squared distance units.
func (f Field) TransitionSpherical(other Field, r0 float64, center r3.Vec, k float64, e ease.Func) Field {
	return newTransition(transition3{kind: weightSpherical, a: f.inner(), b: other.inner(), r0: r0, center: center, k: k, e: e})
}

// TransitionSDF reads other where driver's distance is close to h and f
// away from it. k sets the steepness of the logistic falloff.
func (f Field) TransitionSDF(other, driver Field, k, h float64, e ease.Func) Field {
	return newTransition(transition3{kind: weightSDF, a: f.inner(), b: other.inner(), driver: driver.inner(), k: k, h: h, e: e})
}

// TransitionRadial moves from f to other across the band r0..r1 of distance
// to the z axis.
func (f Field) TransitionRadial(other Field, r0, r1 float64, e ease.Func) Field {
	return newTransition(transition3{kind: weightRadial, a: f.inner(), b: other.inner(), r0: r0, r1: r1, e: e})
}

// TransitionSigmoid reads other below the z = 0 plane and f above it with a
// logistic transition of steepness k.
func (f Field) TransitionSigmoid(other Field, k float64, e ease.Func) Field {
	return newTransition(transition3{kind: weightSigmoid, a: f.inner(), b: other.inner(), k: k, e: e})
}

// TransitionGeneral is TransitionSigmoid driven by the value of driver
// instead of the z coordinate.
func (f Field) TransitionGeneral(other, driver Field, k float64, e ease.Func) Field {
	return newTransition(transition3{kind: weightGeneral, a: f.inner(), b: other.inner(), driver: driver.inner(), k: k, e: e})
}

// weight returns t before easing. g is the driver distance at p, if any.
func (t *transition3) weight(p r3.Vec, g float64) float64 {
	switch t.kind {
	case weightLinear:
		return segmentProgress(p, t.p0, t.p1)
	case weightSpherical:
		return logistic(t.k * (dot2(r3.Sub(p, t.center)) - t.r0*t.r0))
	case weightSDF:
		return logistic(t.k * math.Abs(g-t.h))
	case weightRadial:
		return Clamp((math.Hypot(p.X, p.Y)-t.r0)/(t.r1-t.r0), 0, 1)
	case weightSigmoid:
		return Clamp(logistic(t.k*p.Z), 0, 1)
	case weightGeneral:
		return Clamp(logistic(t.k*g), 0, 1)
	}
	panic("unreachable")
}

// Evaluate returns the interpolated distances.
func (t *transition3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	err = t.a.Evaluate(pos, dist, userData)
	if err != nil {
		return err
	}
	d2 := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(d2)
	err = t.b.Evaluate(pos, d2, userData)
	if err != nil {
		return err
	}
	var g []float64
	if t.driver != nil {
		g = vp.Float.Acquire(len(dist))
		defer vp.Float.Release(g)
		err = t.driver.Evaluate(pos, g, userData)
		if err != nil {
			return err
		}
	}
	for i, p := range pos {
		var gi float64
		if g != nil {
			gi = g[i]
		}
		w := t.e(t.weight(p, gi))
		dist[i] = w*d2[i] + (1-w)*dist[i]
	}
	return nil
}
