package fsdf

import (
	"math"

	"github.com/soypat/fsdf/internal/d3"
	"github.com/soypat/fsdf/smooth"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultBlendK is the interpolation weight conventionally used with Blend.
const DefaultBlendK = 0.5

type boolOp uint8

const (
	opUnion boolOp = iota
	opIntersection
	opDifference
	opBlend
	opReduce
)

// boolean3 folds the operands bs into a from left to right. ks holds the
// resolved smoothing coefficient for each operand.
type boolean3 struct {
	op boolOp
	a  SDF3
	bs []SDF3
	ks []float64
	// fn is the reduction for opReduce.
	fn smooth.MinFunc
}

func newBoolean(op boolOp, k float64, a Field, bs []Field) Field {
	if len(bs) == 0 {
		return a
	}
	b := &boolean3{op: op, a: a.inner(), bs: make([]SDF3, len(bs)), ks: make([]float64, len(bs))}
	for i, f := range bs {
		b.bs[i] = f.inner()
		b.ks[i] = k
		if k == 0 {
			b.ks[i] = f.k
		}
	}
	return Field{sdf: b}
}

// Union returns the union of a and every field in bs. Each operand is
// joined with its own smoothing coefficient set with Field.K, or hard
// minimum when none is set.
func Union(a Field, bs ...Field) Field { return newBoolean(opUnion, 0, a, bs) }

// SmoothUnion is Union with coefficient k overriding the operands' own. k == 0 behaves like Union.
func SmoothUnion(k float64, a Field, bs ...Field) Field { return newBoolean(opUnion, k, a, bs) }

// Intersection returns the intersection of a and every field in bs.
func Intersection(a Field, bs ...Field) Field { return newBoolean(opIntersection, 0, a, bs) }

// SmoothIntersection is Intersection with coefficient k overriding the operands' own.
func SmoothIntersection(k float64, a Field, bs ...Field) Field {
	return newBoolean(opIntersection, k, a, bs)
}

// Difference returns a with every field in bs removed.
func Difference(a Field, bs ...Field) Field { return newBoolean(opDifference, 0, a, bs) }

// SmoothDifference is Difference with coefficient k overriding the operands' own.
func SmoothDifference(k float64, a Field, bs ...Field) Field {
	return newBoolean(opDifference, k, a, bs)
}

// Blend linearly interpolates distances, d = k·b + (1-k)·a, folding each
// field of bs in turn. k == 0 uses each operand's own coefficient.
// DefaultBlendK gives the midway blend.
func Blend(k float64, a Field, bs ...Field) Field { return newBoolean(opBlend, k, a, bs) }

// UnionWith joins a and bs with a custom minimum function such as
// smooth.RoundMin or smooth.ChamferMin.
func UnionWith(fn smooth.MinFunc, a Field, bs ...Field) Field {
	if fn == nil {
		panic("nil MinFunc argument")
	}
	f := newBoolean(opReduce, 0, a, bs)
	if b, ok := f.sdf.(*boolean3); ok {
		b.fn = fn
	}
	return f
}

// Evaluate returns the combined distance of the operands.
func (b *boolean3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	err = b.a.Evaluate(pos, dist, userData)
	if err != nil {
		return err
	}
	aux := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(aux)
	for i, s := range b.bs {
		err = s.Evaluate(pos, aux, userData)
		if err != nil {
			return err
		}
		k := b.ks[i]
		switch b.op {
		case opUnion:
			smooth.Union(dist, aux, k)
		case opIntersection:
			smooth.Intersection(dist, aux, k)
		case opDifference:
			smooth.Difference(dist, aux, k)
		case opBlend:
			smooth.Blend(dist, aux, k)
		case opReduce:
			smooth.Reduce(dist, aux, b.fn)
		}
	}
	return nil
}

// Union returns the union of f with bs. See Union.
func (f Field) Union(bs ...Field) Field { return Union(f, bs...) }

// Intersection returns the intersection of f with bs. See Intersection.
func (f Field) Intersection(bs ...Field) Field { return Intersection(f, bs...) }

// Difference returns f with bs removed. See Difference.
func (f Field) Difference(bs ...Field) Field { return Difference(f, bs...) }

// Blend interpolates f towards bs. See Blend.
func (f Field) Blend(k float64, bs ...Field) Field { return Blend(k, f, bs...) }

type kernelOp uint8

const (
	opNegate kernelOp = iota
	opDilate
	opErode
	opShell
)

// kernel3 applies a pointwise adjustment to a single field's distances.
type kernel3 struct {
	op kernelOp
	s  SDF3
	r  float64
}

// Negate swaps the inside and outside of f.
func (f Field) Negate() Field { return Field{sdf: &kernel3{op: opNegate, s: f.inner()}} }

// Dilate grows f outward by r.
func (f Field) Dilate(r float64) Field { return Field{sdf: &kernel3{op: opDilate, s: f.inner(), r: r}} }

// Erode shrinks f inward by r.
func (f Field) Erode(r float64) Field { return Field{sdf: &kernel3{op: opErode, s: f.inner(), r: r}} }

// Shell hollows f into a wall of the given thickness centered on its surface.
func (f Field) Shell(thickness float64) Field {
	return Field{sdf: &kernel3{op: opShell, s: f.inner(), r: thickness}}
}

// Evaluate returns the adjusted distance.
func (k *kernel3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	err := k.s.Evaluate(pos, dist, userData)
	if err != nil {
		return err
	}
	switch k.op {
	case opNegate:
		smooth.Negate(dist)
	case opDilate:
		smooth.Dilate(dist, k.r)
	case opErode:
		smooth.Erode(dist, k.r)
	case opShell:
		smooth.Shell(dist, k.r)
	}
	return nil
}

type repeat3 struct {
	s       SDF3
	spacing r3.Vec
	// count bounds the cell index when bounded is set.
	count   r3.Vec
	bounded bool
	// neighbors are the cell offsets evaluated around each point's own cell.
	neighbors []r3.Vec
}

// Repeat tiles f infinitely on a lattice with the given spacing. Each point
// is evaluated against the copy in its own cell and the copies up to padding
// cells away on every axis. A zero spacing component disables repetition
// along that axis. It panics if padding is negative.
func (f Field) Repeat(spacing r3.Vec, padding int) Field {
	return Field{sdf: newRepeat(f, spacing, r3.Vec{}, false, padding)}
}

// RepeatN is Repeat limited to cell indices within ±count on each axis.
func (f Field) RepeatN(spacing, count r3.Vec, padding int) Field {
	return Field{sdf: newRepeat(f, spacing, count, true, padding)}
}

func newRepeat(f Field, spacing, count r3.Vec, bounded bool, padding int) *repeat3 {
	if padding < 0 {
		panic("negative repeat padding")
	}
	pad := [3]int{padding, padding, padding}
	for i, s := range [3]float64{spacing.X, spacing.Y, spacing.Z} {
		if s == 0 {
			pad[i] = 0
		}
	}
	var neighbors []r3.Vec
	for i := -pad[0]; i <= pad[0]; i++ {
		for j := -pad[1]; j <= pad[1]; j++ {
			for k := -pad[2]; k <= pad[2]; k++ {
				neighbors = append(neighbors, r3.Vec{X: float64(i), Y: float64(j), Z: float64(k)})
			}
		}
	}
	return &repeat3{s: f.inner(), spacing: spacing, count: count, bounded: bounded, neighbors: neighbors}
}

func (r *repeat3) index(p r3.Vec) r3.Vec {
	q := r3.Vec{X: safeDiv(p.X, r.spacing.X), Y: safeDiv(p.Y, r.spacing.Y), Z: safeDiv(p.Z, r.spacing.Z)}
	idx := d3.RoundElem(q)
	if r.bounded {
		idx = d3.Clamp(idx, r3.Scale(-1, r.count), r.count)
	}
	return idx
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Evaluate returns the minimum distance over the neighboring copies.
func (r *repeat3) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	q := vp.V3.Acquire(len(pos))
	defer vp.V3.Release(q)
	aux := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(aux)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	for _, n := range r.neighbors {
		for i, p := range pos {
			cell := r3.Add(r.index(p), n)
			q[i] = r3.Sub(p, d3.MulElem(r.spacing, cell))
		}
		err = r.s.Evaluate(q, aux, userData)
		if err != nil {
			return err
		}
		smooth.Union(dist, aux, 0)
	}
	return nil
}
