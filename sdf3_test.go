package fsdf

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func eval1(t *testing.T, f Field, p r3.Vec) float64 {
	t.Helper()
	d, err := Evaluate(f, []r3.Vec{p})
	require.NoError(t, err)
	return d[0]
}

func randomPoints(rng *rand.Rand, n int, scale float64) []r3.Vec {
	pos := make([]r3.Vec, n)
	for i := range pos {
		pos[i] = r3.Vec{
			X: scale * (2*rng.Float64() - 1),
			Y: scale * (2*rng.Float64() - 1),
			Z: scale * (2*rng.Float64() - 1),
		}
	}
	return pos
}

func TestEvaluateContract(t *testing.T) {
	f := Sphere(1, Origin)

	d, err := Evaluate(f, nil)
	require.NoError(t, err)
	assert.Empty(t, d)

	err = f.Evaluate(make([]r3.Vec, 3), make([]float64, 2), nil)
	assert.ErrorIs(t, err, errMismatchedLength)

	var zero Field
	assert.True(t, zero.IsZero())
	err = zero.Evaluate(make([]r3.Vec, 1), make([]float64, 1), nil)
	assert.ErrorIs(t, err, errNilField)

	err = f.Evaluate(make([]r3.Vec, 1), make([]float64, 1), "not a pool")
	assert.Error(t, err)
}

func TestEvaluateRejectsForeignUserData(t *testing.T) {
	pos, dist := make([]r3.Vec, 2), make([]float64, 2)
	s := Sphere(1, Origin)
	for name, f := range map[string]Field{
		"bare":       s,
		"translated": s.Translate(X),
		"union":      Union(s, Box(Vec(1, 1, 1), Origin)),
	} {
		err := f.Evaluate(pos, dist, "not a pool")
		assert.Error(t, err, name)
		err = f.Evaluate(nil, nil, 42)
		assert.Error(t, err, name)
		assert.NoError(t, f.Evaluate(pos, dist, &VecPool{}), name)
	}

	section := s.Slice()
	err := section.Evaluate(make([]r2.Vec, 2), dist, "not a pool")
	assert.Error(t, err)
	assert.NoError(t, section.Evaluate(make([]r2.Vec, 2), dist, &VecPool{}))
}

func TestEvaluatePreservesOrder(t *testing.T) {
	f := Union(Sphere(1, Origin), Box(Vec(1, 2, 3), Vec(4, 0, 0))).Translate(Vec(0.5, 0, 0))
	pos := randomPoints(rand.New(rand.NewSource(1)), 64, 5)
	batch, err := Evaluate(f, pos)
	require.NoError(t, err)
	for i, p := range pos {
		assert.Equal(t, batch[i], eval1(t, f, p), "point %d", i)
	}
}

func TestPrimitiveBoundaries(t *testing.T) {
	const tol = 1e-9
	phi := (1 + math.Sqrt(5)) / 2
	tests := []struct {
		name string
		f    Field
		p    r3.Vec
	}{
		{"sphere", Sphere(1, Vec(1, 2, 3)), Vec(2, 2, 3)},
		{"box", Box(Vec(2, 2, 2), Origin), Vec(0, 0, 1)},
		{"box_bounds", BoxBounds(Vec(0, 0, 0), Vec(2, 4, 6)), Vec(2, 2, 3)},
		{"plane", Plane(Z, Origin), Vec(5, 5, 0)},
		{"slab", Slab(Vec(-1, -1, -1), Vec(1, 1, 1), 0), Vec(1, 0, 0)},
		{"rounded_box", RoundedBox(Vec(2, 2, 2), 0.5, Origin), Vec(1, 0, 0)},
		{"wireframe_box", WireframeBox(Vec(2, 2, 2), 0.2, Origin), Vec(1.1, 1.1, 0)},
		{"torus", Torus(2, 0.5), Vec(2.5, 0, 0)},
		{"capsule", Capsule(Origin, Vec(0, 0, 2), 0.5), Vec(0.5, 0, 1)},
		{"cylinder", Cylinder(1), Vec(0, 1, 7)},
		{"capped_cylinder", CappedCylinder(Origin, Vec(0, 0, 2), 1), Vec(1, 0, 1)},
		{"rounded_cylinder", RoundedCylinder(0, 2, 1, 0.2), Vec(1, 0, 1)},
		{"capped_cone", CappedCone(Origin, Vec(0, 0, 2), 1, 0.5), Vec(0.75, 0, 1)},
		{"rounded_cone", RoundedCone(1, 0.5, 2), Vec(1, 0, 0)},
		{"ellipsoid", Ellipsoid(Vec(1, 2, 3)), Vec(0, 2, 0)},
		{"pyramid", Pyramid(1), Vec(0, 0, 1)},
		{"tetrahedron", Tetrahedron(1), Vec(0, 0, -1)},
		{"octahedron", Octahedron(1), Vec(1, 0, 0)},
		{"dodecahedron", Dodecahedron(1), r3.Unit(Vec(1, 1, 1))},
		{"icosahedron", Icosahedron(1), r3.Unit(Vec(1, phi, 0))},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, 0, eval1(t, test.f, test.p), tol)
		})
	}
}

func TestPlatonicCircumradius(t *testing.T) {
	phi := (1 + math.Sqrt(5)) / 2
	for _, r := range []float64{1, 2.5, 100} {
		vertex := r3.Scale(r, r3.Unit(Vec(1, phi, 0)))
		assert.InDelta(t, 0, eval1(t, Icosahedron(r), vertex), 1e-12*r, "icosahedron r=%v", r)
		vertex = r3.Scale(r, r3.Unit(Vec(1, 1, 1)))
		assert.InDelta(t, 0, eval1(t, Dodecahedron(r), vertex), 1e-12*r, "dodecahedron r=%v", r)
	}
}

func TestScenarios(t *testing.T) {
	assert.Equal(t, -1.0, eval1(t, Sphere(1, Origin), Origin))
	assert.Equal(t, -2.5, eval1(t, Sphere(2.5, Vec(1, -2, 3)), Vec(1, -2, 3)))
	assert.InDelta(t, 0, eval1(t, Box(d3Elem(2), Origin), Vec(0, 0, 1)), 1e-15)
	u := Union(Sphere(1, Origin), Sphere(1, Vec(3, 0, 0)))
	assert.InDelta(t, 0.5, eval1(t, u, Vec(1.5, 0, 0)), 1e-15)
	assert.Equal(t, -1.0, eval1(t, Sphere(1, Origin).Translate(Vec(1, 0, 0)), Vec(1, 0, 0)))
}

func d3Elem(v float64) r3.Vec { return Vec(v, v, v) }

func TestPlaneInsideConvention(t *testing.T) {
	p := Plane(Z, Origin)
	assert.Equal(t, -1.0, eval1(t, p, Vec(0, 0, 1)), "points along the normal are inside")
	assert.Equal(t, 2.0, eval1(t, p, Vec(0, 0, -2)))
}

func TestSlabWithoutBoundsIsSpace(t *testing.T) {
	inf := math.Inf(1)
	s := Slab(Vec(-inf, -inf, -inf), Vec(inf, inf, inf), 0)
	assert.True(t, math.IsInf(eval1(t, s, Vec(1e6, 0, 0)), -1))
	z := ZSlab(-1, 1)
	assert.Equal(t, -1.0, eval1(t, z, Vec(100, -100, 0)))
	assert.Equal(t, 1.0, eval1(t, z, Vec(0, 0, 2)))
}

func TestNumericDegeneracyPropagates(t *testing.T) {
	d := eval1(t, Capsule(Origin, Origin, 1), Vec(1, 0, 0))
	assert.True(t, math.IsNaN(d), "zero length capsule yields NaN, got %v", d)
}

func TestMetasurfaceShell(t *testing.T) {
	size := Vec(10, 10, 10)
	g := Gyroid(0.1, 0, size, Origin)
	// The gyroid level set passes through the origin.
	assert.InDelta(t, -0.1, eval1(t, g, Origin), 1e-12)
	// Far outside the clipping box the box distance dominates.
	assert.InDelta(t, 15.0, eval1(t, g, Vec(20, 0, 0)), 1e-12)

	shells := []Field{
		SchwarzP(0.2, 0, size, Origin),
		SchwarzD(0.2, 0, size, Origin),
		FischerKoch(0.2, 0, size, Origin),
		Lidinoid(0.2, 0, size, Origin),
		Neovius(0.2, 0, size, Origin),
		CylindricalGyroid(0.2, 0, 1, size, Origin),
		CylindricalSchwarzP(0.2, 0, size, Origin),
		CylindricalSchwarzD(0.2, 0, size, Origin),
		MO(0.2, 1, size, Origin),
		CylindricalMO(0.2, 3, 1, 1, false, size, Origin),
		CylindricalMO(0.2, 3, 1, 1, true, size, Origin),
		EB(0.2, size, Origin),
		CylindricalEB(0.2, size, Origin),
		GradedGyroid(0.1, 0.3, -0.2, 0.2, size, Origin),
		ScherkSecond(0.2, size, Origin),
	}
	pos := randomPoints(rand.New(rand.NewSource(2)), 32, 4)
	for i, s := range shells {
		d, err := Evaluate(s, pos)
		require.NoError(t, err, "shell %d", i)
		for j, p := range pos {
			box := eval1(t, Box(size, Origin), p)
			assert.GreaterOrEqual(t, d[j], box, "shell %d is clipped by its box", i)
		}
	}
}

func TestFGGyroidMatchesGyroid(t *testing.T) {
	size := Vec(8, 8, 8)
	// Driving fields with |d| >= 1 everywhere select hMax and tMax.
	far := Sphere(-10, Origin)
	fg := FGGyroid(0.05, 0.2, far, 0.3, 0.1, far, size, Origin, nil)
	want := Gyroid(0.2, 0.1, size, Origin)
	pos := randomPoints(rand.New(rand.NewSource(3)), 32, 3)
	got, err := Evaluate(fg, pos)
	require.NoError(t, err)
	exp, err := Evaluate(want, pos)
	require.NoError(t, err)
	assert.InDeltaSlice(t, exp, got, 1e-12)
}

// sdfx is an independent implementation used as an oracle for exact primitives.
func TestAgainstSDFX(t *testing.T) {
	sphere, err := sdf.Sphere3D(1.5)
	require.NoError(t, err)
	box, err := sdf.Box3D(v3.Vec{X: 1, Y: 2, Z: 3}, 0)
	require.NoError(t, err)
	cyl, err := sdf.Cylinder3D(2, 0.75, 0)
	require.NoError(t, err)

	tests := []struct {
		name   string
		f      Field
		oracle sdf.SDF3
	}{
		{"sphere", Sphere(1.5, Origin), sphere},
		{"box", Box(Vec(1, 2, 3), Origin), box},
		{"capped_cylinder", CappedCylinder(Vec(0, 0, -1), Vec(0, 0, 1), 0.75), cyl},
	}
	pos := randomPoints(rand.New(rand.NewSource(4)), 256, 3)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := Evaluate(test.f, pos)
			require.NoError(t, err)
			for i, p := range pos {
				want := test.oracle.Evaluate(v3.Vec{X: p.X, Y: p.Y, Z: p.Z})
				assert.InDelta(t, want, got[i], 1e-9, "point %v", p)
			}
		})
	}
}

func TestConcurrentEvaluation(t *testing.T) {
	f := SmoothUnion(0.3,
		Sphere(1, Origin),
		Box(Vec(1, 1, 3), Vec(1, 0, 0)).Rotate(0.3, X),
		Torus(2, 0.25).Twist(0.5),
	).Repeat(Vec(6, 6, 0), 1)

	pos := randomPoints(rand.New(rand.NewSource(5)), 4096, 10)
	want, err := Evaluate(f, pos)
	require.NoError(t, err)

	const chunk = 256
	got := make([]float64, len(pos))
	eg, _ := errgroup.WithContext(context.Background())
	for start := 0; start < len(pos); start += chunk {
		eg.Go(func() error {
			vp := &VecPool{}
			end := min(start+chunk, len(pos))
			err := f.Evaluate(pos[start:end], got[start:end], vp)
			if err != nil {
				return err
			}
			return vp.AssertAllReleased()
		})
	}
	require.NoError(t, eg.Wait())
	assert.Equal(t, want, got)
}

func TestFieldFunc(t *testing.T) {
	f := FieldFunc(func(p r3.Vec) float64 { return p.X })
	assert.Equal(t, 2.0, eval1(t, f.Translate(Vec(-2, 0, 0)), Origin))
	assert.Panics(t, func() { FieldFunc(nil) })
	assert.Panics(t, func() { Field{}.Translate(X) })
}

func TestVecPoolRelease(t *testing.T) {
	var vp VecPool
	a := vp.Float.Acquire(10)
	b := vp.Float.Acquire(4)
	assert.Len(t, a, 10)
	assert.Error(t, vp.AssertAllReleased())
	require.NoError(t, vp.Float.Release(a))
	require.NoError(t, vp.Float.Release(b))
	assert.Error(t, vp.Float.Release(b), "double release")
	assert.NoError(t, vp.AssertAllReleased())
	// Released buffers are reused.
	c := vp.Float.Acquire(8)
	assert.Equal(t, &a[0], &c[0])
	empty := vp.V3.Acquire(0)
	assert.NoError(t, vp.V3.Release(empty))
}
