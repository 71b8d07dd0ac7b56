package smooth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHardReductions(t *testing.T) {
	a := []float64{-1, 0.5, 2, 3}
	b := []float64{1, -0.5, 2, -4}

	u := append([]float64(nil), a...)
	Union(u, b, 0)
	assert.Equal(t, []float64{-1, -0.5, 2, -4}, u)

	in := append([]float64(nil), a...)
	Intersection(in, b, 0)
	assert.Equal(t, []float64{1, 0.5, 2, 3}, in)

	d := append([]float64(nil), a...)
	Difference(d, b, 0)
	assert.Equal(t, []float64{-1, 0.5, 2, 4}, d)
}

func TestSmoothUnionMatchesPolyMin(t *testing.T) {
	const k = 0.25
	a := []float64{-0.3, 0.1, 0.05, 1}
	b := []float64{0.2, 0.1, -0.05, -1}
	got := append([]float64(nil), a...)
	Union(got, b, k)
	min := PolyMin(k)
	for i := range a {
		assert.InDelta(t, min(a[i], b[i]), got[i], 1e-15)
		assert.LessOrEqual(t, got[i], math.Min(a[i], b[i])+1e-15, "smooth union never exceeds hard union")
	}
	// Equal inputs produce the deepest fillet: min - k/4.
	assert.InDelta(t, 0.1-k/4, got[1], 1e-15)
	// Far apart inputs are unaffected by smoothing.
	assert.InDelta(t, -1.0, got[3], 1e-15)
}

func TestSmoothIntersectionAndDifference(t *testing.T) {
	const k = 0.5
	a := []float64{0.2, -2}
	b := []float64{0.2, 3}

	in := append([]float64(nil), a...)
	Intersection(in, b, k)
	assert.InDelta(t, 0.2+k/4, in[0], 1e-15)
	assert.InDelta(t, 3.0, in[1], 1e-15)

	diff := append([]float64(nil), a...)
	Difference(diff, b, k)
	max := PolyMax(k)
	for i := range a {
		assert.InDelta(t, max(a[i], -b[i]), diff[i], 1e-15)
	}
}

func TestPointwiseKernels(t *testing.T) {
	d := []float64{-1, 0, 2}
	Negate(d)
	assert.Equal(t, []float64{1, 0, -2}, d)
	Dilate(d, 0.5)
	assert.Equal(t, []float64{0.5, -0.5, -2.5}, d)
	Erode(d, 0.5)
	assert.Equal(t, []float64{1, 0, -2}, d)
	Shell(d, 1)
	assert.Equal(t, []float64{0.5, -0.5, 1.5}, d)

	d1 := []float64{0, 4}
	Blend(d1, []float64{2, 0}, 0.25)
	assert.Equal(t, []float64{0.5, 3}, d1)
}

func TestMinFuncs(t *testing.T) {
	for name, fn := range map[string]MinFunc{
		"hard":    Min(0),
		"poly":    PolyMin(0.1),
		"round":   RoundMin(0.1),
		"chamfer": ChamferMin(0.1),
		"exp":     ExpMin(32),
	} {
		t.Run(name, func(t *testing.T) {
			// Well separated distances are not affected by any smoothing.
			assert.InDelta(t, -2.0, fn(-2, 3), 1e-9)
			assert.InDelta(t, -2.0, fn(3, -2), 1e-9)
		})
	}
	assert.Equal(t, 3.0, Max(0)(-2, 3))
}
