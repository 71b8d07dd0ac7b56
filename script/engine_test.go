package script

import (
	"context"
	"testing"
	"time"

	"github.com/soypat/fsdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

func evalField(t *testing.T, src string) fsdf.Field {
	t.Helper()
	var e Engine
	s, err := e.Eval(context.Background(), src)
	require.NoError(t, err)
	f, ok := s.(fsdf.Field)
	require.True(t, ok, "want 3D field, got %T", s)
	return f
}

func dist(t *testing.T, f fsdf.Field, pos ...r3.Vec) []float64 {
	t.Helper()
	d, err := fsdf.Evaluate(f, pos)
	require.NoError(t, err)
	return d
}

func TestEvalPrimitives(t *testing.T) {
	f := evalField(t, "(sphere 1)")
	assert.Equal(t, []float64{-1, 1}, dist(t, f, r3.Vec{}, r3.Vec{X: 2}))

	f = evalField(t, "(box [2 2 2] [1 0 0])")
	assert.Equal(t, []float64{-1, 0}, dist(t, f, r3.Vec{X: 1}, r3.Vec{X: 2}))
}

func TestEvalComposition(t *testing.T) {
	src := `
; a ball with a box stuck to it
(def ball (sphere 1))
(def block (translate (box 1) [2 0 0])) ;; moved off center
(union ball block 0.25)
`
	got := evalField(t, src)
	want := fsdf.SmoothUnion(0.25,
		fsdf.Sphere(1, fsdf.Origin),
		fsdf.Box(fsdf.Vec(1, 1, 1), fsdf.Origin).Translate(fsdf.Vec(2, 0, 0)),
	)
	pos := []r3.Vec{{}, {X: 1.25}, {X: 2, Y: 0.4}, {Y: 3}, {X: -1, Z: 1}}
	assert.Equal(t, dist(t, want, pos...), dist(t, got, pos...))
}

func TestEvalBuiltins(t *testing.T) {
	f := evalField(t, "(rotate (sphere 0.5 (vec3 2 0 0)) (* (pi) 0.5))")
	assert.InDelta(t, -0.5, dist(t, f, r3.Vec{Y: 2})[0], 1e-12)

	f = evalField(t, `(transition_linear (sphere 1) (sphere 2) [0 0 -1] [0 0 1] "in_quad")`)
	assert.Equal(t, -1.25, dist(t, f, r3.Vec{})[0])
}

func TestEvalSlice(t *testing.T) {
	var e Engine
	s, err := e.Eval(context.Background(), "(slice (sphere 1))")
	require.NoError(t, err)
	f2, ok := s.(fsdf.Field2)
	require.True(t, ok)
	d, err := fsdf.Evaluate2(f2, []r2.Vec{{X: 0.5}})
	require.NoError(t, err)
	assert.InDelta(t, -0.5, d[0], 1e-9)

	// Operators do not accept cross sections.
	_, err = e.Eval(context.Background(), "(translate (slice (sphere 1)) [1 0 0])")
	assert.Error(t, err)
}

func TestEvalErrors(t *testing.T) {
	e := &Engine{}
	ctx := context.Background()

	_, err := e.Eval(ctx, "")
	assert.ErrorIs(t, err, ErrNoShape)
	_, err = e.Eval(ctx, "(+ 1 2)")
	assert.ErrorIs(t, err, ErrNoShape)

	_, err = e.Eval(ctx, "(sphere 1")
	var ee *EvalError
	assert.ErrorAs(t, err, &ee)

	for _, src := range []string{
		"(no_such_shape 1)",
		"(translate (sphere 1) 1)",
		"(translate 1 [1 0 0])",
		"(vec3 1 2)",
		`(sphere "one")`,
	} {
		_, err = e.Eval(ctx, src)
		assert.Error(t, err, src)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = e.Eval(cancelled, "(sphere 1)")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvalAbandoned(t *testing.T) {
	release := make(chan struct{})
	evaluateFunc = func(source string) (fsdf.Shape, error) {
		<-release
		return evaluate(source)
	}
	defer func() { evaluateFunc = evaluate }()

	e := &Engine{Timeout: 10 * time.Millisecond}
	_, err := e.Eval(context.Background(), "(sphere 1)")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	_, err = e.Eval(context.Background(), "(box 1)")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.EqualValues(t, 2, e.Abandoned())

	close(release)
	assert.Eventually(t, func() bool { return e.Abandoned() == 0 }, time.Second, time.Millisecond)

	// Evaluations that return in time are not counted.
	e.Timeout = DefaultTimeout
	s, err := e.Eval(context.Background(), "(sphere 1)")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Dims())
	assert.Zero(t, e.Abandoned())
}

func TestPreprocessSource(t *testing.T) {
	for _, tc := range []struct {
		in, want string
	}{
		{"(sphere 1) ; ball", "(sphere 1) // ball"},
		{";; header\n(box 1)", "// header\n(box 1)"},
		{`(transition_linear a b nil nil "a;b")`, `(transition_linear a b nil nil "a;b")`},
		{`"esc\";" ;c`, `"esc\";" //c`},
	} {
		assert.Equal(t, tc.want, preprocessSource(tc.in))
	}
}

func TestParseZygomysError(t *testing.T) {
	ee := parseZygomysError(assert.AnError)
	assert.Zero(t, ee.Line)
	assert.Equal(t, assert.AnError.Error(), ee.Message)

	ee = parseZygomysError(&EvalError{Message: "Error on line 3: unexpected end of input"})
	assert.Equal(t, 3, ee.Line)
	assert.Equal(t, "unexpected end of input", ee.Message)
	assert.Equal(t, "line 3: unexpected end of input", ee.Error())
}
