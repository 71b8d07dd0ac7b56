package fsdf

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	s := Sphere(1, Origin)
	s.Mirror(Vec(1, 1, 0), Origin)
	assert.Contains(t, buf.String(), "mirror about oblique axis")

	buf.Reset()
	s.RotateTo(X, Vec(-2, 0, 0))
	assert.Contains(t, buf.String(), "rotate_to of opposite directions")

	// Evaluation never logs.
	m := s.Mirror(Vec(0, 1, 1), Origin)
	buf.Reset()
	_, err := Evaluate(m, []r3.Vec{{X: 1}, {Y: 2}})
	assert.NoError(t, err)
	assert.Empty(t, buf.String())

	SetLogger(nil)
	buf.Reset()
	s.Mirror(Vec(1, 1, 0), Origin)
	assert.Empty(t, buf.String())
}
