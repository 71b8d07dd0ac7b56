package sliceplot

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/fsdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot/cmpimg"
	"gonum.org/v1/plot/vg"
)

const imgDelta = 0.02

var domain = r2.Box{Min: r2.Vec{X: -2, Y: -2}, Max: r2.Vec{X: 2, Y: 2}}

func sphereSection(t *testing.T) *Grid {
	t.Helper()
	section := fsdf.Sphere(1, fsdf.Origin).Slice()
	g, err := Sample(context.Background(), section, domain, 21, 41)
	require.NoError(t, err)
	return g
}

func TestSample(t *testing.T) {
	g := sphereSection(t)
	c, r := g.Dims()
	assert.Equal(t, 21, c)
	assert.Equal(t, 41, r)
	assert.Equal(t, -2.0, g.X(0))
	assert.Equal(t, 2.0, g.X(20))
	assert.Equal(t, 0.0, g.Y(20))
	assert.InDelta(t, -1, g.Z(10, 20), 1e-9)
	assert.InDelta(t, 1, g.Z(20, 20), 1e-9)
	for col := 0; col < c; col++ {
		for row := 0; row < r; row++ {
			want := math.Hypot(g.X(col), g.Y(row)) - 1
			assert.InDelta(t, want, g.Z(col, row), 1e-9)
		}
	}
	lo, hi := g.Range()
	assert.InDelta(t, -1, lo, 1e-9)
	assert.InDelta(t, 2*math.Sqrt2-1, hi, 1e-9)
	// Roughly the area ratio of the unit disk in the square.
	frac := float64(g.Inside()) / float64(c*r)
	assert.InDelta(t, math.Pi/16, frac, 0.05)
}

func TestSampleErrors(t *testing.T) {
	section := fsdf.Sphere(1, fsdf.Origin).Slice()
	_, err := Sample(context.Background(), section, domain, 1, 10)
	assert.ErrorIs(t, err, errSmallGrid)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Sample(ctx, section, domain, 10, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

var update = flag.Bool("update", false, "rewrite golden images in testdata")

const golden = "testdata/sphere_section.png"

func TestPlot(t *testing.T) {
	g := sphereSection(t)
	var got bytes.Buffer
	require.NoError(t, WritePNG(&got, g, "sphere", 6*vg.Centimeter))
	assert.True(t, bytes.HasPrefix(got.Bytes(), []byte("\x89PNG")))

	want, err := os.ReadFile(golden)
	if *update || errors.Is(err, fs.ErrNotExist) {
		require.NoError(t, os.MkdirAll(filepath.Dir(golden), 0o755))
		require.NoError(t, os.WriteFile(golden, got.Bytes(), 0o644))
		t.Logf("wrote %s", golden)
		want, err = got.Bytes(), nil
	}
	require.NoError(t, err)
	equal, err := cmpimg.EqualApprox("png", want, got.Bytes(), imgDelta)
	require.NoError(t, err)
	assert.True(t, equal, "render does not match %s, rerun with -update if the change is intended", golden)

	file := filepath.Join(t.TempDir(), "sphere.png")
	require.NoError(t, Save(g, "sphere", file, 6*vg.Centimeter))
	saved, err := os.ReadFile(file)
	require.NoError(t, err)
	equal, err = cmpimg.EqualApprox("png", want, saved, imgDelta)
	require.NoError(t, err)
	assert.True(t, equal)

	// A shifted section must not pass for the golden one.
	shifted, err := Sample(context.Background(), fsdf.Sphere(1, fsdf.Vec(1, 0.5, 0)).Slice(), domain, 21, 41)
	require.NoError(t, err)
	var other bytes.Buffer
	require.NoError(t, WritePNG(&other, shifted, "sphere", 6*vg.Centimeter))
	equal, err = cmpimg.EqualApprox("png", want, other.Bytes(), imgDelta)
	require.NoError(t, err)
	assert.False(t, equal)

	// A section of all of space has no finite distances to plot.
	inf := math.Inf(1)
	space := fsdf.Slab(fsdf.Vec(-inf, -inf, -inf), fsdf.Vec(inf, inf, inf), 0).Slice()
	empty, err := Sample(context.Background(), space, domain, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 16, empty.Inside())
	_, err = Plot(empty, "space")
	assert.Error(t, err)
}
