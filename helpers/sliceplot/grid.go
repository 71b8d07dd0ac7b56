// Package sliceplot samples 2D fields, typically cross sections made with
// fsdf.Field.Slice, and renders them as heat maps with the zero contour drawn.
package sliceplot

import (
	"context"
	"errors"
	"math"
	"runtime"

	"github.com/soypat/fsdf"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot/plotter"
)

var errSmallGrid = errors.New("grid needs at least 2 samples per axis")

// Grid holds the distances of a 2D field sampled on a regular lattice
// spanning Box. It implements plotter.GridXYZ with columns along x.
type Grid struct {
	Box    r2.Box
	Nx, Ny int
	// dist holds Ny rows of Nx samples.
	dist []float64
}

var _ plotter.GridXYZ = (*Grid)(nil)

// Sample evaluates f on an nx by ny lattice covering box. Rows are sampled
// concurrently, each with its own VecPool.
func Sample(ctx context.Context, f fsdf.SDF2, box r2.Box, nx, ny int) (*Grid, error) {
	if nx < 2 || ny < 2 {
		return nil, errSmallGrid
	}
	g := &Grid{Box: box, Nx: nx, Ny: ny, dist: make([]float64, nx*ny)}
	field := fsdf.NewField2(f)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for r := 0; r < ny; r++ {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pos := make([]r2.Vec, nx)
			y := g.Y(r)
			for c := range pos {
				pos[c] = r2.Vec{X: g.X(c), Y: y}
			}
			vp := &fsdf.VecPool{}
			err := field.Evaluate(pos, g.dist[r*nx:(r+1)*nx], vp)
			if err != nil {
				return err
			}
			return vp.AssertAllReleased()
		})
	}
	err := eg.Wait()
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Dims returns the number of columns and rows of the grid.
func (g *Grid) Dims() (c, r int) { return g.Nx, g.Ny }

// Z returns the distance sampled at column c and row r.
func (g *Grid) Z(c, r int) float64 { return g.dist[r*g.Nx+c] }

// X returns the x coordinate of column c.
func (g *Grid) X(c int) float64 {
	return g.Box.Min.X + float64(c)*(g.Box.Max.X-g.Box.Min.X)/float64(g.Nx-1)
}

// Y returns the y coordinate of row r.
func (g *Grid) Y(r int) float64 {
	return g.Box.Min.Y + float64(r)*(g.Box.Max.Y-g.Box.Min.Y)/float64(g.Ny-1)
}

// Inside returns the number of samples with negative distance.
func (g *Grid) Inside() int {
	n := 0
	for _, d := range g.dist {
		if d < 0 {
			n++
		}
	}
	return n
}

// Range returns the smallest and largest finite sampled distances.
func (g *Grid) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, d := range g.dist {
		if math.IsInf(d, 0) || math.IsNaN(d) {
			continue
		}
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}
