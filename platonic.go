package fsdf

import (
	"math"

	"github.com/soypat/fsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	phi = (1 + math.Sqrt(5)) / 2
	// dodecahedron face normal in the positive octant.
	dodecaN = r3.Unit(r3.Vec{X: phi, Y: 1})
	// icosahedron face normals in the positive octant.
	icosaN = r3.Unit(r3.Vec{X: phi * phi, Y: 1})
	icosaW = math.Sqrt(3) / 3
	// Support function radii at which the vertices lie on the unit sphere.
	dodecaCircum = phi / math.Sqrt(3)
	icosaCircum  = math.Sqrt((5 + math.Sqrt(5)) / 10)
	octaScale    = math.Tan(math.Pi / 6)
)

type tetrahedron struct{ r float64 }

// Tetrahedron returns a regular tetrahedron centered at the origin with
// faces at distance r/√3 and vertices at distance √3·r from it.
func Tetrahedron(r float64) Field { return primitive(tetrahedron{r: r}) }

func (s tetrahedron) distance(p r3.Vec) float64 {
	return (math.Max(math.Abs(p.X+p.Y)-p.Z, math.Abs(p.X-p.Y)+p.Z) - s.r) / math.Sqrt(3)
}

type octahedron struct{ r float64 }

// Octahedron returns a regular octahedron with vertices at distance r from the origin on each axis.
func Octahedron(r float64) Field { return primitive(octahedron{r: r}) }

func (s octahedron) distance(p r3.Vec) float64 {
	a := d3.AbsElem(p)
	return (a.X + a.Y + a.Z - s.r) * octaScale
}

// cyclic returns the dot products of p with n and its two cyclic permutations.
func cyclic(p, n r3.Vec) (a, b, c float64) {
	a = r3.Dot(p, n)
	b = r3.Dot(p, r3.Vec{X: n.Z, Y: n.X, Z: n.Y})
	c = r3.Dot(p, r3.Vec{X: n.Y, Y: n.Z, Z: n.X})
	return a, b, c
}

type dodecahedron struct{ r float64 }

// Dodecahedron returns a regular dodecahedron with circumradius r.
func Dodecahedron(r float64) Field { return primitive(dodecahedron{r: r * dodecaCircum}) }

func (s dodecahedron) distance(p r3.Vec) float64 {
	p = d3.AbsElem(r3.Scale(1/s.r, p))
	a, b, c := cyclic(p, dodecaN)
	return (math.Max(math.Max(a, b), c) - dodecaN.X) * s.r
}

type icosahedron struct{ r float64 }

// Icosahedron returns a regular icosahedron with circumradius r.
func Icosahedron(r float64) Field { return primitive(icosahedron{r: r * icosaCircum}) }

func (s icosahedron) distance(p r3.Vec) float64 {
	p = d3.AbsElem(r3.Scale(1/s.r, p))
	a, b, c := cyclic(p, icosaN)
	d := r3.Dot(p, d3.Elem(icosaW)) - icosaN.X
	return math.Max(math.Max(math.Max(a, b), c)-icosaN.X, d) * s.r
}
