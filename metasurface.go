package fsdf

import (
	"math"

	"github.com/soypat/fsdf/ease"
	"github.com/soypat/fsdf/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triply periodic implicit surfaces. Each evaluates a trigonometric level
// function L(p) and produces the shell |L(p) - topology| - thickness, clipped
// by a box of the given size at center. The trigonometric field itself is not
// shifted by center.

type surfaceKind uint8

const (
	surfMO surfaceKind = iota
	surfCylMOVertical
	surfCylMOHorizontal
	surfEB
	surfCylEB
	surfSchwarzP
	surfCylSchwarzP
	surfSchwarzD
	surfCylSchwarzD
	surfFischerKoch
	surfLidinoid
	surfNeovius
	surfGyroid
	surfCylGyroid
	surfGradedGyroid
	surfScherkSecond
)

type metasurface struct {
	kind                   surfaceKind
	thickness, topology    float64
	m, n, slant            float64
	hMin, hMax, tMin, tMax float64
	size, center           r3.Vec
}

func newSurface(s metasurface) Field { return primitive(s) }

func (s metasurface) distance(p r3.Vec) float64 {
	thickness, topology := s.thickness, s.topology
	if s.kind == surfGradedGyroid {
		thickness = s.hMin + (s.hMax-s.hMin)*(p.X+s.size.X/2)/s.size.X
		topology = s.tMin + (s.tMax-s.tMin)*(p.Y+s.size.Y/2)/s.size.Y
	}
	d := math.Abs(s.level(p)-topology) - thickness
	return math.Max(d, d3.BoxDist(r3.Sub(p, s.center), s.size))
}

func (s metasurface) level(p r3.Vec) float64 {
	x, y, z := p.X, p.Y, p.Z
	switch s.kind {
	case surfMO:
		return math.Sin(z) + math.Cos(x+s.slant*math.Sin(y))
	case surfCylMOVertical:
		rho, theta := math.Hypot(x, y), math.Atan2(y, x)
		return math.Sin(z) + math.Cos(s.m*theta+s.slant*math.Sin(s.n*rho))
	case surfCylMOHorizontal:
		rho, theta := math.Hypot(x, y), math.Atan2(y, x)
		return math.Sin(z) + math.Cos(s.m*rho+s.slant*math.Sin(s.n*theta))
	case surfEB:
		return math.Cos(x) + math.Cos(y)*math.Cos(z)
	case surfCylEB:
		rho, theta := math.Hypot(x, y), math.Atan2(x, y)
		return math.Cos(rho) + math.Cos(theta)*math.Cos(z)
	case surfSchwarzP:
		return math.Cos(x) + math.Cos(y) + math.Cos(z)
	case surfCylSchwarzP:
		rho, theta := math.Hypot(x, y), math.Atan2(x, y)
		return math.Cos(rho) + math.Cos(theta) + math.Cos(z)
	case surfSchwarzD:
		return schwarzD(x, y, z)
	case surfCylSchwarzD:
		return schwarzD(math.Hypot(x, y), math.Atan2(x, y), z)
	case surfFischerKoch:
		return math.Cos(2*x)*math.Sin(y)*math.Cos(z) +
			math.Cos(2*y)*math.Cos(x)*math.Sin(z) +
			math.Cos(y)*math.Sin(x)*math.Cos(2*z)
	case surfLidinoid:
		return math.Sin(2*x)*math.Cos(y)*math.Sin(z) +
			math.Sin(2*y)*math.Cos(z)*math.Sin(x) +
			math.Sin(2*z)*math.Cos(x)*math.Sin(y) -
			math.Cos(2*x)*math.Cos(2*y) -
			math.Cos(2*y)*math.Cos(2*z) -
			math.Cos(2*z)*math.Cos(2*x)
	case surfNeovius:
		return 3*(math.Cos(x)+math.Cos(y)+math.Cos(z)) + 4*math.Cos(x)*math.Cos(y)*math.Cos(z)
	case surfGyroid, surfGradedGyroid:
		return gyroid(x, y, z)
	case surfCylGyroid:
		rho, theta := math.Hypot(x, y), math.Atan2(y, x)
		return gyroid(s.n*rho, s.n*theta, s.n*z)
	case surfScherkSecond:
		return math.Sin(z) - math.Sinh(x)*math.Sinh(y)
	}
	panic("unknown metasurface")
}

func gyroid(x, y, z float64) float64 {
	return math.Cos(x)*math.Sin(y) + math.Cos(y)*math.Sin(z) + math.Cos(z)*math.Sin(x)
}

func schwarzD(x, y, z float64) float64 {
	return math.Sin(x)*math.Sin(y)*math.Sin(z) +
		math.Sin(x)*math.Cos(y)*math.Cos(z) +
		math.Cos(x)*math.Sin(y)*math.Cos(z)
}

// MO returns the shell |sin z + cos(x + slant·sin y)| < h clipped to a box.
func MO(h, slant float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfMO, thickness: h, slant: slant, size: size, center: center})
}

// CylindricalMO is MO expressed in cylindrical coordinates with angular
// frequency m and radial frequency n. When horizontal is set the roles of
// the radius and angle are swapped.
func CylindricalMO(thickness, m, n, slant float64, horizontal bool, size, center r3.Vec) Field {
	kind := surfCylMOVertical
	if horizontal {
		kind = surfCylMOHorizontal
	}
	return newSurface(metasurface{kind: kind, thickness: thickness, m: m, n: n, slant: slant, size: size, center: center})
}

// EB returns the shell |cos x + cos y·cos z| < h clipped to a box.
func EB(h float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfEB, thickness: h, size: size, center: center})
}

// CylindricalEB is EB in cylindrical coordinates.
func CylindricalEB(h float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfCylEB, thickness: h, size: size, center: center})
}

// SchwarzP returns a Schwarz primitive surface shell.
func SchwarzP(thickness, topology float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfSchwarzP, thickness: thickness, topology: topology, size: size, center: center})
}

// CylindricalSchwarzP is SchwarzP in cylindrical coordinates.
func CylindricalSchwarzP(thickness, topology float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfCylSchwarzP, thickness: thickness, topology: topology, size: size, center: center})
}

// SchwarzD returns a Schwarz diamond surface shell.
func SchwarzD(thickness, topology float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfSchwarzD, thickness: thickness, topology: topology, size: size, center: center})
}

// CylindricalSchwarzD is SchwarzD in cylindrical coordinates.
func CylindricalSchwarzD(thickness, topology float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfCylSchwarzD, thickness: thickness, topology: topology, size: size, center: center})
}

// FischerKoch returns a Fischer-Koch S surface shell.
func FischerKoch(thickness, topology float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfFischerKoch, thickness: thickness, topology: topology, size: size, center: center})
}

// Lidinoid returns a lidinoid surface shell.
func Lidinoid(thickness, topology float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfLidinoid, thickness: thickness, topology: topology, size: size, center: center})
}

// Neovius returns a Neovius surface shell.
func Neovius(thickness, topology float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfNeovius, thickness: thickness, topology: topology, size: size, center: center})
}

// Gyroid returns a gyroid surface shell.
func Gyroid(thickness, topology float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfGyroid, thickness: thickness, topology: topology, size: size, center: center})
}

// CylindricalGyroid is a gyroid in cylindrical coordinates with frequency n.
func CylindricalGyroid(thickness, topology, n float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfCylGyroid, thickness: thickness, topology: topology, n: n, size: size, center: center})
}

// GradedGyroid is a gyroid whose thickness grows linearly from hMin to hMax
// across the box along x and whose topology level grows from tMin to tMax along y.
func GradedGyroid(hMin, hMax, tMin, tMax float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfGradedGyroid, hMin: hMin, hMax: hMax, tMin: tMin, tMax: tMax, size: size, center: center})
}

// ScherkSecond returns Scherk's second surface shell. sinh grows quickly so
// keep the clip box small.
func ScherkSecond(h float64, size, center r3.Vec) Field {
	return newSurface(metasurface{kind: surfScherkSecond, thickness: h, size: size, center: center})
}

// fgGyroid is a gyroid whose thickness and topology level are driven by the
// magnitudes of two other fields.
type fgGyroid struct {
	hMin, hMax, tMin, tMax float64
	fh, ft                 SDF3
	e                      ease.Func
	size, center           r3.Vec
}

// FGGyroid returns a functionally graded gyroid. At each point the thickness
// is hMin + (hMax-hMin)·clamp(|fh(p)|, 0, 1) and the topology level is
// tMin + (tMax-tMin)·clamp(|ft(p)|, 0, 1), both passed through e.
func FGGyroid(hMin, hMax float64, fh Field, tMin, tMax float64, ft Field, size, center r3.Vec, e ease.Func) Field {
	return Field{sdf: &fgGyroid{
		hMin: hMin, hMax: hMax, tMin: tMin, tMax: tMax,
		fh: fh.inner(), ft: ft.inner(),
		e:    ease.OrLinear(e),
		size: size, center: center,
	}}
}

// Evaluate returns the clipped shell distance of the graded gyroid.
func (s *fgGyroid) Evaluate(pos []r3.Vec, dist []float64, userData any) error {
	vp, err := GetVecPool(userData)
	if err != nil {
		return err
	}
	gt := vp.Float.Acquire(len(dist))
	defer vp.Float.Release(gt)
	err = s.fh.Evaluate(pos, dist, userData)
	if err != nil {
		return err
	}
	err = s.ft.Evaluate(pos, gt, userData)
	if err != nil {
		return err
	}
	for i, p := range pos {
		h := s.e(s.hMin + (s.hMax-s.hMin)*Clamp(math.Abs(dist[i]), 0, 1))
		t := s.e(s.tMin + (s.tMax-s.tMin)*Clamp(math.Abs(gt[i]), 0, 1))
		d := math.Abs(gyroid(p.X, p.Y, p.Z)-t) - h
		dist[i] = math.Max(d, d3.BoxDist(r3.Sub(p, s.center), s.size))
	}
	return nil
}
