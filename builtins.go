package fsdf

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Registered names follow the lower snake case naming of the scripting
// front end. Optional trailing arguments may be omitted or passed as nil.

func init() {
	registerPrimitives()
	registerTransforms()
	registerCombinators()
}

var tau3 = r3.Vec{X: tau, Y: tau, Z: tau}

func registerPrimitives() {
	mustRegisterPrimitive("sphere", primitiveOf("sphere", func(a *argList) Shape {
		return Sphere(a.optFloat(1), a.optVec(Origin))
	}))
	mustRegisterPrimitive("plane", primitiveOf("plane", func(a *argList) Shape {
		return Plane(a.optVec(Up), a.optVec(Origin))
	}))
	mustRegisterPrimitive("slab", primitiveOf("slab", func(a *argList) Shape {
		ninf, inf := math.Inf(-1), math.Inf(1)
		x0, y0, z0 := a.optFloat(ninf), a.optFloat(ninf), a.optFloat(ninf)
		x1, y1, z1 := a.optFloat(inf), a.optFloat(inf), a.optFloat(inf)
		return Slab(Vec(x0, y0, z0), Vec(x1, y1, z1), a.optFloat(0))
	}))
	mustRegisterPrimitive("box", primitiveOf("box", func(a *argList) Shape {
		return Box(a.optSize(Vec(1, 1, 1)), a.optVec(Origin))
	}))
	mustRegisterPrimitive("box_bounds", primitiveOf("box_bounds", func(a *argList) Shape {
		return BoxBounds(a.vec(), a.vec())
	}))
	mustRegisterPrimitive("rounded_box", primitiveOf("rounded_box", func(a *argList) Shape {
		return RoundedBox(a.size(), a.float(), a.optVec(Origin))
	}))
	mustRegisterPrimitive("wireframe_box", primitiveOf("wireframe_box", func(a *argList) Shape {
		return WireframeBox(a.size(), a.float(), a.optVec(Origin))
	}))
	mustRegisterPrimitive("torus", primitiveOf("torus", func(a *argList) Shape {
		return Torus(a.float(), a.float())
	}))
	mustRegisterPrimitive("capsule", primitiveOf("capsule", func(a *argList) Shape {
		return Capsule(a.vec(), a.vec(), a.float())
	}))
	mustRegisterPrimitive("cylinder", primitiveOf("cylinder", func(a *argList) Shape {
		return Cylinder(a.float())
	}))
	mustRegisterPrimitive("capped_cylinder", primitiveOf("capped_cylinder", func(a *argList) Shape {
		return CappedCylinder(a.vec(), a.vec(), a.float())
	}))
	mustRegisterPrimitive("rounded_cylinder", primitiveOf("rounded_cylinder", func(a *argList) Shape {
		return RoundedCylinder(a.float(), a.float(), a.float(), a.float())
	}))
	mustRegisterPrimitive("capped_cone", primitiveOf("capped_cone", func(a *argList) Shape {
		return CappedCone(a.vec(), a.vec(), a.float(), a.float())
	}))
	mustRegisterPrimitive("rounded_cone", primitiveOf("rounded_cone", func(a *argList) Shape {
		return RoundedCone(a.float(), a.float(), a.float())
	}))
	mustRegisterPrimitive("ellipsoid", primitiveOf("ellipsoid", func(a *argList) Shape {
		return Ellipsoid(a.size())
	}))
	mustRegisterPrimitive("pyramid", primitiveOf("pyramid", func(a *argList) Shape {
		return Pyramid(a.float())
	}))
	mustRegisterPrimitive("tetrahedron", primitiveOf("tetrahedron", func(a *argList) Shape {
		return Tetrahedron(a.float())
	}))
	mustRegisterPrimitive("octahedron", primitiveOf("octahedron", func(a *argList) Shape {
		return Octahedron(a.float())
	}))
	mustRegisterPrimitive("dodecahedron", primitiveOf("dodecahedron", func(a *argList) Shape {
		return Dodecahedron(a.float())
	}))
	mustRegisterPrimitive("icosahedron", primitiveOf("icosahedron", func(a *argList) Shape {
		return Icosahedron(a.float())
	}))
	mustRegisterPrimitive("circle", primitiveOf("circle", func(a *argList) Shape {
		r := a.optFloat(1)
		c := a.optVec(Origin)
		return Circle(r, r2.Vec{X: c.X, Y: c.Y})
	}))

	// Triply periodic surfaces.
	mustRegisterPrimitive("MO", primitiveOf("MO", func(a *argList) Shape {
		return MO(a.float(), a.float(), a.size(), a.optVec(Origin))
	}))
	mustRegisterPrimitive("cylindrical_MO", primitiveOf("cylindrical_MO", func(a *argList) Shape {
		thickness, m, n, slant := a.float(), a.float(), a.float(), a.float()
		horizontal := false
		switch mode := a.optString("vertical"); mode {
		case "vertical":
		case "horizontal":
			horizontal = true
		default:
			a.fail("unknown mode %q", mode)
		}
		return CylindricalMO(thickness, m, n, slant, horizontal, a.optSize(tau3), a.optVec(Origin))
	}))
	mustRegisterPrimitive("EB", primitiveOf("EB", func(a *argList) Shape {
		return EB(a.float(), a.size(), a.optVec(Origin))
	}))
	mustRegisterPrimitive("cylindrical_EB", primitiveOf("cylindrical_EB", func(a *argList) Shape {
		return CylindricalEB(a.float(), a.size(), a.optVec(Origin))
	}))
	shells := []struct {
		name string
		fn   func(thickness, topology float64, size, center r3.Vec) Field
	}{
		{"schwarzP", SchwarzP},
		{"cylindrical_schwarzP", CylindricalSchwarzP},
		{"schwarzD", SchwarzD},
		{"cylindrical_schwarzD", CylindricalSchwarzD},
		{"fischer_koch", FischerKoch},
		{"lidinoid", Lidinoid},
		{"neovius", Neovius},
		{"gyroid", Gyroid},
	}
	for _, sh := range shells {
		fn := sh.fn
		mustRegisterPrimitive(sh.name, primitiveOf(sh.name, func(a *argList) Shape {
			return fn(a.float(), a.float(), a.size(), a.optVec(Origin))
		}))
	}
	mustRegisterPrimitive("cylindrical_gyroid", primitiveOf("cylindrical_gyroid", func(a *argList) Shape {
		return CylindricalGyroid(a.float(), a.float(), a.float(), a.optSize(tau3), a.optVec(Origin))
	}))
	mustRegisterPrimitive("graded_gyroid", primitiveOf("graded_gyroid", func(a *argList) Shape {
		return GradedGyroid(a.float(), a.float(), a.float(), a.float(), a.size(), a.optVec(Origin))
	}))
	mustRegisterPrimitive("FG_gyroid", primitiveOf("FG_gyroid", func(a *argList) Shape {
		hMin, hMax, fh := a.float(), a.float(), a.field()
		tMin, tMax, ft := a.float(), a.float(), a.field()
		return FGGyroid(hMin, hMax, fh, tMin, tMax, ft, a.size(), a.optVec(Origin), a.optEase())
	}))
	mustRegisterPrimitive("scherkSecond", primitiveOf("scherkSecond", func(a *argList) Shape {
		return ScherkSecond(a.float(), a.size(), a.optVec(Origin))
	}))
}

func registerTransforms() {
	mustRegister("translate", operator("translate", func(f Field, a *argList) Shape {
		return f.Translate(a.vec())
	}))
	mustRegister("scale", operator("scale", func(f Field, a *argList) Shape {
		return f.Scale(a.size())
	}))
	mustRegister("skin", operator("skin", func(f Field, a *argList) Shape {
		return f.Skin(a.float())
	}))
	mustRegister("rotate", operator("rotate", func(f Field, a *argList) Shape {
		return f.Rotate(a.float(), a.optVec(Z))
	}))
	mustRegister("rotateD", operator("rotateD", func(f Field, a *argList) Shape {
		return f.RotateD(a.float(), a.optVec(Z))
	}))
	mustRegister("rotate_to", operator("rotate_to", func(f Field, a *argList) Shape {
		return f.RotateTo(a.vec(), a.vec())
	}))
	mustRegister("orient", operator("orient", func(f Field, a *argList) Shape {
		return f.Orient(a.vec())
	}))
	mustRegister("mirror", operator("mirror", func(f Field, a *argList) Shape {
		return f.Mirror(a.optVec(Z), a.optVec(Origin))
	}))
	mustRegister("mirror_copy", operator("mirror_copy", func(f Field, a *argList) Shape {
		return f.MirrorCopy(a.optVec(Z), a.optVec(Origin))
	}))
	mustRegister("circular_array", operator("circular_array", func(f Field, a *argList) Shape {
		return f.CircularArray(a.int(), a.optFloat(0))
	}))
	mustRegister("elongate", operator("elongate", func(f Field, a *argList) Shape {
		return f.Elongate(a.size())
	}))
	mustRegister("twist", operator("twist", func(f Field, a *argList) Shape {
		return f.Twist(a.float())
	}))
	mustRegister("bend", operator("bend", func(f Field, a *argList) Shape {
		return f.Bend(a.float())
	}))
	mustRegister("bend_linear", operator("bend_linear", func(f Field, a *argList) Shape {
		return f.BendLinear(a.vec(), a.vec(), a.vec(), a.optEase())
	}))
	mustRegister("bend_radial", operator("bend_radial", func(f Field, a *argList) Shape {
		return f.BendRadial(a.float(), a.float(), a.float(), a.optEase())
	}))
	mustRegister("wrap_around", operator("wrap_around", func(f Field, a *argList) Shape {
		return f.WrapAround(a.float(), a.float(), a.optFloat(0), a.optEase())
	}))
	mustRegister("slice", operator("slice", func(f Field, a *argList) Shape {
		return f.Slice()
	}))
}

// fieldsAndK reads one or more fields optionally followed by a smoothing coefficient.
func fieldsAndK(a *argList, def float64) ([]Field, float64) {
	k := def
	if n := len(a.args); n > 0 {
		if v, ok := toFloat(a.args[n-1]); ok {
			k = v
			a.args = a.args[:n-1]
		}
	}
	fs := a.fields()
	if len(fs) == 0 {
		a.i++
		a.fail("missing field operand")
	}
	return fs, k
}

func registerCombinators() {
	union := operator("union", func(f Field, a *argList) Shape {
		fs, k := fieldsAndK(a, 0)
		return SmoothUnion(k, f, fs...)
	})
	intersection := operator("intersection", func(f Field, a *argList) Shape {
		fs, k := fieldsAndK(a, 0)
		return SmoothIntersection(k, f, fs...)
	})
	difference := operator("difference", func(f Field, a *argList) Shape {
		fs, k := fieldsAndK(a, 0)
		return SmoothDifference(k, f, fs...)
	})
	mustRegister("union", union)
	mustRegister("|", union)
	mustRegister("intersection", intersection)
	mustRegister("&", intersection)
	mustRegister("difference", difference)
	mustRegister("-", difference)
	mustRegister("blend", operator("blend", func(f Field, a *argList) Shape {
		fs, k := fieldsAndK(a, DefaultBlendK)
		return Blend(k, f, fs...)
	}))
	mustRegister("k", operator("k", func(f Field, a *argList) Shape {
		return f.K(a.float())
	}))
	mustRegister("negate", operator("negate", func(f Field, a *argList) Shape {
		return f.Negate()
	}))
	mustRegister("dilate", operator("dilate", func(f Field, a *argList) Shape {
		return f.Dilate(a.float())
	}))
	mustRegister("erode", operator("erode", func(f Field, a *argList) Shape {
		return f.Erode(a.float())
	}))
	mustRegister("shell", operator("shell", func(f Field, a *argList) Shape {
		return f.Shell(a.float())
	}))
	mustRegister("repeat", operator("repeat", func(f Field, a *argList) Shape {
		spacing := a.size()
		v, ok := a.next()
		padding := a.optInt(0)
		if !ok {
			return f.Repeat(spacing, padding)
		}
		return f.RepeatN(spacing, a.asVec(v, true), padding)
	}))

	mustRegister("transition_linear", operator("transition_linear", func(f Field, a *argList) Shape {
		return f.TransitionLinear(a.field(), a.optVec(r3.Scale(-1, Z)), a.optVec(Z), a.optEase())
	}))
	mustRegister("transition_spherical", operator("transition_spherical", func(f Field, a *argList) Shape {
		return f.TransitionSpherical(a.field(), a.optFloat(5), a.optVec(Origin), a.optFloat(1), a.optEase())
	}))
	mustRegister("transition_sdf", operator("transition_sdf", func(f Field, a *argList) Shape {
		return f.TransitionSDF(a.field(), a.field(), a.optFloat(DefaultTransitionSDFK), a.optFloat(1), a.optEase())
	}))
	mustRegister("transition_radial", operator("transition_radial", func(f Field, a *argList) Shape {
		return f.TransitionRadial(a.field(), a.optFloat(0), a.optFloat(1), a.optEase())
	}))
	mustRegister("transition_sigmoid", operator("transition_sigmoid", func(f Field, a *argList) Shape {
		return f.TransitionSigmoid(a.field(), a.optFloat(1), a.optEase())
	}))
	mustRegister("transition_general", operator("transition_general", func(f Field, a *argList) Shape {
		return f.TransitionGeneral(a.field(), a.field(), a.optFloat(1), a.optEase())
	}))
}
