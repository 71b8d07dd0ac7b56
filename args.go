package fsdf

import (
	"fmt"

	"github.com/soypat/fsdf/ease"
	"gonum.org/v1/gonum/spatial/r3"
)

// argList consumes positional operator arguments. A malformed argument
// aborts parsing with an argError panic recovered by recoverShape.
type argList struct {
	op   string
	args []any
	i    int
}

func (a *argList) fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	panic(argError{err: shapeErrorf("%s: argument %d: %s", a.op, a.i, msg)})
}

// next returns the next argument, or ok == false when none remain. An
// explicit nil counts as absent so callers can skip to later arguments.
func (a *argList) next() (v any, ok bool) {
	if a.i >= len(a.args) {
		return nil, false
	}
	v = a.args[a.i]
	a.i++
	return v, v != nil
}

func (a *argList) required() any {
	if a.i >= len(a.args) {
		a.i++
		a.fail("missing required argument")
	}
	v := a.args[a.i]
	a.i++
	if v == nil {
		a.fail("nil required argument")
	}
	return v
}

// done fails if arguments remain unconsumed.
func (a *argList) done() {
	if a.i < len(a.args) {
		a.i++
		a.fail("too many arguments, want %d got %d", a.i-1, len(a.args))
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}

func (a *argList) asFloat(v any) float64 {
	f, ok := toFloat(v)
	if !ok {
		a.fail("want number, got %T", v)
	}
	return f
}

func (a *argList) float() float64 { return a.asFloat(a.required()) }

func (a *argList) optFloat(def float64) float64 {
	v, ok := a.next()
	if !ok {
		return def
	}
	return a.asFloat(v)
}

func (a *argList) asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case int32:
		return int(n)
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	}
	a.fail("want integer, got %v", v)
	return 0
}

func (a *argList) int() int { return a.asInt(a.required()) }

func (a *argList) optInt(def int) int {
	v, ok := a.next()
	if !ok {
		return def
	}
	return a.asInt(v)
}

// asVec converts v to a 3-vector. When broadcast is set a scalar fills all
// three components.
func (a *argList) asVec(v any, broadcast bool) r3.Vec {
	var comps []float64
	switch x := v.(type) {
	case r3.Vec:
		return x
	case [3]float64:
		return r3.Vec{X: x[0], Y: x[1], Z: x[2]}
	case []float64:
		comps = x
	case []any:
		comps = make([]float64, len(x))
		for i, c := range x {
			f, ok := toFloat(c)
			if !ok {
				a.fail("vector component %d: want number, got %T", i, c)
			}
			comps[i] = f
		}
	default:
		if f, ok := toFloat(v); ok && broadcast {
			return r3.Vec{X: f, Y: f, Z: f}
		}
		a.fail("want 3-vector, got %T", v)
	}
	if len(comps) != 3 {
		a.fail("want 3-vector, got %d components", len(comps))
	}
	return r3.Vec{X: comps[0], Y: comps[1], Z: comps[2]}
}

func (a *argList) vec() r3.Vec { return a.asVec(a.required(), false) }

func (a *argList) optVec(def r3.Vec) r3.Vec {
	v, ok := a.next()
	if !ok {
		return def
	}
	return a.asVec(v, false)
}

// size reads a 3-vector that may be given as a single scalar.
func (a *argList) size() r3.Vec { return a.asVec(a.required(), true) }

func (a *argList) optSize(def r3.Vec) r3.Vec {
	v, ok := a.next()
	if !ok {
		return def
	}
	return a.asVec(v, true)
}

func (a *argList) asField(v any) Field {
	switch f := v.(type) {
	case Field:
		if f.IsZero() {
			a.fail("zero Field")
		}
		return f
	case SDF3:
		return NewField(f)
	case Field2:
		a.fail("want 3D field, got 2D field")
	}
	a.fail("want field, got %T", v)
	return Field{}
}

func (a *argList) field() Field { return a.asField(a.required()) }

// fields consumes all remaining arguments as fields.
func (a *argList) fields() []Field {
	var fs []Field
	for a.i < len(a.args) {
		fs = append(fs, a.asField(a.required()))
	}
	return fs
}

// optEase reads an easing function by value or by name.
func (a *argList) optEase() ease.Func {
	v, ok := a.next()
	if !ok {
		return ease.Linear
	}
	switch e := v.(type) {
	case ease.Func:
		return e
	case func(float64) float64:
		return e
	case string:
		f, err := ease.ByName(e)
		if err != nil {
			a.fail("%v", err)
		}
		return f
	}
	a.fail("want easing function or name, got %T", v)
	return nil
}

func (a *argList) optBool(def bool) bool {
	v, ok := a.next()
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		a.fail("want bool, got %T", v)
	}
	return b
}

func (a *argList) optString(def string) string {
	v, ok := a.next()
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		a.fail("want string, got %T", v)
	}
	return s
}
