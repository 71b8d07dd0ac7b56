// Package ease names the monotonic easing functions of github.com/fogleman/ease
// that map [0,1] onto [0,1]. They shape the progress parameter of transitions
// and bends.
package ease

import (
	"fmt"
	"math"
	"sort"

	easing "github.com/fogleman/ease"
)

// Func maps t in [0,1] to an eased value in [0,1]. Every Func returned by
// ByName satisfies f(0) = 0, f(1) = 1 and is non-decreasing.
type Func func(t float64) float64

// Linear is the identity easing and the default wherever a Func is optional.
var Linear Func = easing.Linear

// Smoothstep is the cubic Hermite step 3t²-2t³.
func Smoothstep(t float64) float64 { return t * t * (3 - 2*t) }

// Clamped returns f with its argument clamped into [0,1]. A nil f yields
// a clamped Linear.
func Clamped(f Func) Func {
	if f == nil {
		f = Linear
	}
	return func(t float64) float64 {
		return f(math.Min(1, math.Max(0, t)))
	}
}

// OrLinear returns f, or Linear when f is nil.
func OrLinear(f Func) Func {
	if f == nil {
		return Linear
	}
	return f
}

// Elastic, back and bounce easings overshoot [0,1] or double back and are
// left out.
var byName = map[string]Func{
	"linear":       easing.Linear,
	"in_quad":      easing.InQuad,
	"out_quad":     easing.OutQuad,
	"in_out_quad":  easing.InOutQuad,
	"in_cubic":     easing.InCubic,
	"out_cubic":    easing.OutCubic,
	"in_out_cubic": easing.InOutCubic,
	"in_quart":     easing.InQuart,
	"out_quart":    easing.OutQuart,
	"in_out_quart": easing.InOutQuart,
	"in_quint":     easing.InQuint,
	"out_quint":    easing.OutQuint,
	"in_out_quint": easing.InOutQuint,
	"in_sine":      easing.InSine,
	"out_sine":     easing.OutSine,
	"in_out_sine":  easing.InOutSine,
	"in_expo":      easing.InExpo,
	"out_expo":     easing.OutExpo,
	"in_out_expo":  easing.InOutExpo,
	"in_circ":      easing.InCirc,
	"out_circ":     easing.OutCirc,
	"in_out_circ":  easing.InOutCirc,
	"smoothstep":   Smoothstep,
}

// ByName looks up an easing function by its snake_case name, e.g. "in_out_quad".
func ByName(name string) (Func, error) {
	f, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown easing function %q", name)
	}
	return f, nil
}

// MustByName is like ByName but panics on unknown names.
func MustByName(name string) Func {
	f, err := ByName(name)
	if err != nil {
		panic(err)
	}
	return f
}

// Names returns the sorted names accepted by ByName.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
