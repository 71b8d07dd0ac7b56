package script

import (
	"fmt"
	"math"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/soypat/fsdf"
)

// sexpShape carries an fsdf.Shape through the interpreter.
type sexpShape struct {
	shape fsdf.Shape
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(shape %dD)", s.shape.Dims())
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// isIdent reports whether name can be bound as a lisp function. Symbolic
// aliases such as "-" would shadow arithmetic.
func isIdent(name string) bool {
	for i := 0; i < len(name); i++ {
		c := name[i]
		letter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
		if !letter && (i == 0 || c < '0' || c > '9') {
			return false
		}
	}
	return name != ""
}

func registerBuiltins(env *zygo.Zlisp) {
	for _, name := range fsdf.Primitives() {
		if !isIdent(name) {
			continue
		}
		env.AddFunction(name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			goArgs, err := toGoArgs(args)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			s, err := fsdf.New(name, goArgs...)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpShape{shape: s}, nil
		})
	}
	for _, name := range fsdf.Operators() {
		if !isIdent(name) {
			continue
		}
		env.AddFunction(name, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) == 0 {
				return zygo.SexpNull, fmt.Errorf("%s requires a field as first argument", name)
			}
			f, err := toField(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			goArgs, err := toGoArgs(args[1:])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			s, err := f.Call(name, goArgs...)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpShape{shape: s}, nil
		})
	}
	env.AddFunction("pi", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 0 {
			return zygo.SexpNull, fmt.Errorf("pi takes no arguments")
		}
		return &zygo.SexpFloat{Val: math.Pi}, nil
	})
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		for i, a := range args {
			if _, err := toFloat64(a); err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: component %d: %w", i, err)
			}
		}
		return &zygo.SexpArray{Val: args}, nil
	})
}

func toField(s zygo.Sexp) (fsdf.Field, error) {
	sh, ok := s.(*sexpShape)
	if !ok {
		return fsdf.Field{}, fmt.Errorf("expected field, got %T (%s)", s, s.SexpString(nil))
	}
	f, ok := sh.shape.(fsdf.Field)
	if !ok {
		return fsdf.Field{}, fmt.Errorf("expected 3D field, got %dD shape", sh.shape.Dims())
	}
	return f, nil
}

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toGoArgs(args []zygo.Sexp) ([]any, error) {
	out := make([]any, len(args))
	for i, a := range args {
		v, err := toGo(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// toGo converts interpreter values into the argument types accepted by the
// fsdf registry.
func toGo(s zygo.Sexp) (any, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return v.Val, nil
	case *zygo.SexpFloat:
		return v.Val, nil
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpStr:
		return v.S, nil
	case *sexpShape:
		return v.shape, nil
	case *zygo.SexpArray:
		return toGoList(v.Val)
	case *zygo.SexpPair:
		elems, err := zygo.ListToArray(v)
		if err != nil {
			return nil, err
		}
		return toGoList(elems)
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("unsupported value %T (%s)", s, s.SexpString(nil))
}

func toGoList(elems []zygo.Sexp) ([]any, error) {
	out := make([]any, len(elems))
	for i, e := range elems {
		v, err := toGo(e)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
