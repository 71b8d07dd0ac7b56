package fsdf

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Operator builds a new Shape from f and positional arguments. Operators
// never modify f.
type Operator func(f Field, args ...any) (Shape, error)

// Primitive builds a new Shape from positional arguments.
type Primitive func(args ...any) (Shape, error)

// The registry maps operator and primitive names to their constructors. It
// is written during package initialization and sealed on first lookup,
// after which it is read only.
var registry = struct {
	mu     sync.RWMutex
	sealed bool
	ops    map[string]Operator
	prims  map[string]Primitive
	seal   sync.Once
}{
	ops:   make(map[string]Operator),
	prims: make(map[string]Primitive),
}

// Register adds op to the registry under name. It fails with
// ErrRegistrySealed once any lookup has happened, so it should be called
// from an init function.
func Register(name string, op Operator) error {
	if op == nil {
		return errors.New("nil operator")
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.sealed {
		return fmt.Errorf("register %q: %w", name, ErrRegistrySealed)
	}
	if _, ok := registry.ops[name]; ok {
		return fmt.Errorf("operator %q already registered", name)
	}
	registry.ops[name] = op
	return nil
}

// RegisterPrimitive is Register for primitives.
func RegisterPrimitive(name string, p Primitive) error {
	if p == nil {
		return errors.New("nil primitive")
	}
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.sealed {
		return fmt.Errorf("register %q: %w", name, ErrRegistrySealed)
	}
	if _, ok := registry.prims[name]; ok {
		return fmt.Errorf("primitive %q already registered", name)
	}
	registry.prims[name] = p
	return nil
}

func sealRegistry() {
	registry.seal.Do(func() {
		registry.mu.Lock()
		registry.sealed = true
		nops, nprims := len(registry.ops), len(registry.prims)
		registry.mu.Unlock()
		Logger().Debug("operator registry sealed", "operators", nops, "primitives", nprims)
	})
}

// Lookup returns the operator registered under name. The error matches
// ErrUnknownCapability when there is none.
func Lookup(name string) (Operator, error) {
	sealRegistry()
	registry.mu.RLock()
	op, ok := registry.ops[name]
	registry.mu.RUnlock()
	if !ok {
		return nil, &CapabilityError{Name: name}
	}
	return op, nil
}

// LookupPrimitive returns the primitive registered under name. The error
// matches ErrUnknownCapability when there is none.
func LookupPrimitive(name string) (Primitive, error) {
	sealRegistry()
	registry.mu.RLock()
	p, ok := registry.prims[name]
	registry.mu.RUnlock()
	if !ok {
		return nil, &CapabilityError{Name: name}
	}
	return p, nil
}

// Operators returns the sorted names of all registered operators.
func Operators() []string {
	sealRegistry()
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.ops))
	for name := range registry.ops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Primitives returns the sorted names of all registered primitives.
func Primitives() []string {
	sealRegistry()
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.prims))
	for name := range registry.prims {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds the primitive registered under name.
func New(name string, args ...any) (Shape, error) {
	p, err := LookupPrimitive(name)
	if err != nil {
		return nil, err
	}
	return p(args...)
}

// Op returns the operator registered under name bound to f as its first
// argument.
func (f Field) Op(name string) (func(args ...any) (Shape, error), error) {
	op, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return func(args ...any) (Shape, error) { return op(f, args...) }, nil
}

// Call invokes the operator registered under name with f as its first argument.
func (f Field) Call(name string, args ...any) (Shape, error) {
	bound, err := f.Op(name)
	if err != nil {
		return nil, err
	}
	return bound(args...)
}

// operator adapts a builder reading positional arguments into an Operator.
// Argument errors and constructor panics are returned as errors.
func operator(name string, build func(f Field, a *argList) Shape) Operator {
	return func(f Field, args ...any) (s Shape, err error) {
		defer recoverShape(name, &err)
		if f.IsZero() {
			return nil, fmt.Errorf("%s: %w", name, errNilField)
		}
		a := &argList{op: name, args: args}
		s = build(f, a)
		a.done()
		return s, nil
	}
}

func primitiveOf(name string, build func(a *argList) Shape) Primitive {
	return func(args ...any) (s Shape, err error) {
		defer recoverShape(name, &err)
		a := &argList{op: name, args: args}
		s = build(a)
		a.done()
		return s, nil
	}
}

func mustRegister(name string, op Operator) {
	if err := Register(name, op); err != nil {
		panic(err)
	}
}

func mustRegisterPrimitive(name string, p Primitive) {
	if err := RegisterPrimitive(name, p); err != nil {
		panic(err)
	}
}
