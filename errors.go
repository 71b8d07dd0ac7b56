package fsdf

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/soypat/fsdf/internal/d3"
)

var (
	// ErrUnknownCapability is matched by errors returned when an operator
	// name is not present in the registry.
	ErrUnknownCapability = errors.New("unknown capability")
	// ErrDegenerateAxis is returned when a direction is derived from a zero vector.
	ErrDegenerateAxis = d3.ErrDegenerateAxis
	// ErrShape is matched by errors for arguments of the wrong dimension or type.
	ErrShape = errors.New("bad argument shape")
	// ErrRegistrySealed is returned by Register once operators have been looked up.
	ErrRegistrySealed = errors.New("operator registry sealed")

	errNilField         = errors.New("evaluate of zero Field")
	errMismatchedLength = errors.New("position and distance buffer length mismatch")
)

// CapabilityError is returned when a Field is asked for an operator that
// was never registered.
type CapabilityError struct {
	Name string
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownCapability, e.Name)
}

// Is reports whether target is ErrUnknownCapability.
func (e *CapabilityError) Is(target error) bool { return target == ErrUnknownCapability }

// ShapeError wraps a panic raised while constructing a Field through the
// registry. The typed constructors panic on invalid input; dynamic
// construction reports those panics as errors.
type ShapeError struct {
	Op       string
	PanicObj any
	Stack    string
}

func (s *ShapeError) Error() string {
	return fmt.Sprintf("%s: %v", s.Op, s.PanicObj)
}

// Unwrap returns the panic value if it was an error.
func (s *ShapeError) Unwrap() error {
	err, _ := s.PanicObj.(error)
	return err
}

// recoverShape converts a panic into a *ShapeError stored in *err.
// It must be deferred directly.
func recoverShape(op string, err *error) {
	if a := recover(); a != nil {
		if ae, ok := a.(argError); ok {
			*err = ae.err
			return
		}
		*err = &ShapeError{
			Op:       op,
			PanicObj: a,
			Stack:    string(debug.Stack()),
		}
	}
}

// argError aborts argument parsing. It is raised and recovered within the
// registry so it never escapes the package.
type argError struct{ err error }

func shapeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrShape, fmt.Sprintf(format, args...))
}
