package fsdf

import (
	"errors"
	"fmt"
)

// Chain applies registered operators one after another by name:
//
//	f, err := fsdf.NewChain(fsdf.Sphere(1, fsdf.Origin)).
//		Do("translate", fsdf.X).
//		Do("rotateD", 45.0, fsdf.Z).
//		Field()
//
// A failing step is recorded and skipped; later steps operate on the last
// valid shape. All failures are reported together.
type Chain struct {
	shape     Shape
	accumErrs []error
}

// NewChain starts a chain at f.
func NewChain(f Field) *Chain {
	return &Chain{shape: f}
}

// Do applies the operator registered under name to the current shape.
func (c *Chain) Do(name string, args ...any) *Chain {
	f, ok := c.shape.(Field)
	if !ok {
		c.accumErrs = append(c.accumErrs, fmt.Errorf("%s: %w: operators apply to 3D fields, have %dD shape", name, ErrShape, c.shape.Dims()))
		return c
	}
	s, err := f.Call(name, args...)
	if err != nil {
		c.accumErrs = append(c.accumErrs, err)
		return c
	}
	c.shape = s
	return c
}

// Err returns the accumulated step errors joined, or nil.
func (c *Chain) Err() error {
	if len(c.accumErrs) == 0 {
		return nil
	}
	return errors.Join(c.accumErrs...)
}

// Shape returns the current shape and the accumulated errors.
func (c *Chain) Shape() (Shape, error) {
	return c.shape, c.Err()
}

// Field returns the current shape as a 3D field.
func (c *Chain) Field() (Field, error) {
	err := c.Err()
	if err != nil {
		return Field{}, err
	}
	f, ok := c.shape.(Field)
	if !ok {
		return Field{}, fmt.Errorf("%w: chain result is %dD", ErrShape, c.shape.Dims())
	}
	return f, nil
}

// Field2 returns the current shape as a 2D field.
func (c *Chain) Field2() (Field2, error) {
	err := c.Err()
	if err != nil {
		return Field2{}, err
	}
	f, ok := c.shape.(Field2)
	if !ok {
		return Field2{}, fmt.Errorf("%w: chain result is %dD", ErrShape, c.shape.Dims())
	}
	return f, nil
}
