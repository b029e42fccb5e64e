package tensor

import "fmt"

// Shape is a shared handle to the extents of a tensor.
//
// Tensors hold a *Shape, not a copy. Layers that do not change the shape
// of their input alias the predecessor's handle, so two tensors "share a
// shape" by identity: a change made by the owning layer through Set is
// seen by every alias without any propagation step.
//
// Only the layer that created a Shape may call Set on it.
type Shape struct {
	dims []int
}

// NewShape creates a shape handle with the given extents.
// Returns an error if any extent is not positive.
func NewShape(dims ...int) (*Shape, error) {
	for i, d := range dims {
		if d <= 0 {
			return nil, fmt.Errorf("%w: dimension %d is %d (must be > 0)", ErrInvalidShape, i, d)
		}
	}
	s := &Shape{dims: make([]int, len(dims))}
	copy(s.dims, dims)
	return s, nil
}

// MustShape is like NewShape but panics on error.
// Intended for static graph definitions.
func MustShape(dims ...int) *Shape {
	s, err := NewShape(dims...)
	if err != nil {
		panic(err)
	}
	return s
}

// ShapeOver returns a shape that uses dims as its storage without copying.
// Lets a layer keep its shape in a fixed-size array of its own struct.
func ShapeOver(dims []int) Shape {
	return Shape{dims: dims}
}

// Dim returns the number of axes.
func (s *Shape) Dim() int {
	return len(s.dims)
}

// At returns the extent of axis i.
func (s *Shape) At(i int) int {
	return s.dims[i]
}

// Set changes the extent of axis i.
func (s *Shape) Set(i, extent int) {
	s.dims[i] = extent
}

// Dims returns a copy of the extents.
func (s *Shape) Dims() []int {
	out := make([]int, len(s.dims))
	copy(out, s.dims)
	return out
}

// NumElements returns the product of all extents.
func (s *Shape) NumElements() int {
	n := 1
	for _, d := range s.dims {
		n *= d
	}
	return n
}

// Equal reports whether two shapes have the same extents.
// Identity is not required; use == on the handles for that.
func (s *Shape) Equal(other *Shape) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil || len(s.dims) != len(other.dims) {
		return false
	}
	for i := range s.dims {
		if s.dims[i] != other.dims[i] {
			return false
		}
	}
	return true
}

// String formats the shape as [d0 d1 ...].
func (s *Shape) String() string {
	if s == nil {
		return "[]"
	}
	return fmt.Sprint(s.dims)
}
