// Package vector provides the dense vector type and similarity metrics over it.
package vector

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when vectors of different lengths are compared or combined.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrEmptyInput is returned when an operation needs at least one vector.
	ErrEmptyInput = errors.New("no vectors given")
)

// Vector is a dense embedding of fixed dimension.
type Vector []float64

// Dimensions returns the length of v.
func (v Vector) Dimensions() int {
	return len(v)
}

// Clone returns a copy of v that shares no memory with it.
func (v Vector) Clone() Vector {
	if v == nil {
		return nil
	}
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Equal reports whether a and b have the same dimension and coordinates.
func Equal(a, b Vector) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FromFloat32 converts a float32 embedding, as most model runtimes return, into a Vector.
func FromFloat32(x []float32) Vector {
	out := make(Vector, len(x))
	for i, v := range x {
		out[i] = float64(v)
	}
	return out
}

// CheckDimensions returns the shared dimension of vs. An empty slice has dimension 0.
func CheckDimensions(vs []Vector) (int, error) {
	if len(vs) == 0 {
		return 0, nil
	}
	dim := len(vs[0])
	for i, v := range vs[1:] {
		if len(v) != dim {
			return 0, fmt.Errorf("%w: vector %d has %d dimensions, expected %d", ErrDimensionMismatch, i+1, len(v), dim)
		}
	}
	return dim, nil
}

func mismatch(a, b Vector) error {
	return fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
}
