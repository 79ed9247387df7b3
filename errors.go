package meshgo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRotation is returned when a 3D drawing rotation matrix is not
	// orthonormal within tolerance.
	ErrInvalidRotation = errors.New("matrix is not a rotation matrix")

	// ErrInvalidSimplex is the base error for validity violations detected by
	// Mesh.CheckValidity.
	ErrInvalidSimplex = errors.New("invalid simplex")

	// ErrEmptyMesh is returned when an operation needs at least one vertex.
	ErrEmptyMesh = errors.New("mesh has no vertex")
)

// ErrDimensionMismatch indicates a point/mesh dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// ErrInvalidDimension indicates a dimension outside the supported range,
// e.g. a non-positive construction dimension or an export/draw dimension
// greater than 3.
type ErrInvalidDimension struct {
	Dimension int
	cause     error
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

func (e *ErrInvalidDimension) Unwrap() error { return e.cause }

// ErrOutOfRange indicates a vertex or simplex index outside the stored range.
type ErrOutOfRange struct {
	Kind  string // "vertex" or "simplex"
	Index int
	Bound int
}

func (e *ErrOutOfRange) Error() string {
	return fmt.Sprintf("%s index %d out of range, must be less than %d", e.Kind, e.Index, e.Bound)
}

func newVertexRangeError(index, bound int) error {
	return &ErrOutOfRange{Kind: "vertex", Index: index, Bound: bound}
}

func newSimplexRangeError(index, bound int) error {
	return &ErrOutOfRange{Kind: "simplex", Index: index, Bound: bound}
}
