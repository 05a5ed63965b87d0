package network

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by system construction and by the cascade preconditions.
var (
	ErrShapeMismatch     = errors.New("shape mismatch")
	ErrMissingLayer      = errors.New("missing layer")
	ErrInvalidDependency = errors.New("invalid dependency mapping")
	ErrEdgeOutOfRange    = errors.New("edge endpoint out of range")
)

// SystemError provides structured error information for system operations.
type SystemError struct {
	Op      string // Operation that failed (e.g., "NewDependencyMapping", "cascade")
	Entity  string // Entity involved (e.g., "layer", "dependency", "mask")
	Context string // Additional context
	Cause   error  // Underlying error
}

// Error implements the error interface.
func (e *SystemError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *SystemError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *SystemError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building SystemErrors.
type ErrorBuilder struct {
	err SystemError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: SystemError{Op: op}}
}

// Layer sets the entity to the named layer.
func (b *ErrorBuilder) Layer(name string) *ErrorBuilder {
	b.err.Entity = fmt.Sprintf("layer %q", name)
	return b
}

// Dependency sets the entity to "dependency".
func (b *ErrorBuilder) Dependency() *ErrorBuilder {
	b.err.Entity = "dependency"
	return b
}

// Mask sets the entity to "mask".
func (b *ErrorBuilder) Mask() *ErrorBuilder {
	b.err.Entity = "mask"
	return b
}

// System sets the entity to "system".
func (b *ErrorBuilder) System() *ErrorBuilder {
	b.err.Entity = "system"
	return b
}

// Contextf sets additional context information.
func (b *ErrorBuilder) Contextf(format string, args ...any) *ErrorBuilder {
	b.err.Context = fmt.Sprintf(format, args...)
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// IsShapeMismatch returns true if the error is a shape mismatch.
func IsShapeMismatch(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

// IsMissingLayer returns true if the error reports an absent layer.
func IsMissingLayer(err error) bool {
	return errors.Is(err, ErrMissingLayer)
}

// IsInvalidDependency returns true if the error reports a malformed dependency mapping.
func IsInvalidDependency(err error) bool {
	return errors.Is(err, ErrInvalidDependency)
}
