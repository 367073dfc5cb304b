// Package domain defines the metadata model, output model, and errors for
// the report mapping compiler.
package domain

import "fmt"

// NotFoundError indicates a metadata entity was not found.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// ValidationError indicates invalid input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a conflict (e.g., duplicate resource).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// StoreUnavailableError indicates the metadata store cannot be read or
// written. This is the only fatal error category: a run aborts without
// committing partial artifacts.
type StoreUnavailableError struct {
	Message string
	Err     error
}

func (e *StoreUnavailableError) Error() string { return e.Message }

func (e *StoreUnavailableError) Unwrap() error { return e.Err }

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...interface{}) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// ErrStoreUnavailable wraps a store-level failure into the fatal category.
func ErrStoreUnavailable(err error, format string, args ...interface{}) *StoreUnavailableError {
	return &StoreUnavailableError{Message: fmt.Sprintf(format, args...), Err: err}
}
