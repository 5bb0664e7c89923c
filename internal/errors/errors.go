// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrNotSignedIn        = errors.New("not signed in")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSignUpUnsupported  = errors.New("sign up not supported by this provider")
	ErrRemoteUnavailable  = errors.New("remote store unavailable")
	ErrInvalidPath        = errors.New("invalid document path")
	ErrNativeDate         = errors.New("native date values are not accepted by the document store")
	ErrUnknownSession     = errors.New("unknown session name")
	ErrUnknownInstrument  = errors.New("unknown instrument")
	ErrModelExists        = errors.New("model already exists")
	ErrModelNotFound      = errors.New("model not found")
	ErrConfigInvalid      = errors.New("invalid configuration")
)

// StoreError represents an error from the document store or local cache.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("store error [%s] %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("store error [%s] %s", e.Op, e.Path)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(op, path string, err error) *StoreError {
	return &StoreError{Op: op, Path: path, Err: err}
}

// ValidationError represents a validation error on user input.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
