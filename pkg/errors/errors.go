// Package errors provides custom error types for the cocokit system.
// These errors enable programmatic error checking and carry enough
// context (file, entity kind, offending id) to diagnose malformed
// dataset inputs.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the cocokit system
var (
	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingReference indicates a dataset entity references an id
	// that is absent from the declaring section of its own file
	ErrMissingReference = errors.New("missing reference")
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ReferenceError represents a referential-integrity failure inside a
// single dataset file: an entity refers to a category or license id
// that the file never declares. This is fatal to the whole run because
// the input file itself is internally inconsistent.
type ReferenceError struct {
	File    string // source dataset file path
	Kind    string // referenced entity kind: "category", "license"
	ID      int64  // the id that could not be resolved
	Subject string // the referencing entity, e.g. "annotation 12"
}

// Error implements the error interface
func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s id %d not found for %s in file %s", e.Kind, e.ID, e.Subject, e.File)
}

// Is implements errors.Is support
func (e *ReferenceError) Is(target error) bool {
	return target == ErrMissingReference
}

// NewReferenceError creates a new ReferenceError
func NewReferenceError(file, kind string, id int64, subject string) *ReferenceError {
	return &ReferenceError{File: file, Kind: kind, ID: id, Subject: subject}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "copy"
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("IO error during %s: %v", e.Operation, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper wrapping functions for common patterns

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, File: file, Message: err.Error(), Err: err}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{Operation: operation, Path: path, Err: err}
}

// IsMissingReference checks if an error is a referential-integrity error
func IsMissingReference(err error) bool {
	return errors.Is(err, ErrMissingReference)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
