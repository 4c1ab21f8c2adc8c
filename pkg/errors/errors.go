// Package errors provides custom error types for the matchbook system.
// These errors keep the two failure classes of the matching pipeline apart:
// schema violations found while normalizing a document, and upstream
// extraction failures. Neither is ever folded into a reconciliation verdict.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the matchbook system
var (
	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidDocument indicates that a record failed schema normalization
	ErrInvalidDocument = errors.New("invalid document")

	// ErrExtractionFailed indicates that the upstream extractor could not
	// produce a structured record
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrAPIKeyRequired indicates that an API key is required but not provided
	ErrAPIKeyRequired = errors.New("API key required")

	// ErrUnsupportedFormat indicates a file format the loader does not handle
	ErrUnsupportedFormat = errors.New("unsupported format")
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

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// SchemaError represents a record that violates the document schema.
// Field names the offending field; absence of an optional field is never
// a SchemaError, only a present value that cannot be coerced.
type SchemaError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema violation in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("schema violation: %s", e.Message)
}

// Is implements errors.Is support
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// NewSchemaError creates a new SchemaError
func NewSchemaError(field string, value interface{}, message string) *SchemaError {
	return &SchemaError{Field: field, Value: value, Message: message}
}

// ExtractionError represents a failure of the upstream extraction
// collaborator. It is a distinct class from both schema violations and
// reconciliation verdicts: a document that could not be extracted never
// reaches the engine.
type ExtractionError struct {
	Doc     string // "invoice" or "purchase_order"
	Message string
	Err     error
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	if e.Doc != "" {
		return fmt.Sprintf("extraction failed for %s: %s", e.Doc, e.Message)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ExtractionError) Is(target error) bool {
	return target == ErrExtractionFailed
}

// NewExtractionError creates a new ExtractionError
func NewExtractionError(doc, message string, err error) *ExtractionError {
	return &ExtractionError{
		Doc:     doc,
		Message: message,
		Err:     err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json" or "yaml"
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

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsSchemaError checks if an error is a document schema violation
func IsSchemaError(err error) bool {
	return errors.Is(err, ErrInvalidDocument)
}

// IsExtractionError checks if an error came from the extraction collaborator
func IsExtractionError(err error) bool {
	return errors.Is(err, ErrExtractionFailed)
}

// IsAPIKeyError checks if an error is related to API keys
func IsAPIKeyError(err error) bool {
	return errors.Is(err, ErrAPIKeyRequired)
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapExtraction wraps an error as an ExtractionError
func WrapExtraction(doc string, err error) error {
	if err == nil {
		return nil
	}
	return NewExtractionError(doc, err.Error(), err)
}
