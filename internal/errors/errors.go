// Package errors provides a lightweight structured error type (DocNavError)
// for category-based classification in the CLI.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a DocNav error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategorySpec       ErrorCategory = "spec"

	// Output and filesystem errors
	CategoryExport     ErrorCategory = "export"
	CategoryFileSystem ErrorCategory = "filesystem"

	// Runtime and infrastructure errors
	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// DocNavError is a structured error with category, severity and context
type DocNavError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for DocNavError
type ContextFields map[string]any

// Error implements the error interface
func (e *DocNavError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping
func (e *DocNavError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *DocNavError) WithContext(key string, value any) *DocNavError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new DocNavError
func New(category ErrorCategory, severity ErrorSeverity, message string) *DocNavError {
	return &DocNavError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new DocNavError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *DocNavError {
	return &DocNavError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the outermost DocNavError in err's chain.
func As(err error) (*DocNavError, bool) {
	var dne *DocNavError
	if stderrors.As(err, &dne) {
		return dne, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if dne, ok := As(err); ok {
		return dne.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a DocNavError
func GetCategory(err error) ErrorCategory {
	if dne, ok := As(err); ok {
		return dne.Category
	}
	return CategoryInternal
}
