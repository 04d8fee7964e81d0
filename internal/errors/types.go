package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// LitError defines the base interface for all lit framework errors
type LitError interface {
	error
	ErrorCode() ErrorCode
	Context() map[string]interface{}
	Suggestions() []string
	Unwrap() error
}

// ErrorCode represents the type of error that occurred
type ErrorCode int

const (
	UnknownErrorCode ErrorCode = iota

	// Declaration errors
	AnnotationErrorCode
	RegistrationErrorCode

	// Compilation errors
	DependencyErrorCode
	CycleErrorCode

	// Runtime errors
	ConfigurationErrorCode
	ServerErrorCode
)

// String returns the string representation of the error code
func (e ErrorCode) String() string {
	switch e {
	case AnnotationErrorCode:
		return "AnnotationError"
	case RegistrationErrorCode:
		return "RegistrationError"
	case DependencyErrorCode:
		return "DependencyError"
	case CycleErrorCode:
		return "CycleError"
	case ConfigurationErrorCode:
		return "ConfigurationError"
	case ServerErrorCode:
		return "ServerError"
	default:
		return "UnknownError"
	}
}

// BaseError provides a common implementation of the LitError interface
type BaseError struct {
	Code        ErrorCode              // type of error
	Message     string                 // error message
	Cause       error                  // underlying error cause
	ContextData map[string]interface{} // additional context information
	Hints       []string               // helpful suggestions for fixing the error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

// ErrorCode returns the error code
func (e *BaseError) ErrorCode() ErrorCode {
	return e.Code
}

// Context returns the error context data
func (e *BaseError) Context() map[string]interface{} {
	if e.ContextData == nil {
		return make(map[string]interface{})
	}
	return e.ContextData
}

// Suggestions returns helpful suggestions for fixing the error
func (e *BaseError) Suggestions() []string {
	return e.Hints
}

// Unwrap returns the underlying error cause for error chain inspection
func (e *BaseError) Unwrap() error {
	return e.Cause
}

// WithCause adds an underlying error cause
func (e *BaseError) WithCause(cause error) *BaseError {
	e.Cause = cause
	return e
}

// WithContext adds context data to the error
func (e *BaseError) WithContext(key string, value interface{}) *BaseError {
	if e.ContextData == nil {
		e.ContextData = make(map[string]interface{})
	}
	e.ContextData[key] = value
	return e
}

// WithSuggestion adds a helpful suggestion for fixing the error
func (e *BaseError) WithSuggestion(suggestion string) *BaseError {
	e.Hints = append(e.Hints, suggestion)
	return e
}

// Detailed renders the message followed by context and hints, one per line.
// Used by the CLI when reporting a failed compilation.
func (e *BaseError) Detailed() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Error()))

	keys := make([]string, 0, len(e.ContextData))
	for k := range e.ContextData {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("\n  %s: %v", k, e.ContextData[k]))
	}
	for _, hint := range e.Hints {
		b.WriteString("\n  hint: " + hint)
	}
	return b.String()
}

// New creates a new BaseError with the specified code and message
func New(code ErrorCode, message string) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Hints:   make([]string, 0),
	}
}

// Newf creates a new BaseError with formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BaseError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates a new error that wraps another error
func Wrap(code ErrorCode, message string, cause error) *BaseError {
	return &BaseError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Hints:   make([]string, 0),
	}
}

// HasCode reports whether any LitError in err's chain carries code
func HasCode(err error, code ErrorCode) bool {
	for err != nil {
		var litErr LitError
		if !errors.As(err, &litErr) {
			return false
		}
		if litErr.ErrorCode() == code {
			return true
		}
		err = litErr.Unwrap()
	}
	return false
}
