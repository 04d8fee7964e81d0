package lit

import (
	"errors"

	literrors "github.com/toyz/lit/internal/errors"
)

// Error is the structured error returned by declaration and compilation
type Error = literrors.LitError

// ErrorCode classifies an Error
type ErrorCode = literrors.ErrorCode

const (
	AnnotationErrorCode    = literrors.AnnotationErrorCode
	RegistrationErrorCode  = literrors.RegistrationErrorCode
	DependencyErrorCode    = literrors.DependencyErrorCode
	CycleErrorCode         = literrors.CycleErrorCode
	ConfigurationErrorCode = literrors.ConfigurationErrorCode
	ServerErrorCode        = literrors.ServerErrorCode
)

// IsCode reports whether err, or any error it wraps, carries code
func IsCode(err error, code ErrorCode) bool {
	return literrors.HasCode(err, code)
}

// AsHTTPError finds the first *HTTPError in err's chain
func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he, true
	}
	return nil, false
}
