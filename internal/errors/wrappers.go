package errors

import (
	"fmt"
	"strings"
)

// NewCycleError reports a dependency or import cycle. chain lists the
// participants in visiting order, ending with the repeated element.
func NewCycleError(kind string, chain []string) *BaseError {
	message := fmt.Sprintf("%s cycle detected: %s", kind, strings.Join(chain, " -> "))
	return New(CycleErrorCode, message).
		WithContext("kind", kind).
		WithContext("chain", chain).
		WithSuggestion("break the cycle by moving the shared dependency into its own service or module")
}

// WrapDependencyError wraps a failure to construct a class during resolution
func WrapDependencyError(className string, cause error) *BaseError {
	message := fmt.Sprintf("failed to resolve dependency '%s'", className)
	return Wrap(DependencyErrorCode, message, cause).
		WithContext("class", className)
}

// NewArgumentError reports a constructor argument of the wrong type
func NewArgumentError(position int, want, got string) *BaseError {
	message := fmt.Sprintf("constructor argument %d: expected %s, got %s", position, want, got)
	return New(DependencyErrorCode, message).
		WithContext("position", position).
		WithContext("expected", want).
		WithContext("actual", got).
		WithSuggestion("check that the declared dependencies are listed in constructor parameter order")
}

// NewAnnotationError reports a malformed decorator string
func NewAnnotationError(annotation string, column int, cause error) *BaseError {
	message := fmt.Sprintf("invalid decorator %q", annotation)
	return Wrap(AnnotationErrorCode, message, cause).
		WithContext("annotation", annotation).
		WithContext("column", column)
}

// WrapRegisterError wraps an error with a "failed to register" message
func WrapRegisterError(componentType, name string, cause error) *BaseError {
	message := fmt.Sprintf("failed to register %s '%s'", componentType, name)
	return Wrap(RegistrationErrorCode, message, cause).
		WithContext("component_type", componentType).
		WithContext("name", name)
}

// WrapConfigurationError wraps configuration-related errors
func WrapConfigurationError(configType, operation string, cause error) *BaseError {
	message := fmt.Sprintf("failed to %s configuration '%s'", operation, configType)
	return Wrap(ConfigurationErrorCode, message, cause).
		WithContext("config_type", configType).
		WithContext("operation", operation)
}

// WrapServerError wraps listener and shutdown failures
func WrapServerError(operation string, cause error) *BaseError {
	return Wrap(ServerErrorCode, fmt.Sprintf("failed to %s server", operation), cause).
		WithContext("operation", operation)
}
