// Package lit provides decorator-style routing and constructor injection on
// top of existing Go HTTP routers.
//
// Components, services and modules are declared against a Store. A Compiler
// walks the module tree, resolves every exported component with the Injector
// and mounts its route-decorated methods on a WebServer adapter.
package lit

import (
	"context"
	"net"
	"net/http"
)

// WebServer defines the contract for router implementations
type WebServer interface {
	http.Handler

	// Handle registers a handler for one concrete HTTP method.
	// Path parameters use the ":name" syntax.
	Handle(method, path string, handler HandlerFunc)

	// Use adds global middleware
	Use(middleware MiddlewareFunc)

	// Serve accepts connections on ln until Shutdown is called
	Serve(ln net.Listener) error
	Shutdown(ctx context.Context) error

	Name() string
}

// RequestContext provides a framework-agnostic view of an HTTP request
type RequestContext interface {
	// Request data
	Method() string
	Path() string
	RealIP() string

	// Parameters
	Param(key string) string
	Params() map[string]string
	QueryParam(key string) string

	// Headers
	Header(key string) string

	// Body handling
	Bind(i interface{}) error

	// Context data
	Context() context.Context
	Get(key string) interface{}
	Set(key string, val interface{})

	Response() ResponseWriter
}

// ResponseWriter provides response writing capabilities
type ResponseWriter interface {
	Status() int
	Header(key string) string
	SetHeader(key, value string)
	JSON(code int, i interface{}) error
	Written() bool
}

// HandlerFunc defines the signature for HTTP handlers
type HandlerFunc func(RequestContext) error

// MiddlewareFunc defines the signature for middleware
type MiddlewareFunc func(HandlerFunc) HandlerFunc

// HTTPError represents an HTTP error with status code and message
type HTTPError struct {
	Code     int         `json:"code"`
	Message  interface{} `json:"message"`
	Internal error       `json:"-"` // Stores the error returned by an external dependency
}

// Error makes HTTPError implement the error interface
func (he *HTTPError) Error() string {
	if he.Internal != nil {
		return he.Internal.Error()
	}
	if s, ok := he.Message.(string); ok {
		return s
	}
	return http.StatusText(he.Code)
}

// Unwrap exposes the internal error
func (he *HTTPError) Unwrap() error {
	return he.Internal
}

// NewHTTPError creates a new HTTPError instance
func NewHTTPError(code int, message ...interface{}) *HTTPError {
	he := &HTTPError{Code: code}
	if len(message) > 0 {
		he.Message = message[0]
	} else {
		he.Message = http.StatusText(code)
	}
	if len(message) > 1 {
		if err, ok := message[1].(error); ok {
			he.Internal = err
		}
	}
	return he
}

// StatusOf maps a handler error onto the status code written to the client
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if he, ok := AsHTTPError(err); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
