// Package middleware provides the default lit middleware: request ids, access
// logging, panic recovery and Prometheus request metrics.
package middleware

import (
	"github.com/google/uuid"

	"github.com/toyz/lit/pkg/lit"
)

// RequestIDHeader is the header carrying the request id
const RequestIDHeader = "X-Request-ID"

// RequestIDKey is the context key the request id is stored under
const RequestIDKey = "lit.requestID"

// RequestIDOption configures RequestID
type RequestIDOption func(*requestIDConfig)

type requestIDConfig struct {
	header        string
	generator     func() string
	allowClientID bool
}

// WithHeader changes the request id header
func WithHeader(name string) RequestIDOption {
	return func(cfg *requestIDConfig) { cfg.header = name }
}

// WithGenerator replaces the UUIDv7 generator
func WithGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) { cfg.generator = gen }
}

// WithAllowClientID controls whether an incoming id is reused (default: true)
func WithAllowClientID(allow bool) RequestIDOption {
	return func(cfg *requestIDConfig) { cfg.allowClientID = allow }
}

func newUUIDv7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// RequestID tags every request with an id, reusing the client's when
// allowed, and echoes it in the response header
func RequestID(opts ...RequestIDOption) lit.MiddlewareFunc {
	cfg := &requestIDConfig{
		header:        RequestIDHeader,
		generator:     newUUIDv7,
		allowClientID: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next lit.HandlerFunc) lit.HandlerFunc {
		return func(ctx lit.RequestContext) error {
			var id string
			if cfg.allowClientID {
				id = ctx.Header(cfg.header)
			}
			if id == "" {
				id = cfg.generator()
			}
			ctx.Set(RequestIDKey, id)
			ctx.Response().SetHeader(cfg.header, id)
			return next(ctx)
		}
	}
}

// GetRequestID returns the id stored by RequestID, or ""
func GetRequestID(ctx lit.RequestContext) string {
	id, _ := ctx.Get(RequestIDKey).(string)
	return id
}
