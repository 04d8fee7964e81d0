package adapters

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/toyz/lit/pkg/lit"
)

// EchoAdapter implements lit.WebServer for Echo v4
type EchoAdapter struct {
	engine *echo.Echo
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	e.HideBanner = true
	e.HidePort = true
	return &EchoAdapter{engine: e}
}

// NewDefaultEchoAdapter creates a new Echo adapter with default Echo instance
func NewDefaultEchoAdapter() *EchoAdapter {
	return NewEchoAdapter(echo.New())
}

// Handle registers a route with the Echo server
func (ea *EchoAdapter) Handle(method, path string, handler lit.HandlerFunc) {
	ea.engine.Add(method, path, ea.convertHandler(handler))
}

// Use adds global middleware
func (ea *EchoAdapter) Use(middleware lit.MiddlewareFunc) {
	ea.engine.Use(ea.convertMiddleware(middleware))
}

// EnableCORS installs Echo's CORS middleware for origins. With no origins
// every origin is allowed.
func (ea *EchoAdapter) EnableCORS(origins ...string) {
	cfg := middleware.DefaultCORSConfig
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	}
	ea.engine.Use(middleware.CORSWithConfig(cfg))
}

// ServeHTTP dispatches to Echo
func (ea *EchoAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ea.engine.ServeHTTP(w, r)
}

// Serve accepts connections on ln
func (ea *EchoAdapter) Serve(ln net.Listener) error {
	ea.engine.Listener = ln
	return ea.engine.Start("")
}

// Shutdown stops the server
func (ea *EchoAdapter) Shutdown(ctx context.Context) error {
	return ea.engine.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// GetEngine returns the underlying Echo instance
func (ea *EchoAdapter) GetEngine() *echo.Echo {
	return ea.engine
}

// convertHandler converts lit.HandlerFunc to echo.HandlerFunc
func (ea *EchoAdapter) convertHandler(handler lit.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := &EchoRequestContext{context: c}
		return lit.HandleError(ctx, handler(ctx))
	}
}

// convertMiddleware converts lit.MiddlewareFunc to echo.MiddlewareFunc
func (ea *EchoAdapter) convertMiddleware(middleware lit.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			litNext := func(lit.RequestContext) error {
				return next(c)
			}
			ctx := &EchoRequestContext{context: c}
			return lit.HandleError(ctx, middleware(litNext)(ctx))
		}
	}
}

// EchoRequestContext implements lit.RequestContext for Echo
type EchoRequestContext struct {
	context echo.Context
}

// Method returns the HTTP method
func (erc *EchoRequestContext) Method() string {
	return erc.context.Request().Method
}

// Path returns the request path
func (erc *EchoRequestContext) Path() string {
	return erc.context.Request().URL.Path
}

// RealIP returns the real IP address
func (erc *EchoRequestContext) RealIP() string {
	return erc.context.RealIP()
}

// Param returns path parameter by name
func (erc *EchoRequestContext) Param(key string) string {
	return erc.context.Param(key)
}

// Params returns every path parameter
func (erc *EchoRequestContext) Params() map[string]string {
	names, values := erc.context.ParamNames(), erc.context.ParamValues()
	params := make(map[string]string, len(names))
	for i, name := range names {
		if i < len(values) {
			params[name] = values[i]
		}
	}
	return params
}

// QueryParam returns query parameter by name
func (erc *EchoRequestContext) QueryParam(key string) string {
	return erc.context.QueryParam(key)
}

// Header returns a request header
func (erc *EchoRequestContext) Header(key string) string {
	return erc.context.Request().Header.Get(key)
}

// Bind binds the request body to i
func (erc *EchoRequestContext) Bind(i interface{}) error {
	err := erc.context.Bind(i)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return lit.NewHTTPError(he.Code, he.Message, he.Internal)
	}
	return err
}

// Context returns the request context
func (erc *EchoRequestContext) Context() context.Context {
	return erc.context.Request().Context()
}

// Get retrieves data from context
func (erc *EchoRequestContext) Get(key string) interface{} {
	return erc.context.Get(key)
}

// Set stores data in context
func (erc *EchoRequestContext) Set(key string, val interface{}) {
	erc.context.Set(key, val)
}

// Response returns the response writer
func (erc *EchoRequestContext) Response() lit.ResponseWriter {
	return &EchoResponse{context: erc.context}
}

// EchoResponse implements lit.ResponseWriter for Echo responses
type EchoResponse struct {
	context echo.Context
}

// Status returns response status code
func (er *EchoResponse) Status() int {
	return er.context.Response().Status
}

// Header returns response header value
func (er *EchoResponse) Header(key string) string {
	return er.context.Response().Header().Get(key)
}

// SetHeader sets response header
func (er *EchoResponse) SetHeader(key, value string) {
	er.context.Response().Header().Set(key, value)
}

// JSON writes JSON response. Echo keeps a Content-Type set beforehand.
func (er *EchoResponse) JSON(code int, i interface{}) error {
	return er.context.JSON(code, i)
}

// Written returns whether response has been written
func (er *EchoResponse) Written() bool {
	return er.context.Response().Committed
}
