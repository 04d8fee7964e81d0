package adapters

import (
	"context"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/toyz/lit/pkg/lit"
)

// GinAdapter implements lit.WebServer for the Gin framework
type GinAdapter struct {
	engine *gin.Engine
	httpLifecycle
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(g *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: g}
}

// NewDefaultGinAdapter creates a Gin adapter on an engine without Gin's own
// logger and recovery, which lit provides as middleware
func NewDefaultGinAdapter() *GinAdapter {
	return NewGinAdapter(gin.New())
}

// Handle registers a route with the Gin engine
func (ga *GinAdapter) Handle(method, path string, handler lit.HandlerFunc) {
	ga.engine.Handle(method, path, ga.convertHandler(handler))
}

// Use registers a global middleware. Gin binds middleware at route
// registration, so Use must precede Handle.
func (ga *GinAdapter) Use(middleware lit.MiddlewareFunc) {
	ga.engine.Use(ga.convertMiddleware(middleware))
}

// ServeHTTP dispatches to the Gin engine
func (ga *GinAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ga.engine.ServeHTTP(w, r)
}

// Serve accepts connections on ln
func (ga *GinAdapter) Serve(ln net.Listener) error {
	return ga.serve(ga.engine.Handler(), ln)
}

// Shutdown gracefully stops the server
func (ga *GinAdapter) Shutdown(ctx context.Context) error {
	return ga.shutdown(ctx)
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// GetEngine returns the underlying Gin engine
func (ga *GinAdapter) GetEngine() *gin.Engine {
	return ga.engine
}

// convertHandler converts lit.HandlerFunc to gin.HandlerFunc
func (ga *GinAdapter) convertHandler(handler lit.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := &GinRequestContext{ctx: c}
		if err := lit.HandleError(ctx, handler(ctx)); err != nil {
			_ = c.Error(err)
		}
	}
}

// convertMiddleware converts lit.MiddlewareFunc to gin.HandlerFunc. A
// middleware that does not call next aborts the chain.
func (ga *GinAdapter) convertMiddleware(middleware lit.MiddlewareFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := &GinRequestContext{ctx: c}

		called := false
		next := func(lit.RequestContext) error {
			called = true
			c.Next()
			return nil
		}

		if err := lit.HandleError(ctx, middleware(next)(ctx)); err != nil {
			_ = c.Error(err)
		}
		if !called {
			c.Abort()
		}
	}
}

// GinRequestContext implements lit.RequestContext for Gin
type GinRequestContext struct {
	ctx *gin.Context
}

// Method returns the HTTP method
func (grc *GinRequestContext) Method() string {
	return grc.ctx.Request.Method
}

// Path returns the request path
func (grc *GinRequestContext) Path() string {
	return grc.ctx.Request.URL.Path
}

// RealIP returns the real IP address
func (grc *GinRequestContext) RealIP() string {
	return grc.ctx.ClientIP()
}

// Param returns a path parameter
func (grc *GinRequestContext) Param(name string) string {
	return grc.ctx.Param(name)
}

// Params returns every path parameter
func (grc *GinRequestContext) Params() map[string]string {
	params := make(map[string]string, len(grc.ctx.Params))
	for _, p := range grc.ctx.Params {
		params[p.Key] = p.Value
	}
	return params
}

// QueryParam returns a query parameter
func (grc *GinRequestContext) QueryParam(name string) string {
	return grc.ctx.Query(name)
}

// Header returns a request header
func (grc *GinRequestContext) Header(key string) string {
	return grc.ctx.GetHeader(key)
}

// Bind binds the request body without writing a response on failure
func (grc *GinRequestContext) Bind(i interface{}) error {
	if err := grc.ctx.ShouldBind(i); err != nil {
		return lit.NewHTTPError(http.StatusBadRequest, err.Error(), err)
	}
	return nil
}

// Context returns the request context
func (grc *GinRequestContext) Context() context.Context {
	return grc.ctx.Request.Context()
}

// Get retrieves a value stored on the request
func (grc *GinRequestContext) Get(key string) interface{} {
	v, _ := grc.ctx.Get(key)
	return v
}

// Set stores a value on the request
func (grc *GinRequestContext) Set(key string, val interface{}) {
	grc.ctx.Set(key, val)
}

// Response returns the response writer
func (grc *GinRequestContext) Response() lit.ResponseWriter {
	return &GinResponse{ctx: grc.ctx}
}

// GinResponse implements lit.ResponseWriter for Gin
type GinResponse struct {
	ctx *gin.Context
}

// Status returns the response status
func (gr *GinResponse) Status() int {
	return gr.ctx.Writer.Status()
}

// Header returns a response header
func (gr *GinResponse) Header(key string) string {
	return gr.ctx.Writer.Header().Get(key)
}

// SetHeader sets a response header
func (gr *GinResponse) SetHeader(key, value string) {
	gr.ctx.Header(key, value)
}

// JSON writes a JSON response. Gin keeps a Content-Type set beforehand.
func (gr *GinResponse) JSON(code int, i interface{}) error {
	gr.ctx.JSON(code, i)
	return nil
}

// Written reports whether the response was sent
func (gr *GinResponse) Written() bool {
	return gr.ctx.Writer.Written()
}
