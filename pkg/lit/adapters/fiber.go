package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/toyz/lit/pkg/lit"
)

// locals keys used to track response state across fiber handlers
const (
	fiberWrittenLocal     = "lit.written"
	fiberContentTypeLocal = "lit.contentType"
)

// FiberAdapter wraps a Fiber app to implement lit.WebServer
type FiberAdapter struct {
	app     *fiber.App
	handler http.HandlerFunc

	mu     sync.Mutex
	ln     net.Listener
	closed bool
}

// NewFiberAdapter creates a new Fiber adapter around app
func NewFiberAdapter(app *fiber.App) *FiberAdapter {
	return &FiberAdapter{app: app, handler: adaptor.FiberApp(app)}
}

// NewDefaultFiberAdapter creates a Fiber adapter whose error handler answers
// with lit's JSON error body
func NewDefaultFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(lit.NewHTTPError(code))
		},
	})
	return NewFiberAdapter(app)
}

// Handle registers a route with the Fiber app. Add does not register the
// implicit HEAD route that Get would.
func (fa *FiberAdapter) Handle(method, path string, handler lit.HandlerFunc) {
	fa.app.Add(strings.ToUpper(method), path, convertLitHandlerToFiber(handler))
}

// Use adds middleware to the Fiber app
func (fa *FiberAdapter) Use(middleware lit.MiddlewareFunc) {
	fa.app.Use(convertLitMiddlewareToFiber(middleware))
}

// ServeHTTP serves net/http requests through fiber's adaptor
func (fa *FiberAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fa.handler.ServeHTTP(w, r)
}

// Serve accepts connections on ln. After Shutdown it closes ln and returns
// http.ErrServerClosed.
func (fa *FiberAdapter) Serve(ln net.Listener) error {
	fa.mu.Lock()
	if fa.closed {
		fa.mu.Unlock()
		_ = ln.Close()
		return http.ErrServerClosed
	}
	fa.ln = ln
	fa.mu.Unlock()
	return fa.app.Listener(ln)
}

// Shutdown stops the Fiber server. fasthttp only closes listeners it is
// already accepting on, so the listener handed to Serve is closed here too.
func (fa *FiberAdapter) Shutdown(ctx context.Context) error {
	fa.mu.Lock()
	ln := fa.ln
	fa.closed = true
	fa.mu.Unlock()

	err := fa.app.ShutdownWithContext(ctx)
	if ln != nil {
		_ = ln.Close()
	}
	return err
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// App returns the underlying Fiber app
func (fa *FiberAdapter) App() *fiber.App {
	return fa.app
}

func convertLitHandlerToFiber(handler lit.HandlerFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := &FiberRequestContext{ctx: c}
		return lit.HandleError(ctx, handler(ctx))
	}
}

func convertLitMiddlewareToFiber(middleware lit.MiddlewareFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := &FiberRequestContext{ctx: c}
		next := func(lit.RequestContext) error {
			return c.Next()
		}
		return lit.HandleError(ctx, middleware(next)(ctx))
	}
}

// FiberRequestContext implements lit.RequestContext for Fiber. It must not
// be retained after the handler returns.
type FiberRequestContext struct {
	ctx *fiber.Ctx
}

// Method returns the HTTP method
func (frc *FiberRequestContext) Method() string {
	return frc.ctx.Method()
}

// Path returns the request path
func (frc *FiberRequestContext) Path() string {
	return frc.ctx.Path()
}

// RealIP returns the client IP
func (frc *FiberRequestContext) RealIP() string {
	return frc.ctx.IP()
}

// Param returns a path parameter
func (frc *FiberRequestContext) Param(name string) string {
	return frc.ctx.Params(name)
}

// Params returns every path parameter
func (frc *FiberRequestContext) Params() map[string]string {
	return frc.ctx.AllParams()
}

// QueryParam returns a query parameter
func (frc *FiberRequestContext) QueryParam(key string) string {
	return frc.ctx.Query(key)
}

// Header returns a request header
func (frc *FiberRequestContext) Header(key string) string {
	return frc.ctx.Get(key)
}

// Bind parses the request body into obj
func (frc *FiberRequestContext) Bind(obj interface{}) error {
	if len(frc.ctx.Body()) == 0 {
		return nil
	}
	if err := frc.ctx.BodyParser(obj); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return lit.NewHTTPError(fe.Code, fe.Message, err)
		}
		return lit.NewHTTPError(http.StatusBadRequest, err.Error(), err)
	}
	return nil
}

// Context returns the request's user context
func (frc *FiberRequestContext) Context() context.Context {
	return frc.ctx.UserContext()
}

// Get retrieves a value from Fiber locals
func (frc *FiberRequestContext) Get(key string) interface{} {
	return frc.ctx.Locals(key)
}

// Set stores a value in Fiber locals
func (frc *FiberRequestContext) Set(key string, val interface{}) {
	frc.ctx.Locals(key, val)
}

// Response returns the response writer
func (frc *FiberRequestContext) Response() lit.ResponseWriter {
	return &FiberResponse{ctx: frc.ctx}
}

// FiberResponse implements lit.ResponseWriter for Fiber
type FiberResponse struct {
	ctx *fiber.Ctx
}

// Status returns the response status
func (fr *FiberResponse) Status() int {
	return fr.ctx.Response().StatusCode()
}

// Header returns a response header
func (fr *FiberResponse) Header(key string) string {
	return fr.ctx.GetRespHeader(key)
}

// SetHeader sets a response header
func (fr *FiberResponse) SetHeader(name, value string) {
	if strings.EqualFold(name, fiber.HeaderContentType) {
		fr.ctx.Locals(fiberContentTypeLocal, true)
	}
	fr.ctx.Set(name, value)
}

// JSON writes a JSON response. Fiber's own JSON always overrides the
// Content-Type, so the body is encoded here and a preset type is kept.
func (fr *FiberResponse) JSON(code int, data interface{}) error {
	body, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if preset, _ := fr.ctx.Locals(fiberContentTypeLocal).(bool); !preset {
		fr.ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	}
	fr.ctx.Locals(fiberWrittenLocal, true)
	return fr.ctx.Status(code).Send(body)
}

// Written reports whether a response body was sent
func (fr *FiberResponse) Written() bool {
	written, _ := fr.ctx.Locals(fiberWrittenLocal).(bool)
	return written
}
