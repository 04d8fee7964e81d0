package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/toyz/lit/pkg/lit"
)

// This file holds the pieces shared by the adapters built on plain net/http
// handlers (chi and gorilla/mux).

type valuesKey struct{}

// statusWriter records the status of an http.ResponseWriter so middleware
// wrapped around a route can observe what the route wrote
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.written {
		w.status = code
		w.written = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.status = http.StatusOK
		w.written = true
	}
	return w.ResponseWriter.Write(b)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// HTTPRequestContext implements lit.RequestContext for net/http handlers
type HTTPRequestContext struct {
	request  *http.Request
	response *HTTPResponse
	params   map[string]string
	values   *sync.Map
}

// newHTTPContext reuses the status writer and context values installed by
// outer middleware, so both sides of a middleware see the same request state
func newHTTPContext(w http.ResponseWriter, r *http.Request, params map[string]string) (*HTTPRequestContext, *http.Request) {
	sw, ok := w.(*statusWriter)
	if !ok {
		sw = &statusWriter{ResponseWriter: w}
	}
	values, ok := r.Context().Value(valuesKey{}).(*sync.Map)
	if !ok {
		values = &sync.Map{}
		r = r.WithContext(context.WithValue(r.Context(), valuesKey{}, values))
	}
	if params == nil {
		params = map[string]string{}
	}
	return &HTTPRequestContext{
		request:  r,
		response: &HTTPResponse{writer: sw},
		params:   params,
		values:   values,
	}, r
}

// Method returns the HTTP method
func (hc *HTTPRequestContext) Method() string { return hc.request.Method }

// Path returns the request path
func (hc *HTTPRequestContext) Path() string { return hc.request.URL.Path }

// RealIP returns the client address, honouring X-Forwarded-For and X-Real-IP
func (hc *HTTPRequestContext) RealIP() string {
	if fwd := hc.request.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if ip := hc.request.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(hc.request.RemoteAddr)
	if err != nil {
		return hc.request.RemoteAddr
	}
	return host
}

// Param returns a path parameter by name
func (hc *HTTPRequestContext) Param(key string) string { return hc.params[key] }

// Params returns every path parameter
func (hc *HTTPRequestContext) Params() map[string]string {
	out := make(map[string]string, len(hc.params))
	for k, v := range hc.params {
		out[k] = v
	}
	return out
}

// QueryParam returns a query parameter by name
func (hc *HTTPRequestContext) QueryParam(key string) string {
	return hc.request.URL.Query().Get(key)
}

// Header returns a request header
func (hc *HTTPRequestContext) Header(key string) string {
	return hc.request.Header.Get(key)
}

// Bind decodes a JSON request body into i. An empty body leaves i untouched.
func (hc *HTTPRequestContext) Bind(i interface{}) error {
	if hc.request.Body == nil || hc.request.ContentLength == 0 {
		return nil
	}
	if ct := hc.request.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || (mediaType != "application/json" && !strings.HasSuffix(mediaType, "+json")) {
			return lit.NewHTTPError(http.StatusUnsupportedMediaType)
		}
	}
	if err := json.NewDecoder(hc.request.Body).Decode(i); err != nil && !errors.Is(err, io.EOF) {
		return lit.NewHTTPError(http.StatusBadRequest, err.Error(), err)
	}
	return nil
}

// Context returns the request context
func (hc *HTTPRequestContext) Context() context.Context { return hc.request.Context() }

// Get retrieves a value stored on the request
func (hc *HTTPRequestContext) Get(key string) interface{} {
	v, _ := hc.values.Load(key)
	return v
}

// Set stores a value on the request
func (hc *HTTPRequestContext) Set(key string, val interface{}) {
	hc.values.Store(key, val)
}

// Response returns the response writer
func (hc *HTTPRequestContext) Response() lit.ResponseWriter { return hc.response }

// Request returns the underlying *http.Request
func (hc *HTTPRequestContext) Request() *http.Request { return hc.request }

// HTTPResponse implements lit.ResponseWriter over an http.ResponseWriter
type HTTPResponse struct {
	writer *statusWriter
}

// Status returns the written status, 200 if nothing was written yet
func (hr *HTTPResponse) Status() int {
	if hr.writer.status == 0 {
		return http.StatusOK
	}
	return hr.writer.status
}

// Header returns a response header
func (hr *HTTPResponse) Header(key string) string {
	return hr.writer.Header().Get(key)
}

// SetHeader sets a response header
func (hr *HTTPResponse) SetHeader(key, value string) {
	hr.writer.Header().Set(key, value)
}

// JSON writes i as JSON. A Content-Type set beforehand is kept.
func (hr *HTTPResponse) JSON(code int, i interface{}) error {
	body, err := json.Marshal(i)
	if err != nil {
		return err
	}
	if hr.writer.Header().Get("Content-Type") == "" {
		hr.writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	}
	hr.writer.WriteHeader(code)
	_, err = hr.writer.Write(body)
	return err
}

// Written reports whether the status line was sent
func (hr *HTTPResponse) Written() bool { return hr.writer.written }

// httpMiddleware adapts lit middleware to func(http.Handler) http.Handler
func httpMiddleware(middleware lit.MiddlewareFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, r := newHTTPContext(w, r, nil)
			handler := middleware(func(lit.RequestContext) error {
				next.ServeHTTP(ctx.response.writer, r)
				return nil
			})
			_ = lit.HandleError(ctx, handler(ctx))
		})
	}
}

// httpHandler adapts a lit handler to net/http; params extracts the route
// parameters from the matched request
func httpHandler(handler lit.HandlerFunc, params func(*http.Request) map[string]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, _ := newHTTPContext(w, r, params(r))
		_ = lit.HandleError(ctx, handler(ctx))
	}
}

// braceParams rewrites ":name" segments to "{name}"
func braceParams(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") && len(segment) > 1 {
			segments[i] = "{" + segment[1:] + "}"
		}
	}
	return strings.Join(segments, "/")
}

// httpLifecycle serves an http.Handler on a listener. A shutdown that
// arrives before serve makes serve return http.ErrServerClosed.
type httpLifecycle struct {
	mu     sync.Mutex
	server *http.Server
	closed bool
}

func (l *httpLifecycle) serve(handler http.Handler, ln net.Listener) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		_ = ln.Close()
		return http.ErrServerClosed
	}
	l.server = &http.Server{Handler: handler}
	srv := l.server
	l.mu.Unlock()
	return srv.Serve(ln)
}

func (l *httpLifecycle) shutdown(ctx context.Context) error {
	l.mu.Lock()
	srv := l.server
	l.closed = true
	l.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}
