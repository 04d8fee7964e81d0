package lit

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
)

// fakeServer records registrations and dispatches by exact method and path
type fakeServer struct {
	handles    []string
	handlers   map[string]HandlerFunc
	middleware []MiddlewareFunc
}

func newFakeServer() *fakeServer {
	return &fakeServer{handlers: make(map[string]HandlerFunc)}
}

func (s *fakeServer) Handle(method, path string, handler HandlerFunc) {
	s.handles = append(s.handles, method+" "+path)
	s.handlers[method+" "+path] = handler
}

func (s *fakeServer) Use(mw MiddlewareFunc)                        { s.middleware = append(s.middleware, mw) }
func (s *fakeServer) Serve(net.Listener) error                     { return nil }
func (s *fakeServer) Shutdown(context.Context) error               { return nil }
func (s *fakeServer) Name() string                                 { return "Fake" }
func (s *fakeServer) ServeHTTP(http.ResponseWriter, *http.Request) {}

// call runs the handler registered for method and path
func (s *fakeServer) call(method, path string, params map[string]string) *fakeResponse {
	res := &fakeResponse{headers: map[string]string{}}
	ctx := &fakeContext{method: method, path: path, params: params, res: res, values: map[string]interface{}{}}
	handler, ok := s.handlers[method+" "+path]
	if !ok {
		_ = HandleError(ctx, NewHTTPError(http.StatusNotFound))
		return res
	}
	_ = HandleError(ctx, handler(ctx))
	return res
}

type fakeContext struct {
	method, path string
	params       map[string]string
	values       map[string]interface{}
	res          *fakeResponse
}

func (c *fakeContext) Method() string                { return c.method }
func (c *fakeContext) Path() string                  { return c.path }
func (c *fakeContext) RealIP() string                { return "127.0.0.1" }
func (c *fakeContext) Param(key string) string       { return c.params[key] }
func (c *fakeContext) Params() map[string]string     { return c.params }
func (c *fakeContext) QueryParam(string) string      { return "" }
func (c *fakeContext) Header(string) string          { return "" }
func (c *fakeContext) Bind(interface{}) error        { return nil }
func (c *fakeContext) Context() context.Context      { return context.Background() }
func (c *fakeContext) Get(key string) interface{}    { return c.values[key] }
func (c *fakeContext) Set(key string, v interface{}) { c.values[key] = v }
func (c *fakeContext) Response() ResponseWriter      { return c.res }

type fakeResponse struct {
	status  int
	headers map[string]string
	body    string
	writes  int
}

func (r *fakeResponse) Status() int                 { return r.status }
func (r *fakeResponse) Header(key string) string    { return r.headers[key] }
func (r *fakeResponse) SetHeader(key, value string) { r.headers[key] = value }
func (r *fakeResponse) Written() bool               { return r.writes > 0 }

func (r *fakeResponse) JSON(code int, i interface{}) error {
	b, err := json.Marshal(i)
	if err != nil {
		return err
	}
	r.status = code
	r.body = string(b)
	r.writes++
	return nil
}
