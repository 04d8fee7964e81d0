// Package littest mounts single components on an in-process router for
// handler tests.
package littest

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toyz/lit/pkg/lit"
	"github.com/toyz/lit/pkg/lit/adapters"
)

// TestBed compiles components onto a router without binding a port
type TestBed struct {
	Adapter    string
	Middleware []lit.MiddlewareFunc
}

// Client sends requests to a mounted component
type Client struct {
	t        testing.TB
	compiler *lit.Compiler
	headers  map[string]string
}

// Start mounts component on the default adapter. See TestBed.Start.
func Start(t testing.TB, store *lit.Store, component *lit.Class) *Client {
	return (&TestBed{}).Start(t, store, component)
}

// Start wraps component in an anonymous root module and compiles it. Failures
// abort the test.
func (tb *TestBed) Start(t testing.TB, store *lit.Store, component *lit.Class) *Client {
	t.Helper()

	server, err := adapters.New(tb.Adapter)
	require.NoError(t, err)

	compiler := lit.NewCompiler(store, server,
		lit.WithConsole(lit.QuietConsole()),
		lit.WithMiddleware(tb.Middleware...),
	)
	root := lit.Module(store, "TestModule", lit.ModuleConfig{Exports: []*lit.Class{component}})
	require.NoError(t, compiler.Mount(root))

	return &Client{t: t, compiler: compiler, headers: map[string]string{}}
}

// Routes returns the compiled route table
func (c *Client) Routes() []lit.RouteEntry {
	return c.compiler.Routes()
}

// WithHeader sets a header sent with every later request
func (c *Client) WithHeader(key, value string) *Client {
	c.headers[key] = value
	return c
}

// Do sends a request. A non-empty body is sent as JSON.
func (c *Client) Do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	c.compiler.Server().ServeHTTP(rec, req)
	return rec
}

// Get sends a GET request
func (c *Client) Get(path string) *httptest.ResponseRecorder {
	return c.Do(http.MethodGet, path, "")
}
