package adapters

import (
	"context"
	"net"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/toyz/lit/pkg/lit"
)

// MuxAdapter implements lit.WebServer for gorilla/mux. Middleware only runs
// for requests that match a route.
type MuxAdapter struct {
	router *mux.Router
	httpLifecycle
}

// NewMuxAdapter creates a new gorilla/mux adapter
func NewMuxAdapter(r *mux.Router) *MuxAdapter {
	return &MuxAdapter{router: r}
}

// NewDefaultMuxAdapter creates a mux adapter with a fresh router
func NewDefaultMuxAdapter() *MuxAdapter {
	return NewMuxAdapter(mux.NewRouter())
}

// Handle registers a route. ":name" parameters become "{name}".
func (ma *MuxAdapter) Handle(method, path string, handler lit.HandlerFunc) {
	ma.router.HandleFunc(braceParams(path), httpHandler(handler, mux.Vars)).Methods(method)
}

// Use adds global middleware
func (ma *MuxAdapter) Use(middleware lit.MiddlewareFunc) {
	ma.router.Use(httpMiddleware(middleware))
}

// ServeHTTP dispatches to the mux router
func (ma *MuxAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ma.router.ServeHTTP(w, r)
}

// Serve accepts connections on ln
func (ma *MuxAdapter) Serve(ln net.Listener) error {
	return ma.serve(ma.router, ln)
}

// Shutdown gracefully stops the server
func (ma *MuxAdapter) Shutdown(ctx context.Context) error {
	return ma.shutdown(ctx)
}

// Name returns the adapter name
func (ma *MuxAdapter) Name() string {
	return "Mux"
}

// Router returns the underlying mux router
func (ma *MuxAdapter) Router() *mux.Router {
	return ma.router
}
