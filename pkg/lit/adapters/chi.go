package adapters

import (
	"context"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/toyz/lit/pkg/lit"
)

// ChiAdapter implements lit.WebServer for go-chi
type ChiAdapter struct {
	router chi.Router
	httpLifecycle
}

// NewChiAdapter creates a new chi adapter
func NewChiAdapter(r chi.Router) *ChiAdapter {
	return &ChiAdapter{router: r}
}

// NewDefaultChiAdapter creates a chi adapter with a fresh router
func NewDefaultChiAdapter() *ChiAdapter {
	return NewChiAdapter(chi.NewRouter())
}

// Handle registers a route. ":name" parameters become "{name}".
func (ca *ChiAdapter) Handle(method, path string, handler lit.HandlerFunc) {
	ca.router.Method(method, braceParams(path), httpHandler(handler, chiParams))
}

// Use adds global middleware. chi requires middleware before routes.
func (ca *ChiAdapter) Use(middleware lit.MiddlewareFunc) {
	ca.router.Use(httpMiddleware(middleware))
}

// ServeHTTP dispatches to the chi router
func (ca *ChiAdapter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ca.router.ServeHTTP(w, r)
}

// Serve accepts connections on ln
func (ca *ChiAdapter) Serve(ln net.Listener) error {
	return ca.serve(ca.router, ln)
}

// Shutdown gracefully stops the server
func (ca *ChiAdapter) Shutdown(ctx context.Context) error {
	return ca.shutdown(ctx)
}

// Name returns the adapter name
func (ca *ChiAdapter) Name() string {
	return "Chi"
}

// Router returns the underlying chi router
func (ca *ChiAdapter) Router() chi.Router {
	return ca.router
}

func chiParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		if i < len(rctx.URLParams.Values) {
			params[key] = rctx.URLParams.Values[i]
		}
	}
	return params
}
