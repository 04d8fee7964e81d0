package lit

import (
	"net/http"
	"sync"
)

// RouteEntry is a compiled route
type RouteEntry struct {
	Method    Verb
	Path      string // absolute path with a leading "/"
	Module    string // path of the module that exported the component
	Component string
	Handler   string // method name on the component
	Produces  string
	Shape     Shape

	serve func(RequestContext, NextFunc) error
}

// routeTable stacks entries that share a method and path. The router sees a
// single handler per key; it runs the stack in registration order, and next
// moves down the stack.
type routeTable struct {
	mu      sync.RWMutex
	server  WebServer
	stacks  map[string][]*RouteEntry
	entries []*RouteEntry
}

func newRouteTable(server WebServer) *routeTable {
	return &routeTable{
		server: server,
		stacks: make(map[string][]*RouteEntry),
	}
}

func (t *routeTable) add(entry *RouteEntry) {
	t.mu.Lock()
	var mount []string
	for _, method := range entry.Method.Methods() {
		key := method + " " + entry.Path
		if _, ok := t.stacks[key]; !ok {
			mount = append(mount, method)
		}
		t.stacks[key] = append(t.stacks[key], entry)
	}
	t.entries = append(t.entries, entry)
	t.mu.Unlock()

	for _, method := range mount {
		t.server.Handle(method, entry.Path, t.dispatch(method+" "+entry.Path))
	}
}

func (t *routeTable) dispatch(key string) HandlerFunc {
	return func(ctx RequestContext) error {
		t.mu.RLock()
		stack := t.stacks[key]
		t.mu.RUnlock()
		return HandleError(ctx, run(ctx, stack, 0))
	}
}

func run(ctx RequestContext, stack []*RouteEntry, i int) error {
	if i >= len(stack) {
		return NewHTTPError(http.StatusNotFound)
	}
	return stack[i].serve(ctx, func() error {
		return run(ctx, stack, i+1)
	})
}

func (t *routeTable) list() []RouteEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]RouteEntry, len(t.entries))
	for i, e := range t.entries {
		out[i] = *e
	}
	return out
}

// HandleError writes err to the client unless a response was already sent.
// It returns nil once the error has been written.
func HandleError(ctx RequestContext, err error) error {
	if err == nil {
		return nil
	}
	res := ctx.Response()
	if res.Written() {
		return nil
	}

	status := StatusOf(err)
	body := NewHTTPError(status)
	if he, ok := AsHTTPError(err); ok && status < http.StatusInternalServerError {
		body.Message = he.Message
	}
	res.SetHeader("Content-Type", contentType(""))
	if werr := res.JSON(status, body); werr != nil {
		return werr
	}
	return nil
}
