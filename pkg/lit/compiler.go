package lit

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	literrors "github.com/toyz/lit/internal/errors"
)

// Compiler walks a module tree and mounts the routes it declares on a
// WebServer
type Compiler struct {
	store      *Store
	injector   *Injector
	server     WebServer
	table      *routeTable
	config     *ServerConfig
	logger     *zap.Logger
	console    Console
	middleware []MiddlewareFunc

	mu        sync.Mutex
	installed bool
	listener  net.Listener
	done      chan error
}

// Option configures a Compiler
type Option func(*Compiler)

// WithLogger sets the structured logger (default: no-op)
func WithLogger(logger *zap.Logger) Option {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithConsole sets where the startup greeting is written
func WithConsole(console Console) Option {
	return func(c *Compiler) {
		if console != nil {
			c.console = console
		}
	}
}

// WithConfig sets the server configuration
func WithConfig(cfg *ServerConfig) Option {
	return func(c *Compiler) {
		if cfg != nil {
			c.config = cfg
		}
	}
}

// WithMiddleware adds global middleware, installed before any route
func WithMiddleware(middleware ...MiddlewareFunc) Option {
	return func(c *Compiler) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// NewCompiler creates a compiler reading declarations from store
func NewCompiler(store *Store, server WebServer, opts ...Option) *Compiler {
	c := &Compiler{
		store:    store,
		injector: NewInjector(store),
		server:   server,
		table:    newRouteTable(server),
		config:   DefaultServerConfig(),
		logger:   zap.NewNop(),
		console:  DefaultConsole(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Server returns the router the compiler mounts routes on
func (c *Compiler) Server() WebServer { return c.server }

// Injector returns the injector used to resolve components
func (c *Compiler) Injector() *Injector { return c.injector }

// Routes returns the compiled routes in registration order
func (c *Compiler) Routes() []RouteEntry { return c.table.list() }

// JoinPath joins the non-empty segments with "/". Surrounding slashes of
// each segment are dropped.
func JoinPath(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.Trim(part, "/"); part != "" {
			segments = append(segments, part)
		}
	}
	return strings.Join(segments, "/")
}

// Mount installs the configured middleware and unpacks root
func (c *Compiler) Mount(root *Class) error {
	c.mu.Lock()
	if !c.installed {
		for _, mw := range c.middleware {
			c.server.Use(mw)
		}
		c.installed = true
	}
	c.mu.Unlock()

	return c.Unpack(root, "")
}

// Unpack registers the routes of module's exports under prefix, then
// recurses into its imports in declared order
func (c *Compiler) Unpack(module *Class, prefix string) error {
	return c.unpack(module, prefix, nil)
}

func (c *Compiler) unpack(module *Class, prefix string, ancestors []*Class) error {
	if module == nil {
		return literrors.WrapRegisterError("module", "<nil>", fmt.Errorf("module reference is nil"))
	}
	for i, seen := range ancestors {
		if seen == module {
			chain := make([]string, 0, len(ancestors)-i+1)
			for _, m := range ancestors[i:] {
				chain = append(chain, m.Name())
			}
			return literrors.NewCycleError("import", append(chain, module.Name()))
		}
	}
	ancestors = append(ancestors[:len(ancestors):len(ancestors)], module)

	current := JoinPath(prefix, c.store.GetString(module, PathKey, ""))

	for _, component := range c.store.GetClasses(module, ExportsKey) {
		if err := c.registerComponentRoutes(current, component); err != nil {
			return err
		}
	}

	for _, child := range c.store.GetClasses(module, ImportsKey) {
		if err := c.unpack(child, current, ancestors); err != nil {
			return err
		}
	}
	return nil
}

// verbOf reads the recorded verb of member, accepting a Verb or a string
func (c *Compiler) verbOf(component *Class, member string) (Verb, bool) {
	switch v := c.store.Get(component, MethodKey, nil, member).(type) {
	case Verb:
		return ParseVerb(string(v))
	case string:
		return ParseVerb(v)
	default:
		return "", false
	}
}

// registerComponentRoutes mounts every route-decorated method of component.
// The component is resolved once here, so each export owns its instance.
func (c *Compiler) registerComponentRoutes(path string, component *Class) error {
	if component == nil {
		return literrors.WrapRegisterError("component", "<nil>", fmt.Errorf("exported class reference is nil"))
	}

	var (
		instance interface{}
		resolved bool
	)
	for _, member := range component.Members() {
		verb, ok := c.verbOf(component, member.Name)
		if !ok {
			continue
		}

		if !resolved {
			var err error
			if instance, err = c.injector.Resolve(component); err != nil {
				return literrors.WrapRegisterError("component", component.Name(), err)
			}
			resolved = true
		}

		entry := &RouteEntry{
			Method:    verb,
			Path:      "/" + JoinPath(path, c.store.GetString(component, PathKey, "", member.Name)),
			Module:    path,
			Component: component.Name(),
			Handler:   member.Name,
			Produces:  c.store.GetString(component, ProducesKey, "", member.Name),
			Shape:     member.Handler.Shape(),
		}
		entry.serve = c.makeHandler(instance, component, member)
		c.table.add(entry)

		c.logger.Debug("route registered",
			zap.String("method", string(entry.Method)),
			zap.String("path", entry.Path),
			zap.String("component", entry.Component),
			zap.String("handler", entry.Handler),
			zap.Stringer("shape", entry.Shape),
		)
	}
	return nil
}

// makeHandler binds member of instance to the route metadata. Handlers with
// no supported shape are served by DefaultComponent.NotImplemented.
func (c *Compiler) makeHandler(instance interface{}, component *Class, member *Member) func(RequestContext, NextFunc) error {
	meta := c.store.GetAll(component, member.Name)

	handler, receiver := member.Handler, instance
	switch handler.Shape() {
	case ShapeResponseOnly, ShapeRequestResponse, ShapeRequestResponseNext:
	default:
		handler, receiver = notImplemented, DefaultComponent{}
	}

	return func(req RequestContext, next NextFunc) error {
		return handler.invoke(receiver, req, NewResponse(req.Response(), meta), next)
	}
}

// Greet writes the startup line for port on the console
func (c *Compiler) Greet(port string) {
	c.console.Log("Application running on port " + port)
}

// Bootstrap mounts root and starts serving in the background. The port is
// taken from the environment, then port, then the configured port.
func (c *Compiler) Bootstrap(root *Class, port string) error {
	if port == "" {
		port = c.config.Port
	}
	port = ResolvePort(port)

	if err := c.Mount(root); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", net.JoinHostPort(c.config.Host, port))
	if err != nil {
		return literrors.WrapServerError("start", err).WithContext("port", port)
	}

	c.mu.Lock()
	c.listener = ln
	c.done = make(chan error, 1)
	done := c.done
	c.mu.Unlock()

	if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
		port = strconv.Itoa(tcp.Port)
	}
	c.Greet(port)
	c.logger.Info("server started",
		zap.String("adapter", c.server.Name()),
		zap.String("addr", ln.Addr().String()),
		zap.Int("routes", len(c.Routes())),
	)

	go func() {
		err := c.server.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
			err = nil
		}
		done <- err
		close(done)
	}()
	return nil
}

// Addr returns the bound address, or nil before Bootstrap
func (c *Compiler) Addr() net.Addr {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.listener == nil {
		return nil
	}
	return c.listener.Addr()
}

// Wait blocks until the server stops and returns its serve error
func (c *Compiler) Wait() error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done == nil {
		return nil
	}
	if err := <-done; err != nil {
		return literrors.WrapServerError("serve", err)
	}
	return nil
}

// Shutdown gracefully stops the server
func (c *Compiler) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	started := c.listener != nil
	c.mu.Unlock()
	if !started {
		return nil
	}

	c.logger.Info("shutting down server")
	if err := c.server.Shutdown(ctx); err != nil {
		return literrors.WrapServerError("shutdown", err)
	}
	return c.Wait()
}

// Run bootstraps root and blocks until ctx is cancelled or the server fails,
// then shuts down within the configured ShutdownTimeout
func (c *Compiler) Run(ctx context.Context, root *Class, port string) error {
	if err := c.Bootstrap(root, port); err != nil {
		return err
	}

	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	select {
	case err, ok := <-done:
		if ok && err != nil {
			return literrors.WrapServerError("serve", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), c.config.ShutdownTimeout)
	defer cancel()
	return c.Shutdown(shutdownCtx)
}
