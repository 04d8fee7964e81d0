// Package adapters implements lit.WebServer on top of popular Go routers:
// Echo (the default), Gin, Fiber, chi and gorilla/mux.
package adapters

import (
	"fmt"
	"sort"
	"strings"

	"github.com/toyz/lit/pkg/lit"
)

var factories = map[string]func() lit.WebServer{
	"echo":  func() lit.WebServer { return NewDefaultEchoAdapter() },
	"gin":   func() lit.WebServer { return NewDefaultGinAdapter() },
	"fiber": func() lit.WebServer { return NewDefaultFiberAdapter() },
	"chi":   func() lit.WebServer { return NewDefaultChiAdapter() },
	"mux":   func() lit.WebServer { return NewDefaultMuxAdapter() },
}

// New returns a fresh adapter by name. An empty name selects echo.
func New(name string) (lit.WebServer, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = "echo"
	}
	factory, ok := factories[key]
	if !ok {
		return nil, fmt.Errorf("unknown adapter %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return factory(), nil
}

// Names lists the available adapters, sorted
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
