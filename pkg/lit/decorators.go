package lit

import (
	"fmt"
	"strings"

	"github.com/toyz/lit/internal/annotations"
	literrors "github.com/toyz/lit/internal/errors"
)

// ModuleConfig describes a module: a path segment, child modules mounted
// under it and components served at it
type ModuleConfig struct {
	Path    string
	Imports []*Class
	Exports []*Class
}

// Mapping is the route metadata of a component method
type Mapping struct {
	Method   Verb
	Path     string
	Produces string
}

func declare(store *Store, name string, kind Kind, ctor Constructor, deps []*Class) *Class {
	class := NewClass(name, kind, ctor)
	params := make([]*Class, len(deps))
	copy(params, deps)
	store.Set(class, map[string]interface{}{ParamTypesKey: params})
	return class
}

// Service declares an injectable dependency. deps lists the constructor's
// dependencies in parameter order.
func Service(store *Store, name string, ctor Constructor, deps ...*Class) *Class {
	return declare(store, name, ServiceKind, ctor, deps)
}

// Component declares a class whose methods may serve routes
func Component(store *Store, name string, ctor Constructor, deps ...*Class) *Class {
	return declare(store, name, ComponentKind, ctor, deps)
}

// Module declares a module
func Module(store *Store, name string, cfg ModuleConfig) *Class {
	class := NewClass(name, ModuleKind, nil)
	imports := append([]*Class{}, cfg.Imports...)
	exports := append([]*Class{}, cfg.Exports...)
	store.Set(class, map[string]interface{}{
		PathKey:    cfg.Path,
		ImportsKey: imports,
		ExportsKey: exports,
	})
	return class
}

// RequestMapping records route metadata on member
func RequestMapping(store *Store, class *Class, member string, m Mapping) {
	values := map[string]interface{}{MethodKey: m.Method}
	if m.Path != "" {
		values[PathKey] = m.Path
	}
	if m.Produces != "" {
		values[ProducesKey] = m.Produces
	}
	store.Set(class, values, member)
}

func mapping(verb Verb, opts []Mapping) Mapping {
	var m Mapping
	if len(opts) > 0 {
		m = opts[0]
	}
	m.Method = verb
	return m
}

// GetMapping maps member to GET requests
func GetMapping(store *Store, class *Class, member string, opts ...Mapping) {
	RequestMapping(store, class, member, mapping(GET, opts))
}

// PostMapping maps member to POST requests
func PostMapping(store *Store, class *Class, member string, opts ...Mapping) {
	RequestMapping(store, class, member, mapping(POST, opts))
}

// PutMapping maps member to PUT requests
func PutMapping(store *Store, class *Class, member string, opts ...Mapping) {
	RequestMapping(store, class, member, mapping(PUT, opts))
}

// PatchMapping maps member to PATCH requests
func PatchMapping(store *Store, class *Class, member string, opts ...Mapping) {
	RequestMapping(store, class, member, mapping(PATCH, opts))
}

// DeleteMapping maps member to DELETE requests
func DeleteMapping(store *Store, class *Class, member string, opts ...Mapping) {
	RequestMapping(store, class, member, mapping(DELETE, opts))
}

// AnyMapping maps member to every request method
func AnyMapping(store *Store, class *Class, member string, opts ...Mapping) {
	RequestMapping(store, class, member, mapping(ANY, opts))
}

var decoratorVerbs = map[string]Verb{
	"GetMapping":    GET,
	"PostMapping":   POST,
	"PutMapping":    PUT,
	"PatchMapping":  PATCH,
	"DeleteMapping": DELETE,
	"AnyMapping":    ANY,
}

// ParseMapping parses a decorator string such as
//
//	@GetMapping(path=":id", produces="application/vnd.item.v1+json")
//	@RequestMapping("post", "items")
func ParseMapping(decorator string) (Mapping, error) {
	d, err := annotations.Parse(decorator)
	if err != nil {
		return Mapping{}, err
	}

	verb, ok := decoratorVerbs[d.Name]
	if d.Name == "RequestMapping" {
		verb, ok = ParseVerb(d.Get("method", ""))
	}
	if !ok {
		return Mapping{}, literrors.NewAnnotationError(d.Raw, 0,
			fmt.Errorf("@%s does not map a route", d.Name))
	}

	return Mapping{
		Method:   verb,
		Path:     d.Get("path", ""),
		Produces: d.Get("produces", ""),
	}, nil
}

// Decorate applies a decorator string to member
func Decorate(store *Store, class *Class, member, decorator string) error {
	m, err := ParseMapping(decorator)
	if err != nil {
		return literrors.WrapRegisterError("route", class.Name()+"."+member, err)
	}
	RequestMapping(store, class, member, m)
	return nil
}

// Route declares member with handler and applies decorator to it. It panics
// if the decorator is malformed.
//
//	items.Route(store, "Get", `@GetMapping(":id")`, lit.RequestResponse((*Items).Get))
func (c *Class) Route(store *Store, member, decorator string, handler Handler) *Class {
	c.Method(member, handler)
	if err := Decorate(store, c, member, decorator); err != nil {
		panic(fmt.Sprintf("lit: %s: %v", strings.TrimSpace(decorator), err))
	}
	return c
}
