// Package annotations parses decorator strings such as
//
//	@GetMapping(path=":id", produces="application/vnd.item.v1+json")
//
// into a neutral form that the lit package maps onto route metadata.
package annotations

import "fmt"

// Decorator is a parsed, schema-validated decorator string
type Decorator struct {
	Name       string            // decorator name without the leading '@'
	Parameters map[string]string // named and positional parameters, keyed by name
	Raw        string            // original decorator text
}

// Get returns a parameter value, or def when the parameter is absent
func (d *Decorator) Get(name, def string) string {
	if v, ok := d.Parameters[name]; ok {
		return v
	}
	return def
}

// Has reports whether a parameter was supplied
func (d *Decorator) Has(name string) bool {
	_, ok := d.Parameters[name]
	return ok
}

// String renders the decorator back in canonical form
func (d *Decorator) String() string {
	if len(d.Parameters) == 0 {
		return "@" + d.Name
	}
	s := "@" + d.Name + "("
	first := true
	for _, key := range parameterOrder {
		v, ok := d.Parameters[key]
		if !ok {
			continue
		}
		if !first {
			s += ", "
		}
		s += fmt.Sprintf("%s=%q", key, v)
		first = false
	}
	return s + ")"
}

// parameterOrder fixes the rendering order used by String
var parameterOrder = []string{"method", "path", "produces"}
