package lit

import "fmt"

// Kind distinguishes the declarations a Class can stand for
type Kind int

const (
	ServiceKind Kind = iota
	ComponentKind
	ModuleKind
)

// String returns the declaration keyword for the kind
func (k Kind) String() string {
	switch k {
	case ServiceKind:
		return "service"
	case ComponentKind:
		return "component"
	case ModuleKind:
		return "module"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Constructor builds an instance from its resolved dependencies, given in
// declaration order
type Constructor func(deps ...interface{}) (interface{}, error)

// Member is a method declared on a class
type Member struct {
	Name    string
	Handler Handler
}

// Class is an opaque reference to a declared type. Pointer identity is the
// key used by the Store.
type Class struct {
	name    string
	kind    Kind
	ctor    Constructor
	members []*Member
}

// NewClass declares a class. ctor may be nil for modules.
func NewClass(name string, kind Kind, ctor Constructor) *Class {
	return &Class{name: name, kind: kind, ctor: ctor}
}

func (c *Class) Name() string             { return c.name }
func (c *Class) Kind() Kind               { return c.kind }
func (c *Class) Constructor() Constructor { return c.ctor }

// String renders the class as "kind Name"
func (c *Class) String() string {
	return c.kind.String() + " " + c.name
}

// Method declares a method on the class. Redeclaring a name replaces its
// handler and keeps its original position.
func (c *Class) Method(name string, handler Handler) *Class {
	for _, m := range c.members {
		if m.Name == name {
			m.Handler = handler
			return c
		}
	}
	c.members = append(c.members, &Member{Name: name, Handler: handler})
	return c
}

// Members returns the declared methods in declaration order
func (c *Class) Members() []*Member {
	out := make([]*Member, len(c.members))
	copy(out, c.members)
	return out
}

// Lookup finds a declared method by name
func (c *Class) Lookup(name string) (*Member, bool) {
	for _, m := range c.members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}
