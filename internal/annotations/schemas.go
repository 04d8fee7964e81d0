package annotations

import (
	"fmt"
	"sort"
	"strings"
)

// Schema describes the parameters a decorator accepts
type Schema struct {
	Name        string
	Description string
	// Parameters maps a parameter name to its validator (nil accepts anything)
	Parameters map[string]func(string) error
	// Positional names the parameters filled by unnamed arguments, in order
	Positional []string
	// Required lists parameters that must be present after parsing
	Required []string
}

var verbs = []string{"get", "put", "post", "patch", "delete", "any"}

func validMethod(v string) error {
	lower := strings.ToLower(v)
	for _, verb := range verbs {
		if lower == verb {
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s, got '%s'", strings.Join(verbs, ", "), v)
}

func validProduces(v string) error {
	if !strings.Contains(v, "/") {
		return fmt.Errorf("must be a media type like 'application/json', got '%s'", v)
	}
	return nil
}

func mappingSchema(name, description string) Schema {
	return Schema{
		Name:        name,
		Description: description,
		Parameters: map[string]func(string) error{
			"path":     nil,
			"produces": validProduces,
		},
		Positional: []string{"path"},
	}
}

// builtinSchemas are the decorators understood by lit
var builtinSchemas = map[string]Schema{
	"GetMapping":    mappingSchema("GetMapping", "Maps a method to GET requests"),
	"PostMapping":   mappingSchema("PostMapping", "Maps a method to POST requests"),
	"PutMapping":    mappingSchema("PutMapping", "Maps a method to PUT requests"),
	"PatchMapping":  mappingSchema("PatchMapping", "Maps a method to PATCH requests"),
	"DeleteMapping": mappingSchema("DeleteMapping", "Maps a method to DELETE requests"),
	"AnyMapping":    mappingSchema("AnyMapping", "Maps a method to every request method"),
	"RequestMapping": {
		Name:        "RequestMapping",
		Description: "Maps a method to a custom request method",
		Parameters: map[string]func(string) error{
			"method":   validMethod,
			"path":     nil,
			"produces": validProduces,
		},
		Positional: []string{"method", "path"},
		Required:   []string{"method"},
	},
}

// LookupSchema returns the schema of a built-in decorator
func LookupSchema(name string) (Schema, bool) {
	s, ok := builtinSchemas[name]
	return s, ok
}

// SchemaNames lists the built-in decorator names, sorted
func SchemaNames() []string {
	names := make([]string, 0, len(builtinSchemas))
	for name := range builtinSchemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
