package lit

import (
	"net/http"
	"strings"
)

// Verb is the HTTP method recorded by a mapping decorator
type Verb string

const (
	GET    Verb = http.MethodGet
	PUT    Verb = http.MethodPut
	POST   Verb = http.MethodPost
	PATCH  Verb = http.MethodPatch
	DELETE Verb = http.MethodDelete
	// ANY matches every concrete method
	ANY Verb = "ANY"
)

// anyMethods are the concrete methods an ANY route is mounted on
var anyMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// ParseVerb parses a verb case-insensitively
func ParseVerb(s string) (Verb, bool) {
	switch v := Verb(strings.ToUpper(strings.TrimSpace(s))); v {
	case GET, PUT, POST, PATCH, DELETE, ANY:
		return v, true
	default:
		return "", false
	}
}

// Methods returns the concrete HTTP methods the verb is mounted on
func (v Verb) Methods() []string {
	if v == ANY {
		out := make([]string, len(anyMethods))
		copy(out, anyMethods)
		return out
	}
	return []string{string(v)}
}
