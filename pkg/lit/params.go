package lit

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParamParser converts a raw path or query value
type ParamParser[T any] func(value string) (T, error)

// Built-in parsers for the common parameter types
var (
	ParseString  ParamParser[string]    = func(v string) (string, error) { return v, nil }
	ParseInt     ParamParser[int]       = strconv.Atoi
	ParseFloat64 ParamParser[float64]   = func(v string) (float64, error) { return strconv.ParseFloat(v, 64) }
	ParseUUID    ParamParser[uuid.UUID] = uuid.Parse
	ParseBool    ParamParser[bool]      = parseBool
)

// parseBool accepts true, 1, yes and on (and their negatives), ignoring case
func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", v)
	}
}

// Param parses the path parameter name. A malformed value is a 400 error.
//
//	id, err := lit.Param(req, "id", lit.ParseUUID)
func Param[T any](req RequestContext, name string, parse ParamParser[T]) (T, error) {
	v, err := parse(req.Param(name))
	if err != nil {
		var zero T
		return zero, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("invalid path parameter '%s'", name), err)
	}
	return v, nil
}

// Query parses the query parameter name, returning def when it is absent.
// A malformed value is a 400 error.
func Query[T any](req RequestContext, name string, def T, parse ParamParser[T]) (T, error) {
	raw := req.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	v, err := parse(raw)
	if err != nil {
		return def, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("invalid query parameter '%s'", name), err)
	}
	return v, nil
}
