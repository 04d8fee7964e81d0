package lit

import "net/http"

// DefaultComponent serves routes whose handler shape is not one of the
// supported calling conventions
type DefaultComponent struct{}

// NotImplemented answers 501
func (DefaultComponent) NotImplemented(res *Response) error {
	return res.Errored(http.StatusNotImplemented)
}

var notImplemented = ResponseOnly(DefaultComponent.NotImplemented)
