package lit

import (
	"mime"
	"net/http"
)

const defaultContentType = "application/json"

// Response wraps the router's ResponseWriter with the route's metadata.
// Exactly one of Success, Created or Errored should be called per request.
type Response struct {
	raw      ResponseWriter
	metadata map[string]interface{}
}

// NewResponse wraps raw for a route whose metadata is meta
func NewResponse(raw ResponseWriter, meta map[string]interface{}) *Response {
	if meta == nil {
		meta = map[string]interface{}{}
	}
	return &Response{raw: raw, metadata: meta}
}

// Raw returns the router's response writer
func (r *Response) Raw() ResponseWriter {
	return r.raw
}

// Produces returns the declared content type, if any
func (r *Response) Produces() string {
	s, _ := r.metadata[ProducesKey].(string)
	return s
}

// SetHeader sets a response header
func (r *Response) SetHeader(key, value string) {
	r.raw.SetHeader(key, value)
}

// Success responds with body and status, 200 unless given. A nil body sends
// {"code":status,"message":status text}.
func (r *Response) Success(body interface{}, status ...int) error {
	code := http.StatusOK
	if len(status) > 0 && status[0] > 0 {
		code = status[0]
	}
	return r.respond(code, body)
}

// Created responds 201 with body
func (r *Response) Created(body interface{}) error {
	return r.Success(body, http.StatusCreated)
}

// Errored responds with status (500 when zero) and body. Without a body the
// client receives {"code":status,"message":status text}.
func (r *Response) Errored(status int, body ...interface{}) error {
	if status <= 0 {
		status = http.StatusInternalServerError
	}
	var payload interface{}
	if len(body) > 0 {
		payload = body[0]
	}
	return r.respond(status, payload)
}

func (r *Response) respond(status int, body interface{}) error {
	if body == nil {
		body = NewHTTPError(status)
	}
	r.raw.SetHeader("Content-Type", contentType(r.Produces()))
	return r.raw.JSON(status, body)
}

// contentType appends charset=utf-8 to the declared media type
func contentType(produces string) string {
	if produces == "" {
		produces = defaultContentType
	}
	mediaType, params, err := mime.ParseMediaType(produces)
	if err != nil {
		return produces + "; charset=utf-8"
	}
	if _, ok := params["charset"]; !ok {
		params["charset"] = "utf-8"
	}
	if formatted := mime.FormatMediaType(mediaType, params); formatted != "" {
		return formatted
	}
	return produces + "; charset=utf-8"
}
