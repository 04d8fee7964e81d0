package lit

import "fmt"

// Shape identifies the calling convention of a route handler
type Shape int

const (
	// ShapeNotImplemented is the zero shape; such routes answer 501
	ShapeNotImplemented Shape = iota
	ShapeResponseOnly
	ShapeRequestResponse
	ShapeRequestResponseNext
)

// String returns the shape name
func (s Shape) String() string {
	switch s {
	case ShapeResponseOnly:
		return "ResponseOnly"
	case ShapeRequestResponse:
		return "RequestResponse"
	case ShapeRequestResponseNext:
		return "RequestResponseNext"
	default:
		return "NotImplemented"
	}
}

// Arity is the number of arguments the handler receives after its instance
func (s Shape) Arity() int {
	switch s {
	case ShapeResponseOnly:
		return 1
	case ShapeRequestResponse:
		return 2
	case ShapeRequestResponseNext:
		return 3
	default:
		return 0
	}
}

// NextFunc passes the request to the next route registered for the same
// method and path
type NextFunc func() error

// Handler is a component method bound to one of the supported shapes. The
// zero Handler has shape ShapeNotImplemented.
type Handler struct {
	shape  Shape
	invoke func(instance interface{}, req RequestContext, res *Response, next NextFunc) error
}

// Shape returns the declared shape
func (h Handler) Shape() Shape {
	if h.invoke == nil {
		return ShapeNotImplemented
	}
	return h.shape
}

func receiver[T any](instance interface{}) (T, error) {
	typed, ok := instance.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("handler receiver is %T, want %T", instance, zero)
	}
	return typed, nil
}

// ResponseOnly wraps a method that only needs the response
//
//	lit.ResponseOnly((*Places).List)
func ResponseOnly[T any](fn func(T, *Response) error) Handler {
	return Handler{
		shape: ShapeResponseOnly,
		invoke: func(instance interface{}, _ RequestContext, res *Response, _ NextFunc) error {
			recv, err := receiver[T](instance)
			if err != nil {
				return err
			}
			return fn(recv, res)
		},
	}
}

// RequestResponse wraps a method taking the request and the response
func RequestResponse[T any](fn func(T, RequestContext, *Response) error) Handler {
	return Handler{
		shape: ShapeRequestResponse,
		invoke: func(instance interface{}, req RequestContext, res *Response, _ NextFunc) error {
			recv, err := receiver[T](instance)
			if err != nil {
				return err
			}
			return fn(recv, req, res)
		},
	}
}

// RequestResponseNext wraps a method that may defer to the next matching
// route
func RequestResponseNext[T any](fn func(T, RequestContext, *Response, NextFunc) error) Handler {
	return Handler{
		shape: ShapeRequestResponseNext,
		invoke: func(instance interface{}, req RequestContext, res *Response, next NextFunc) error {
			recv, err := receiver[T](instance)
			if err != nil {
				return err
			}
			return fn(recv, req, res, next)
		},
	}
}
