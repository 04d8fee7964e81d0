package lit

import (
	"fmt"
	"reflect"

	literrors "github.com/toyz/lit/internal/errors"
)

// The CtorN and CtorEN helpers adapt typed constructor functions to
// Constructor. Arguments are checked positionally against the declared
// dependency list.

func checkArity(deps []interface{}, want int) error {
	if len(deps) != want {
		return literrors.Newf(literrors.DependencyErrorCode,
			"constructor expects %d argument(s), got %d", want, len(deps)).
			WithSuggestion("declare one dependency per constructor parameter")
	}
	return nil
}

func argAt[A any](deps []interface{}, position int) (A, error) {
	v, ok := deps[position].(A)
	if !ok {
		var zero A
		return zero, literrors.NewArgumentError(position, reflect.TypeOf((*A)(nil)).Elem().String(), fmt.Sprintf("%T", deps[position]))
	}
	return v, nil
}

// Ctor0 adapts func() T
func Ctor0[T any](fn func() T) Constructor {
	return func(deps ...interface{}) (interface{}, error) {
		if err := checkArity(deps, 0); err != nil {
			return nil, err
		}
		return fn(), nil
	}
}

// Ctor1 adapts func(A) T
func Ctor1[T, A any](fn func(A) T) Constructor {
	return func(deps ...interface{}) (interface{}, error) {
		if err := checkArity(deps, 1); err != nil {
			return nil, err
		}
		a, err := argAt[A](deps, 0)
		if err != nil {
			return nil, err
		}
		return fn(a), nil
	}
}

// Ctor2 adapts func(A, B) T
func Ctor2[T, A, B any](fn func(A, B) T) Constructor {
	return func(deps ...interface{}) (interface{}, error) {
		if err := checkArity(deps, 2); err != nil {
			return nil, err
		}
		a, err := argAt[A](deps, 0)
		if err != nil {
			return nil, err
		}
		b, err := argAt[B](deps, 1)
		if err != nil {
			return nil, err
		}
		return fn(a, b), nil
	}
}

// Ctor3 adapts func(A, B, C) T
func Ctor3[T, A, B, C any](fn func(A, B, C) T) Constructor {
	return func(deps ...interface{}) (interface{}, error) {
		if err := checkArity(deps, 3); err != nil {
			return nil, err
		}
		a, err := argAt[A](deps, 0)
		if err != nil {
			return nil, err
		}
		b, err := argAt[B](deps, 1)
		if err != nil {
			return nil, err
		}
		c, err := argAt[C](deps, 2)
		if err != nil {
			return nil, err
		}
		return fn(a, b, c), nil
	}
}

// Ctor4 adapts func(A, B, C, D) T
func Ctor4[T, A, B, C, D any](fn func(A, B, C, D) T) Constructor {
	return func(deps ...interface{}) (interface{}, error) {
		if err := checkArity(deps, 4); err != nil {
			return nil, err
		}
		a, err := argAt[A](deps, 0)
		if err != nil {
			return nil, err
		}
		b, err := argAt[B](deps, 1)
		if err != nil {
			return nil, err
		}
		c, err := argAt[C](deps, 2)
		if err != nil {
			return nil, err
		}
		d, err := argAt[D](deps, 3)
		if err != nil {
			return nil, err
		}
		return fn(a, b, c, d), nil
	}
}

// CtorE0 adapts func() (T, error)
func CtorE0[T any](fn func() (T, error)) Constructor {
	return func(deps ...interface{}) (interface{}, error) {
		if err := checkArity(deps, 0); err != nil {
			return nil, err
		}
		return fn()
	}
}

// CtorE1 adapts func(A) (T, error)
func CtorE1[T, A any](fn func(A) (T, error)) Constructor {
	return func(deps ...interface{}) (interface{}, error) {
		if err := checkArity(deps, 1); err != nil {
			return nil, err
		}
		a, err := argAt[A](deps, 0)
		if err != nil {
			return nil, err
		}
		return fn(a)
	}
}

// CtorE2 adapts func(A, B) (T, error)
func CtorE2[T, A, B any](fn func(A, B) (T, error)) Constructor {
	return func(deps ...interface{}) (interface{}, error) {
		if err := checkArity(deps, 2); err != nil {
			return nil, err
		}
		a, err := argAt[A](deps, 0)
		if err != nil {
			return nil, err
		}
		b, err := argAt[B](deps, 1)
		if err != nil {
			return nil, err
		}
		return fn(a, b)
	}
}
