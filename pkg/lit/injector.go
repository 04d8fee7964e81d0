package lit

import (
	"fmt"
	"reflect"

	literrors "github.com/toyz/lit/internal/errors"
)

// Injector constructs classes from the dependency lists recorded in a Store.
// It never caches: every Resolve builds a new instance and a new sub-graph.
type Injector struct {
	store *Store
}

// NewInjector creates an injector reading from store
func NewInjector(store *Store) *Injector {
	return &Injector{store: store}
}

// Resolve builds an instance of class. Dependencies are resolved depth-first,
// left to right, and passed to the constructor positionally. A class with no
// recorded dependencies is constructed with no arguments.
func (i *Injector) Resolve(class *Class) (interface{}, error) {
	return i.resolve(class, nil)
}

func (i *Injector) resolve(class *Class, chain []*Class) (interface{}, error) {
	if class == nil {
		return nil, literrors.WrapDependencyError("<nil>", fmt.Errorf("class reference is nil"))
	}
	for idx, seen := range chain {
		if seen == class {
			names := make([]string, 0, len(chain)-idx+1)
			for _, c := range chain[idx:] {
				names = append(names, c.Name())
			}
			return nil, literrors.NewCycleError("dependency", append(names, class.Name()))
		}
	}
	chain = append(chain[:len(chain):len(chain)], class)

	deps := i.store.Params(class, "")
	args := make([]interface{}, 0, len(deps))
	for _, dep := range deps {
		instance, err := i.resolve(dep, chain)
		if err != nil {
			return nil, err
		}
		args = append(args, instance)
	}

	ctor := class.Constructor()
	if ctor == nil {
		return nil, literrors.WrapDependencyError(class.Name(), fmt.Errorf("%s declares no constructor", class))
	}
	instance, err := ctor(args...)
	if err != nil {
		return nil, literrors.WrapDependencyError(class.Name(), err)
	}
	return instance, nil
}

// Resolve builds class and asserts the instance to T
func Resolve[T any](inj *Injector, class *Class) (T, error) {
	var zero T
	instance, err := inj.Resolve(class)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, literrors.WrapDependencyError(class.Name(),
			fmt.Errorf("instance is %T, not %s", instance, reflect.TypeOf((*T)(nil)).Elem()))
	}
	return typed, nil
}
