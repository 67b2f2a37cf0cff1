package godi

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"

	"github.com/a-peyrard/hello-godi/option"
)

type (
	// FactoryMethodProvider provides the single component returned by a factory method,
	// the parameters of the method being its dependencies.
	FactoryMethodProvider struct {
		name         Name
		factory      reflect.Value
		dependencies []Request

		priority int

		description string
	}
)

// ToStaticProvider returns a factory always giving value. All static providers share the same
// default name, register them with Named.
func ToStaticProvider[T any](value T) func() T {
	return func() T { return value }
}

func NewFactoryMethodProvider(
	factoryMethod any,
	opts ...option.Option[RegistrableOptions],
) (Provider, error) {
	t := reflect.TypeOf(factoryMethod)
	if t == nil || t.Kind() != reflect.Func {
		return nil, fmt.Errorf("factory method must be a function")
	}
	if err := validateFactoryOutputs(t); err != nil {
		return nil, err
	}
	if t.IsVariadic() {
		return nil, errors.New("factory method must not be variadic")
	}

	fnName := functionName(reflect.ValueOf(factoryMethod))
	options := option.Apply(
		&RegistrableOptions{
			named:    filepath.Base(fnName),
			priority: 0,
		},
		opts...,
	)

	paramQueries, err := buildParamRequests(t, 0, options.dependencies)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependencies of factory method %s:\n\t%w", fnName, err)
	}

	return &FactoryMethodProvider{
		name: Name{
			name: options.named,
			typ:  t.Out(0),
		},
		factory:      reflect.ValueOf(factoryMethod),
		dependencies: paramQueries,
		priority:     options.priority,
		description:  options.description,
	}, nil
}

func validateFactoryOutputs(t reflect.Type) error {
	if t.NumOut() != 1 && t.NumOut() != 2 {
		return errors.New("factory method must either return the instance and an error, or just the instance")
	}
	if t.NumOut() == 2 && t.Out(1) != ErrorType {
		return errors.New("if factory method returns two elements, it must return an error as the second element")
	}
	return nil
}

// buildParamRequests builds the requests for the parameters of t, starting at parameter `from`.
func buildParamRequests(t reflect.Type, from int, deps []dependency) ([]Request, error) {
	requests := make([]Request, t.NumIn()-from)
	for i := range requests {
		depDef, found := tryGetAt(deps, i)
		if !found {
			depDef = defaultDependencyBuilder()
		}
		req, err := depDef.build(t.In(i + from))
		if err != nil {
			return nil, fmt.Errorf("failed to build dependency for parameter %d:\n\t%w", i+from, err)
		}
		requests[i] = req
	}
	return requests, nil
}

// callFactory calls the factory, turning panics and returned errors into an error.
func callFactory(name Name, factory reflect.Value, params []reflect.Value) (comp reflect.Value, err error) {
	var results []reflect.Value

	// panic recovery, as `Call` can panic if the factory method has a panic
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic calling factory for %s: %v", name.String(), r)
			}
		}()
		results = factory.Call(params)
	}()

	if err != nil {
		return reflect.Value{}, err
	}

	if len(results) == 2 && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}

	return results[0], nil
}

func functionName(fn reflect.Value) string {
	return runtime.FuncForPC(fn.Pointer()).Name()
}

func (f *FactoryMethodProvider) CanProvide(name Name) bool {
	return name.name == f.name.name && matchType(name.typ, f.name.typ)
}

func (f *FactoryMethodProvider) Provide(_ Name, dependencies []reflect.Value) (comp reflect.Value, err error) {
	return callFactory(f.name, f.factory, dependencies)
}

func (f *FactoryMethodProvider) Dependencies() []Request {
	return f.dependencies
}

func (f *FactoryMethodProvider) ListProvidableNames() []Name {
	return []Name{f.name}
}

func (f *FactoryMethodProvider) Priority() int {
	return f.priority
}

func (f *FactoryMethodProvider) Description() string {
	return f.description
}

func (f *FactoryMethodProvider) String() string {
	return fmt.Sprintf("FactoryMethodProvider(%s, %s)", f.name.String(), functionName(f.factory))
}
