package godi

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/a-peyrard/hello-godi/option"
)

type (
	// Decorator wraps the component registered under ForName once it is built.
	Decorator interface {
		ForName() Name
		Decorate(toDecorate reflect.Value, dependencies []reflect.Value) (comp reflect.Value, err error)
		Dependencies() []Request
		Priority() int
		Description() string
	}

	// FactoryMethodDecorator decorates with a function taking the component first, then its dependencies.
	FactoryMethodDecorator struct {
		name         Name
		factory      reflect.Value
		dependencies []Request

		priority int

		description string
	}
)

func NewFactoryMethodDecorator(
	factoryMethod any,
	opts ...option.Option[RegistrableOptions],
) (Decorator, error) {
	options := option.Apply(
		&RegistrableOptions{
			priority: 0,
		},
		opts...,
	)
	if options.decorate == nil {
		return nil, errors.New("no decorate option provided")
	}

	t := reflect.TypeOf(factoryMethod)
	if t == nil || t.Kind() != reflect.Func {
		return nil, fmt.Errorf("factory method must be a function")
	}
	if err := validateFactoryOutputs(t); err != nil {
		return nil, err
	}
	if t.NumIn() < 1 {
		return nil, errors.New("factory method must have at least one parameter (the component to decorate)")
	}
	if t.In(0) != t.Out(0) {
		return nil, errors.New("the first parameter of the factory method must be the same type as the return type")
	}

	fnName := functionName(reflect.ValueOf(factoryMethod))

	// first param is the component to decorate
	paramQueries, err := buildParamRequests(t, 1, options.dependencies)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependencies of factory method %s:\n\t%w", fnName, err)
	}

	return &FactoryMethodDecorator{
		name: Name{
			name: *options.decorate,
			typ:  t.In(0),
		},
		factory:      reflect.ValueOf(factoryMethod),
		dependencies: paramQueries,
		priority:     options.priority,
		description:  options.description,
	}, nil
}

func (f *FactoryMethodDecorator) ForName() Name {
	return f.name
}

func (f *FactoryMethodDecorator) Decorate(toDecorate reflect.Value, dependencies []reflect.Value) (comp reflect.Value, err error) {
	parameters := append([]reflect.Value{toDecorate}, dependencies...)
	return callFactory(f.name, f.factory, parameters)
}

func (f *FactoryMethodDecorator) Dependencies() []Request {
	return f.dependencies
}

func (f *FactoryMethodDecorator) Priority() int {
	return f.priority
}

func (f *FactoryMethodDecorator) Description() string {
	return f.description
}

func (f *FactoryMethodDecorator) String() string {
	return fmt.Sprintf("FactoryMethodDecorator(%s, %s)", f.name.String(), functionName(f.factory))
}
