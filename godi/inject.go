package godi

import (
	"fmt"
	"reflect"
)

// Inject is used as a namespace for dependency injection builders.
var Inject = &injectBuilder{}

type (
	dependency interface {
		build(targetTyp reflect.Type) (Request, error)
	}

	// entry points for builders
	injectBuilder struct{}
)

type namedDependencyBuilder struct {
	named    string
	optional bool
}

// Named injects the component registered under the given name.
func (i *injectBuilder) Named(name string) dependency {
	return namedDependencyBuilder{named: name}
}

// OptionalNamed injects the component registered under the given name, or the zero value if there is none.
func (i *injectBuilder) OptionalNamed(name string) dependency {
	return namedDependencyBuilder{named: name, optional: true}
}

func (n namedDependencyBuilder) build(targetTyp reflect.Type) (Request, error) {
	return Request{
		unitaryTyp: targetTyp,
		query: queryByName{
			name: Name{name: n.named, typ: targetTyp},
		},
		validator: validatorFor(n.optional),
		collector: collectorUnique{},
	}, nil
}

type autoDependencyBuilder struct {
	optional bool
}

// Auto injects the only component matching the parameter type.
func (i *injectBuilder) Auto() dependency {
	return autoDependencyBuilder{}
}

// Optional injects the only component matching the parameter type, or the zero value if there is none.
func (i *injectBuilder) Optional() dependency {
	return autoDependencyBuilder{optional: true}
}

func (a autoDependencyBuilder) build(targetTyp reflect.Type) (Request, error) {
	return Request{
		unitaryTyp: targetTyp,
		query: queryByType{
			typ: targetTyp,
		},
		validator: validatorFor(a.optional),
		collector: collectorUnique{},
	}, nil
}

type multipleDependencyBuilder struct{}

// Multiple injects all the components matching the element type of a slice or a map parameter.
// Maps are keyed by component name.
func (i *injectBuilder) Multiple() dependency {
	return multipleDependencyBuilder{}
}

func (m multipleDependencyBuilder) build(targetTyp reflect.Type) (r Request, err error) {
	if targetTyp.Kind() == reflect.Slice {
		elemTyp := targetTyp.Elem()
		return Request{
			unitaryTyp: elemTyp,
			query: queryByType{
				typ: elemTyp,
			},
			validator: validatorMultiple{},
			collector: collectorMultipleAsSlice{},
		}, nil
	}
	if targetTyp.Kind() == reflect.Map {
		if targetTyp.Key() != StringType {
			return r, fmt.Errorf("multiple dependencies injected as map must be keyed by string, got %s", targetTyp)
		}
		valueTyp := targetTyp.Elem()
		return Request{
			unitaryTyp: valueTyp,
			query: queryByType{
				typ: valueTyp,
			},
			validator: validatorMultiple{},
			collector: collectorMultipleAsMap{},
		}, nil
	}
	return r, fmt.Errorf("multiple dependencies can only be used with slice or map types, got %s", targetTyp)
}

func validatorFor(optional bool) validator {
	if optional {
		return validatorUniqueOptional{}
	}
	return validatorUniqueMandatory{}
}

func defaultDependencyBuilder() dependency {
	return autoDependencyBuilder{}
}
