package godi

import "reflect"

type (
	// Provider builds components. The resolver asks it for the names it can provide,
	// then calls Provide with the resolved dependencies, in the order returned by Dependencies.
	Provider interface {
		CanProvide(name Name) bool
		Provide(name Name, dependencies []reflect.Value) (comp reflect.Value, err error)
		Dependencies() []Request
		ListProvidableNames() []Name
		Priority() int
		Description() string
	}

	// EmptyRegistry is embedded by the application registries, the generator looks for it
	// to know where to write the registration code.
	EmptyRegistry struct{}
)
