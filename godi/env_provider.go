package godi

import (
	"os"
	"reflect"
	"strings"
)

// EnvProvider is a provider that provides environment variables as components.
//
// Each variable is a string component named after the variable.
type EnvProvider struct{}

func (e *EnvProvider) CanProvide(name Name) bool {
	if name.typ == StringType && name.name != "" {
		_, found := os.LookupEnv(name.name)
		return found
	}

	return false
}

func (e *EnvProvider) Provide(name Name, _ []reflect.Value) (comp reflect.Value, err error) {
	return reflect.ValueOf(os.Getenv(name.name)), nil
}

func (e *EnvProvider) Dependencies() []Request {
	return nil
}

// ListProvidableNames lists the variables of the current environment, it is not cached
// as the environment can change between two resolutions.
func (e *EnvProvider) ListProvidableNames() []Name {
	props := os.Environ()
	names := make([]Name, 0, len(props))
	for _, prop := range props {
		key, _, _ := strings.Cut(prop, "=")
		if key == "" {
			continue
		}
		names = append(names, Name{
			name: key,
			typ:  StringType,
		})
	}
	return names
}

func (e *EnvProvider) Priority() int {
	return 0
}

func (e *EnvProvider) Description() string {
	return "Provides environment variables as string components"
}

func (e *EnvProvider) String() string {
	return "EnvProvider"
}
