package godi

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/a-peyrard/hello-godi/reflectutils"
)

// ConfigFieldProvider is a provider that provides all config fields as components.
//
// Fields are named after the config struct and their path, so the field "Port" of the struct
// "TestConfig" is provided as "TestConfig.Port". It depends on the *T component.
type ConfigFieldProvider[T any] struct {
	once          sync.Once
	names         []Name
	fieldWithType map[string]reflect.Type
	prefix        string
}

func (c *ConfigFieldProvider[T]) CanProvide(name Name) bool {
	c.loadNamesIfNeeded()

	knownName, found := c.fieldWithType[name.name]
	return found && matchType(name.typ, knownName)
}

func (c *ConfigFieldProvider[T]) Provide(name Name, dependencies []reflect.Value) (comp reflect.Value, err error) {
	value, err := fieldByPath(dependencies[0], strings.TrimPrefix(name.name, c.prefix))
	if err != nil {
		return reflect.Zero(name.typ), fmt.Errorf("failed to read config field %s:\n\t%w", name.name, err)
	}
	if !value.IsValid() {
		return reflect.Zero(name.typ), nil
	}
	if !value.Type().AssignableTo(name.typ) {
		return reflect.Zero(name.typ), fmt.Errorf("field %s has type %v, expected %v", name.name, value.Type(), name.typ)
	}
	return value, nil
}

// fieldByPath reads the exported field at the dotted path. A nil section on the way gives an
// invalid value, read as the zero value of the field.
func fieldByPath(cfg reflect.Value, path string) (reflect.Value, error) {
	val := cfg
	for _, token := range strings.Split(path, ".") {
		val = reflectutils.Deref(val)
		if !val.IsValid() {
			return reflect.Value{}, nil
		}
		if val.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("cannot read %s from %s, not a struct", token, val.Type())
		}
		field, found := val.Type().FieldByName(token)
		if !found || !field.IsExported() {
			return reflect.Value{}, fmt.Errorf("no exported field %s in %s", token, val.Type())
		}
		val = val.FieldByIndex(field.Index)
	}
	return val, nil
}

func (c *ConfigFieldProvider[T]) Dependencies() []Request {
	configType := reflect.TypeOf((*T)(nil))
	return []Request{
		{
			unitaryTyp: configType,
			query:      queryByType{typ: configType},
			validator:  validatorUniqueMandatory{},
			collector:  collectorUnique{},
		},
	}
}

func (c *ConfigFieldProvider[T]) ListProvidableNames() []Name {
	c.loadNamesIfNeeded()
	return c.names
}

func (c *ConfigFieldProvider[T]) Priority() int {
	return 0
}

func (c *ConfigFieldProvider[T]) Description() string {
	return fmt.Sprintf("Provides the fields of %s as components", TypeOf[T]())
}

func (c *ConfigFieldProvider[T]) String() string {
	return fmt.Sprintf("ConfigFieldProvider[%s]", TypeOf[T]())
}

func (c *ConfigFieldProvider[T]) loadNamesIfNeeded() {
	c.once.Do(func() {
		c.loadNamesInternal()
	})
}

func (c *ConfigFieldProvider[T]) loadNamesInternal() {
	emptyConfig := new(T)
	// we prefix all providers by the config struct name,
	// so if one want to get the value of the field "Port" in the struct "TestConfig",
	// the provider will be named "TestConfig.Port".
	c.prefix = reflect.TypeOf(emptyConfig).Elem().Name() + "."

	c.fieldWithType = make(map[string]reflect.Type)
	reflectutils.WalkStruct(
		emptyConfig,
		reflectutils.Visitors(
			reflectutils.InitNilStructs,
			func(_ reflect.Value, fieldTyp reflect.Type, path []string) {
				if len(path) > 0 {
					fieldPath := c.prefix + strings.Join(path, ".")
					c.fieldWithType[fieldPath] = fieldTyp
				}
			},
		),
	)

	c.names = make([]Name, 0, len(c.fieldWithType))
	for fieldPath, fieldTyp := range c.fieldWithType {
		c.names = append(
			c.names,
			Name{
				name: fieldPath,
				typ:  fieldTyp,
			},
		)
	}
}
