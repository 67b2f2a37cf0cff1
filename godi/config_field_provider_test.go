package godi

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	GreetingConfig struct {
		Salutation string
		Repeat     int
		Loud       bool
		Output     *OutputConfig
	}

	OutputConfig struct {
		Target string
	}
)

func TestConfigFieldProvider(t *testing.T) {
	t.Run("it should list all providable names from config struct with correct types", func(t *testing.T) {
		// GIVEN
		provider := &ConfigFieldProvider[GreetingConfig]{}

		// WHEN
		names := provider.ListProvidableNames()

		// THEN
		require.Len(t, names, 5) // 4 fields + 1 inside the nested struct
		typeMap := make(map[string]reflect.Type)
		for _, name := range names {
			typeMap[name.name] = name.typ
		}
		assert.Equal(t, StringType, typeMap["GreetingConfig.Salutation"])
		assert.Equal(t, reflect.TypeOf(0), typeMap["GreetingConfig.Repeat"])
		assert.Equal(t, reflect.TypeOf(false), typeMap["GreetingConfig.Loud"])
		assert.Equal(t, reflect.TypeOf(&OutputConfig{}), typeMap["GreetingConfig.Output"])
		assert.Equal(t, StringType, typeMap["GreetingConfig.Output.Target"])
	})

	t.Run("it should only provide known fields with the right type", func(t *testing.T) {
		// GIVEN
		provider := &ConfigFieldProvider[GreetingConfig]{}

		// WHEN & THEN
		assert.True(t, provider.CanProvide(NewName("GreetingConfig.Salutation", StringType)))
		assert.True(t, provider.CanProvide(NewName("GreetingConfig.Output.Target", StringType)))
		assert.False(t, provider.CanProvide(NewName("GreetingConfig.Unknown", StringType)))
		assert.False(t, provider.CanProvide(NewName("GreetingConfig.Salutation", reflect.TypeOf(0))))
	})

	t.Run("it should provide the value of a nested field", func(t *testing.T) {
		// GIVEN
		provider := &ConfigFieldProvider[GreetingConfig]{}
		name := NewName("GreetingConfig.Output.Target", StringType)
		cfg := &GreetingConfig{Output: &OutputConfig{Target: "stdout"}}
		require.True(t, provider.CanProvide(name))

		// WHEN
		val, err := provider.Provide(name, []reflect.Value{reflect.ValueOf(cfg)})

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "stdout", val.Interface())
	})

	t.Run("it should provide the zero value below a nil section", func(t *testing.T) {
		// GIVEN
		provider := &ConfigFieldProvider[GreetingConfig]{}
		name := NewName("GreetingConfig.Output.Target", StringType)

		// WHEN
		val, err := provider.Provide(name, []reflect.Value{reflect.ValueOf(&GreetingConfig{})})

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "", val.Interface())
	})

	t.Run("it should fail on an unknown field", func(t *testing.T) {
		// GIVEN
		provider := &ConfigFieldProvider[GreetingConfig]{}
		name := NewName("GreetingConfig.Output.Color", StringType)

		// WHEN
		_, err := provider.Provide(name, []reflect.Value{reflect.ValueOf(&GreetingConfig{Output: &OutputConfig{}})})

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no exported field Color in godi.OutputConfig")
	})

	t.Run("it should cache names after first call", func(t *testing.T) {
		// GIVEN
		provider := &ConfigFieldProvider[GreetingConfig]{}

		// WHEN
		names1 := provider.ListProvidableNames()
		names2 := provider.ListProvidableNames()

		// THEN
		assert.Same(t, &names1[0], &names2[0])
	})

	t.Run("it should let a resolver inject config fields by name", func(t *testing.T) {
		// GIVEN
		resolver := New()
		resolver.MustRegister(ToStaticProvider(&GreetingConfig{Salutation: "Hello", Repeat: 2}))
		resolver.MustRegister(&ConfigFieldProvider[GreetingConfig]{})
		resolver.MustRegister(
			func(word string, repeat int) *Salutation {
				return &Salutation{Word: strings.Repeat(word+" ", repeat)}
			},
			Dependencies(
				Inject.Named("GreetingConfig.Salutation"),
				Inject.Named("GreetingConfig.Repeat"),
			),
		)

		// WHEN
		repeat, err := ResolveNamed[int](resolver, "GreetingConfig.Repeat")
		require.NoError(t, err)
		salutation, err := Resolve[*Salutation](resolver)
		require.NoError(t, err)

		// THEN
		assert.Equal(t, 2, repeat)
		assert.Equal(t, "Hello Hello ", salutation.Word)
	})
}
