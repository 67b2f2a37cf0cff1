package slices

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	t.Run("it should map every item in order", func(t *testing.T) {
		// GIVEN
		names := []string{"greeting.service", "greeting.runner"}

		// WHEN
		result := Map(names, func(name string) string { return `godi.Named("` + name + `")` })

		// THEN
		assert.Equal(t, []string{`godi.Named("greeting.service")`, `godi.Named("greeting.runner")`}, result)
	})

	t.Run("it should give an empty slice for no items", func(t *testing.T) {
		// WHEN
		result := Map(nil, strings.ToUpper)

		// THEN
		assert.NotNil(t, result)
		assert.Empty(t, result)
	})
}

func TestFilter(t *testing.T) {
	t.Run("it should keep the matching items in order", func(t *testing.T) {
		// GIVEN
		expressions := []string{"godi.Inject.Auto()", `godi.Inject.Named("greeting.output")`, "godi.Inject.Auto()", "godi.Inject.Optional()"}

		// WHEN
		result := Filter(expressions, func(e string) bool { return e != "godi.Inject.Auto()" })

		// THEN
		assert.Equal(t, []string{`godi.Inject.Named("greeting.output")`, "godi.Inject.Optional()"}, result)
	})

	t.Run("it should give nil when nothing matches", func(t *testing.T) {
		// WHEN
		result := Filter([]int{1, 3, 5}, func(n int) bool { return n%2 == 0 })

		// THEN
		assert.Nil(t, result)
	})
}
