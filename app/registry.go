package app

import (
	"strconv"

	"github.com/a-peyrard/hello-godi/godi"
	"github.com/rs/zerolog"
)

//go:generate go run ../cmd/generator

// Registry registers the components of the application, see registry_gen.go.
type Registry struct {
	godi.EmptyRegistry
}

// MetricsEnabledName names the "true"/"false" string component the metrics conditions are evaluated on.
const MetricsEnabledName = "app.metrics.enabled"

// NewResolver creates the resolver of a run: the loaded config, the logger, the environment,
// then every annotated component.
func NewResolver(cfg *Config, logger *zerolog.Logger) *godi.Resolver {
	resolver := godi.New(godi.WithLogger(logger))
	resolver.MustRegister(godi.ToStaticProvider(cfg), godi.Named("app.config"))
	resolver.MustRegister(godi.ToStaticProvider(logger), godi.Named("app.logger"))
	resolver.MustRegister(godi.ToStaticProvider(strconv.FormatBool(cfg.MetricsEnabled())), godi.Named(MetricsEnabledName))
	resolver.MustRegister(&godi.EnvProvider{})
	Registry{}.Register(resolver)
	return resolver
}
