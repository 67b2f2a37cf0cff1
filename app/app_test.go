package app

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/a-peyrard/hello-godi/godi"
	"github.com/a-peyrard/hello-godi/greeting"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unregistered struct{}

func newTestResolver(t *testing.T, cfg *Config, logs io.Writer) (*godi.Resolver, *bytes.Buffer) {
	t.Helper()
	logger, err := NewLogger(logs, "debug")
	require.NoError(t, err)

	resolver := NewResolver(cfg, logger)
	t.Cleanup(func() { _ = resolver.Close() })

	var out bytes.Buffer
	resolver.MustRegister(func() io.Writer { return &out }, godi.Named("greeting.output"), godi.Priority(100))
	return resolver, &out
}

func TestLoadConfig(t *testing.T) {
	t.Run("it should default the log level", func(t *testing.T) {
		// WHEN
		cfg, err := LoadConfig()

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
		require.NotNil(t, cfg.Metrics)
		assert.False(t, cfg.Metrics.Enabled)
	})

	t.Run("it should read HELLO variables", func(t *testing.T) {
		// GIVEN
		t.Setenv("HELLO_LOG_LEVEL", "warn")
		t.Setenv("HELLO_METRICS_ENABLED", "true")

		// WHEN
		cfg, err := LoadConfig()

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.True(t, cfg.Metrics.Enabled)
	})

	t.Run("it should read a .env file", func(t *testing.T) {
		// GIVEN
		dotEnv := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(dotEnv, []byte("HELLO_LOG_LEVEL=trace\n"), 0o600))
		t.Cleanup(func() { _ = os.Unsetenv("HELLO_LOG_LEVEL") })

		// WHEN
		cfg, err := LoadConfig(dotEnv)

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "trace", cfg.LogLevel)
	})
}

func TestNewLogger(t *testing.T) {
	t.Run("it should tag entries with the run id", func(t *testing.T) {
		// GIVEN
		var logs bytes.Buffer
		logger, err := NewLogger(&logs, "info")
		require.NoError(t, err)

		// WHEN
		logger.Info().Msg("hi")
		logger.Debug().Msg("filtered")

		// THEN
		assert.Contains(t, logs.String(), "run_id=")
		assert.Contains(t, logs.String(), "hi")
		assert.NotContains(t, logs.String(), "filtered")
	})

	t.Run("it should reject an unknown level", func(t *testing.T) {
		// WHEN
		_, err := NewLogger(io.Discard, "chatty")

		// THEN
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}

func TestNewResolver(t *testing.T) {
	cfg := &Config{LogLevel: "debug", Metrics: &MetricsConfig{}}

	t.Run("it should resolve a greeter writing the greeting line", func(t *testing.T) {
		// GIVEN
		resolver, out := newTestResolver(t, cfg, io.Discard)

		// WHEN
		greeter, err := godi.Resolve[greeting.Greeter](resolver)
		require.NoError(t, err)
		greeter.SayHello()

		// THEN
		require.NotNil(t, greeter)
		assert.Equal(t, "Hello, World!\n", out.String())
	})

	t.Run("it should always resolve the same greeter", func(t *testing.T) {
		// GIVEN
		resolver, out := newTestResolver(t, cfg, io.Discard)

		// WHEN
		first, err := godi.Resolve[greeting.Greeter](resolver)
		require.NoError(t, err)
		second, err := godi.ResolveNamed[greeting.Greeter](resolver, "greeting.service")
		require.NoError(t, err)
		first.SayHello()
		second.SayHello()

		// THEN
		assert.Same(t, first, second)
		assert.Equal(t, "Hello, World!\nHello, World!\n", out.String())
	})

	t.Run("it should fail with a resolution error for an unregistered type", func(t *testing.T) {
		// GIVEN
		resolver, out := newTestResolver(t, cfg, io.Discard)

		// WHEN
		_, err := godi.Resolve[*unregistered](resolver)

		// THEN
		require.Error(t, err)
		var resolutionErr *godi.ResolutionError
		require.ErrorAs(t, err, &resolutionErr)
		assert.ErrorIs(t, err, godi.ErrNoProvider)
		assert.Empty(t, out.String())
	})

	t.Run("it should expose the config fields", func(t *testing.T) {
		// GIVEN
		resolver, _ := newTestResolver(t, cfg, io.Discard)

		// WHEN
		level, err := godi.ResolveNamed[string](resolver, "Config.LogLevel")

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "debug", level)
	})

	t.Run("it should not count greetings when metrics are disabled", func(t *testing.T) {
		// GIVEN
		resolver, _ := newTestResolver(t, cfg, io.Discard)
		greeter, err := godi.Resolve[greeting.Greeter](resolver)
		require.NoError(t, err)

		// WHEN
		greeter.SayHello()

		// THEN
		registry, err := godi.Resolve[*prometheus.Registry](resolver)
		require.NoError(t, err)
		families, err := registry.Gather()
		require.NoError(t, err)
		assert.Empty(t, families)
	})

	t.Run("it should count and report greetings when metrics are enabled", func(t *testing.T) {
		// GIVEN
		var logs bytes.Buffer
		resolver, out := newTestResolver(t, &Config{LogLevel: "debug", Metrics: &MetricsConfig{Enabled: true}}, &logs)
		greeter, err := godi.Resolve[greeting.Greeter](resolver)
		require.NoError(t, err)

		// WHEN
		greeter.SayHello()
		greeter.SayHello()
		reporter, err := godi.Resolve[*MetricsReporter](resolver)
		require.NoError(t, err)
		err = reporter.Report()

		// THEN
		require.NoError(t, err)
		assert.Equal(t, "Hello, World!\nHello, World!\n", out.String())
		counter, err := godi.ResolveNamed[prometheus.Counter](resolver, "greeting.counter")
		require.NoError(t, err)
		assert.Equal(t, 2.0, testutil.ToFloat64(counter))
		assert.Contains(t, logs.String(), "hello_greetings_total")
	})

	for _, enabled := range []string{"1", "TRUE", "true"} {
		t.Run("it should count greetings when metrics are enabled with "+enabled, func(t *testing.T) {
			// GIVEN
			t.Setenv("HELLO_METRICS_ENABLED", enabled)
			loaded, err := LoadConfig()
			require.NoError(t, err)
			resolver, _ := newTestResolver(t, loaded, io.Discard)
			greeter, err := godi.Resolve[greeting.Greeter](resolver)
			require.NoError(t, err)

			// WHEN
			greeter.SayHello()

			// THEN
			counter, err := godi.ResolveNamed[prometheus.Counter](resolver, "greeting.counter")
			require.NoError(t, err)
			assert.Equal(t, 1.0, testutil.ToFloat64(counter))
			flag, err := godi.ResolveNamed[string](resolver, MetricsEnabledName)
			require.NoError(t, err)
			assert.Equal(t, "true", flag)
		})
	}

	t.Run("it should not decorate the greeter without a metrics section", func(t *testing.T) {
		// GIVEN
		resolver, _ := newTestResolver(t, &Config{LogLevel: "debug"}, io.Discard)

		// WHEN
		greeter, err := godi.Resolve[greeting.Greeter](resolver)

		// THEN
		require.NoError(t, err)
		assert.IsType(t, &greeting.Service{}, greeter)
	})
}

func TestMetricsReporter(t *testing.T) {
	t.Run("it should stay silent when disabled", func(t *testing.T) {
		// GIVEN
		var logs bytes.Buffer
		logger := zerolog.New(&logs)
		registry := NewMetricsRegistry()
		counter, err := NewGreetingsCounter(registry)
		require.NoError(t, err)
		counter.Inc()
		reporter := NewMetricsReporter(false, registry, &logger)

		// WHEN
		err = reporter.Report()

		// THEN
		require.NoError(t, err)
		assert.Empty(t, logs.String())
	})

	t.Run("it should refuse to register the counter twice", func(t *testing.T) {
		// GIVEN
		registry := NewMetricsRegistry()
		_, err := NewGreetingsCounter(registry)
		require.NoError(t, err)

		// WHEN
		_, err = NewGreetingsCounter(registry)

		// THEN
		require.Error(t, err)
	})
}
