package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type MetricsReporter struct {
	enabled  bool
	gatherer prometheus.Gatherer
	logger   *zerolog.Logger
}

// NewMetricsRegistry creates the registry of the application metrics.
//
// @provider named="app.metrics.registry"
func NewMetricsRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// NewGreetingsCounter counts the greetings.
//
// @provider named="greeting.counter"
func NewGreetingsCounter(registry *prometheus.Registry) (prometheus.Counter, error) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "hello",
		Name:      "greetings_total",
		Help:      "Number of greetings written.",
	})
	if err := registry.Register(counter); err != nil {
		return nil, fmt.Errorf("failed to register greetings counter:\n\t%w", err)
	}
	return counter, nil
}

// NewMetricsReporter logs the gathered metrics at the end of the run.
//
// @provider named="app.metrics.reporter"
func NewMetricsReporter(
	enabled bool, // @inject named="Config.Metrics.Enabled"
	registry *prometheus.Registry,
	logger *zerolog.Logger,
) *MetricsReporter {
	return &MetricsReporter{
		enabled:  enabled,
		gatherer: registry,
		logger:   logger,
	}
}

// Report logs every counter, it does nothing when metrics are disabled.
func (m *MetricsReporter) Report() error {
	if !m.enabled {
		return nil
	}
	families, err := m.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics:\n\t%w", err)
	}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if counter := metric.GetCounter(); counter != nil {
				m.logger.Info().
					Str("metric", family.GetName()).
					Float64("value", counter.GetValue()).
					Msg("metric gathered")
			}
		}
	}
	return nil
}
