package app

import (
	"fmt"

	"github.com/a-peyrard/hello-godi/config"
)

const envPrefix = "HELLO"

type (
	// Config of the hello application, read from HELLO_* variables.
	//
	// @config
	Config struct {
		LogLevel string
		Metrics  *MetricsConfig
	}

	MetricsConfig struct {
		Enabled bool
	}
)

// MetricsEnabled is true when HELLO_METRICS_ENABLED parses as a true boolean ("true", "1", "TRUE"...).
func (c *Config) MetricsEnabled() bool {
	return c.Metrics != nil && c.Metrics.Enabled
}

func (c *Config) ApplyDefault() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// LoadConfig reads the environment, completed by the given .env files when they exist.
func LoadConfig(dotEnvs ...string) (*Config, error) {
	cfg, err := config.Load[Config](
		config.WithEnvPrefix(envPrefix),
		config.WithDotEnv(dotEnvs...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s config:\n\t%w", envPrefix, err)
	}
	return cfg, nil
}
