// Package config provides layered configuration for the bodygraph service:
// defaults in code, base and environment YAML/JSON files, a local overrides
// file in development, and environment variables on top.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Environment is the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config is the full service configuration.
type Config struct {
	Environment Environment `yaml:"environment" json:"environment"`

	Server    Server    `yaml:"server" json:"server"`
	Geocoder  Geocoder  `yaml:"geocoder" json:"geocoder"`
	Ephemeris Ephemeris `yaml:"ephemeris" json:"ephemeris"`
	Timezone  Timezone  `yaml:"timezone" json:"timezone"`
	Logging   Logging   `yaml:"logging" json:"logging"`
	Metrics   Metrics   `yaml:"metrics" json:"metrics"`
	Tracing   Tracing   `yaml:"tracing" json:"tracing"`
	CORS      CORS      `yaml:"cors" json:"cors"`

	// LoadedFrom records which sources contributed, for startup logging.
	LoadedFrom []string `yaml:"-" json:"-"`
}

// Server holds the HTTP server settings.
type Server struct {
	Host            string        `yaml:"host" json:"host"`
	Port            int           `yaml:"port" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" json:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// Geocoder configures the place-to-coordinates collaborator.
type Geocoder struct {
	BaseURL   string `yaml:"base_url" json:"base_url"`
	CachePath string `yaml:"cache_path" json:"cache_path"`
}

// Ephemeris configures the planetary position provider. When Provider is
// "mean" the service uses the built-in mean-motion provider and BaseURL is
// ignored.
type Ephemeris struct {
	Provider string `yaml:"provider" json:"provider"` // "http" or "mean"
	BaseURL  string `yaml:"base_url" json:"base_url"`
}

// Timezone configures the coordinates-to-timezone collaborator.
type Timezone struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
}

// Logging holds logger settings.
type Logging struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"` // "json" or "console"
}

// Metrics holds Prometheus settings.
type Metrics struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Namespace string `yaml:"namespace" json:"namespace"`
	Path      string `yaml:"path" json:"path"`
}

// Tracing holds OpenTelemetry settings.
type Tracing struct {
	Enabled     bool    `yaml:"enabled" json:"enabled"`
	ServiceName string  `yaml:"service_name" json:"service_name"`
	Endpoint    string  `yaml:"endpoint" json:"endpoint"`
	SampleRate  float64 `yaml:"sample_rate" json:"sample_rate"`
}

// CORS holds cross-origin settings for the HTTP API.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins"`
	AllowedMethods []string `yaml:"allowed_methods" json:"allowed_methods"`
	AllowedHeaders []string `yaml:"allowed_headers" json:"allowed_headers"`
	MaxAge         int      `yaml:"max_age" json:"max_age"`
}

// Validate checks the final merged configuration.
func (c *Config) Validate() error {
	switch c.Environment {
	case Development, Staging, Production:
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}

	switch c.Ephemeris.Provider {
	case "mean":
	case "http":
		if c.Ephemeris.BaseURL == "" {
			return fmt.Errorf("ephemeris.base_url is required when provider is %q", c.Ephemeris.Provider)
		}
	default:
		return fmt.Errorf("unknown ephemeris provider %q", c.Ephemeris.Provider)
	}

	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		return fmt.Errorf("tracing sample rate %f out of [0, 1]", c.Tracing.SampleRate)
	}

	return nil
}

// applyEnvironmentDefaults tightens settings per environment after merging.
func (c *Config) applyEnvironmentDefaults() {
	switch c.Environment {
	case Production:
		if c.Logging.Format == "" {
			c.Logging.Format = "json"
		}
	case Development:
		if c.Logging.Format == "" {
			c.Logging.Format = "console"
		}
		if c.Logging.Level == "" {
			c.Logging.Level = "debug"
		}
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == Development
}

// getEnvironment reads the deployment environment from ENVIRONMENT,
// defaulting to development.
func getEnvironment() Environment {
	switch strings.ToLower(os.Getenv("ENVIRONMENT")) {
	case "production", "prod":
		return Production
	case "staging":
		return Staging
	default:
		return Development
	}
}
