// Package config loads and validates the statekitd daemon configuration
// from a JSON file with environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/c360/statekit/component"
	"github.com/c360/statekit/errors"
)

// Config represents the complete daemon configuration
type Config struct {
	Version  string         `json:"version"`
	NATS     NATSConfig     `json:"nats"`
	Composer ComposerConfig `json:"composer"`
	Metrics  MetricsConfig  `json:"metrics"`
}

// NATSConfig holds the messaging transport settings
type NATSConfig struct {
	URL            string `json:"url" env:"STATEKIT_NATS_URL"`
	Name           string `json:"name" env:"STATEKIT_NATS_NAME"`
	TimeoutSeconds int    `json:"timeout_seconds" env:"STATEKIT_NATS_TIMEOUT_SECONDS"`
	Username       string `json:"username" env:"STATEKIT_NATS_USERNAME"`

	// Credentials come from the environment only, never the config file
	Password string `json:"-" env:"STATEKIT_NATS_PASSWORD"`
	Token    string `json:"-" env:"STATEKIT_NATS_TOKEN"`
}

// Timeout returns the connection timeout as a duration
func (n NATSConfig) Timeout() time.Duration {
	return time.Duration(n.TimeoutSeconds) * time.Second
}

// ComposerConfig declares the composite to maintain
type ComposerConfig struct {
	Name     string        `json:"name" env:"STATEKIT_COMPOSER_NAME"`
	Children []ChildConfig `json:"children"`
}

// ChildConfig declares one bus-bridged child to aggregate. Daemon children
// are always observed over the bus; direct-callback children only exist
// in-process and cannot be declared here.
type ChildConfig struct {
	Name     string                          `json:"name"`
	Metadata map[string]component.Descriptor `json:"metadata,omitempty"`
}

// MetricsConfig holds the Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool   `json:"enabled" env:"STATEKIT_METRICS_ENABLED"`
	Addr    string `json:"addr" env:"STATEKIT_METRICS_ADDR"`
	Path    string `json:"path" env:"STATEKIT_METRICS_PATH"`
}

// Default returns the baseline configuration
func Default() *Config {
	return &Config{
		Version: "1.0.0",
		NATS: NATSConfig{
			URL:            "nats://localhost:4222",
			Name:           "statekitd",
			TimeoutSeconds: 5,
		},
		Composer: ComposerConfig{
			Name: "Composer",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Addr:    ":9090",
			Path:    "/metrics",
		},
	}
}

// Load builds the configuration: defaults, then the JSON file at path (when
// non-empty), then environment variable overrides. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapConfiguration(err, "Config", "Load", "config file read")
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.WrapConfiguration(err, "Config", "Load", "config file parse")
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapConfiguration(err, "Config", "Load", "environment override parse")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for required fields and valid names
func (c *Config) Validate() error {
	if c.NATS.URL == "" {
		return errors.WrapConfiguration(
			errors.ErrMissingConfig, "Config", "Validate", "NATS URL check")
	}
	if c.NATS.TimeoutSeconds <= 0 {
		return errors.WrapConfiguration(
			fmt.Errorf("timeout_seconds must be positive, got %d", c.NATS.TimeoutSeconds),
			"Config", "Validate", "NATS timeout check")
	}

	if err := component.ValidateName(c.Composer.Name); err != nil {
		return errors.WrapConfiguration(err, "Config", "Validate", "composer name check")
	}
	for _, child := range c.Composer.Children {
		if err := component.ValidateName(child.Name); err != nil {
			return errors.WrapConfiguration(err, "Config", "Validate",
				fmt.Sprintf("child name check (%q)", child.Name))
		}
	}

	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return errors.WrapConfiguration(
			errors.ErrMissingConfig, "Config", "Validate", "metrics address check")
	}

	return nil
}
