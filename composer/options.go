package composer

import (
	"log/slog"

	"github.com/c360/statekit/metric"
)

// Option configures a Composer at construction
type Option func(*Composer)

// WithName sets the composer's own name, which derives its aggregate
// notification topic. Defaults to DefaultName.
func WithName(name string) Option {
	return func(c *Composer) {
		if name != "" {
			c.name = name
		}
	}
}

// WithLogger sets the logger for publish failures and bridging events
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics attaches composer metrics, typically metric.NewRegistry().Composer
func WithMetrics(m *metric.ComposerMetrics) Option {
	return func(c *Composer) {
		c.metrics = m
	}
}
