package metric

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360/statekit/errors"
)

// Registry manages the registration and exposure of metrics
type Registry struct {
	prometheusRegistry *prometheus.Registry

	// Composer holds the core composer metrics, registered at creation
	Composer *ComposerMetrics

	mu sync.Mutex
}

// NewRegistry creates a new metrics registry with core composer metrics
// and Go runtime collectors pre-registered
func NewRegistry() *Registry {
	r := &Registry{
		prometheusRegistry: prometheus.NewRegistry(),
		Composer:           NewComposerMetrics(),
	}

	for _, c := range r.Composer.Collectors() {
		r.prometheusRegistry.MustRegister(c)
	}

	r.prometheusRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Register adds an additional collector to the registry
func (r *Registry) Register(c prometheus.Collector) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.prometheusRegistry.Register(c); err != nil {
		return errors.WrapConfiguration(err, "Registry", "Register", "collector registration")
	}

	return nil
}

// Handler returns an HTTP handler exposing the registry in Prometheus format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prometheusRegistry, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying gatherer for tests and custom exposition
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.prometheusRegistry
}
