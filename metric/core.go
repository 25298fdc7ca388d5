// Package metric provides Prometheus instrumentation for the composer.
package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ComposerMetrics holds the core metrics for one composer instance
type ComposerMetrics struct {
	// NotificationsReceived counts child change notifications by child name
	NotificationsReceived *prometheus.CounterVec

	// NotificationsPublished counts aggregate notifications republished
	NotificationsPublished prometheus.Counter

	// CompositeSlices tracks the current number of slices in the composite
	CompositeSlices prometheus.Gauge

	// ReplaceDuration observes the latency of one replace-and-publish cycle
	ReplaceDuration prometheus.Histogram
}

// NewComposerMetrics creates the composer metric set
func NewComposerMetrics() *ComposerMetrics {
	return &ComposerMetrics{
		NotificationsReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "statekit",
				Subsystem: "composer",
				Name:      "notifications_received_total",
				Help:      "Child change notifications received, by child name",
			},
			[]string{"child"},
		),
		NotificationsPublished: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "statekit",
				Subsystem: "composer",
				Name:      "notifications_published_total",
				Help:      "Aggregate change notifications republished",
			},
		),
		CompositeSlices: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "statekit",
				Subsystem: "composer",
				Name:      "composite_slices",
				Help:      "Current number of slices in the composite state",
			},
		),
		ReplaceDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "statekit",
				Subsystem: "composer",
				Name:      "replace_duration_seconds",
				Help:      "Latency of one slice replace and aggregate publish",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// Collectors returns all collectors for registration
func (m *ComposerMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.NotificationsReceived,
		m.NotificationsPublished,
		m.CompositeSlices,
		m.ReplaceDuration,
	}
}
