package metric

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r.Composer)

	// Core composer metrics respond to updates
	r.Composer.NotificationsReceived.WithLabelValues("cart").Inc()
	r.Composer.NotificationsPublished.Inc()
	r.Composer.CompositeSlices.Set(2)

	assert.Equal(t, float64(1),
		testutil.ToFloat64(r.Composer.NotificationsReceived.WithLabelValues("cart")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.Composer.NotificationsPublished))
	assert.Equal(t, float64(2), testutil.ToFloat64(r.Composer.CompositeSlices))
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	extra := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "statekit_test_extra_total",
		Help: "test counter",
	})
	require.NoError(t, r.Register(extra))

	// Duplicate registration fails
	err := r.Register(extra)
	require.Error(t, err)
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.Composer.NotificationsPublished.Inc()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "statekit_composer_notifications_published_total 1")
}
