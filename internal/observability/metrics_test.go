package observability

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersIsolatedRegistries(t *testing.T) {
	// Two instances must not clash on registration.
	first := New()
	second := New()

	first.FetchTotal.WithLabelValues("Hanoi", "success").Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(first.FetchTotal.WithLabelValues("Hanoi", "success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(second.FetchTotal.WithLabelValues("Hanoi", "success")))
}

func TestHandlerServesMetrics(t *testing.T) {
	m := New()
	m.AnalysisRequests.WithLabelValues("full").Inc()
	m.StoredDays.WithLabelValues("Hanoi").Set(90)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "weather_insight_analysis_requests_total")
	assert.Contains(t, body, "weather_insight_stored_days")
}
