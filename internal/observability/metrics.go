package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the service. Each
// instance carries its own registry so tests never hit "already
// registered" panics.
type Metrics struct {
	FetchTotal       *prometheus.CounterVec // labels: location, outcome={success,error}
	AnalysisRequests *prometheus.CounterVec // label: kind
	ReportDuration   prometheus.Histogram
	StoredDays       *prometheus.GaugeVec // label: location

	registry *prometheus.Registry
}

// New creates and registers all service metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_insight",
			Name:      "fetch_total",
			Help:      "Upstream fetches by location and outcome.",
		}, []string{"location", "outcome"}),
		AnalysisRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_insight",
			Name:      "analysis_requests_total",
			Help:      "Analysis operations served, by kind.",
		}, []string{"kind"}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "weather_insight",
			Name:      "report_duration_seconds",
			Help:      "Time to compose a narrative report.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		StoredDays: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "weather_insight",
			Name:      "stored_days",
			Help:      "Number of daily records currently stored per location.",
		}, []string{"location"}),
		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.FetchTotal,
		m.AnalysisRequests,
		m.ReportDuration,
		m.StoredDays,
	)
	return m
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
