package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the trigger counters and the registry they are exposed from.
type Metrics struct {
	registry *prometheus.Registry

	// Outcomes counts terminal handler outcomes.
	Outcomes *prometheus.CounterVec
	// HTTPRequests counts event deliveries by route and response status.
	HTTPRequests *prometheus.CounterVec
	// RequestDuration observes time spent answering event deliveries.
	RequestDuration *prometheus.HistogramVec
}

// New builds a Metrics with its own registry, so tests can create as many as
// they like without colliding on the default registerer.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "class_triggers_outcomes_total",
				Help: "Terminal outcomes of trigger invocations",
			},
			[]string{"handler", "status", "kind"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "class_triggers_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"path", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "class_triggers_http_request_duration_seconds",
				Help:    "Histogram of response durations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"path", "method"},
		),
	}
	m.registry.MustRegister(
		m.Outcomes,
		m.HTTPRequests,
		m.RequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveOutcome increments the outcome counter.
func (m *Metrics) ObserveOutcome(handler, status, kind string) {
	m.Outcomes.WithLabelValues(handler, status, kind).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
