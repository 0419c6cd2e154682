package telemetry

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service metrics on a private prometheus registry
type Registry struct {
	registry *prometheus.Registry

	// Dispatch
	ActionsTotal        *prometheus.CounterVec
	RecalculateDuration prometheus.Histogram
	Companies           prometheus.Gauge

	// Persistence
	PersistWritesTotal   prometheus.Counter
	PersistFailuresTotal prometheus.Counter

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	return &Registry{
		registry: reg,
		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "whatif_actions_total",
				Help: "Reducer actions dispatched, by type and whether they changed state",
			},
			[]string{"action", "applied"},
		),
		RecalculateDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "whatif_recalculate_duration_seconds",
				Help:    "Time spent deriving metrics for one snapshot",
				Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01},
			},
		),
		Companies: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "whatif_companies",
				Help: "Companies currently held in state",
			},
		),
		PersistWritesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "whatif_persist_writes_total",
				Help: "Whole-list writes to the company store",
			},
		),
		PersistFailuresTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "whatif_persist_failures_total",
				Help: "Failed writes to the company store",
			},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "whatif_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "whatif_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

func (r *Registry) RecordAction(action string, applied bool) {
	label := "false"
	if applied {
		label = "true"
	}
	r.ActionsTotal.WithLabelValues(action, label).Inc()
}

func (r *Registry) RecordPersist(err error) {
	r.PersistWritesTotal.Inc()
	if err != nil {
		r.PersistFailuresTotal.Inc()
	}
}

func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// TimeRecalculate wraps a derivation function so every call is observed
func TimeRecalculate[T any](r *Registry, fn func(T) T) func(T) T {
	return func(in T) T {
		start := time.Now()
		out := fn(in)
		r.RecalculateDuration.Observe(time.Since(start).Seconds())
		return out
	}
}

// Handler serves the registry in the prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
