// Package metrics holds the Prometheus collectors of the preview server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "seopost"

// Metrics groups the collectors registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	RequestCount     *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	InFlight         prometheus.Gauge
	DocumentsParsed  *prometheus.CounterVec
	ParseWarnings    prometheus.Counter
	RenderDuration   *prometheus.HistogramVec
	GeneratedOutputs *prometheus.CounterVec
}

// New registers the collectors, plus the Go and process collectors, on a
// fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestCount: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		InFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests being served",
			},
		),
		DocumentsParsed: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_parsed_total",
				Help:      "Total number of parsed documents by validity",
			},
			[]string{"valid"},
		),
		ParseWarnings: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "parse_warnings_total",
				Help:      "Total number of parse warnings raised",
			},
		),
		RenderDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_duration_seconds",
				Help:      "HTML generation time in seconds",
				Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
			},
			[]string{"format"},
		),
		GeneratedOutputs: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generated_outputs_total",
				Help:      "Total number of generated outputs by format",
			},
			[]string{"format"},
		),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.RequestCount.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveParse records a parse result.
func (m *Metrics) ObserveParse(valid bool, warnings int) {
	m.DocumentsParsed.WithLabelValues(strconv.FormatBool(valid)).Inc()
	m.ParseWarnings.Add(float64(warnings))
}

// ObserveRender records one generated output.
func (m *Metrics) ObserveRender(format string, elapsed time.Duration) {
	m.GeneratedOutputs.WithLabelValues(format).Inc()
	m.RenderDuration.WithLabelValues(format).Observe(elapsed.Seconds())
}
