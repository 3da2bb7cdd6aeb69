package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes operational counters for Prometheus scraping. A custom
// registry keeps the process from polluting the default one.
type Metrics struct {
	registry *prometheus.Registry

	exportsTotal    *prometheus.CounterVec
	exportRows      prometheus.Counter
	webhooksTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates and registers all application metrics
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		exportsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prism_exports_total",
				Help: "Total number of export cleaning runs by outcome",
			},
			[]string{"outcome"},
		),
		exportRows: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "prism_export_rows_total",
				Help: "Total number of rows written across all cleaned exports",
			},
		),
		webhooksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "prism_webhooks_total",
				Help: "Total number of webhook posts by severity and outcome",
			},
			[]string{"severity", "outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "prism_request_duration_seconds",
				Help:    "Dashboard request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(
		m.exportsTotal,
		m.exportRows,
		m.webhooksTotal,
		m.requestDuration,
	)
	return m
}

// Handler serves the registry at /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ExportSucceeded records a completed cleaning run and its output rows
func (m *Metrics) ExportSucceeded(rows int) {
	m.exportsTotal.WithLabelValues("success").Inc()
	m.exportRows.Add(float64(rows))
}

// ExportFailed records a cleaning run rejected or aborted with an error
func (m *Metrics) ExportFailed() {
	m.exportsTotal.WithLabelValues("failure").Inc()
}

// WebhookAccepted records a stored webhook message
func (m *Metrics) WebhookAccepted(severity string) {
	m.webhooksTotal.WithLabelValues(severity, "accepted").Inc()
}

// WebhookRejected records a webhook post that failed auth or validation
func (m *Metrics) WebhookRejected(severity string) {
	m.webhooksTotal.WithLabelValues(severity, "rejected").Inc()
}

// ObserveRequest records one dashboard request's latency in seconds
func (m *Metrics) ObserveRequest(route string, seconds float64) {
	m.requestDuration.WithLabelValues(route).Observe(seconds)
}
