// Package metrics exposes Prometheus instrumentation for the scrape pipeline.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "olx_scraper"

// Metrics holds the pipeline collectors.
type Metrics struct {
	registry *prometheus.Registry

	PagesFetched  *prometheus.CounterVec
	AdsReconciled *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	PassDuration  prometheus.Histogram
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		PagesFetched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_fetched_total",
			Help:      "Result pages fetched, by fetch path and outcome.",
		}, []string{"path", "outcome"}),
		AdsReconciled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ads_reconciled_total",
			Help:      "Candidate ads reconciled against the store, by outcome.",
		}, []string{"outcome"}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Deal notifications dispatched, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		PassDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pass_duration_seconds",
			Help:      "Duration of a full scrape pass over all searches.",
			Buckets:   []float64{10, 30, 60, 120, 300, 600, 1200, 2400},
		}),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// PageFetched counts one page fetch attempt.
func (m *Metrics) PageFetched(path, outcome string) {
	if m == nil {
		return
	}
	m.PagesFetched.WithLabelValues(path, outcome).Inc()
}

// AdReconciled counts one reconcile outcome.
func (m *Metrics) AdReconciled(outcome string) {
	if m == nil {
		return
	}
	m.AdsReconciled.WithLabelValues(outcome).Inc()
}

// NotificationSent counts one notification dispatch step.
func (m *Metrics) NotificationSent(kind, outcome string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(kind, outcome).Inc()
}

// ObservePass records the duration of a full pass.
func (m *Metrics) ObservePass(d time.Duration) {
	if m == nil {
		return
	}
	m.PassDuration.Observe(d.Seconds())
}
