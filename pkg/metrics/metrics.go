// Package metrics exposes Prometheus metrics for a running "guard watch".
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one guard process
type Metrics struct {
	registry *prometheus.Registry

	batches        prometheus.Counter
	changedPaths   prometheus.Counter
	derivedPaths   *prometheus.CounterVec
	actionFailures prometheus.Counter
	reloads        *prometheus.CounterVec
	runs           *prometheus.CounterVec
	batchDuration  prometheus.Histogram
}

// New creates the collectors on a dedicated registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		batches: factory.NewCounter(prometheus.CounterOpts{
			Name: "guard_batches_total",
			Help: "Total number of change batches processed",
		}),

		changedPaths: factory.NewCounter(prometheus.CounterOpts{
			Name: "guard_changed_paths_total",
			Help: "Total number of changed paths received",
		}),

		derivedPaths: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guard_derived_paths_total",
				Help: "Total number of paths derived by watch rules",
			},
			[]string{"guard"},
		),

		actionFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "guard_action_failures_total",
			Help: "Total number of failed watch actions",
		}),

		reloads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guard_guardfile_reloads_total",
				Help: "Total number of Guardfile reloads",
			},
			[]string{"result"},
		),

		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "guard_runs_total",
				Help: "Total number of guard run commands executed",
			},
			[]string{"guard", "result"},
		),

		batchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "guard_batch_duration_seconds",
			Help:    "Duration of batch evaluation in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 100µs to 26s
		}),
	}
}

// Registry returns the registry holding the collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordBatch records a processed batch of changed paths
func (m *Metrics) RecordBatch(changed int, took time.Duration) {
	m.batches.Inc()
	m.changedPaths.Add(float64(changed))
	m.batchDuration.Observe(took.Seconds())
}

// RecordDerived records the paths a guard derived from a batch
func (m *Metrics) RecordDerived(guard string, count int) {
	m.derivedPaths.WithLabelValues(guard).Add(float64(count))
}

// RecordActionFailure records a failed watch action
func (m *Metrics) RecordActionFailure() {
	m.actionFailures.Inc()
}

// RecordReload records a Guardfile reload
func (m *Metrics) RecordReload(ok bool) {
	m.reloads.WithLabelValues(result(ok)).Inc()
}

// RecordRun records a guard run command
func (m *Metrics) RecordRun(guard string, ok bool) {
	m.runs.WithLabelValues(guard, result(ok)).Inc()
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
