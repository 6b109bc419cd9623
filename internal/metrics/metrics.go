package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RunMetrics bundles the Prometheus collectors for workload runs.
// All collectors live in a private registry so repeated construction
// (tests, multiple invocations) never trips duplicate registration.
type RunMetrics struct {
	registry *prometheus.Registry

	unitsCompleted *prometheus.CounterVec
	runsTotal      *prometheus.CounterVec
	runDuration    *prometheus.HistogramVec
}

// New creates a RunMetrics with its own registry, pre-populated with the
// standard Go runtime collectors.
func New() *RunMetrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	factory := promauto.With(registry)
	return &RunMetrics{
		registry: registry,
		unitsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sqrace_units_completed_total",
			Help: "Workload units retired, by runner strategy.",
		}, []string{"runner"}),
		runsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sqrace_runs_total",
			Help: "Completed runs, by runner strategy and outcome.",
		}, []string{"runner", "status"}),
		runDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sqrace_run_duration_seconds",
			Help:    "Wall-clock duration of a full run, by runner strategy.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"runner"}),
	}
}

// Registry returns the registry holding all run collectors, for exposition.
func (m *RunMetrics) Registry() *prometheus.Registry { return m.registry }

// UnitCompleted records the retirement of one workload unit.
func (m *RunMetrics) UnitCompleted(runner string) {
	m.unitsCompleted.WithLabelValues(runner).Inc()
}

// RunFinished records the outcome and duration of a full run.
func (m *RunMetrics) RunFinished(runner string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.runsTotal.WithLabelValues(runner, status).Inc()
	m.runDuration.WithLabelValues(runner).Observe(d.Seconds())
}
