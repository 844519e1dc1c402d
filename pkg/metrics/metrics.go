// Package metrics provides Prometheus self-instrumentation for a sweep
// run: classifier calls broken down by fault tag, and solver call counts
// and durations broken down by solver component and outcome. Unlike
// the teacher's `pkg/monitoring/prometheus.Client`, which queries an
// external Prometheus server over PromQL, this package registers and
// serves metrics describing this process's own solver activity — the
// natural instrumentation surface for an offline analysis engine with no
// live system to query.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the counters and histograms for one sweep run, registered
// against a private registry so multiple Recorders never collide.
type Recorder struct {
	registry *prometheus.Registry

	FaultsClassified *prometheus.CounterVec
	SolveDuration    *prometheus.HistogramVec
	SolveOutcome     *prometheus.CounterVec
}

// New creates a Recorder with a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()

	r := &Recorder{
		registry: reg,
		FaultsClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "d2drepair",
			Name:      "faults_classified_total",
			Help:      "Faults classified by the Fault Classifier, by preliminary tag.",
		}, []string{"tag"}),
		SolveDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "d2drepair",
			Name:      "solver_duration_seconds",
			Help:      "Per-call solver latency, by solver component.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"solver"}),
		SolveOutcome: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "d2drepair",
			Name:      "solver_outcomes_total",
			Help:      "Solver calls by component and resolved outcome.",
		}, []string{"solver", "outcome"}),
	}

	reg.MustRegister(r.FaultsClassified, r.SolveDuration, r.SolveOutcome)
	return r
}

// ObserveClassification records one Fault Classifier call's preliminary tag.
func (r *Recorder) ObserveClassification(tag string) {
	r.FaultsClassified.WithLabelValues(tag).Inc()
}

// ObserveSolve records one solver call's latency and resolved outcome.
func (r *Recorder) ObserveSolve(solver string, d time.Duration, outcome string) {
	r.SolveDuration.WithLabelValues(solver).Observe(d.Seconds())
	r.SolveOutcome.WithLabelValues(solver, outcome).Inc()
}

// Handler returns an http.Handler serving this Recorder's metrics in the
// Prometheus exposition format, for a `--metrics-addr`-style debug endpoint.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
