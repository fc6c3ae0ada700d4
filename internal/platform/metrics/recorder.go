// Package metrics records per-run counters for the snapshot updater and
// exports them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sports_dashboard"

// Recorder owns a private registry so runs never pick up Go runtime collectors.
type Recorder struct {
	registry *prometheus.Registry

	sourceFailures  *prometheus.CounterVec
	sourceRequests  *prometheus.CounterVec
	selected        prometheus.Gauge
	carryOver       *prometheus.CounterVec
	degradedTimes   prometheus.Counter
	fallbackTables  prometheus.Counter
	runDuration     prometheus.Histogram
	lastSuccessUnix prometheus.Gauge
	runsTotal       *prometheus.CounterVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Recorder{
		registry: registry,
		sourceFailures: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "failures_total",
			Help:      "Upstream source calls that failed, by source.",
		}, []string{"source"}),
		sourceRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "source",
			Name:      "requests_total",
			Help:      "Upstream source calls attempted, by source.",
		}, []string{"source"}),
		selected: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "football",
			Name:      "selected_fixtures",
			Help:      "Number of fixtures in the published batch.",
		}),
		carryOver: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "football",
			Name:      "batch_decisions_total",
			Help:      "Carry-over outcomes: retained or replaced.",
		}, []string{"decision"}),
		degradedTimes: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "timezone",
			Name:      "degraded_total",
			Help:      "Kickoff strings that could not be converted.",
		}),
		fallbackTables: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "football",
			Name:      "standings_fallback_total",
			Help:      "Runs that classified against the seeded standings.",
		}),
		runDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "duration_seconds",
			Help:      "Wall time of a full refresh run.",
			Buckets:   []float64{1, 5, 10, 20, 30, 60, 120, 300},
		}),
		lastSuccessUnix: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last snapshot written.",
		}),
		runsTotal: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "run",
			Name:      "total",
			Help:      "Runs by outcome.",
		}, []string{"outcome"}),
	}
}

func (r *Recorder) SourceRequest(source string) {
	if r == nil {
		return
	}
	r.sourceRequests.WithLabelValues(source).Inc()
}

func (r *Recorder) SourceFailed(source string) {
	if r == nil {
		return
	}
	r.sourceFailures.WithLabelValues(source).Inc()
}

func (r *Recorder) BatchDecision(retained bool, size int) {
	if r == nil {
		return
	}
	decision := "replaced"
	if retained {
		decision = "retained"
	}
	r.carryOver.WithLabelValues(decision).Inc()
	r.selected.Set(float64(size))
}

func (r *Recorder) DegradedTime() {
	if r == nil {
		return
	}
	r.degradedTimes.Inc()
}

func (r *Recorder) StandingsFallback() {
	if r == nil {
		return
	}
	r.fallbackTables.Inc()
}

// RunFinished records the outcome label ("ok", "rate_limited", "failed").
func (r *Recorder) RunFinished(outcome string, took time.Duration, at time.Time) {
	if r == nil {
		return
	}
	r.runsTotal.WithLabelValues(outcome).Inc()
	r.runDuration.Observe(took.Seconds())
	if outcome == "ok" {
		r.lastSuccessUnix.Set(float64(at.Unix()))
	}
}

// WriteTextfile is a no-op for an empty path.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
