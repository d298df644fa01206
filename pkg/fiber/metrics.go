package fiber

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of a Scheduler.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	units          prometheus.Counter
	yields         prometheus.Counter
	commits        *prometheus.CounterVec
	discarded      *prometheus.CounterVec
	bailouts       prometheus.Counter
	failures       *prometheus.CounterVec
	commitDuration prometheus.Histogram
}

// MetricsConfig configures NewMetrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "fiber").
	Namespace string

	// Registry is the Prometheus registry to use.
	// Nil leaves the collectors unregistered.
	Registry prometheus.Registerer

	// Buckets are the histogram buckets for commit duration.
	// Default: prometheus.DefBuckets
	Buckets []float64
}

// NewMetrics creates and registers the scheduler collectors.
func NewMetrics(cfg MetricsConfig) *Metrics {
	if cfg.Namespace == "" {
		cfg.Namespace = "fiber"
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = prometheus.DefBuckets
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		units: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "units_total",
			Help:      "Units of work performed by the work loop.",
		}),
		yields: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "yields_total",
			Help:      "Times the work loop yielded with work remaining.",
		}),
		commits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "commits_total",
			Help:      "Committed passes by root kind.",
		}, []string{"root"}),
		discarded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "passes_discarded_total",
			Help:      "Passes abandoned before commit, by reason.",
		}, []string{"reason"}),
		bailouts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "state_bailouts_total",
			Help:      "State updates skipped because the value did not change.",
		}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "failures_total",
			Help:      "Failed passes by phase.",
		}, []string{"phase"}),
		commitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "commit_duration_seconds",
			Help:      "Duration of the commit phase, effects included.",
			Buckets:   cfg.Buckets,
		}),
	}
}

func (m *Metrics) unit() {
	if m == nil {
		return
	}
	m.units.Inc()
}

func (m *Metrics) yield() {
	if m == nil {
		return
	}
	m.yields.Inc()
}

func (m *Metrics) commit(subtree bool, d time.Duration) {
	if m == nil {
		return
	}
	root := "container"
	if subtree {
		root = "component"
	}
	m.commits.WithLabelValues(root).Inc()
	m.commitDuration.Observe(d.Seconds())
}

func (m *Metrics) discard(reason string) {
	if m == nil {
		return
	}
	m.discarded.WithLabelValues(reason).Inc()
}

func (m *Metrics) bailout() {
	if m == nil {
		return
	}
	m.bailouts.Inc()
}

func (m *Metrics) failure(phase string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(phase).Inc()
}
