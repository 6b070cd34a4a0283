package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is the process-wide metrics container. Its label-setting methods
// (LabelCreated, LabelDiscardedDuplicate, LabelDiscardedDominated,
// FrontierSize, BucketSize, SolveDuration) satisfy internal/engine's
// MetricsSink interface structurally — this package never imports the
// engine package, so there is no import cycle.
type Metrics struct {
	LabelsCreatedTotal    prometheus.Counter
	LabelsDiscardedTotal  *prometheus.CounterVec // reason: duplicate, dominated
	FrontierSizeGauge     prometheus.Gauge
	BucketSizeHistogram   prometheus.Histogram
	SolveOperationsTotal  *prometheus.CounterVec // status: found, no_path
	SolveDurationSeconds  *prometheus.HistogramVec
	ReducedCostResult     prometheus.Gauge
	GraphNodesTotal       *prometheus.HistogramVec
	GraphEdgesTotal       *prometheus.HistogramVec

	// SolvesInFlight tracks concurrently-running Solve calls across the
	// dual-vector sweep, via a SolveTracker built from it.
	SolvesInFlight prometheus.Gauge

	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics registers the collectors under the given namespace/subsystem
// and sets them as the process default.
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		LabelsCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "labels_created_total",
			Help:      "Total number of labels created by the label-setting engine",
		}),

		LabelsDiscardedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "labels_discarded_total",
				Help:      "Total number of labels discarded during dominance",
			},
			[]string{"reason"},
		),

		FrontierSizeGauge: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frontier_size",
			Help:      "Current number of unprocessed labels in the frontier",
		}),

		BucketSizeHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "bucket_size",
			Help:      "Distribution of processed-label bucket sizes observed across nodes",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		}),

		SolveOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_operations_total",
				Help:      "Total number of Solve calls, by outcome",
			},
			[]string{"status"},
		),

		SolveDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of Solve calls",
				Buckets:   []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"status"},
		),

		ReducedCostResult: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_reduced_cost",
			Help:      "Reduced cost of the most recently returned path",
		}),

		GraphNodesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_nodes_total",
				Help:      "Number of nodes in solved instances",
				Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000},
			},
			[]string{"operation"},
		),

		GraphEdgesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_edges_total",
				Help:      "Number of edges in solved instances",
				Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000},
			},
			[]string{"operation"},
		),

		SolvesInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "solves_in_flight",
			Help:      "Number of Solve calls currently running across the dual-vector sweep",
		}),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "build_info",
				Help:      "Build information",
			},
			[]string{"version", "environment"},
		),
	}

	prometheus.MustRegister(NewRuntimeCollector(namespace, subsystem))

	defaultMetrics = m
	return m
}

// NewSolveTracker builds a SolveTracker backed by this Metrics' in-flight
// gauge, so the CLI's concurrent dual-vector sweep can report how many
// Solve calls are running at once.
func (m *Metrics) NewSolveTracker() *SolveTracker {
	return NewSolveTracker(m.SolvesInFlight)
}

// NewRequestTimer starts a Timer over the given phase label, recording the
// elapsed wall time (cache lookup plus, on a miss, the Solve call itself)
// into SolveDurationSeconds once ObserveDuration is called.
func (m *Metrics) NewRequestTimer(phase string) *Timer {
	return NewTimer(m.SolveDurationSeconds, phase)
}

// Get returns the process default metrics, initializing it with the
// "espprc" namespace if InitMetrics was never called.
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("espprc", "")
	}
	return defaultMetrics
}

// LabelCreated implements engine.MetricsSink.
func (m *Metrics) LabelCreated() { m.LabelsCreatedTotal.Inc() }

// LabelDiscardedDuplicate implements engine.MetricsSink.
func (m *Metrics) LabelDiscardedDuplicate() {
	m.LabelsDiscardedTotal.WithLabelValues("duplicate").Inc()
}

// LabelDiscardedDominated implements engine.MetricsSink.
func (m *Metrics) LabelDiscardedDominated() {
	m.LabelsDiscardedTotal.WithLabelValues("dominated").Inc()
}

// FrontierSize implements engine.MetricsSink.
func (m *Metrics) FrontierSize(n int) { m.FrontierSizeGauge.Set(float64(n)) }

// BucketSize implements engine.MetricsSink. The node id itself is not used
// as a label to avoid unbounded cardinality on large instances; only the
// size distribution is recorded.
func (m *Metrics) BucketSize(_ int, n int) { m.BucketSizeHistogram.Observe(float64(n)) }

// SolveDuration implements engine.MetricsSink.
func (m *Metrics) SolveDuration(d time.Duration) {
	m.SolveDurationSeconds.WithLabelValues("completed").Observe(d.Seconds())
}

// RecordSolveOutcome records the final status and reduced cost of a Solve
// call, once its Path is known (status is "found" or "no_path").
func (m *Metrics) RecordSolveOutcome(status string, reducedCost float64) {
	m.SolveOperationsTotal.WithLabelValues(status).Inc()
	if status == "found" {
		m.ReducedCostResult.Set(reducedCost)
	}
}

// RecordGraphSize records the node/edge counts of a solved instance.
func (m *Metrics) RecordGraphSize(operation string, nodes, edges int) {
	m.GraphNodesTotal.WithLabelValues(operation).Observe(float64(nodes))
	m.GraphEdgesTotal.WithLabelValues(operation).Observe(float64(edges))
}

// SetServiceInfo publishes the running build's version/environment as a
// constant gauge.
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler returns the HTTP handler serving /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer serves /metrics and /health on addr (e.g. ":9090"). It
// blocks until the server stops.
func StartMetricsServer(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}
