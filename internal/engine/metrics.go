package engine

import "time"

// MetricsSink receives instrumentation events from the engine's inner loop.
// pkg/metrics implements this against Prometheus counters/histograms; tests
// and simple callers can use NopMetrics.
type MetricsSink interface {
	LabelCreated()
	LabelDiscardedDuplicate()
	LabelDiscardedDominated()
	FrontierSize(n int)
	BucketSize(node, n int)
	SolveDuration(d time.Duration)
}

// NopMetrics is a MetricsSink that discards every event. It is the default
// sink for an Engine constructed without WithMetrics.
type NopMetrics struct{}

func (NopMetrics) LabelCreated()              {}
func (NopMetrics) LabelDiscardedDuplicate()   {}
func (NopMetrics) LabelDiscardedDominated()   {}
func (NopMetrics) FrontierSize(int)           {}
func (NopMetrics) BucketSize(int, int)        {}
func (NopMetrics) SolveDuration(time.Duration) {}
