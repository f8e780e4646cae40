// Package metrics exports healthkit operation events as Prometheus metrics.
package metrics

import (
	healthkit "github.com/goliatone/go-healthkit"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK      = "ok"
	OutcomeSkipped = "skipped"
	OutcomeError   = "error"
)

// Collector implements healthkit.OperationLogger on top of Prometheus vectors.
type Collector struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	samples    *prometheus.CounterVec
}

// NewCollector creates the collector and registers it with reg. A nil reg
// leaves the vectors unregistered.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthkit",
			Name:      "operations_total",
			Help:      "Number of healthkit operations by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "healthkit",
			Name:      "operation_duration_seconds",
			Help:      "Time spent waiting on the platform per operation.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"operation"}),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "healthkit",
			Name:      "samples_returned_total",
			Help:      "Number of converted samples returned by fetches.",
		}, []string{"operation"}),
	}
	if reg != nil {
		for _, collector := range []prometheus.Collector{c.operations, c.duration, c.samples} {
			if err := reg.Register(collector); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// LogOperation implements healthkit.OperationLogger.
func (c *Collector) LogOperation(event healthkit.OperationEvent) {
	c.operations.WithLabelValues(event.Operation, outcome(event)).Inc()
	if event.Duration > 0 {
		c.duration.WithLabelValues(event.Operation).Observe(event.Duration.Seconds())
	}
	if event.Samples > 0 {
		c.samples.WithLabelValues(event.Operation).Add(float64(event.Samples))
	}
}

func outcome(event healthkit.OperationEvent) string {
	switch {
	case event.Err != nil:
		return OutcomeError
	case event.Skipped:
		return OutcomeSkipped
	default:
		return OutcomeOK
	}
}
