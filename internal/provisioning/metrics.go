package provisioning

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation names used in events and metric labels.
const (
	opSelect = "select"
	opAssign = "assign"
	opCreate = "create"
	opDelete = "delete"
)

// Metric result labels.
const (
	resultSuccess  = "success"
	resultFailure  = "failure"
	resultNotFound = "not_found"
	resultRejected = "rejected"
)

// Metrics holds the orchestrator's prometheus collectors. A nil *Metrics
// records nothing.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	rollbacks  *prometheus.CounterVec
	assigned   prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "blueprintctl",
				Subsystem: "orchestrator",
				Name:      "operations_total",
				Help:      "Total number of orchestrator operations by result",
			},
			[]string{"operation", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "blueprintctl",
				Subsystem: "orchestrator",
				Name:      "operation_duration_seconds",
				Help:      "Duration of orchestrator operations in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~20s
			},
			[]string{"operation"},
		),
		rollbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "blueprintctl",
				Subsystem: "orchestrator",
				Name:      "rollbacks_total",
				Help:      "Compensating deletes issued after a failed create, by result",
			},
			[]string{"result"},
		),
		assigned: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "blueprintctl",
				Subsystem: "orchestrator",
				Name:      "staged_assignments",
				Help:      "Number of host assignments currently staged",
			},
		),
	}
	reg.MustRegister(m.operations, m.duration, m.rollbacks, m.assigned)
	return m
}

func (m *Metrics) observe(op, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) rollback(result string) {
	if m == nil {
		return
	}
	m.rollbacks.WithLabelValues(result).Inc()
}

func (m *Metrics) staged(n int) {
	if m == nil {
		return
	}
	m.assigned.Set(float64(n))
}
