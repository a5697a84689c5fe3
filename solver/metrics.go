package solver

import "github.com/prometheus/client_golang/prometheus"

// Metrics optionally publishes a solve's move counters as prometheus
// counters, mirroring the teacher's pkg/metrics package. A nil *Metrics is
// safe to use throughout — Builder.WithMetrics is opt-in, matching
// spec.md's statistics being a core [MODULE] while any Prometheus
// registry attachment stays ambient.
type Metrics struct {
	MovesEvaluated prometheus.Counter
	MovesAccepted  prometheus.Counter
}

// NewMetrics builds and, if reg is non-nil, registers a counter pair under
// namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		MovesEvaluated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_evaluated_total",
			Help:      "Total candidate moves evaluated across all solves using this registry.",
		}),
		MovesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_accepted_total",
			Help:      "Total candidate moves accepted by an acceptor across all solves using this registry.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.MovesEvaluated, m.MovesAccepted)
	}
	return m
}
