package edgeauth

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts generated tokens and signing failures. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	generated *prometheus.CounterVec
	failures  *prometheus.CounterVec
}

// NewMetrics creates the edgeauth collectors and registers them with reg
// when it is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "edgeauth",
			Name:      "tokens_generated_total",
			Help:      "Total number of signed tokens, by HMAC algorithm.",
		}, []string{"algorithm"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "edgeauth",
			Name:      "token_errors_total",
			Help:      "Total number of failed token generations, by reason.",
		}, []string{"reason"}),
	}

	if reg != nil {
		reg.MustRegister(m.generated, m.failures)
	}
	return m
}

func (m *Metrics) observeToken(a Algorithm) {
	if m == nil {
		return
	}
	m.generated.WithLabelValues(a.String()).Inc()
}

func (m *Metrics) observeError(err error) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(errorReason(err)).Inc()
}
