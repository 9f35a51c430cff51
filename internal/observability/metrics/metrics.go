package metrics

import "github.com/prometheus/client_golang/prometheus"

// SubmissionMetrics exposes counters/histograms for the lead submission flow.
type SubmissionMetrics struct {
	submissionsTotal *prometheus.CounterVec
	backendLatency   *prometheus.HistogramVec
}

func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	m := &SubmissionMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quickcash",
			Subsystem: "leads",
			Name:      "submissions_total",
			Help:      "Total form submissions by outcome",
		}, []string{"outcome"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quickcash",
			Subsystem: "leads",
			Name:      "backend_latency_seconds",
			Help:      "Latency of the backend call per valid submission",
			Buckets:   prometheus.DefBuckets,
		}, []string{"backend"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.backendLatency)
	return m
}

func (m *SubmissionMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *SubmissionMetrics) ObserveBackendLatency(backend string, seconds float64) {
	if m == nil {
		return
	}
	m.backendLatency.WithLabelValues(backend).Observe(seconds)
}
