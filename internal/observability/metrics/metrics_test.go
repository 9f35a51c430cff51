package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestSubmissionMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSubmissionMetrics(reg)
	m.ObserveSubmission("success")
	m.ObserveSubmission("invalid")
	m.ObserveBackendLatency("email", 0.25)
}

func TestSubmissionMetricsCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSubmissionMetrics(reg)
	m.ObserveBackendLatency("offer", 1.5)
}

func TestSubmissionMetricsNilSafe(t *testing.T) {
	var m *SubmissionMetrics
	m.ObserveSubmission("failure")
	m.ObserveBackendLatency("email", 0.1)
}
