package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestBookingMetricsObserve(t *testing.T) {
	m := NewBookingMetrics(nil)
	m.ObserveSubmission("success")
	m.ObserveConfirmation("success")
	m.ObserveRejection()
	m.ObserveSoftFailure("email")
	m.ObserveEmail("request_received", "sent")
	m.ObserveSubmitLatency(0.25)
}

func TestBookingMetricsCustomRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)
	m.ObserveSubmission("validation_error")
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveSubmission("success")
	m.ObserveConfirmation("success")
	m.ObserveRejection()
	m.ObserveSoftFailure("audio_store")
	m.ObserveEmail("declined", "failed")
	m.ObserveSubmitLatency(0.1)
}
