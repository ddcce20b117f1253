package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the appointment flows.
// All methods are nil-safe so wiring metrics stays optional in tests.
type BookingMetrics struct {
	submissionsTotal   *prometheus.CounterVec
	confirmationsTotal *prometheus.CounterVec
	rejectionsTotal    prometheus.Counter
	softFailuresTotal  *prometheus.CounterVec
	emailsTotal        *prometheus.CounterVec
	submitLatency      prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "appointments",
			Name:      "submissions_total",
			Help:      "Total appointment submissions",
		}, []string{"outcome"}),
		confirmationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "appointments",
			Name:      "confirmations_total",
			Help:      "Total appointment confirmations",
		}, []string{"outcome"}),
		rejectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "appointments",
			Name:      "rejections_total",
			Help:      "Total appointment rejections",
		}),
		softFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "appointments",
			Name:      "soft_failures_total",
			Help:      "Degraded-dependency failures absorbed without aborting a request",
		}, []string{"dependency"}),
		emailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hospital",
			Subsystem: "appointments",
			Name:      "emails_total",
			Help:      "Patient emails attempted, by template and outcome",
		}, []string{"template", "status"}),
		submitLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "hospital",
			Subsystem: "appointments",
			Name:      "submit_latency_seconds",
			Help:      "Latency of appointment submission handling",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.confirmationsTotal, m.rejectionsTotal, m.softFailuresTotal, m.emailsTotal, m.submitLatency)
	return m
}

func (m *BookingMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveConfirmation(outcome string) {
	if m == nil {
		return
	}
	m.confirmationsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveRejection() {
	if m == nil {
		return
	}
	m.rejectionsTotal.Inc()
}

// ObserveSoftFailure records a non-fatal dependency failure, labeled by the
// dependency that degraded (audio_store, email, video).
func (m *BookingMetrics) ObserveSoftFailure(dependency string) {
	if m == nil {
		return
	}
	m.softFailuresTotal.WithLabelValues(dependency).Inc()
}

// ObserveEmail records one email attempt, labeled by template
// (request_received, confirmed, declined) and outcome (sent, failed).
func (m *BookingMetrics) ObserveEmail(template, status string) {
	if m == nil {
		return
	}
	m.emailsTotal.WithLabelValues(template, status).Inc()
}

func (m *BookingMetrics) ObserveSubmitLatency(seconds float64) {
	if m == nil {
		return
	}
	m.submitLatency.Observe(seconds)
}
