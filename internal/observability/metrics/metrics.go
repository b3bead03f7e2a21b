package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the submission pipeline. All observe
// methods are safe on a nil receiver so wiring metrics stays optional.
type BookingMetrics struct {
	submissionsTotal   *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	exportsTotal       prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "bookings",
			Name:      "submissions_total",
			Help:      "Total booking submissions by outcome",
		}, []string{"outcome"}),
		notificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "bookings",
			Name:      "notifications_total",
			Help:      "Total notification attempts by channel and result",
		}, []string{"channel", "sent"}),
		exportsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "bookings",
			Name:      "exports_total",
			Help:      "Total CSV exports served",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal, m.notificationsTotal, m.exportsTotal)
	return m
}

func (m *BookingMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveNotification(channel string, sent bool) {
	if m == nil {
		return
	}
	label := "false"
	if sent {
		label = "true"
	}
	m.notificationsTotal.WithLabelValues(channel, label).Inc()
}

func (m *BookingMetrics) ObserveExport() {
	if m == nil {
		return
	}
	m.exportsTotal.Inc()
}
