package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the badge pipeline.
type Metrics struct {
	BadgesGenerated  prometheus.Counter
	Validations      *prometheus.CounterVec
	SecurityNotified *prometheus.CounterVec
}

// New creates and registers all badge metrics.
func New() *Metrics {
	return &Metrics{
		BadgesGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gatepass_badges_generated_total",
			Help: "Total number of badge tokens issued",
		}),
		Validations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatepass_badge_validations_total",
			Help: "Badge validation attempts partitioned by outcome",
		}, []string{"outcome"}),
		SecurityNotified: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "gatepass_security_notifications_total",
			Help: "Security notification dispatches partitioned by result",
		}, []string{"result"}),
	}
}

// ObserveValidation records one validation attempt.
// Outcomes: valid, rejected, decode_error, not_found, ambiguous, error.
func (m *Metrics) ObserveValidation(outcome string) {
	m.Validations.WithLabelValues(outcome).Inc()
}

// ObserveNotification records one security notification dispatch result.
func (m *Metrics) ObserveNotification(allSucceeded bool) {
	result := "all_channels"
	if !allSucceeded {
		result = "partial_or_failed"
	}
	m.SecurityNotified.WithLabelValues(result).Inc()
}
