package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration/consumption outcomes used as label values.
const (
	OutcomeOK        = "ok"
	OutcomeDuplicate = "duplicate"
	OutcomeOverlap   = "time_overlap"
	OutcomeFull      = "class_full"
	OutcomeExhausted = "exhausted"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

// Metrics provides observability for the enrollment and session paths.
type Metrics struct {
	RegistrationAttempts *prometheus.CounterVec
	SessionConsumptions  *prometheus.CounterVec
	RegisterDuration     prometheus.Histogram
	ConsumeDuration      prometheus.Histogram
}

// New creates a Metrics instance with all collectors registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		RegistrationAttempts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "classtrack_registration_attempts_total",
			Help: "Class registration attempts by outcome",
		}, []string{"outcome"}),
		SessionConsumptions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "classtrack_session_consumptions_total",
			Help: "Subscription session consumption attempts by outcome",
		}, []string{"outcome"}),
		RegisterDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "classtrack_register_duration_seconds",
			Help:    "Duration of class registration operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ConsumeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "classtrack_consume_session_duration_seconds",
			Help:    "Duration of session consumption operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// RecordRegistration records a registration attempt outcome.
func (m *Metrics) RecordRegistration(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.RegistrationAttempts.WithLabelValues(outcome).Inc()
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}

// RecordConsumption records a session consumption outcome.
func (m *Metrics) RecordConsumption(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.SessionConsumptions.WithLabelValues(outcome).Inc()
	m.ConsumeDuration.Observe(time.Since(start).Seconds())
}
