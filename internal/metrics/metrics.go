package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SubmissionsAccepted prometheus.Counter
	SubmissionsRejected *prometheus.CounterVec
	StatusTransitions   *prometheus.CounterVec
	Exports             *prometheus.CounterVec
}

// New registers the service counters on reg. Tests pass their own
// registry so repeated construction does not collide.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SubmissionsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "membership_submissions_accepted_total",
			Help: "Total number of member submissions committed",
		}),
		SubmissionsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "membership_submissions_rejected_total",
			Help: "Total number of member submissions rejected, by reason",
		}, []string{"reason"}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "membership_status_transitions_total",
			Help: "Total number of review status transitions, by new status",
		}, []string{"status"}),
		Exports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "membership_exports_total",
			Help: "Total number of member exports, by format",
		}, []string{"format"}),
	}
}

func (m *Metrics) IncSubmissionAccepted() {
	m.SubmissionsAccepted.Inc()
}

func (m *Metrics) IncSubmissionRejected(reason string) {
	m.SubmissionsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) IncStatusTransition(status string) {
	m.StatusTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) IncExport(format string) {
	m.Exports.WithLabelValues(format).Inc()
}
