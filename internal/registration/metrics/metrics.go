package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/judydsp/provabruno/internal/registration/models"
)

// Metrics holds the client-side registration counters.
type Metrics struct {
	Submissions *prometheus.CounterVec
	Blocked     prometheus.Counter
}

// New registers the counters on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "signup_submissions_total",
			Help: "Registration requests sent, by outcome",
		}, []string{"outcome"}),
		Blocked: f.NewCounter(prometheus.CounterOpts{
			Name: "signup_submissions_blocked_total",
			Help: "Submit attempts refused because the form was invalid",
		}),
	}
}

// ObserveSubmission counts one finished request.
func (m *Metrics) ObserveSubmission(kind models.SubmissionKind) {
	if m == nil {
		return
	}
	outcome := string(kind)
	if kind == models.KindNone {
		outcome = "success"
	}
	m.Submissions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementBlocked() {
	if m == nil {
		return
	}
	m.Blocked.Inc()
}
