package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the registration service counters.
type Metrics struct {
	AccountsCreated   prometheus.Counter
	AccountsConflicts prometheus.Counter
}

// New creates and registers the counters on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AccountsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "signup_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountsConflicts: f.NewCounter(prometheus.CounterOpts{
			Name: "signup_accounts_conflicts_total",
			Help: "Registrations refused because the email was already taken",
		}),
	}
}

// IncrementAccountsCreated increments the accounts created counter by 1
func (m *Metrics) IncrementAccountsCreated() {
	m.AccountsCreated.Inc()
}

func (m *Metrics) IncrementConflicts() {
	m.AccountsConflicts.Inc()
}
