package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels.
const (
	OutcomeSuccess  = "success"
	OutcomeUnknown  = "unknown_email"
	OutcomeInvalid  = "invalid"
	OutcomeRejected = "rejected"
	OutcomeFailure  = "failure"
)

// Metrics contains Prometheus collectors for credential operations.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ResetRequests    *prometheus.CounterVec
	ResetCompletions *prometheus.CounterVec
	Logins           *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
}

// NewMetrics creates and registers scriba metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ResetRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scriba_password_reset_requests_total",
				Help: "Total number of password reset requests by outcome",
			},
			[]string{"outcome"},
		),
		ResetCompletions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scriba_password_reset_completions_total",
				Help: "Total number of password reset submissions by outcome",
			},
			[]string{"outcome"},
		),
		Logins: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scriba_logins_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scriba_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
	}

	reg.MustRegister(m.ResetRequests)
	reg.MustRegister(m.ResetCompletions)
	reg.MustRegister(m.Logins)
	reg.MustRegister(m.HTTPRequests)

	return m
}

// RecordResetRequest counts a password reset request.
func (m *Metrics) RecordResetRequest(outcome string) {
	if m == nil {
		return
	}
	m.ResetRequests.WithLabelValues(outcome).Inc()
}

// RecordResetCompletion counts a password reset submission.
func (m *Metrics) RecordResetCompletion(outcome string) {
	if m == nil {
		return
	}
	m.ResetCompletions.WithLabelValues(outcome).Inc()
}

// RecordLogin counts a login attempt.
func (m *Metrics) RecordLogin(outcome string) {
	if m == nil {
		return
	}
	m.Logins.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest counts a served HTTP request.
func (m *Metrics) RecordHTTPRequest(method, route, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
}
