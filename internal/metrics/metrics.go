// Package metrics exposes session and interview counters for Prometheus.
package metrics

import (
	"net/http"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	_ ports.SessionMetrics   = (*Collector)(nil)
	_ ports.InterviewMetrics = (*Collector)(nil)
)

var sessionStates = []domain.SessionState{
	domain.SessionSignedOut,
	domain.SessionActive,
	domain.SessionWarningShown,
	domain.SessionExpired,
}

type Collector struct {
	transitions *prometheus.CounterVec
	state       *prometheus.GaugeVec
	rounds      *prometheus.CounterVec
}

// NewCollector registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prep_session_transitions_total",
			Help: "Session state transitions by source and target state.",
		}, []string{"from", "to"}),
		state: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "prep_session_state",
			Help: "1 for the current session state, 0 for the others.",
		}, []string{"state"}),
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prep_interview_rounds_submitted_total",
			Help: "Submitted interview rounds by mode and outcome.",
		}, []string{"mode", "outcome"}),
	}

	reg.MustRegister(c.transitions, c.state, c.rounds)
	c.setState(domain.SessionSignedOut)

	return c
}

// SessionTransition ignores reason: it is free text and would explode the
// label space.
func (c *Collector) SessionTransition(from, to domain.SessionState, _ string) {
	c.transitions.WithLabelValues(from.String(), to.String()).Inc()
	c.setState(to)
}

func (c *Collector) RoundSubmitted(mode domain.InterviewMode, outcome string) {
	c.rounds.WithLabelValues(string(mode), outcome).Inc()
}

func (c *Collector) setState(current domain.SessionState) {
	for _, s := range sessionStates {
		v := 0.0
		if s == current {
			v = 1
		}
		c.state.WithLabelValues(s.String()).Set(v)
	}
}

func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute serves gatherer on /metrics.
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
