package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTransitionCountsAndTracksState(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.state.WithLabelValues("signed_out")))

	c.SessionTransition(domain.SessionSignedOut, domain.SessionActive, "password")
	c.SessionTransition(domain.SessionActive, domain.SessionWarningShown, "warning timer")
	c.SessionTransition(domain.SessionWarningShown, domain.SessionActive, "extend")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues("signed_out", "active")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues("warning_shown", "active")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transitions.WithLabelValues("active", "warning_shown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.state.WithLabelValues("active")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.state.WithLabelValues("signed_out")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.state.WithLabelValues("warning_shown")))
}

func TestRoundSubmitted(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RoundSubmitted(domain.InterviewModeDetailed, "continuation")
	c.RoundSubmitted(domain.InterviewModeDetailed, "continuation")
	c.RoundSubmitted(domain.InterviewModeShort, "terminal")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.rounds.WithLabelValues("detailed", "continuation")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rounds.WithLabelValues("short", "terminal")))
}

func TestSetupMetricsRouteServesRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.SessionTransition(domain.SessionSignedOut, domain.SessionActive, "password")

	srv := httptest.NewServer(SetupMetricsRoute(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `prep_session_transitions_total{from="signed_out",to="active"} 1`)
	assert.Contains(t, string(body), `prep_session_state{state="active"} 1`)
}
