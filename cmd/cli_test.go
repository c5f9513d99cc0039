package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse"

type fakeBackend struct {
	mu           sync.Mutex
	validToken   string
	rejectSubmit bool
	meHits       int
	submissions  []map[string]any
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()

	b := &fakeBackend{validToken: "tok-1"}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	return b, srv
}

func (b *fakeBackend) setValidToken(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.validToken = token
}

func (b *fakeBackend) setRejectSubmit(reject bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rejectSubmit = reject
}

func (b *fakeBackend) currentUserCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.meHits
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	authorized := r.Header.Get("Authorization") == "Bearer "+b.validToken

	switch r.URL.Path {
	case "/auth/login":
		_ = r.ParseForm()
		if r.PostForm.Get("password") != testPassword {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Incorrect email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": "tok-1",
			"token_type":   "bearer",
			"user":         testUser(),
		})
	case "/auth/me":
		b.meHits++
		if !authorized {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Could not validate credentials"})
			return
		}
		writeJSON(w, http.StatusOK, testUser())
	case "/interview/start":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		payload := map[string]any{
			"session_id":     "s-1",
			"questions":      []string{"Tell me about an outage you led", "How do you size a cache?"},
			"role":           body["role"],
			"company":        body["company"],
			"interview_mode": body["interview_mode"],
			"current_round":  1,
		}
		if body["interview_mode"] == "detailed" {
			payload["total_rounds"] = 2
			payload["round_name"] = "Screening"
		}
		writeJSON(w, http.StatusOK, payload)
	case "/interview/submit-answers", "/interview/submit-round":
		if !authorized || b.rejectSubmit {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Token expired"})
			return
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.submissions = append(b.submissions, body)

		if round, ok := body["round_number"].(float64); ok && round == 1 {
			writeJSON(w, http.StatusOK, map[string]any{
				"interview_continues": true,
				"round_number":        1,
				"next_round":          2,
				"next_round_name":     "System design",
				"next_questions":      []string{"Design a rate limiter"},
				"message":             "Round 1 passed",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"scores": []map[string]any{
				{"correctness": 8, "clarity": 7, "structure": 6, "depth": 7, "feedback": "solid"},
				{"correctness": 6, "clarity": 6, "structure": 6, "depth": 6, "feedback": "shallow"},
			},
			"passed":  true,
			"roadmap": "## Next steps\n\n- Practice capacity planning",
			"message": "Interview complete",
		})
	default:
		http.NotFound(w, r)
	}
}

func testUser() map[string]any {
	return map[string]any{"id": 7, "email": "ada@example.com", "full_name": "Ada Lovelace", "is_active": true}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func executeCLI(t *testing.T, home string, srv *httptest.Server, args ...string) (string, string, error) {
	t.Helper()
	return executeCLIWithInput(t, home, srv, "", args...)
}

func executeCLIWithInput(t *testing.T, home string, srv *httptest.Server, input string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("PREP_HOME", filepath.Join(home, ".prep"))
	t.Setenv("PREP_LOG_LEVEL", "error")
	if srv != nil {
		t.Setenv("PREP_API_URL", srv.URL)
	}

	root, cleanup := newRootCmd()
	defer cleanup()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(input))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func login(t *testing.T, home string, srv *httptest.Server) {
	t.Helper()

	stdout, _, err := executeCLI(t, home, srv, "login", "password", "--email", "ada@example.com", "--password", testPassword)
	require.NoError(t, err)
	require.Contains(t, stdout, "Signed in as Ada Lovelace")
}

func writeResume(t *testing.T, home string) string {
	t.Helper()

	path := filepath.Join(home, "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Ten years of on-call.\n"), 0o600))
	return path
}

func startInterview(t *testing.T, home string, srv *httptest.Server, mode string) string {
	t.Helper()

	stdout, _, err := executeCLI(t, home, srv,
		"interview", "start",
		"--role", "SRE",
		"--company", "Acme",
		"--resume-file", writeResume(t, home),
		"--mode", mode,
	)
	require.NoError(t, err)
	return stdout
}

func TestVersionPrintsBuildVersion(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestInvalidConfigFailsEveryCommand(t *testing.T) {
	t.Setenv("PREP_CREDENTIALS_BACKEND", "keychain")

	_, _, err := executeCLI(t, t.TempDir(), nil, "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credentials.backend")
}

func TestLoginPasswordThenWhoami(t *testing.T) {
	home := t.TempDir()
	_, srv := newFakeBackend(t)

	login(t, home, srv)

	stdout, _, err := executeCLI(t, home, srv, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Ada Lovelace")
	assert.Contains(t, stdout, "ada@example.com")
	assert.Contains(t, stdout, "session ends")
}

func TestLoginRejectedStaysSignedOut(t *testing.T) {
	home := t.TempDir()
	_, srv := newFakeBackend(t)

	_, _, err := executeCLI(t, home, srv, "login", "password", "--email", "ada@example.com", "--password", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect email or password")

	_, _, err = executeCLI(t, home, srv, "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
}

func TestLoginPasswordRequiresPasswordOffTerminal(t *testing.T) {
	home := t.TempDir()
	_, srv := newFakeBackend(t)

	_, _, err := executeCLI(t, home, srv, "login", "password", "--email", "ada@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password is required")
}

func TestRejectedStoredTokenSignsOutOnRestore(t *testing.T) {
	home := t.TempDir()
	backend, srv := newFakeBackend(t)
	login(t, home, srv)

	backend.setValidToken("rotated")

	_, _, err := executeCLI(t, home, srv, "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
	assert.NoFileExists(t, filepath.Join(home, ".prep", "session.toml"))
}

func TestSessionStatusJSON(t *testing.T) {
	home := t.TempDir()
	_, srv := newFakeBackend(t)
	login(t, home, srv)

	stdout, _, err := executeCLI(t, home, srv, "session", "status", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"state": "active"`)
	assert.Contains(t, stdout, `"email": "ada@example.com"`)
	assert.Contains(t, stdout, `"expires_at"`)
}

func TestSessionStatusSignedOut(t *testing.T) {
	home := t.TempDir()
	_, srv := newFakeBackend(t)

	stdout, _, err := executeCLI(t, home, srv, "session", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in")
}

func TestSessionExtend(t *testing.T) {
	home := t.TempDir()
	_, srv := newFakeBackend(t)
	login(t, home, srv)

	stdout, _, err := executeCLI(t, home, srv, "session", "extend")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Session extended until")

	_, _, err = executeCLI(t, home, srv, "logout")
	require.NoError(t, err)
	_, _, err = executeCLI(t, home, srv, "session", "extend")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
}

func TestLogoutForgetsSession(t *testing.T) {
	home := t.TempDir()
	_, srv := newFakeBackend(t)
	login(t, home, srv)

	stdout, _, err := executeCLI(t, home, srv, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed out Ada Lovelace.")
	assert.NoFileExists(t, filepath.Join(home, ".prep", "session.toml"))

	stdout, _, err = executeCLI(t, home, srv, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in.")
}

func TestShortInterviewFlow(t *testing.T) {
	home := t.TempDir()
	backend, srv := newFakeBackend(t)
	login(t, home, srv)

	stdout := startInterview(t, home, srv, "short")
	assert.Contains(t, stdout, "SRE at Acme, round 1")
	assert.Contains(t, stdout, "[ ] 1. Tell me about an outage you led")

	_, _, err := executeCLI(t, home, srv, "interview", "submit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all questions must be answered (questions 1, 2)")

	stdout, _, err = executeCLI(t, home, srv, "interview", "answer", "1", "Rolled", "back", "the", "deploy")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Saved answer to question 1 (1/2 answered).")

	answerFile := filepath.Join(home, "answer.txt")
	require.NoError(t, os.WriteFile(answerFile, []byte("Measure the working set first.\n"), 0o600))
	_, _, err = executeCLI(t, home, srv, "interview", "answer", "2", "--file", answerFile)
	require.NoError(t, err)

	stdout, _, err = executeCLI(t, home, srv, "interview", "submit")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Interview result: SRE at Acme")
	assert.Contains(t, stdout, "6.5 / 10")
	assert.Contains(t, stdout, "Practice capacity planning")

	require.Len(t, backend.submissions, 1)
	assert.Equal(t, []any{"Rolled back the deploy", "Measure the working set first."}, backend.submissions[0]["answers"])

	_, _, err = executeCLI(t, home, srv, "interview", "show")
	require.ErrorIs(t, err, errNoInterview)

	stdout, _, err = executeCLI(t, home, srv, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "interviews: 1")

	stdout, _, err = executeCLI(t, home, srv, "history", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"average_score": 6.5`)
	assert.Contains(t, stdout, `"scoring_method": "sub_metrics"`)
}

func TestDetailedInterviewContinuesToNextRound(t *testing.T) {
	home := t.TempDir()
	backend, srv := newFakeBackend(t)
	login(t, home, srv)

	stdout := startInterview(t, home, srv, "detailed")
	assert.Contains(t, stdout, "round 1 of 2: Screening")

	for _, n := range []string{"1", "2"} {
		_, _, err := executeCLI(t, home, srv, "interview", "answer", n, "answer", n)
		require.NoError(t, err)
	}

	stdout, _, err := executeCLI(t, home, srv, "interview", "submit")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Round 1 passed")
	assert.Contains(t, stdout, "round 2 of 2: System design")
	assert.Contains(t, stdout, "[ ] 1. Design a rate limiter")
	require.Len(t, backend.submissions, 1)
	assert.Equal(t, float64(1), backend.submissions[0]["round_number"])

	stdout, _, err = executeCLI(t, home, srv, "interview", "show", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"round": 2`)
	assert.Contains(t, stdout, `"answers": [
    ""
  ]`)
}

func TestInterviewNavigation(t *testing.T) {
	home := t.TempDir()
	_, srv := newFakeBackend(t)
	startInterview(t, home, srv, "short")

	stdout, _, err := executeCLI(t, home, srv, "interview", "next")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Question 2/2: How do you size a cache?")

	stdout, _, err = executeCLI(t, home, srv, "interview", "next")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Question 2/2")

	stdout, _, err = executeCLI(t, home, srv, "interview", "prev")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Question 1/2")
	assert.Contains(t, stdout, "(no answer yet)")

	stdout, _, err = executeCLI(t, home, srv, "interview", "goto", "9")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Question 2/2")

	_, _, err = executeCLI(t, home, srv, "interview", "goto", "zero")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid question index")
}

func TestLocalCommandsSkipSessionRestore(t *testing.T) {
	home := t.TempDir()
	backend, srv := newFakeBackend(t)
	login(t, home, srv)
	startInterview(t, home, srv, "short")
	before := backend.currentUserCalls()

	local := [][]string{
		{"interview", "next"},
		{"interview", "prev"},
		{"interview", "goto", "2"},
		{"interview", "answer", "1", "offline"},
		{"interview", "show"},
		{"history"},
	}
	for _, args := range local {
		_, _, err := executeCLI(t, home, srv, args...)
		require.NoError(t, err, "%v", args)
	}
	assert.Equal(t, before, backend.currentUserCalls())

	_, _, err := executeCLI(t, home, srv, "interview", "abort")
	require.NoError(t, err)
	assert.Equal(t, before, backend.currentUserCalls())

	_, _, err = executeCLI(t, home, srv, "whoami")
	require.NoError(t, err)
	assert.Equal(t, before+1, backend.currentUserCalls())
}

func TestSubmitWithoutSessionKeepsAnswers(t *testing.T) {
	home := t.TempDir()
	backend, srv := newFakeBackend(t)
	startInterview(t, home, srv, "short")

	for _, n := range []string{"1", "2"} {
		_, _, err := executeCLI(t, home, srv, "interview", "answer", n, "kept")
		require.NoError(t, err)
	}

	_, _, err := executeCLI(t, home, srv, "interview", "submit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not authenticated")
	assert.Empty(t, backend.submissions)

	stdout, _, err := executeCLI(t, home, srv, "interview", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[x] 1.")
	assert.Contains(t, stdout, "[x] 2.")
}

func TestUnauthorizedSubmitExpiresSessionAndRedirects(t *testing.T) {
	home := t.TempDir()
	backend, srv := newFakeBackend(t)
	login(t, home, srv)
	startInterview(t, home, srv, "short")
	for _, n := range []string{"1", "2"} {
		_, _, err := executeCLI(t, home, srv, "interview", "answer", n, "kept")
		require.NoError(t, err)
	}

	backend.setRejectSubmit(true)

	_, stderr, err := executeCLI(t, home, srv, "interview", "submit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session expired")
	assert.Contains(t, stderr, "Your session has ended. Leaving /interview for /")
	assert.NoFileExists(t, filepath.Join(home, ".prep", "session.toml"))

	stdout, _, err := executeCLI(t, home, srv, "interview", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[x] 2.")
}

func TestInterviewRunLoop(t *testing.T) {
	home := t.TempDir()
	_, srv := newFakeBackend(t)
	login(t, home, srv)
	startInterview(t, home, srv, "short")

	input := ":help\nRolled back the deploy\n:bogus\nMeasure the working set\n:submit\n"
	stdout, _, err := executeCLIWithInput(t, home, srv, input, "interview", "run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Question 1/2")
	assert.Contains(t, stdout, "Question 2/2")
	assert.Contains(t, stdout, "unknown command :bogus")
	assert.Contains(t, stdout, "Interview result: SRE at Acme")
}

func TestInterviewRunQuitKeepsDraft(t *testing.T) {
	home := t.TempDir()
	_, srv := newFakeBackend(t)
	startInterview(t, home, srv, "short")

	stdout, _, err := executeCLIWithInput(t, home, srv, "first\n:quit\n", "interview", "run")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Progress saved")

	stdout, _, err = executeCLI(t, home, srv, "interview", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "[x] 1.")
	assert.Contains(t, stdout, "> [ ] 2.")
}

func TestInterviewAbort(t *testing.T) {
	home := t.TempDir()
	_, srv := newFakeBackend(t)
	startInterview(t, home, srv, "short")

	_, _, err := executeCLI(t, home, srv,
		"interview", "start", "--role", "SRE", "--company", "Acme", "--resume-file", writeResume(t, home))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already in progress")

	stdout, _, err := executeCLI(t, home, srv, "interview", "abort")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Interview discarded.")

	stdout, _, err = executeCLI(t, home, srv, "interview", "abort")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No interview in progress.")
}

func TestSessionStatusShowsDraft(t *testing.T) {
	home := t.TempDir()
	_, srv := newFakeBackend(t)
	startInterview(t, home, srv, "short")

	stdout, _, err := executeCLI(t, home, srv, "session", "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "interview in progress: SRE at Acme, round 1, 0/2 answered")
}

func TestHistoryEmpty(t *testing.T) {
	home := t.TempDir()
	_, srv := newFakeBackend(t)

	stdout, _, err := executeCLI(t, home, srv, "history", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", stdout)

	stdout, _, err = executeCLI(t, home, srv, "history")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No finished interviews yet.")
}
