package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
	"github.com/bnema/interview-prep-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type roundFixture struct {
	api     *mocks.MockInterviewAPI
	drafts  *mocks.MockInterviewRepository
	results *mocks.MockResultRepository
	clock   *mocks.MockClock
}

func newRoundFixture(t *testing.T) *roundFixture {
	return &roundFixture{
		api:     mocks.NewMockInterviewAPI(t),
		drafts:  mocks.NewMockInterviewRepository(t),
		results: mocks.NewMockResultRepository(t),
		clock:   mocks.NewMockClock(t),
	}
}

func (f *roundFixture) deps() InterviewDeps {
	return InterviewDeps{API: f.api, Drafts: f.drafts, Results: f.results, Clock: f.clock}
}

func (f *roundFixture) controller(t *testing.T, session domain.InterviewSession) *InterviewRoundController {
	t.Helper()

	c, err := NewInterviewRoundController(f.deps(), ports.InterviewDraft{Session: session})
	require.NoError(t, err)
	return c
}

func detailedRoundOne() domain.InterviewSession {
	return domain.InterviewSession{
		ID:        "sess-1",
		Role:      "Backend Engineer",
		Company:   "Acme",
		Mode:      domain.InterviewModeDetailed,
		RoundName: "Screening",
		Questions: []string{"q1", "q2", "q3"},
	}
}

func answerAll(t *testing.T, f *roundFixture, c *InterviewRoundController) {
	t.Helper()

	count := len(c.Snapshot().Session.Questions)
	f.drafts.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil).Times(count)
	for i := 0; i < count; i++ {
		require.NoError(t, c.SetAnswer(context.Background(), i, "answer"))
	}
}

func TestSubmitRoundRejectsBlankAnswersWithoutNetwork(t *testing.T) {
	t.Parallel()

	f := newRoundFixture(t)
	c := f.controller(t, detailedRoundOne())

	f.drafts.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil).Twice()
	require.NoError(t, c.SetAnswer(context.Background(), 0, "real answer"))
	require.NoError(t, c.SetAnswer(context.Background(), 1, "   \t"))

	snap, err := c.SubmitRound(context.Background())

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, PhaseAwaitingAnswers, snap.Phase)
	assert.Contains(t, snap.Error, "questions 2, 3")
	f.api.AssertNotCalled(t, "SubmitRound", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDetailedContinuationReplacesRound(t *testing.T) {
	t.Parallel()

	f := newRoundFixture(t)
	c := f.controller(t, detailedRoundOne())
	answerAll(t, f, c)
	f.drafts.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(d ports.InterviewDraft) bool {
		return d.Position == 2
	})).Return(nil).Once()
	c.GoTo(context.Background(), 2)

	f.api.EXPECT().SubmitRound(mockAnyContext(), "sess-1", []string{"answer", "answer", "answer"}, 1).Return(domain.Continuation{
		NextQuestions:  []string{"n1", "n2", "n3", "n4"},
		NextRoundIndex: 1,
		NextRoundName:  "Core Skills",
		Message:        "Great job! Moving to round 2",
	}, nil).Once()
	f.drafts.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(d ports.InterviewDraft) bool {
		return d.Session.RoundIndex == 1 && len(d.Session.Answers) == 4 && d.Position == 0
	})).Return(nil).Once()

	snap, err := c.SubmitRound(context.Background())
	require.NoError(t, err)

	assert.Equal(t, PhaseAwaitingAnswers, snap.Phase)
	assert.Equal(t, 1, snap.Session.RoundIndex)
	assert.Equal(t, "Core Skills", snap.Session.RoundName)
	assert.Len(t, snap.Session.Questions, 4)
	assert.Equal(t, []string{"", "", "", ""}, snap.Session.Answers)
	assert.Equal(t, 0, snap.Position)
	assert.Equal(t, "Great job! Moving to round 2", snap.Notice)
	assert.Empty(t, snap.Error)
}

func TestContinuationSaveFailureDropsStaleDraft(t *testing.T) {
	t.Parallel()

	f := newRoundFixture(t)
	c := f.controller(t, detailedRoundOne())
	answerAll(t, f, c)

	f.api.EXPECT().SubmitRound(mockAnyContext(), "sess-1", []string{"answer", "answer", "answer"}, 1).Return(domain.Continuation{
		NextQuestions:  []string{"n1", "n2"},
		NextRoundIndex: 1,
		NextRoundName:  "Core Skills",
	}, nil).Once()
	f.drafts.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(d ports.InterviewDraft) bool {
		return d.Session.RoundIndex == 1
	})).Return(errors.New("disk full")).Once()
	f.drafts.EXPECT().Delete(mockAnyContext()).Return(nil).Once()

	snap, err := c.SubmitRound(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, err.Error(), snap.Error)
	assert.Equal(t, PhaseAwaitingAnswers, snap.Phase)
	assert.Equal(t, 2, snap.Session.RoundNumber())
	assert.Equal(t, []string{"", ""}, snap.Session.Answers)

	f.drafts.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(d ports.InterviewDraft) bool {
		return d.Session.RoundIndex == 1 && d.Session.Answers[0] == "retry"
	})).Return(nil).Once()
	require.NoError(t, c.SetAnswer(context.Background(), 0, "retry"))
	assert.Empty(t, c.Snapshot().Error)
}

func TestShortModeSubmitsWithoutRoundNumber(t *testing.T) {
	t.Parallel()

	f := newRoundFixture(t)
	session := domain.InterviewSession{
		ID:        "sess-short",
		Mode:      domain.InterviewModeShort,
		Questions: []string{"Explain channels"},
	}
	c := f.controller(t, session)
	answerAll(t, f, c)

	completedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.clock.EXPECT().Now().Return(completedAt).Once()
	f.api.EXPECT().SubmitAnswers(mockAnyContext(), "sess-short", []string{"answer"}).Return(domain.Terminal{
		Scores: []domain.QuestionScore{{Correctness: 8, Clarity: 6, Structure: 7, Depth: 9}},
	}, nil).Once()
	f.results.EXPECT().Append(mockAnyContext(), mock.MatchedBy(func(r domain.Result) bool {
		return r.SessionID == "sess-short" && r.CompletedAt.Equal(completedAt)
	})).Return(nil).Once()
	f.drafts.EXPECT().Delete(mockAnyContext()).Return(nil).Once()

	snap, err := c.SubmitRound(context.Background())
	require.NoError(t, err)

	assert.Equal(t, PhaseTerminal, snap.Phase)
	require.NotNil(t, snap.Result)
	assert.InDelta(t, 7.5, snap.Result.AverageScore, 1e-9)
	require.NotNil(t, snap.Result.Questions[0].Score)
	assert.InDelta(t, 7.5, *snap.Result.Questions[0].Score, 1e-9)

	err = c.SetAnswer(context.Background(), 0, "late edit")
	require.ErrorIs(t, err, domain.ErrInterviewFinished)
	_, err = c.SubmitRound(context.Background())
	require.ErrorIs(t, err, domain.ErrInterviewFinished)
}

func TestSubmitFailureKeepsRoundForRetry(t *testing.T) {
	t.Parallel()

	f := newRoundFixture(t)
	c := f.controller(t, detailedRoundOne())
	answerAll(t, f, c)
	before := c.Snapshot().Session

	f.api.EXPECT().SubmitRound(mockAnyContext(), "sess-1", mock.Anything, 1).Return(nil, errors.New("status 503: model overloaded")).Once()

	snap, err := c.SubmitRound(context.Background())
	require.Error(t, err)
	assert.Equal(t, PhaseAwaitingAnswers, snap.Phase)
	assert.Equal(t, before, snap.Session)
	assert.Contains(t, snap.Error, "model overloaded")

	f.drafts.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil).Once()
	require.NoError(t, c.SetAnswer(context.Background(), 0, "revised"))
	assert.Empty(t, c.Snapshot().Error)
}

func TestSubmitAuthFailureIsOrdinaryError(t *testing.T) {
	t.Parallel()

	f := newRoundFixture(t)
	c := f.controller(t, detailedRoundOne())
	answerAll(t, f, c)

	f.api.EXPECT().SubmitRound(mockAnyContext(), "sess-1", mock.Anything, 1).Return(nil, domain.ErrSessionExpired).Once()

	snap, err := c.SubmitRound(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Equal(t, PhaseAwaitingAnswers, snap.Phase)
	assert.NotEmpty(t, snap.Error)
}

func TestMalformedOutcomesAreServerErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		outcome domain.RoundOutcome
	}{
		{name: "nil outcome", outcome: nil},
		{name: "continuation without questions", outcome: domain.Continuation{NextRoundIndex: 1}},
		{name: "terminal without scores", outcome: domain.Terminal{Message: "done"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newRoundFixture(t)
			c := f.controller(t, detailedRoundOne())
			answerAll(t, f, c)
			before := c.Snapshot().Session

			f.api.EXPECT().SubmitRound(mockAnyContext(), "sess-1", mock.Anything, 1).Return(tt.outcome, nil).Once()
			f.clock.EXPECT().Now().Return(time.Now()).Maybe()

			snap, err := c.SubmitRound(context.Background())
			require.ErrorIs(t, err, domain.ErrMalformedOutcome)
			assert.Equal(t, PhaseAwaitingAnswers, snap.Phase)
			assert.Equal(t, before, snap.Session)
			assert.Nil(t, snap.Result)
		})
	}
}

func TestSecondSubmitWhileInFlightIsRejected(t *testing.T) {
	t.Parallel()

	f := newRoundFixture(t)
	c := f.controller(t, detailedRoundOne())
	answerAll(t, f, c)

	entered := make(chan struct{})
	release := make(chan struct{})
	f.api.EXPECT().SubmitRound(mockAnyContext(), "sess-1", mock.Anything, 1).RunAndReturn(
		func(context.Context, string, []string, int) (domain.RoundOutcome, error) {
			close(entered)
			<-release
			return nil, errors.New("timeout")
		}).Once()

	done := make(chan error, 1)
	go func() {
		_, err := c.SubmitRound(context.Background())
		done <- err
	}()
	<-entered

	_, err := c.SubmitRound(context.Background())
	require.ErrorIs(t, err, domain.ErrSubmitInFlight)
	require.ErrorIs(t, c.SetAnswer(context.Background(), 0, "x"), domain.ErrSubmitInFlight)
	require.ErrorIs(t, c.Abort(context.Background()), domain.ErrSubmitInFlight)
	assert.Equal(t, PhaseSubmitting, c.Snapshot().Phase)

	close(release)
	require.Error(t, <-done)
	assert.Equal(t, PhaseAwaitingAnswers, c.Snapshot().Phase)
}

func TestNavigationIsBounded(t *testing.T) {
	t.Parallel()

	f := newRoundFixture(t)
	c := f.controller(t, detailedRoundOne())
	f.drafts.EXPECT().Save(mockAnyContext(), mock.Anything).Return(nil)

	assert.Equal(t, 0, c.Previous(context.Background()))
	assert.Equal(t, 1, c.Next(context.Background()))
	assert.Equal(t, 2, c.Next(context.Background()))
	assert.Equal(t, 2, c.Next(context.Background()))
	assert.Equal(t, 0, c.GoTo(context.Background(), -5))
	assert.Equal(t, 2, c.GoTo(context.Background(), 99))
	assert.Equal(t, []string{"", "", ""}, c.Snapshot().Session.Answers)
}

func TestResumedDraftWithDivergentAnswersIsNormalized(t *testing.T) {
	t.Parallel()

	f := newRoundFixture(t)
	session := detailedRoundOne()
	session.Answers = []string{"a", "b", "c", "stale", "stale"}

	c, err := NewInterviewRoundController(f.deps(), ports.InterviewDraft{Session: session, Position: 7})
	require.NoError(t, err)

	snap := c.Snapshot()
	assert.Equal(t, []string{"a", "b", "c"}, snap.Session.Answers)
	assert.Equal(t, 2, snap.Position)
}

func TestSetAnswerOutOfRange(t *testing.T) {
	t.Parallel()

	f := newRoundFixture(t)
	c := f.controller(t, detailedRoundOne())

	err := c.SetAnswer(context.Background(), 3, "nope")
	require.ErrorIs(t, err, domain.ErrInvalidQuestionIndex)
	assert.NotEmpty(t, c.Snapshot().Error)
}

func TestAbortDeletesDraft(t *testing.T) {
	t.Parallel()

	f := newRoundFixture(t)
	c := f.controller(t, detailedRoundOne())

	f.drafts.EXPECT().Delete(mockAnyContext()).Return(nil).Once()

	require.NoError(t, c.Abort(context.Background()))
	snap := c.Snapshot()
	assert.Equal(t, PhaseTerminal, snap.Phase)
	assert.True(t, snap.Aborted)
	assert.Nil(t, snap.Result)
	require.NoError(t, c.Abort(context.Background()))
}

func TestNewInterviewRoundControllerRequiresQuestions(t *testing.T) {
	t.Parallel()

	f := newRoundFixture(t)

	_, err := NewInterviewRoundController(f.deps(), ports.InterviewDraft{Session: domain.InterviewSession{ID: "s"}})
	require.Error(t, err)
	_, err = NewInterviewRoundController(f.deps(), ports.InterviewDraft{Session: domain.InterviewSession{Questions: []string{"q"}}})
	require.Error(t, err)
}
