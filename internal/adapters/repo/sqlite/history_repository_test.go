package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRepo(t *testing.T) (*HistoryRepository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "history.db")
	repo, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, path
}

func sampleResult(id string, completedAt time.Time) domain.Result {
	passed := true
	improvement := 1.5
	score := 7.5
	return domain.Result{
		SessionID:         id,
		Role:              "SRE",
		Company:           "Acme",
		Mode:              domain.InterviewModeDetailed,
		RoundsPlayed:      2,
		Passed:            &passed,
		Method:            domain.ScoringSubMetrics,
		Questions:         []domain.ScoredQuestion{{Question: "q1", Answer: "a1", Score: &score, Feedback: "solid"}},
		AverageScore:      7.5,
		TotalScore:        7.5,
		FitPercentage:     75,
		ImprovementNeeded: &improvement,
		Roadmap:           "## Focus\n- depth",
		Message:           "Well done",
		Strengths:         []string{"clarity"},
		WeakAreas:         []string{"depth"},
		CompletedAt:       time.UnixMilli(completedAt.UnixMilli()),
	}
}

func TestHistoryRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo, _ := openTestRepo(t)
	want := sampleResult("s-1", time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	require.NoError(t, repo.Append(context.Background(), want))

	got, err := repo.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, want.CompletedAt.Equal(got[0].CompletedAt))
	got[0].CompletedAt = want.CompletedAt
	assert.Equal(t, want, got[0])
}

func TestHistoryRepositoryNewestFirstAndLimit(t *testing.T) {
	t.Parallel()

	repo, _ := openTestRepo(t)
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, repo.Append(context.Background(), sampleResult(id, base.Add(time.Duration(i)*time.Hour))))
	}

	got, err := repo.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].SessionID)
	assert.Equal(t, "mid", got[1].SessionID)

	all, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestHistoryRepositoryAppendSameSessionReplaces(t *testing.T) {
	t.Parallel()

	repo, _ := openTestRepo(t)
	first := sampleResult("s-1", time.Now())
	second := first
	second.AverageScore = 9

	require.NoError(t, repo.Append(context.Background(), first))
	require.NoError(t, repo.Append(context.Background(), second))

	got, err := repo.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 9, got[0].AverageScore, 1e-9)
}

func TestHistoryRepositoryNullableFields(t *testing.T) {
	t.Parallel()

	repo, _ := openTestRepo(t)
	result := domain.Result{
		SessionID:   "s-2",
		Mode:        domain.InterviewModeShort,
		Method:      domain.ScoringAggregate,
		Questions:   []domain.ScoredQuestion{{Question: "q1"}},
		CompletedAt: time.UnixMilli(1_760_000_000_000),
	}
	require.NoError(t, repo.Append(context.Background(), result))

	got, err := repo.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Passed)
	assert.Nil(t, got[0].ImprovementNeeded)
	assert.Nil(t, got[0].Questions[0].Score)
	assert.Nil(t, got[0].Strengths)
}

func TestHistoryRepositoryPersistsAcrossOpen(t *testing.T) {
	t.Parallel()

	repo, path := openTestRepo(t)
	require.NoError(t, repo.Append(context.Background(), sampleResult("s-1", time.Now())))
	require.NoError(t, repo.Close())

	reopened, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err := reopened.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestHistoryRepositoryRejectsEmptySession(t *testing.T) {
	t.Parallel()

	repo, _ := openTestRepo(t)
	require.Error(t, repo.Append(context.Background(), domain.Result{}))
}
