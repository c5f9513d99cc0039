package ports

import (
	"context"

	"github.com/bnema/interview-prep-cli/internal/domain"
)

// InterviewDraft is an in-progress round plus the question the user is looking at.
type InterviewDraft struct {
	Session  domain.InterviewSession
	Position int
}

type InterviewRepository interface {
	// Load returns domain.ErrInterviewNotFound when no draft exists.
	Load(ctx context.Context) (InterviewDraft, error)
	Save(ctx context.Context, draft InterviewDraft) error
	Delete(ctx context.Context) error
}

type ResultRepository interface {
	Append(ctx context.Context, result domain.Result) error
	List(ctx context.Context, limit int) ([]domain.Result, error)
}
