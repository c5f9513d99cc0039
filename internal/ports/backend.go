package ports

import (
	"context"

	"github.com/bnema/interview-prep-cli/internal/domain"
)

type SignupRequest struct {
	Email    string
	FullName string
	Password string
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (domain.AuthGrant, error)
	Signup(ctx context.Context, req SignupRequest) (domain.AuthGrant, error)
	GoogleAuth(ctx context.Context, credential string) (domain.AuthGrant, error)
	GitHubAuth(ctx context.Context, code string) (domain.AuthGrant, error)
	CurrentUser(ctx context.Context, token string) (domain.Identity, error)
}

type StartInterviewRequest struct {
	Role           string
	Company        string
	ResumeText     string
	JobDescription string
	Mode           domain.InterviewMode
}

type InterviewAPI interface {
	StartInterview(ctx context.Context, req StartInterviewRequest) (domain.InterviewSession, error)
	// SubmitAnswers is the short-mode submit; it always yields a terminal outcome.
	SubmitAnswers(ctx context.Context, sessionID string, answers []string) (domain.Terminal, error)
	// SubmitRound is the detailed-mode submit.
	SubmitRound(ctx context.Context, sessionID string, answers []string, roundNumber int) (domain.RoundOutcome, error)
}
