package ports

import "github.com/bnema/interview-prep-cli/internal/domain"

type SessionMetrics interface {
	SessionTransition(from, to domain.SessionState, reason string)
}

type InterviewMetrics interface {
	RoundSubmitted(mode domain.InterviewMode, outcome string)
}
