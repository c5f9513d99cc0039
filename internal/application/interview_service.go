package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
)

// InterviewService starts, resumes and lists interviews. Each live round is
// driven by an InterviewRoundController it hands out.
type InterviewService struct {
	deps InterviewDeps
}

func NewInterviewService(deps InterviewDeps) *InterviewService {
	return &InterviewService{deps: deps}
}

func (s *InterviewService) Start(ctx context.Context, req ports.StartInterviewRequest) (*InterviewRoundController, error) {
	req.Role = strings.TrimSpace(req.Role)
	req.Company = strings.TrimSpace(req.Company)
	if err := validateStart(req); err != nil {
		return nil, err
	}

	session, err := s.deps.API.StartInterview(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("start interview: %w", err)
	}
	if session.Mode == "" {
		session.Mode = req.Mode
	}

	controller, err := NewInterviewRoundController(s.deps, ports.InterviewDraft{Session: session})
	if err != nil {
		return nil, fmt.Errorf("start interview: %w: %w", domain.ErrMalformedOutcome, err)
	}
	if s.deps.Drafts != nil {
		if err := s.deps.Drafts.Save(ctx, ports.InterviewDraft{Session: controller.Snapshot().Session}); err != nil {
			return nil, fmt.Errorf("save interview draft: %w", err)
		}
	}

	return controller, nil
}

// Resume rebuilds the controller for the stored in-progress round.
func (s *InterviewService) Resume(ctx context.Context) (*InterviewRoundController, error) {
	if s.deps.Drafts == nil {
		return nil, domain.ErrInterviewNotFound
	}

	draft, err := s.deps.Drafts.Load(ctx)
	if err != nil {
		return nil, err
	}

	controller, err := NewInterviewRoundController(s.deps, draft)
	if err != nil {
		return nil, fmt.Errorf("resume interview: %w", err)
	}

	return controller, nil
}

func (s *InterviewService) History(ctx context.Context, limit int) ([]domain.Result, error) {
	if s.deps.Results == nil {
		return nil, nil
	}

	results, err := s.deps.Results.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list interview history: %w", err)
	}

	return results, nil
}

func validateStart(req ports.StartInterviewRequest) error {
	var missing []string
	if req.Role == "" {
		missing = append(missing, "role")
	}
	if req.Company == "" {
		missing = append(missing, "company")
	}
	if strings.TrimSpace(req.ResumeText) == "" {
		missing = append(missing, "resume")
	}
	if len(missing) > 0 {
		return &domain.ValidationError{Field: strings.Join(missing, ", "), Message: "required"}
	}

	if req.Mode != domain.InterviewModeShort && req.Mode != domain.InterviewModeDetailed {
		return &domain.ValidationError{Field: "mode", Message: fmt.Sprintf("unsupported value %q", req.Mode)}
	}

	return nil
}
