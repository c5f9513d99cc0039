package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
)

var _ ports.InterviewAPI = (*Client)(nil)

type startPayload struct {
	SessionID        string   `json:"session_id"`
	Questions        []string `json:"questions"`
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	InterviewMode    string   `json:"interview_mode"`
	CurrentRound     int      `json:"current_round"`
	RoundName        string   `json:"round_name"`
	TotalRounds      int      `json:"total_rounds"`
	RoundDescription string   `json:"round_description"`
}

type scorePayload struct {
	Correctness float64 `json:"correctness"`
	Clarity     float64 `json:"clarity"`
	Structure   float64 `json:"structure"`
	Depth       float64 `json:"depth"`
	Feedback    string  `json:"feedback"`
}

type feedbackPayload struct {
	Marks    *float64 `json:"marks"`
	Feedback string   `json:"feedback"`
}

type finalReportPayload struct {
	Strengths []string `json:"strengths"`
	WeakAreas []string `json:"weak_areas"`
	Roadmap   string   `json:"roadmap"`
}

// outcomePayload is the shared wire shape of submit-answers and submit-round.
// It is decoded into exactly one domain variant by toOutcome.
type outcomePayload struct {
	InterviewContinues *bool `json:"interview_continues"`

	RoundNumber  int            `json:"round_number"`
	RoundName    string         `json:"round_name"`
	Passed       *bool          `json:"passed"`
	RoundSummary string         `json:"round_summary"`
	Scores       []scorePayload `json:"scores"`
	Message      string         `json:"message"`

	NextRound            int      `json:"next_round"`
	NextRoundName        string   `json:"next_round_name"`
	NextRoundDescription string   `json:"next_round_description"`
	NextQuestions        []string `json:"next_questions"`

	Feedback          []feedbackPayload   `json:"feedback"`
	Roadmap           string              `json:"roadmap"`
	TotalScore        *float64            `json:"total_score"`
	AverageScore      *float64            `json:"average_score"`
	FitPercentage     *int                `json:"fit_percentage"`
	ImprovementNeeded *float64            `json:"improvement_needed"`
	Strengths         []string            `json:"strengths"`
	WeakAreas         []string            `json:"weak_areas"`
	FinalReport       *finalReportPayload `json:"final_report"`
}

func (c *Client) StartInterview(ctx context.Context, req ports.StartInterviewRequest) (domain.InterviewSession, error) {
	body := map[string]string{
		"role":           req.Role,
		"company":        req.Company,
		"resume_text":    req.ResumeText,
		"interview_mode": string(req.Mode),
	}
	if req.JobDescription != "" {
		body["job_description"] = req.JobDescription
	}

	r, err := c.jsonRequest(http.MethodPost, "/interview/start", body)
	if err != nil {
		return domain.InterviewSession{}, err
	}
	// Starting works anonymously; a live session is attached when present.
	if token, ok := c.sessionToken(); ok {
		r.bearer = token
		r.authenticated = true
	}

	var payload startPayload
	if err := c.do(ctx, r, &payload); err != nil {
		return domain.InterviewSession{}, fmt.Errorf("start interview: %w", err)
	}
	if payload.SessionID == "" {
		return domain.InterviewSession{}, fmt.Errorf("start interview: %w: missing session_id", domain.ErrMalformedOutcome)
	}

	mode, err := domain.ParseInterviewMode(payload.InterviewMode)
	if err != nil {
		mode = req.Mode
	}
	roundIndex := 0
	if payload.CurrentRound > 1 {
		roundIndex = payload.CurrentRound - 1
	}

	return domain.InterviewSession{
		ID:          payload.SessionID,
		Role:        firstNonEmpty(payload.Role, req.Role),
		Company:     firstNonEmpty(payload.Company, req.Company),
		Mode:        mode,
		RoundIndex:  roundIndex,
		RoundName:   payload.RoundName,
		TotalRounds: payload.TotalRounds,
		Description: payload.RoundDescription,
		Questions:   payload.Questions,
		Answers:     make([]string, len(payload.Questions)),
	}, nil
}

func (c *Client) SubmitAnswers(ctx context.Context, sessionID string, answers []string) (domain.Terminal, error) {
	payload, err := c.submit(ctx, "/interview/submit-answers", map[string]any{
		"session_id": sessionID,
		"answers":    answers,
	})
	if err != nil {
		return domain.Terminal{}, fmt.Errorf("submit answers: %w", err)
	}

	outcome, err := payload.toOutcome()
	if err != nil {
		return domain.Terminal{}, fmt.Errorf("submit answers: %w", err)
	}
	terminal, ok := outcome.(domain.Terminal)
	if !ok {
		return domain.Terminal{}, fmt.Errorf("submit answers: %w: continuation for a short interview", domain.ErrMalformedOutcome)
	}

	return terminal, nil
}

func (c *Client) SubmitRound(ctx context.Context, sessionID string, answers []string, roundNumber int) (domain.RoundOutcome, error) {
	payload, err := c.submit(ctx, "/interview/submit-round", map[string]any{
		"session_id":   sessionID,
		"answers":      answers,
		"round_number": roundNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("submit round: %w", err)
	}

	outcome, err := payload.toOutcome()
	if err != nil {
		return nil, fmt.Errorf("submit round: %w", err)
	}

	return outcome, nil
}

func (c *Client) submit(ctx context.Context, path string, body map[string]any) (outcomePayload, error) {
	r, err := c.jsonRequest(http.MethodPost, path, body)
	if err != nil {
		return outcomePayload{}, err
	}
	token, ok := c.sessionToken()
	if !ok {
		return outcomePayload{}, domain.ErrNotAuthenticated
	}
	r.bearer = token
	r.authenticated = true

	var payload outcomePayload
	if err := c.do(ctx, r, &payload); err != nil {
		return outcomePayload{}, err
	}

	return payload, nil
}

// toOutcome picks the variant once. An explicit interview_continues wins;
// without it the payload is terminal only if it carries terminal fields.
func (p outcomePayload) toOutcome() (domain.RoundOutcome, error) {
	continues := false
	switch {
	case p.InterviewContinues != nil:
		continues = *p.InterviewContinues
	case len(p.NextQuestions) > 0:
		continues = true
	case !p.hasTerminalFields():
		return nil, fmt.Errorf("%w: response has neither continuation nor result fields", domain.ErrMalformedOutcome)
	}

	summary := domain.RoundSummary{
		Number:  p.RoundNumber,
		Name:    p.RoundName,
		Summary: p.RoundSummary,
	}
	if p.Passed != nil {
		summary.Passed = *p.Passed
	}
	if p.AverageScore != nil {
		summary.AverageScore = *p.AverageScore
	}

	if continues {
		if len(p.NextQuestions) == 0 || p.NextRound < 1 {
			return nil, fmt.Errorf("%w: continuation without next round", domain.ErrMalformedOutcome)
		}
		return domain.Continuation{
			NextQuestions:        p.NextQuestions,
			NextRoundIndex:       p.NextRound - 1,
			NextRoundName:        p.NextRoundName,
			NextRoundDescription: p.NextRoundDescription,
			Message:              p.Message,
			CompletedRound:       summary,
		}, nil
	}

	terminal := domain.Terminal{
		Passed:            p.Passed,
		Roadmap:           p.Roadmap,
		TotalScore:        p.TotalScore,
		AverageScore:      p.AverageScore,
		FitPercentage:     p.FitPercentage,
		Message:           p.Message,
		Strengths:         p.Strengths,
		WeakAreas:         p.WeakAreas,
		ImprovementNeeded: p.ImprovementNeeded,
		CompletedRound:    summary,
	}
	if report := p.FinalReport; report != nil {
		terminal.Roadmap = firstNonEmpty(terminal.Roadmap, report.Roadmap)
		if len(terminal.Strengths) == 0 {
			terminal.Strengths = report.Strengths
		}
		if len(terminal.WeakAreas) == 0 {
			terminal.WeakAreas = report.WeakAreas
		}
	}
	for _, s := range p.Scores {
		terminal.Scores = append(terminal.Scores, domain.QuestionScore{
			Correctness: s.Correctness,
			Clarity:     s.Clarity,
			Structure:   s.Structure,
			Depth:       s.Depth,
			Feedback:    s.Feedback,
		})
	}
	for _, f := range p.Feedback {
		terminal.Feedback = append(terminal.Feedback, domain.QuestionFeedback{Marks: f.Marks, Feedback: f.Feedback})
	}

	return terminal, nil
}

func (p outcomePayload) hasTerminalFields() bool {
	return len(p.Scores) > 0 || len(p.Feedback) > 0 || p.AverageScore != nil || p.TotalScore != nil || p.FinalReport != nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
