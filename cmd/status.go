package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	statusrender "github.com/bnema/interview-prep-cli/internal/adapters/render/status"
	"github.com/bnema/interview-prep-cli/internal/application"
	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
	"github.com/spf13/cobra"
)

type sessionStatusJSON struct {
	State     string                `json:"state"`
	UserID    string                `json:"user_id,omitempty"`
	Name      string                `json:"name,omitempty"`
	Email     string                `json:"email,omitempty"`
	IssuedAt  *time.Time            `json:"issued_at,omitempty"`
	WarningAt *time.Time            `json:"warning_at,omitempty"`
	ExpiresAt *time.Time            `json:"expires_at,omitempty"`
	Interview *interviewSummaryJSON `json:"interview,omitempty"`
}

type interviewSummaryJSON struct {
	SessionID string `json:"session_id"`
	Role      string `json:"role"`
	Company   string `json:"company"`
	Mode      string `json:"mode"`
	Round     int    `json:"round"`
	Answered  int    `json:"answered"`
	Questions int    `json:"questions"`
}

func writeSessionStatus(cmd *cobra.Command, app *app, snap application.SessionSnapshot, asJSON bool) error {
	draft, hasDraft, err := loadDraft(cmd.Context(), app.drafts)
	if err != nil {
		return err
	}

	if asJSON {
		out := sessionStatusJSON{
			State:     snap.State.String(),
			UserID:    snap.Identity.UserID,
			Name:      snap.Identity.DisplayName,
			Email:     snap.Identity.Email,
			IssuedAt:  timePtr(snap.IssuedAt),
			WarningAt: timePtr(snap.WarningAt),
			ExpiresAt: timePtr(snap.ExpiresAt),
		}
		if hasDraft {
			summary := summarizeDraft(draft)
			out.Interview = &summary
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	opts := statusrender.RenderOptions{Now: app.now()}
	if hasDraft {
		s := summarizeDraft(draft)
		opts.Draft = fmt.Sprintf("%s at %s, round %d, %d/%d answered", s.Role, s.Company, s.Round, s.Answered, s.Questions)
	}

	rendered, err := app.renderStatus(snap, opts)
	if err != nil {
		return fmt.Errorf("render session status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func loadDraft(ctx context.Context, drafts ports.InterviewRepository) (ports.InterviewDraft, bool, error) {
	draft, err := drafts.Load(ctx)
	if errors.Is(err, domain.ErrInterviewNotFound) {
		return ports.InterviewDraft{}, false, nil
	}
	if err != nil {
		return ports.InterviewDraft{}, false, fmt.Errorf("load interview draft: %w", err)
	}

	return draft, true, nil
}

func summarizeDraft(draft ports.InterviewDraft) interviewSummaryJSON {
	session := draft.Session
	return interviewSummaryJSON{
		SessionID: session.ID,
		Role:      session.Role,
		Company:   session.Company,
		Mode:      string(session.Mode),
		Round:     session.RoundNumber(),
		Answered:  len(session.Questions) - len(session.Unanswered()),
		Questions: len(session.Questions),
	}
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}

	return &t
}
