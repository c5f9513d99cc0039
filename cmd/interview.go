package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	resultrender "github.com/bnema/interview-prep-cli/internal/adapters/render/result"
	"github.com/bnema/interview-prep-cli/internal/application"
	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
	"github.com/spf13/cobra"
)

var errNoInterview = errors.New("no interview in progress: run `prep interview start`")

func newInterviewCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Run a mock interview",
	}

	cmd.AddCommand(
		newInterviewStartCmd(app),
		newInterviewShowCmd(app),
		newInterviewAnswerCmd(app),
		newInterviewMoveCmd(app, "next", "Move to the next question", func(ctx context.Context, c *application.InterviewRoundController, _ []string) (int, error) {
			return c.Next(ctx), nil
		}),
		newInterviewMoveCmd(app, "prev", "Move to the previous question", func(ctx context.Context, c *application.InterviewRoundController, _ []string) (int, error) {
			return c.Previous(ctx), nil
		}),
		newInterviewMoveCmd(app, "goto <n>", "Jump to question n", func(ctx context.Context, c *application.InterviewRoundController, args []string) (int, error) {
			n, err := parseQuestionNumber(args[0])
			if err != nil {
				return 0, err
			}
			return c.GoTo(ctx, n-1), nil
		}),
		newInterviewSubmitCmd(app),
		newInterviewAbortCmd(app),
		newInterviewRunCmd(app),
	)

	return cmd
}

func newInterviewStartCmd(app *app) *cobra.Command {
	var role string
	var company string
	var resumeFile string
	var jobDescriptionFile string
	var mode string

	cmd := &cobra.Command{
		Use:         "start",
		Short:       "Start a new interview for a role",
		Args:        cobra.NoArgs,
		Annotations: onRoute(routeInterview),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if draft, ok, err := loadDraft(cmd.Context(), app.drafts); err != nil {
				return err
			} else if ok {
				return fmt.Errorf("an interview for %s at %s is already in progress: run `prep interview abort` first",
					draft.Session.Role, draft.Session.Company)
			}

			parsedMode, err := domain.ParseInterviewMode(mode)
			if err != nil {
				return err
			}
			resume, err := readTextFile(resumeFile)
			if err != nil {
				return fmt.Errorf("read resume: %w", err)
			}
			var jobDescription string
			if jobDescriptionFile != "" {
				if jobDescription, err = readTextFile(jobDescriptionFile); err != nil {
					return fmt.Errorf("read job description: %w", err)
				}
			}

			controller, err := app.interviews.Start(cmd.Context(), ports.StartInterviewRequest{
				Role:           role,
				Company:        company,
				ResumeText:     resume,
				JobDescription: jobDescription,
				Mode:           parsedMode,
			})
			if err != nil {
				return err
			}

			return writeRound(cmd.OutOrStdout(), controller.Snapshot())
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Role you are interviewing for")
	cmd.Flags().StringVar(&company, "company", "", "Company you are interviewing with")
	cmd.Flags().StringVar(&resumeFile, "resume-file", "", "Plain-text resume")
	cmd.Flags().StringVar(&jobDescriptionFile, "job-description-file", "", "Plain-text job description")
	cmd.Flags().StringVar(&mode, "mode", string(domain.InterviewModeShort), "Interview mode (short|detailed)")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("resume-file")

	return cmd
}

func newInterviewShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "show",
		Short:       "Show the current round and your answers",
		Args:        cobra.NoArgs,
		Annotations: onLocalRoute(routeInterview),
		RunE: func(cmd *cobra.Command, _ []string) error {
			controller, err := resumeInterview(cmd.Context(), app)
			if err != nil {
				return err
			}

			snap := controller.Snapshot()
			if asJSON {
				return writeRoundJSON(cmd.OutOrStdout(), snap)
			}

			return writeRound(cmd.OutOrStdout(), snap)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newInterviewAnswerCmd(app *app) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:         "answer <n> [text...]",
		Short:       "Set the answer to question n",
		Args:        cobra.MinimumNArgs(1),
		Annotations: onLocalRoute(routeInterview),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := parseQuestionNumber(args[0])
			if err != nil {
				return err
			}

			text := strings.Join(args[1:], " ")
			if file != "" {
				if len(args) > 1 {
					return errors.New("pass the answer as text or with --file, not both")
				}
				if text, err = readTextFile(file); err != nil {
					return fmt.Errorf("read answer: %w", err)
				}
			}

			controller, err := resumeInterview(cmd.Context(), app)
			if err != nil {
				return err
			}
			if err := controller.SetAnswer(cmd.Context(), n-1, text); err != nil {
				return err
			}
			controller.GoTo(cmd.Context(), n-1)

			snap := controller.Snapshot()
			answered := len(snap.Session.Questions) - len(snap.Session.Unanswered())
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Saved answer to question %d (%d/%d answered).\n", n, answered, len(snap.Session.Questions))
			return err
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read the answer from a file")

	return cmd
}

type moveFunc func(ctx context.Context, c *application.InterviewRoundController, args []string) (int, error)

func newInterviewMoveCmd(app *app, use, short string, move moveFunc) *cobra.Command {
	args := cobra.NoArgs
	if strings.Contains(use, " ") {
		args = cobra.ExactArgs(1)
	}

	return &cobra.Command{
		Use:         use,
		Short:       short,
		Args:        args,
		Annotations: onLocalRoute(routeInterview),
		RunE: func(cmd *cobra.Command, args []string) error {
			controller, err := resumeInterview(cmd.Context(), app)
			if err != nil {
				return err
			}
			if _, err := move(cmd.Context(), controller, args); err != nil {
				return err
			}

			return writeQuestion(cmd.OutOrStdout(), controller.Snapshot())
		},
	}
}

func newInterviewSubmitCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:         "submit",
		Short:       "Submit the answers of the current round",
		Args:        cobra.NoArgs,
		Annotations: onRoute(routeInterview),
		RunE: func(cmd *cobra.Command, _ []string) error {
			controller, err := resumeInterview(cmd.Context(), app)
			if err != nil {
				return err
			}

			return submitRound(cmd, app, controller)
		},
	}
}

func newInterviewAbortCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:         "abort",
		Short:       "Discard the interview in progress",
		Args:        cobra.NoArgs,
		Annotations: onLocalRoute(routeInterview),
		RunE: func(cmd *cobra.Command, _ []string) error {
			controller, err := resumeInterview(cmd.Context(), app)
			if errors.Is(err, errNoInterview) {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "No interview in progress.")
				return err
			}
			if err != nil {
				return err
			}
			if err := controller.Abort(cmd.Context()); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), "Interview discarded.")
			return err
		},
	}
}

func submitRound(cmd *cobra.Command, app *app, controller *application.InterviewRoundController) error {
	// Validation failures are reported before any spinner starts.
	if err := controller.Snapshot().Session.ValidateAnswers(); err != nil {
		return err
	}

	var round application.RoundSnapshot
	submit := func(ctx context.Context) error {
		var err error
		round, err = controller.SubmitRound(ctx)
		return err
	}

	var err error
	if isTerminal(cmd.ErrOrStderr()) {
		err = runSubmitSpinner(cmd.Context(), cmd.ErrOrStderr(), "Submitting answers...", submit)
	} else {
		err = submit(cmd.Context())
	}
	if err != nil {
		return err
	}

	return writeSubmitted(cmd.OutOrStdout(), app, round)
}

func writeSubmitted(out io.Writer, app *app, round application.RoundSnapshot) error {
	if round.Phase == application.PhaseTerminal && round.Result != nil {
		rendered, err := app.renderResult(*round.Result, resultrender.RenderOptions{
			MarkdownStyle: markdownStyle(out),
			Now:           app.now(),
		})
		if err != nil {
			return fmt.Errorf("render interview result: %w", err)
		}
		_, err = fmt.Fprintln(out, rendered)
		return err
	}

	if round.Notice != "" {
		_, _ = fmt.Fprintln(out, round.Notice)
	}

	return writeRound(out, round)
}

func resumeInterview(ctx context.Context, app *app) (*application.InterviewRoundController, error) {
	controller, err := app.interviews.Resume(ctx)
	if errors.Is(err, domain.ErrInterviewNotFound) {
		return nil, errNoInterview
	}
	if err != nil {
		return nil, err
	}

	return controller, nil
}

func writeRound(out io.Writer, snap application.RoundSnapshot) error {
	session := snap.Session

	header := fmt.Sprintf("%s at %s, round %d", session.Role, session.Company, session.RoundNumber())
	if session.TotalRounds > 0 {
		header += fmt.Sprintf(" of %d", session.TotalRounds)
	}
	if session.RoundName != "" {
		header += ": " + session.RoundName
	}
	_, _ = fmt.Fprintln(out, header)
	if session.Description != "" {
		_, _ = fmt.Fprintln(out, session.Description)
	}
	_, _ = fmt.Fprintln(out)

	for i, question := range session.Questions {
		marker := " "
		if i == snap.Position {
			marker = ">"
		}
		status := "[ ]"
		if i < len(session.Answers) && strings.TrimSpace(session.Answers[i]) != "" {
			status = "[x]"
		}
		_, _ = fmt.Fprintf(out, "%s %s %d. %s\n", marker, status, i+1, question)
	}

	if snap.Error != "" {
		_, _ = fmt.Fprintf(out, "\nLast error: %s\n", snap.Error)
	}
	_, err := fmt.Fprintln(out, "\nAnswer with `prep interview answer <n> <text>`, then `prep interview submit`.")
	return err
}

func writeQuestion(out io.Writer, snap application.RoundSnapshot) error {
	session := snap.Session
	if len(session.Questions) == 0 {
		return errNoInterview
	}

	_, _ = fmt.Fprintf(out, "Question %d/%d: %s\n", snap.Position+1, len(session.Questions), session.Questions[snap.Position])
	answer := ""
	if snap.Position < len(session.Answers) {
		answer = strings.TrimSpace(session.Answers[snap.Position])
	}
	if answer == "" {
		answer = "(no answer yet)"
	}

	_, err := fmt.Fprintf(out, "Your answer: %s\n", answer)
	return err
}

type roundJSON struct {
	SessionID   string   `json:"session_id"`
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	Mode        string   `json:"mode"`
	Round       int      `json:"round"`
	RoundName   string   `json:"round_name,omitempty"`
	TotalRounds int      `json:"total_rounds,omitempty"`
	Description string   `json:"description,omitempty"`
	Position    int      `json:"position"`
	Questions   []string `json:"questions"`
	Answers     []string `json:"answers"`
	Error       string   `json:"error,omitempty"`
}

func writeRoundJSON(out io.Writer, snap application.RoundSnapshot) error {
	session := snap.Session

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(roundJSON{
		SessionID:   session.ID,
		Role:        session.Role,
		Company:     session.Company,
		Mode:        string(session.Mode),
		Round:       session.RoundNumber(),
		RoundName:   session.RoundName,
		TotalRounds: session.TotalRounds,
		Description: session.Description,
		Position:    snap.Position + 1,
		Questions:   session.Questions,
		Answers:     session.Answers,
		Error:       snap.Error,
	})
}

func parseQuestionNumber(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %q is not a question number", domain.ErrInvalidQuestionIndex, raw)
	}

	return n, nil
}

func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}
