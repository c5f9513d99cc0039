package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/interview-prep-cli/internal/adapters/render/warning"
	"github.com/bnema/interview-prep-cli/internal/application"
	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/spf13/cobra"
)

const runHelp = `Type an answer and press enter to save it for the current question.
Commands: :next  :prev  :goto <n>  :show  :submit  :extend  :abort  :quit  :help`

func newInterviewRunCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:         "run",
		Short:       "Answer the interview in progress interactively",
		Args:        cobra.NoArgs,
		Annotations: onRoute(routeInterview),
		RunE: func(cmd *cobra.Command, _ []string) error {
			controller, err := resumeInterview(cmd.Context(), app)
			if err != nil {
				return err
			}

			unsubscribe := app.session.Subscribe(func(snap application.SessionSnapshot) {
				if p, ok := warning.Present(snap, app.now()); ok {
					app.notify("Session for %s ends in %s. Type :extend to stay signed in.", p.Who, p.Countdown)
				}
			})
			defer unsubscribe()

			return runInterviewLoop(cmd, app, controller)
		},
	}
}

func runInterviewLoop(cmd *cobra.Command, app *app, controller *application.InterviewRoundController) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	_, _ = fmt.Fprintln(out, runHelp)
	_ = writeQuestion(out, controller.Snapshot())

	for {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			_, err := fmt.Fprintln(out, "Progress saved; resume with `prep interview run`.")
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, ":") {
			snap := controller.Snapshot()
			if err := controller.SetAnswer(ctx, snap.Position, line); err != nil {
				_, _ = fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			controller.Next(ctx)
			_ = writeQuestion(out, controller.Snapshot())
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case ":n", ":next":
			controller.Next(ctx)
			_ = writeQuestion(out, controller.Snapshot())
		case ":p", ":prev":
			controller.Previous(ctx)
			_ = writeQuestion(out, controller.Snapshot())
		case ":g", ":goto":
			if len(fields) != 2 {
				_, _ = fmt.Fprintln(out, "usage: :goto <n>")
				continue
			}
			n, err := parseQuestionNumber(fields[1])
			if err != nil {
				_, _ = fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			controller.GoTo(ctx, n-1)
			_ = writeQuestion(out, controller.Snapshot())
		case ":show":
			_ = writeRound(out, controller.Snapshot())
		case ":extend":
			snap, err := app.session.Extend(ctx)
			if err != nil {
				_, _ = fmt.Fprintf(out, "error: %v\n", err)
				continue
			}
			_, _ = fmt.Fprintf(out, "Session extended until %s.\n", snap.ExpiresAt.Local().Format("15:04"))
		case ":s", ":submit":
			if err := submitRound(cmd, app, controller); err != nil {
				_, _ = fmt.Fprintf(out, "error: %v\n", err)
				if errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrNotAuthenticated) {
					_, _ = fmt.Fprintln(out, "Your answers are saved. Sign in again with `prep login`, then resume.")
					return err
				}
				continue
			}
			if controller.Snapshot().Phase == application.PhaseTerminal {
				return nil
			}
			_ = writeQuestion(out, controller.Snapshot())
		case ":abort":
			if err := controller.Abort(ctx); err != nil {
				return err
			}
			_, err := fmt.Fprintln(out, "Interview discarded.")
			return err
		case ":q", ":quit":
			_, err := fmt.Fprintln(out, "Progress saved; resume with `prep interview run`.")
			return err
		case ":h", ":help":
			_, _ = fmt.Fprintln(out, runHelp)
		default:
			_, _ = fmt.Fprintf(out, "unknown command %s\n", fields[0])
		}
	}
}
