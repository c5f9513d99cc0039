package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bnema/interview-prep-cli/internal/adapters/render/warning"
	"github.com/bnema/interview-prep-cli/internal/adapters/watch"
	"github.com/bnema/interview-prep-cli/internal/application"
	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/metrics"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect, extend or watch the signed-in session",
	}

	cmd.AddCommand(newSessionStatusCmd(app), newSessionExtendCmd(app), newSessionWatchCmd(app))

	return cmd
}

func newSessionStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:         "status",
		Short:       "Show session state, lifetime and any interview in progress",
		Args:        cobra.NoArgs,
		Annotations: onRoute(routeSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeSessionStatus(cmd, app, app.session.Snapshot(), asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func newSessionExtendCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:         "extend",
		Short:       "Re-validate the session and restart its lifetime",
		Args:        cobra.NoArgs,
		Annotations: onRoute(routeSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := app.session.Extend(cmd.Context())
			if errors.Is(err, domain.ErrNotAuthenticated) {
				return notSignedIn(snap)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Session extended until %s.\n", snap.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return err
		},
	}
}

func newSessionWatchCmd(app *app) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:         "watch",
		Short:       "Stay open, warn before the session expires and offer to extend it",
		Args:        cobra.NoArgs,
		Annotations: onRoute(routeSession),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSessionWatch(cmd, app, metricsAddr)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. 127.0.0.1:9464)")

	return cmd
}

func runSessionWatch(cmd *cobra.Command, app *app, metricsAddr string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if metricsAddr != "" {
		stop := serveMetrics(app, metricsAddr)
		defer stop()
	}

	watcher, err := watch.New(app.storePath, app.session, watch.Options{Logger: app.logger})
	if err != nil {
		return err
	}
	watchDone := make(chan error, 1)
	go func() { watchDone <- watcher.Run(ctx) }()

	// The model renders expiry itself; redirect notices would tear the screen.
	app.setNoticeWriter(io.Discard)

	model := warning.NewModel(app.session.Snapshot(), warning.Actions{
		Extend: app.session.Extend,
		Logout: app.session.Logout,
	}, app.now)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)

	unsubscribe := app.session.Subscribe(func(snap application.SessionSnapshot) {
		p.Send(warning.SnapshotMsg(snap))
	})
	defer unsubscribe()

	_, runErr := p.Run()
	cancel()
	if err := <-watchDone; err != nil {
		app.logger.Warn("credential watcher stopped", "error", err)
	}
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("run session watch: %w", runErr)
	}

	return nil
}

func serveMetrics(app *app, addr string) func() {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.SetupMetricsRoute(app.registry),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("metrics listener", "addr", addr, "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
