package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/spf13/cobra"
)

// routeAnnotation names the route a command runs on. Commands carrying it
// restore the stored session before they run, unless localAnnotation is set.
const (
	routeAnnotation = "prep.route"
	localAnnotation = "prep.local"
)

const (
	routeHome      = "/"
	routeLogin     = "/login"
	routeProfile   = "/profile"
	routeSession   = "/session"
	routeInterview = "/interview"
	routeHistory   = "/history"
)

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, cleanup := newRootCmd()
	defer cleanup()

	return root.ExecuteContext(ctx)
}

func newRootCmd() (*cobra.Command, func()) {
	rootCmd := &cobra.Command{
		Use:           "prep",
		Short:         "Interview prep CLI (prep): practice interviews from the terminal",
		Long:          "prep signs you in to the interview practice backend, runs short or multi-round detailed mock interviews, and keeps a local history of your results.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, func() {}
	}

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		app.setNoticeWriter(cmd.ErrOrStderr())

		route, ok := cmd.Annotations[routeAnnotation]
		if !ok {
			return nil
		}
		app.router.Enter(domain.Route(route))
		if cmd.Annotations[localAnnotation] == "true" {
			return nil
		}
		snap := app.session.Restore(cmd.Context())
		app.logger.Debug("session restored", "state", snap.State.String(), "route", route)

		return nil
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newSignupCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newSessionCmd(app),
		newInterviewCmd(app),
		newHistoryCmd(app),
	)

	return rootCmd, app.close
}

func onRoute(route string) map[string]string {
	return map[string]string{routeAnnotation: route}
}

// onLocalRoute is for commands that only read or write local files. They
// skip the /auth/me round trip a restore costs.
func onLocalRoute(route string) map[string]string {
	return map[string]string{routeAnnotation: route, localAnnotation: "true"}
}
