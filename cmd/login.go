package cmd

import (
	"errors"
	"fmt"
	"strings"

	authadapter "github.com/bnema/interview-prep-cli/internal/adapters/auth"
	"github.com/bnema/interview-prep-cli/internal/application"
	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the interview backend",
	}

	cmd.AddCommand(newLoginPasswordCmd(app), newLoginGoogleCmd(app), newLoginGitHubCmd(app))

	return cmd
}

func newLoginPasswordCmd(app *app) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:         "password",
		Short:       "Sign in with email and password",
		Args:        cobra.NoArgs,
		Annotations: onRoute(routeLogin),
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := resolvePassword(cmd, password)
			if err != nil {
				return err
			}

			snap, err := app.session.Login(cmd.Context(), strings.TrimSpace(email), secret)
			if err != nil {
				return err
			}

			return writeSignedIn(cmd, snap)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted on a terminal)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLoginGoogleCmd(app *app) *cobra.Command {
	var idToken string

	cmd := &cobra.Command{
		Use:         "google",
		Short:       "Sign in with a Google ID token",
		Args:        cobra.NoArgs,
		Annotations: onRoute(routeLogin),
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := app.session.LoginWithGoogle(cmd.Context(), strings.TrimSpace(idToken))
			if err != nil {
				return err
			}

			return writeSignedIn(cmd, snap)
		},
	}

	cmd.Flags().StringVar(&idToken, "id-token", "", "Google ID token (credential) obtained from Google Sign-In")
	_ = cmd.MarkFlagRequired("id-token")

	return cmd
}

func newLoginGitHubCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:         "github",
		Short:       "Sign in with GitHub in your browser",
		Args:        cobra.NoArgs,
		Annotations: onRoute(routeLogin),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGitHubLogin(cmd, app)
		},
	}
}

func runGitHubLogin(cmd *cobra.Command, app *app) error {
	if app.githubLogin.ClientID == "" {
		return errors.New("github login needs oauth.github.client_id (or PREP_GITHUB_CLIENT_ID)")
	}

	state, err := authadapter.NewState()
	if err != nil {
		return fmt.Errorf("generate oauth state: %w", err)
	}

	server, err := authadapter.StartCallbackServer(app.githubLogin.ListenAddr, state)
	if err != nil {
		return fmt.Errorf("start callback server: %w", err)
	}

	authURL, err := authadapter.BuildAuthorizationURL(authadapter.AuthorizationRequest{
		AuthorizeURL: app.githubLogin.AuthorizeURL,
		ClientID:     app.githubLogin.ClientID,
		RedirectURI:  server.RedirectURI(),
		Scopes:       authadapter.DefaultGitHubScopes,
		State:        state,
	})
	if err != nil {
		_ = server.Close()
		return fmt.Errorf("build authorization url: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Open this URL to sign in with GitHub:\n%s\n", authURL)

	code, err := server.WaitForCode(cmd.Context(), app.githubLogin.Timeout)
	if err != nil {
		return fmt.Errorf("wait for oauth callback: %w", err)
	}

	snap, err := app.session.LoginWithGitHub(cmd.Context(), code)
	if err != nil {
		return err
	}

	return writeSignedIn(cmd, snap)
}

func newSignupCmd(app *app) *cobra.Command {
	var email string
	var name string
	var password string

	cmd := &cobra.Command{
		Use:         "signup",
		Short:       "Create an account and sign in",
		Args:        cobra.NoArgs,
		Annotations: onRoute(routeLogin),
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := resolvePassword(cmd, password)
			if err != nil {
				return err
			}

			snap, err := app.session.Signup(cmd.Context(), ports.SignupRequest{
				Email:    strings.TrimSpace(email),
				FullName: strings.TrimSpace(name),
				Password: secret,
			})
			if err != nil {
				return err
			}

			return writeSignedIn(cmd, snap)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted on a terminal)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLogoutCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:         "logout",
		Short:       "Sign out and forget the stored session",
		Args:        cobra.NoArgs,
		Annotations: onRoute(routeHome),
		RunE: func(cmd *cobra.Command, _ []string) error {
			before := app.session.Snapshot()
			app.session.Logout()

			if !before.State.Authenticated() {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Signed out %s.\n", before.Identity.Label())
			return err
		},
	}
}

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:         "whoami",
		Short:       "Show the signed-in account",
		Args:        cobra.NoArgs,
		Annotations: onRoute(routeProfile),
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap := app.session.Snapshot()
			if !snap.State.Authenticated() {
				return notSignedIn(snap)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintln(out, snap.Identity.Label())
			if snap.Identity.Email != "" && snap.Identity.Email != snap.Identity.Label() {
				_, _ = fmt.Fprintln(out, snap.Identity.Email)
			}
			_, err := fmt.Fprintf(out, "session ends %s\n", snap.ExpiresAt.Local().Format("2006-01-02 15:04"))
			return err
		},
	}
}

func writeSignedIn(cmd *cobra.Command, snap application.SessionSnapshot) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s until %s.\n",
		snap.Identity.Label(), snap.ExpiresAt.Local().Format("2006-01-02 15:04"))
	return err
}

func notSignedIn(snap application.SessionSnapshot) error {
	if snap.State == domain.SessionExpired {
		return fmt.Errorf("%w: run `prep login` to sign in again", domain.ErrSessionExpired)
	}

	return fmt.Errorf("%w: run `prep login` or `prep signup`", domain.ErrNotAuthenticated)
}
