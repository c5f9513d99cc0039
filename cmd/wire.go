package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/interview-prep-cli/internal/adapters/api"
	"github.com/bnema/interview-prep-cli/internal/adapters/credentials"
	resultrender "github.com/bnema/interview-prep-cli/internal/adapters/render/result"
	statusrender "github.com/bnema/interview-prep-cli/internal/adapters/render/status"
	sqliterepo "github.com/bnema/interview-prep-cli/internal/adapters/repo/sqlite"
	tomlrepo "github.com/bnema/interview-prep-cli/internal/adapters/repo/toml"
	"github.com/bnema/interview-prep-cli/internal/adapters/router"
	"github.com/bnema/interview-prep-cli/internal/adapters/scheduler"
	chainstore "github.com/bnema/interview-prep-cli/internal/adapters/secrets/chain"
	filestore "github.com/bnema/interview-prep-cli/internal/adapters/secrets/file"
	"github.com/bnema/interview-prep-cli/internal/application"
	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/metrics"
	"github.com/bnema/interview-prep-cli/internal/ports"
	"github.com/bnema/interview-prep-cli/internal/version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"golang.org/x/time/rate"
)

type app struct {
	cfg        tomlrepo.Config
	logger     *slog.Logger
	session    *application.SessionLifecycleController
	interviews *application.InterviewService
	router     *router.Router
	drafts     ports.InterviewRepository
	history    *sqliterepo.HistoryRepository
	registry   *prometheus.Registry
	// storePath is the file another prep process rewrites on login or logout.
	storePath string

	renderStatus  func(application.SessionSnapshot, statusrender.RenderOptions) (string, error)
	renderResult  func(domain.Result, resultrender.RenderOptions) (string, error)
	renderHistory func([]domain.Result, resultrender.RenderOptions) (string, error)
	githubLogin   githubLoginConfig
	now           func() time.Time

	noticeMu sync.Mutex
	notices  io.Writer
}

type githubLoginConfig struct {
	AuthorizeURL string
	ClientID     string
	ListenAddr   string
	Timeout      time.Duration
}

func wireApp() (*app, error) {
	home, err := resolveHome()
	if err != nil {
		return nil, err
	}

	cfg, err := tomlrepo.LoadConfig(viper.New(), home)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}
	client, err := api.NewClient(api.Config{
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.APITimeout},
		Limiter:    limiter,
		UserAgent:  "prep/" + version.Version,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("wire api client: %w", err)
	}

	store, storePath, err := wireCredentialStore(cfg)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:           cfg,
		logger:        logger,
		registry:      registry,
		storePath:     storePath,
		renderStatus:  statusrender.Render,
		renderResult:  resultrender.Render,
		renderHistory: resultrender.RenderHistory,
		githubLogin: githubLoginConfig{
			AuthorizeURL: cfg.GitHubAuthorizeURL,
			ClientID:     cfg.GitHubClientID,
			ListenAddr:   cfg.OAuthListen,
			Timeout:      5 * time.Minute,
		},
		now:     time.Now,
		notices: os.Stderr,
	}
	a.router = router.New(domain.DefaultRoute, a.onRedirect)

	clock := ports.SystemClock{}
	controller, err := application.NewSessionLifecycleController(application.SessionDeps{
		Auth:      client,
		Store:     store,
		Scheduler: scheduler.NewTimer(clock),
		Clock:     clock,
		Navigator: a.router,
		Metrics:   collector,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("wire session controller: %w", err)
	}
	client.BindSession(controller, controller.HandleUnauthorized)
	a.session = controller

	drafts, err := tomlrepo.NewDraftRepository(cfg.DraftsPath)
	if err != nil {
		return nil, fmt.Errorf("wire interview drafts: %w", err)
	}
	a.drafts = drafts

	history, err := sqliterepo.Open(context.Background(), cfg.HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("wire interview history: %w", err)
	}
	a.history = history

	a.interviews = application.NewInterviewService(application.InterviewDeps{
		API:     client,
		Drafts:  drafts,
		Results: history,
		Clock:   clock,
		Metrics: collector,
		Logger:  logger,
	})

	return a, nil
}

func wireCredentialStore(cfg tomlrepo.Config) (ports.CredentialStore, string, error) {
	switch cfg.CredentialsBackend {
	case tomlrepo.CredentialsBackendSecret:
		secrets, err := chainstore.NewPassFirstWithFileFallback(cfg.SecretsDir)
		if err != nil {
			return nil, "", fmt.Errorf("wire secret store chain: %w", err)
		}
		store, err := credentials.NewSecretStore(secrets, credentials.DefaultSecretKey)
		if err != nil {
			return nil, "", fmt.Errorf("wire credential store: %w", err)
		}
		// Only the file fallback can be watched; pass entries change silently.
		path, err := filestore.NewStore(cfg.SecretsDir).Path(credentials.DefaultSecretKey)
		if err != nil {
			return nil, "", fmt.Errorf("resolve secret path: %w", err)
		}
		return store, path, nil
	default:
		store, err := credentials.NewFileStore(cfg.CredentialsPath)
		if err != nil {
			return nil, "", fmt.Errorf("wire credential store: %w", err)
		}
		return store, store.Path(), nil
	}
}

func (a *app) close() {
	a.session.Close()
	if err := a.history.Close(); err != nil {
		a.logger.Warn("close interview history", "error", err)
	}
}

func (a *app) setNoticeWriter(w io.Writer) {
	a.noticeMu.Lock()
	defer a.noticeMu.Unlock()

	a.notices = w
}

func (a *app) notify(format string, args ...any) {
	a.noticeMu.Lock()
	defer a.noticeMu.Unlock()

	_, _ = fmt.Fprintf(a.notices, format+"\n", args...)
}

func (a *app) onRedirect(from, to domain.Route) {
	a.notify("Your session has ended. Leaving %s for %s; run `prep login` to sign in again.", from, to)
}

func resolveHome() (string, error) {
	userHome, err := os.UserHomeDir()
	if err != nil && os.Getenv("PREP_HOME") == "" {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return envOrDefault("PREP_HOME", filepath.Join(userHome, ".prep")), nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log.level: %w", err)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
