package toml

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"

	CredentialsBackendFile   = "file"
	CredentialsBackendSecret = "secret"
)

const (
	keyAPIBaseURL         = "api.base_url"
	keyAPITimeout         = "api.timeout"
	keyAPIRateLimit       = "api.rate_limit"
	keyAPIRateBurst       = "api.rate_burst"
	keyCredentialsBackend = "credentials.backend"
	keyCredentialsPath    = "credentials.path"
	keyDraftsPath         = "drafts.path"
	keyHistoryPath        = "history.path"
	keyGitHubClientID     = "oauth.github.client_id"
	keyGitHubAuthorizeURL = "oauth.github.authorize_url"
	keyOAuthListen        = "oauth.listen"
	keyLogLevel           = "log.level"
)

type Config struct {
	Home               string
	APIBaseURL         string
	APITimeout         time.Duration
	RateLimit          float64
	RateBurst          int
	CredentialsBackend string
	CredentialsPath    string
	SecretsDir         string
	DraftsPath         string
	HistoryPath        string
	GitHubClientID     string
	GitHubAuthorizeURL string
	OAuthListen        string
	LogLevel           string
}

// LoadConfig reads home/config.toml into cfg, layering PREP_* environment
// overrides on top. A missing config file is not an error.
func LoadConfig(cfg *viper.Viper, home string) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if home == "" {
		return Config{}, errors.New("config home is empty")
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(home)

	cfg.SetDefault(keyAPIBaseURL, "http://localhost:8000")
	cfg.SetDefault(keyAPITimeout, 30*time.Second)
	cfg.SetDefault(keyAPIRateLimit, 5.0)
	cfg.SetDefault(keyAPIRateBurst, 10)
	cfg.SetDefault(keyCredentialsBackend, CredentialsBackendFile)
	cfg.SetDefault(keyCredentialsPath, filepath.Join(home, "session.toml"))
	cfg.SetDefault(keyDraftsPath, filepath.Join(home, "interview.toml"))
	cfg.SetDefault(keyHistoryPath, filepath.Join(home, "history.db"))
	cfg.SetDefault(keyGitHubAuthorizeURL, "https://github.com/login/oauth/authorize")
	cfg.SetDefault(keyOAuthListen, "127.0.0.1:1456")
	cfg.SetDefault(keyLogLevel, "warn")

	for key, env := range map[string]string{
		keyAPIBaseURL:         "PREP_API_URL",
		keyLogLevel:           "PREP_LOG_LEVEL",
		keyCredentialsBackend: "PREP_CREDENTIALS_BACKEND",
		keyGitHubClientID:     "PREP_GITHUB_CLIENT_ID",
	} {
		if err := cfg.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	loaded := Config{
		Home:               home,
		APIBaseURL:         strings.TrimSpace(cfg.GetString(keyAPIBaseURL)),
		APITimeout:         cfg.GetDuration(keyAPITimeout),
		RateLimit:          cfg.GetFloat64(keyAPIRateLimit),
		RateBurst:          cfg.GetInt(keyAPIRateBurst),
		CredentialsBackend: strings.ToLower(strings.TrimSpace(cfg.GetString(keyCredentialsBackend))),
		CredentialsPath:    cfg.GetString(keyCredentialsPath),
		SecretsDir:         filepath.Join(home, "secrets"),
		DraftsPath:         cfg.GetString(keyDraftsPath),
		HistoryPath:        cfg.GetString(keyHistoryPath),
		GitHubClientID:     strings.TrimSpace(cfg.GetString(keyGitHubClientID)),
		GitHubAuthorizeURL: cfg.GetString(keyGitHubAuthorizeURL),
		OAuthListen:        cfg.GetString(keyOAuthListen),
		LogLevel:           cfg.GetString(keyLogLevel),
	}

	if err := loaded.validate(); err != nil {
		return Config{}, err
	}

	return loaded, nil
}

func (c Config) validate() error {
	var errs []error
	if c.APIBaseURL == "" {
		errs = append(errs, errors.New("api.base_url is empty"))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive, got %s", c.APITimeout))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("api.rate_limit must not be negative, got %g", c.RateLimit))
	}
	if c.RateLimit > 0 && c.RateBurst < 1 {
		errs = append(errs, fmt.Errorf("api.rate_burst must be at least 1, got %d", c.RateBurst))
	}
	switch c.CredentialsBackend {
	case CredentialsBackendFile, CredentialsBackendSecret:
	default:
		errs = append(errs, fmt.Errorf("credentials.backend must be %q or %q, got %q", CredentialsBackendFile, CredentialsBackendSecret, c.CredentialsBackend))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	return nil
}
