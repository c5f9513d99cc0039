package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	maxResponseBytes = 1 << 20
	defaultUserAgent = "prep-cli"
	requestIDHeader  = "X-Request-ID"
)

// TokenSource hands out the live bearer token, if any.
type TokenSource interface {
	Token() (string, bool)
}

type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	UserAgent  string
	Logger     *slog.Logger
}

// StatusError is a non-2xx response with the server's detail message.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}

	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Detail)
}

// Client talks to the interview backend over HTTP/JSON.
type Client struct {
	baseURL   string
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    *slog.Logger

	mu             sync.RWMutex
	tokens         TokenSource
	onUnauthorized func()
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return nil, errors.New("api base url host is required")
	}

	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:   base,
		http:      cfg.HTTPClient,
		limiter:   cfg.Limiter,
		userAgent: cfg.UserAgent,
		logger:    cfg.Logger,
	}, nil
}

// BindSession connects the client to the session owner: tokens for
// authenticated calls, and the hook every 401 on them is reported to.
func (c *Client) BindSession(tokens TokenSource, onUnauthorized func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tokens = tokens
	c.onUnauthorized = onUnauthorized
}

type request struct {
	method      string
	path        string
	body        io.Reader
	contentType string
	// bearer is sent as the Authorization token when set.
	bearer string
	// authenticated marks calls whose 401 means the session is dead.
	authenticated bool
}

func (c *Client) jsonRequest(method, path string, payload any) (request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return request{}, fmt.Errorf("encode %s request: %w", path, err)
	}

	return request{method: method, path: path, body: bytes.NewReader(data), contentType: "application/json"}, nil
}

func (c *Client) sessionToken() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.tokens == nil {
		return "", false
	}

	return c.tokens.Token()
}

func (c *Client) reportUnauthorized() {
	c.mu.RLock()
	hook := c.onUnauthorized
	c.mu.RUnlock()

	if hook != nil {
		hook()
	}
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.New().String()
	httpReq.Header.Set(requestIDHeader, requestID)
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		httpReq.Header.Set("Content-Type", r.contentType)
	}
	if r.bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+r.bearer)
	}

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug("api call",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Detail: parseDetail(body)}
		if resp.StatusCode == http.StatusUnauthorized && r.authenticated {
			c.reportUnauthorized()
			return fmt.Errorf("%w: %w", domain.ErrSessionExpired, statusErr)
		}
		return statusErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// parseDetail extracts FastAPI-style {"detail": ...} messages.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return strings.TrimSpace(string(body))
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil && len(items) > 0 {
		messages := make([]string, 0, len(items))
		for _, item := range items {
			messages = append(messages, item.Msg)
		}
		return strings.Join(messages, "; ")
	}

	var object struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Detail, &object); err == nil && object.Message != "" {
		return object.Message
	}

	return strings.TrimSpace(string(envelope.Detail))
}
