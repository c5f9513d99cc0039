// Package auth runs the browser half of the GitHub OAuth login: it builds the
// authorize URL and catches the redirect on a loopback listener. The code it
// returns is exchanged by the backend, never by the CLI.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	DefaultGitHubAuthorizeURL = "https://github.com/login/oauth/authorize"
	callbackPath              = "/callback"
)

var DefaultGitHubScopes = []string{"read:user", "user:email"}

var (
	ErrStateMismatch   = errors.New("oauth callback state mismatch")
	ErrCallbackTimeout = errors.New("timed out waiting for oauth callback")
	ErrMissingState    = errors.New("expected state is required")
)

type AuthorizationRequest struct {
	AuthorizeURL string
	ClientID     string
	RedirectURI  string
	Scopes       []string
	State        string
}

func NewState() (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func BuildAuthorizationURL(req AuthorizationRequest) (string, error) {
	if req.AuthorizeURL == "" {
		req.AuthorizeURL = DefaultGitHubAuthorizeURL
	}
	if req.ClientID == "" {
		return "", errors.New("github client id is required")
	}
	if req.RedirectURI == "" {
		return "", errors.New("redirect uri is required")
	}
	if req.State == "" {
		return "", ErrMissingState
	}

	parsed, err := url.Parse(req.AuthorizeURL)
	if err != nil {
		return "", fmt.Errorf("parse authorize url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("authorize url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("authorize url host is required")
	}

	scopes := req.Scopes
	if len(scopes) == 0 {
		scopes = DefaultGitHubScopes
	}

	q := parsed.Query()
	q.Set("client_id", req.ClientID)
	q.Set("redirect_uri", req.RedirectURI)
	q.Set("scope", strings.Join(scopes, " "))
	q.Set("state", req.State)
	parsed.RawQuery = q.Encode()

	return parsed.String(), nil
}

type CallbackServer struct {
	expectedState string
	listener      net.Listener
	server        *http.Server
	resultCh      chan callbackResult
	resultOnce    sync.Once
	closeOnce     sync.Once
}

type callbackResult struct {
	code string
	err  error
}

func StartCallbackServer(listenAddr string, expectedState string) (*CallbackServer, error) {
	if expectedState == "" {
		return nil, ErrMissingState
	}
	if listenAddr == "" {
		listenAddr = "127.0.0.1:0"
	}

	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("listen callback server: %w", err)
	}

	cb := &CallbackServer{
		expectedState: expectedState,
		listener:      listener,
		resultCh:      make(chan callbackResult, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, cb.handleCallback)

	cb.server = &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		if serveErr := cb.server.Serve(cb.listener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			cb.trySendResult(callbackResult{err: serveErr})
		}
	}()

	return cb, nil
}

func (c *CallbackServer) RedirectURI() string {
	if tcpAddr, ok := c.listener.Addr().(*net.TCPAddr); ok {
		return fmt.Sprintf("http://127.0.0.1:%d%s", tcpAddr.Port, callbackPath)
	}
	return "http://127.0.0.1" + callbackPath
}

// WaitForCode blocks until the browser lands on the callback, the timeout
// passes or ctx is cancelled. The server is closed on return.
func (c *CallbackServer) WaitForCode(ctx context.Context, timeout time.Duration) (string, error) {
	defer func() { _ = c.Close() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-c.resultCh:
		return result.code, result.err
	case <-timer.C:
		return "", ErrCallbackTimeout
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *CallbackServer) Close() error {
	var closeErr error
	c.closeOnce.Do(func() {
		closeErr = c.server.Close()
	})
	return closeErr
}

func (c *CallbackServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("state") != c.expectedState {
		c.trySendResult(callbackResult{err: ErrStateMismatch})
		http.Error(w, "state mismatch", http.StatusBadRequest)
		return
	}
	if oauthError := query.Get("error"); oauthError != "" {
		if description := query.Get("error_description"); description != "" {
			oauthError = oauthError + ": " + description
		}
		c.trySendResult(callbackResult{err: fmt.Errorf("github authorization failed: %s", oauthError)})
		http.Error(w, "authorization failed", http.StatusBadRequest)
		return
	}
	code := query.Get("code")
	if code == "" {
		c.trySendResult(callbackResult{err: errors.New("missing authorization code")})
		http.Error(w, "missing code", http.StatusBadRequest)
		return
	}

	c.trySendResult(callbackResult{code: code})
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Signed in. You can close this window and return to the terminal."))
}

func (c *CallbackServer) trySendResult(result callbackResult) {
	c.resultOnce.Do(func() {
		c.resultCh <- result
	})
}
