package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
)

var _ ports.AuthAPI = (*Client)(nil)

type userPayload struct {
	ID       json.RawMessage `json:"id"`
	Email    string          `json:"email"`
	FullName string          `json:"full_name"`
	IsActive *bool           `json:"is_active"`
}

func (u userPayload) identity() domain.Identity {
	return domain.Identity{
		UserID:      u.userID(),
		DisplayName: u.FullName,
		Email:       u.Email,
	}
}

// userID accepts numeric or string ids; null and absent are empty.
func (u userPayload) userID() string {
	raw := bytes.TrimSpace(u.ID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return strings.TrimSpace(text)
	}

	return string(raw)
}

// grantPayload accepts both {token, user} and {access_token, user}.
type grantPayload struct {
	AccessToken string       `json:"access_token"`
	Token       string       `json:"token"`
	TokenType   string       `json:"token_type"`
	User        *userPayload `json:"user"`
}

func (g grantPayload) grant() (domain.AuthGrant, error) {
	token := g.AccessToken
	if token == "" {
		token = g.Token
	}
	if strings.TrimSpace(token) == "" {
		return domain.AuthGrant{}, errors.New("auth response missing token")
	}
	if g.TokenType != "" && !strings.EqualFold(g.TokenType, "bearer") {
		return domain.AuthGrant{}, fmt.Errorf("unsupported token type %q", g.TokenType)
	}

	var identity domain.Identity
	if g.User != nil {
		identity = g.User.identity()
	}

	return domain.AuthGrant{Token: token, Identity: identity}, nil
}

// Login posts OAuth2 password-form credentials; the backend calls the email "username".
func (c *Client) Login(ctx context.Context, email, password string) (domain.AuthGrant, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	return c.exchange(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	})
}

func (c *Client) Signup(ctx context.Context, req ports.SignupRequest) (domain.AuthGrant, error) {
	r, err := c.jsonRequest(http.MethodPost, "/auth/signup", map[string]string{
		"email":     req.Email,
		"full_name": req.FullName,
		"password":  req.Password,
	})
	if err != nil {
		return domain.AuthGrant{}, err
	}

	return c.exchange(ctx, r)
}

func (c *Client) GoogleAuth(ctx context.Context, credential string) (domain.AuthGrant, error) {
	r, err := c.jsonRequest(http.MethodPost, "/auth/google", map[string]string{"credential": credential})
	if err != nil {
		return domain.AuthGrant{}, err
	}

	return c.exchange(ctx, r)
}

func (c *Client) GitHubAuth(ctx context.Context, code string) (domain.AuthGrant, error) {
	r, err := c.jsonRequest(http.MethodPost, "/auth/github", map[string]string{"code": code})
	if err != nil {
		return domain.AuthGrant{}, err
	}

	return c.exchange(ctx, r)
}

// CurrentUser validates token against /auth/me. Any non-2xx is an invalid credential.
func (c *Client) CurrentUser(ctx context.Context, token string) (domain.Identity, error) {
	var user userPayload
	err := c.do(ctx, request{
		method:        http.MethodGet,
		path:          "/auth/me",
		bearer:        token,
		authenticated: true,
	}, &user)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("get current user: %w", err)
	}

	identity := user.identity()
	if identity.IsZero() {
		return domain.Identity{}, errors.New("get current user: response missing user")
	}
	if user.IsActive != nil && !*user.IsActive {
		return domain.Identity{}, errors.New("get current user: account is inactive")
	}

	return identity, nil
}

func (c *Client) exchange(ctx context.Context, r request) (domain.AuthGrant, error) {
	var payload grantPayload
	if err := c.do(ctx, r, &payload); err != nil {
		return domain.AuthGrant{}, fmt.Errorf("%s: %w", strings.TrimPrefix(r.path, "/"), err)
	}

	return payload.grant()
}
