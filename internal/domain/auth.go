package domain

import (
	"strings"
	"time"
)

type AuthMethod string

const (
	AuthMethodPassword AuthMethod = "password"
	AuthMethodSignup   AuthMethod = "signup"
	AuthMethodGoogle   AuthMethod = "google"
	AuthMethodGitHub   AuthMethod = "github"
	AuthMethodExtend   AuthMethod = "extend"
)

type Identity struct {
	UserID      string
	DisplayName string
	Email       string
}

func (i Identity) IsZero() bool {
	return i.UserID == "" && i.Email == ""
}

// Label is the best human-readable name for the identity.
func (i Identity) Label() string {
	if name := strings.TrimSpace(i.DisplayName); name != "" {
		return name
	}
	if i.Email != "" {
		return i.Email
	}

	return i.UserID
}

type Credential struct {
	// Token is an opaque bearer credential.
	Token string
	// IssuedAt is set only at the moment a token is accepted.
	IssuedAt time.Time
}

func (c Credential) Valid() bool {
	return strings.TrimSpace(c.Token) != "" && !c.IssuedAt.IsZero()
}

// SessionRecord is the unit of persistence: credential and identity are
// always written and cleared together.
type SessionRecord struct {
	Credential Credential
	Identity   Identity
}

// AuthGrant is what the backend returns on login, signup, or OAuth exchange.
type AuthGrant struct {
	Token    string
	Identity Identity
}
