package domain

import (
	"errors"
	"time"
)

type SessionState int

const (
	SessionSignedOut SessionState = iota
	SessionActive
	SessionWarningShown
	SessionExpired
)

func (s SessionState) String() string {
	switch s {
	case SessionSignedOut:
		return "signed_out"
	case SessionActive:
		return "active"
	case SessionWarningShown:
		return "warning_shown"
	case SessionExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Authenticated reports whether a credential is live in this state.
func (s SessionState) Authenticated() bool {
	return s == SessionActive || s == SessionWarningShown
}

// Lifetime holds the total token lifetime L and the warning lead W.
type Lifetime struct {
	Total       time.Duration
	WarningLead time.Duration
}

// DefaultLifetime mirrors the server's token lifetime and must stay in sync with it.
var DefaultLifetime = Lifetime{
	Total:       1440 * time.Minute,
	WarningLead: 30 * time.Minute,
}

func (l Lifetime) Validate() error {
	if l.Total <= 0 {
		return errors.New("session lifetime must be positive")
	}
	if l.WarningLead <= 0 || l.WarningLead >= l.Total {
		return errors.New("warning lead must be positive and shorter than the lifetime")
	}

	return nil
}

func (l Lifetime) WarningAt(issuedAt time.Time) time.Time {
	return issuedAt.Add(l.Total - l.WarningLead)
}

func (l Lifetime) ExpiresAt(issuedAt time.Time) time.Time {
	return issuedAt.Add(l.Total)
}

// StateAt derives the timer state from the time elapsed since issue.
func (l Lifetime) StateAt(elapsed time.Duration) SessionState {
	switch {
	case elapsed >= l.Total:
		return SessionExpired
	case elapsed >= l.Total-l.WarningLead:
		return SessionWarningShown
	default:
		return SessionActive
	}
}

// Remaining is the time left before hard expiry, floored at zero.
func (l Lifetime) Remaining(issuedAt, now time.Time) time.Duration {
	left := l.ExpiresAt(issuedAt).Sub(now)
	if left < 0 {
		return 0
	}

	return left
}
