package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
)

var ErrSessionChanged = errors.New("session changed while validating")

type SessionSnapshot struct {
	State     domain.SessionState
	Identity  domain.Identity
	IssuedAt  time.Time
	WarningAt time.Time
	ExpiresAt time.Time
	// Reason names what caused the most recent transition.
	Reason string
}

type SessionDeps struct {
	Auth      ports.AuthAPI
	Store     ports.CredentialStore
	Scheduler ports.Scheduler
	Clock     ports.Clock
	Navigator ports.Navigator
	Metrics   ports.SessionMetrics
	Logger    *slog.Logger
	Lifetime  domain.Lifetime
}

// SessionLifecycleController owns the authenticated identity, its credential
// and the warning/expiry timer pair. All state lives behind mu; network calls
// run without it and their results are dropped if a newer transition happened
// meanwhile.
type SessionLifecycleController struct {
	auth      ports.AuthAPI
	store     ports.CredentialStore
	scheduler ports.Scheduler
	clock     ports.Clock
	navigator ports.Navigator
	metrics   ports.SessionMetrics
	logger    *slog.Logger
	lifetime  domain.Lifetime

	mu         sync.Mutex
	state      domain.SessionState
	record     domain.SessionRecord
	reason     string
	generation uint64
	warning    ports.Handle
	expiry     ports.Handle
	closed     bool

	subscribers map[int]func(SessionSnapshot)
	nextSubID   int
	pending     []SessionSnapshot
	notifyMu    sync.Mutex
}

func NewSessionLifecycleController(deps SessionDeps) (*SessionLifecycleController, error) {
	if deps.Auth == nil {
		return nil, errors.New("auth api is required")
	}
	if deps.Store == nil {
		return nil, errors.New("credential store is required")
	}
	if deps.Scheduler == nil {
		return nil, errors.New("scheduler is required")
	}
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Lifetime == (domain.Lifetime{}) {
		deps.Lifetime = domain.DefaultLifetime
	}
	if err := deps.Lifetime.Validate(); err != nil {
		return nil, fmt.Errorf("validate session lifetime: %w", err)
	}

	return &SessionLifecycleController{
		auth:        deps.Auth,
		store:       deps.Store,
		scheduler:   deps.Scheduler,
		clock:       deps.Clock,
		navigator:   deps.Navigator,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		lifetime:    deps.Lifetime,
		state:       domain.SessionSignedOut,
		subscribers: map[int]func(SessionSnapshot){},
	}, nil
}

// Restore rebuilds the session from storage at startup. It never fails:
// unreadable, expired or rejected credentials all resolve to a signed-out or
// expired state.
func (c *SessionLifecycleController) Restore(ctx context.Context) SessionSnapshot {
	c.mu.Lock()
	if c.closed || c.state.Authenticated() {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	record, err := c.store.Load(ctx)
	if err != nil || !record.Credential.Valid() {
		if !errors.Is(err, domain.ErrCredentialNotFound) {
			c.logger.Warn("stored session unreadable", "error", err)
			c.clearStoreLocked()
		}
		c.transitionLocked(domain.SessionSignedOut, "no stored session")
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.flush()
		return snap
	}

	elapsed := c.clock.Now().Sub(record.Credential.IssuedAt)
	if elapsed < 0 {
		c.logger.Warn("stored session issued in the future", "issued_at", record.Credential.IssuedAt)
		c.generation++
		c.clearStoreLocked()
		c.transitionLocked(domain.SessionSignedOut, "stored session issued in the future")
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.flush()
		return snap
	}
	if c.lifetime.StateAt(elapsed) == domain.SessionExpired {
		c.generation++
		c.clearStoreLocked()
		c.transitionLocked(domain.SessionExpired, "stored session past lifetime")
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.flush()
		return snap
	}

	gen := c.generation
	c.mu.Unlock()

	identity, err := c.auth.CurrentUser(ctx, record.Credential.Token)

	c.mu.Lock()
	if gen != c.generation || c.closed {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}
	if err != nil {
		c.logger.Warn("stored session rejected", "error", err)
		c.generation++
		c.clearStoreLocked()
		c.transitionLocked(domain.SessionSignedOut, "stored session rejected")
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.flush()
		return snap
	}

	record.Identity = identity
	c.adoptLocked(ctx, record, "restored")
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.flush()
	return snap
}

func (c *SessionLifecycleController) Login(ctx context.Context, email, password string) (SessionSnapshot, error) {
	grant, err := c.auth.Login(ctx, email, password)
	if err != nil {
		return c.Snapshot(), fmt.Errorf("login: %w", err)
	}

	return c.accept(ctx, grant, domain.AuthMethodPassword)
}

func (c *SessionLifecycleController) Signup(ctx context.Context, req ports.SignupRequest) (SessionSnapshot, error) {
	grant, err := c.auth.Signup(ctx, req)
	if err != nil {
		return c.Snapshot(), fmt.Errorf("signup: %w", err)
	}

	return c.accept(ctx, grant, domain.AuthMethodSignup)
}

func (c *SessionLifecycleController) LoginWithGoogle(ctx context.Context, credential string) (SessionSnapshot, error) {
	grant, err := c.auth.GoogleAuth(ctx, credential)
	if err != nil {
		return c.Snapshot(), fmt.Errorf("google login: %w", err)
	}

	return c.accept(ctx, grant, domain.AuthMethodGoogle)
}

func (c *SessionLifecycleController) LoginWithGitHub(ctx context.Context, code string) (SessionSnapshot, error) {
	grant, err := c.auth.GitHubAuth(ctx, code)
	if err != nil {
		return c.Snapshot(), fmt.Errorf("github login: %w", err)
	}

	return c.accept(ctx, grant, domain.AuthMethodGitHub)
}

// Extend re-validates the identity and restarts the lifetime from now.
func (c *SessionLifecycleController) Extend(ctx context.Context) (SessionSnapshot, error) {
	c.mu.Lock()
	if !c.state.Authenticated() {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, fmt.Errorf("extend session: %w", domain.ErrNotAuthenticated)
	}
	gen := c.generation
	token := c.record.Credential.Token
	c.mu.Unlock()

	identity, err := c.auth.CurrentUser(ctx, token)

	c.mu.Lock()
	if gen != c.generation {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		if !snap.State.Authenticated() {
			return snap, fmt.Errorf("extend session: %w", domain.ErrSessionExpired)
		}
		return snap, fmt.Errorf("extend session: %w", ErrSessionChanged)
	}
	if err != nil {
		c.endLocked(domain.SessionExpired, "extend rejected")
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.redirectIfProtected()
		c.flush()
		return snap, fmt.Errorf("extend session: %w: %w", domain.ErrSessionExpired, err)
	}

	record := domain.SessionRecord{
		Credential: domain.Credential{Token: token, IssuedAt: c.clock.Now()},
		Identity:   identity,
	}
	if err := c.store.Save(ctx, record); err != nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, fmt.Errorf("persist extended session: %w", err)
	}
	c.generation++
	c.record = record
	c.scheduleLocked(domain.SessionActive)
	c.transitionLocked(domain.SessionActive, string(domain.AuthMethodExtend))
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.flush()
	return snap, nil
}

// Logout ends the session on user request. From the warning state it lands
// in Expired, otherwise in SignedOut.
func (c *SessionLifecycleController) Logout() SessionSnapshot {
	c.mu.Lock()
	target := domain.SessionSignedOut
	if c.state == domain.SessionWarningShown {
		target = domain.SessionExpired
	}
	c.endLocked(target, "logout")
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.redirectIfProtected()
	c.flush()
	return snap
}

// HandleUnauthorized is the single entry point for a 401 on any
// authenticated call. It expires the session exactly like the timer does.
func (c *SessionLifecycleController) HandleUnauthorized() {
	c.mu.Lock()
	if !c.state.Authenticated() {
		c.mu.Unlock()
		return
	}
	c.endLocked(domain.SessionExpired, "unauthorized")
	c.mu.Unlock()

	c.redirectIfProtected()
	c.flush()
}

// Sync reconciles with a record changed by another process.
func (c *SessionLifecycleController) Sync(ctx context.Context) SessionSnapshot {
	c.mu.Lock()
	if c.closed {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}
	if !c.state.Authenticated() {
		c.mu.Unlock()
		return c.Restore(ctx)
	}

	record, err := c.store.Load(ctx)
	switch {
	case err != nil || !record.Credential.Valid() || record.Credential.IssuedAt.After(c.clock.Now()):
		if err != nil && !errors.Is(err, domain.ErrCredentialNotFound) {
			c.logger.Warn("stored session unreadable during sync", "error", err)
		}
		c.endLocked(domain.SessionExpired, "stored session removed")
		snap := c.snapshotLocked()
		c.mu.Unlock()
		c.redirectIfProtected()
		c.flush()
		return snap
	case record.Credential == c.record.Credential:
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	if record.Identity.IsZero() {
		record.Identity = c.record.Identity
	}
	expired := !c.adoptLocked(ctx, record, "synced")
	snap := c.snapshotLocked()
	c.mu.Unlock()
	if expired {
		c.redirectIfProtected()
	}
	c.flush()
	return snap
}

// Token returns the bearer token while the session is live.
func (c *SessionLifecycleController) Token() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Authenticated() {
		return "", false
	}

	return c.record.Credential.Token, true
}

func (c *SessionLifecycleController) Snapshot() SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// Subscribe registers fn for every transition, delivered in order and never
// under the controller lock. The returned func unsubscribes.
func (c *SessionLifecycleController) Subscribe(fn func(SessionSnapshot)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

// Close cancels pending timers and drops subscribers. Storage is untouched.
func (c *SessionLifecycleController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelTimersLocked()
	c.generation++
	c.closed = true
	c.subscribers = map[int]func(SessionSnapshot){}
	c.pending = nil
}

func (c *SessionLifecycleController) accept(ctx context.Context, grant domain.AuthGrant, method domain.AuthMethod) (SessionSnapshot, error) {
	if strings.TrimSpace(grant.Token) == "" {
		return c.Snapshot(), fmt.Errorf("accept %s grant: %w", method, errors.New("empty token"))
	}

	c.mu.Lock()
	if c.closed {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, errors.New("session controller closed")
	}

	record := domain.SessionRecord{
		Credential: domain.Credential{Token: grant.Token, IssuedAt: c.clock.Now()},
		Identity:   grant.Identity,
	}
	if err := c.store.Save(ctx, record); err != nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, fmt.Errorf("persist session: %w", err)
	}

	c.generation++
	c.record = record
	c.scheduleLocked(domain.SessionActive)
	c.transitionLocked(domain.SessionActive, string(method))
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.flush()
	return snap, nil
}

// adoptLocked installs a validated record whose issuedAt is kept as stored.
// It reports false when the record turned out to be past its lifetime.
func (c *SessionLifecycleController) adoptLocked(ctx context.Context, record domain.SessionRecord, reason string) bool {
	state := c.lifetime.StateAt(c.clock.Now().Sub(record.Credential.IssuedAt))
	if state == domain.SessionExpired {
		c.endLocked(domain.SessionExpired, reason+" session past lifetime")
		return false
	}

	if err := c.store.Save(ctx, record); err != nil {
		c.logger.Warn("persist restored identity", "error", err)
	}
	c.generation++
	c.record = record
	c.scheduleLocked(state)
	c.transitionLocked(state, reason)
	return true
}

func (c *SessionLifecycleController) scheduleLocked(state domain.SessionState) {
	c.cancelTimersLocked()

	gen := c.generation
	issuedAt := c.record.Credential.IssuedAt
	if state == domain.SessionActive {
		c.warning = c.scheduler.ScheduleAt(c.lifetime.WarningAt(issuedAt), func() { c.onWarning(gen) })
	}
	c.expiry = c.scheduler.ScheduleAt(c.lifetime.ExpiresAt(issuedAt), func() { c.onExpiry(gen) })
}

func (c *SessionLifecycleController) cancelTimersLocked() {
	if c.warning != nil {
		c.warning.Cancel()
		c.warning = nil
	}
	if c.expiry != nil {
		c.expiry.Cancel()
		c.expiry = nil
	}
}

func (c *SessionLifecycleController) onWarning(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.state != domain.SessionActive {
		c.mu.Unlock()
		return
	}
	c.warning = nil
	c.transitionLocked(domain.SessionWarningShown, "warning timer")
	c.mu.Unlock()

	c.flush()
}

func (c *SessionLifecycleController) onExpiry(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || !c.state.Authenticated() {
		c.mu.Unlock()
		return
	}
	c.expiry = nil
	c.endLocked(domain.SessionExpired, "expiry timer")
	c.mu.Unlock()

	c.redirectIfProtected()
	c.flush()
}

// endLocked clears the credential pair, cancels timers and moves to target.
func (c *SessionLifecycleController) endLocked(target domain.SessionState, reason string) {
	c.cancelTimersLocked()
	c.generation++
	c.clearStoreLocked()
	c.record = domain.SessionRecord{}
	c.transitionLocked(target, reason)
}

func (c *SessionLifecycleController) clearStoreLocked() {
	if err := c.store.Clear(context.Background()); err != nil {
		c.logger.Error("clear stored session", "error", err)
	}
}

func (c *SessionLifecycleController) transitionLocked(to domain.SessionState, reason string) {
	from := c.state
	c.state = to
	c.reason = reason
	if from == to && to != domain.SessionActive {
		return
	}

	c.logger.Info("session transition", "from", from.String(), "to", to.String(), "reason", reason)
	if c.metrics != nil {
		c.metrics.SessionTransition(from, to, reason)
	}
	c.pending = append(c.pending, c.snapshotLocked())
}

func (c *SessionLifecycleController) snapshotLocked() SessionSnapshot {
	snap := SessionSnapshot{
		State:    c.state,
		Identity: c.record.Identity,
		Reason:   c.reason,
	}
	if c.state.Authenticated() {
		issuedAt := c.record.Credential.IssuedAt
		snap.IssuedAt = issuedAt
		snap.WarningAt = c.lifetime.WarningAt(issuedAt)
		snap.ExpiresAt = c.lifetime.ExpiresAt(issuedAt)
	}

	return snap
}

func (c *SessionLifecycleController) redirectIfProtected() {
	if c.navigator == nil {
		return
	}

	route := c.navigator.CurrentRoute()
	if domain.IsPublicRoute(route) {
		return
	}

	c.logger.Debug("redirecting from protected route", "route", string(route))
	c.navigator.Navigate(domain.DefaultRoute)
}

// flush delivers queued snapshots. Only one goroutine delivers at a time; a
// subscriber that triggers another transition re-enters here and returns
// immediately, leaving the outer loop to pick the new snapshot up.
func (c *SessionLifecycleController) flush() {
	for {
		if !c.notifyMu.TryLock() {
			return
		}

		c.mu.Lock()
		batch := c.pending
		c.pending = nil
		subs := make([]func(SessionSnapshot), 0, len(c.subscribers))
		for id := 0; id < c.nextSubID; id++ {
			if fn, ok := c.subscribers[id]; ok {
				subs = append(subs, fn)
			}
		}
		c.mu.Unlock()

		for _, snap := range batch {
			for _, fn := range subs {
				c.deliver(fn, snap)
			}
		}
		c.notifyMu.Unlock()

		c.mu.Lock()
		more := len(c.pending) > 0
		c.mu.Unlock()
		if !more {
			return
		}
	}
}

func (c *SessionLifecycleController) deliver(fn func(SessionSnapshot), snap SessionSnapshot) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("session subscriber panicked", "panic", r)
		}
	}()

	fn(snap)
}
