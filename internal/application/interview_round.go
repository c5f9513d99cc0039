package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
)

type RoundPhase int

const (
	PhaseAwaitingAnswers RoundPhase = iota
	PhaseSubmitting
	PhaseTerminal
)

func (p RoundPhase) String() string {
	switch p {
	case PhaseAwaitingAnswers:
		return "awaiting_answers"
	case PhaseSubmitting:
		return "submitting"
	case PhaseTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

type RoundSnapshot struct {
	Phase    RoundPhase
	Session  domain.InterviewSession
	Position int
	Result   *domain.Result
	Aborted  bool
	// Error is the single active error message, empty when none.
	Error string
	// Notice carries the server message that came with the latest round change.
	Notice string
}

type InterviewDeps struct {
	API     ports.InterviewAPI
	Drafts  ports.InterviewRepository
	Results ports.ResultRepository
	Clock   ports.Clock
	Metrics ports.InterviewMetrics
	Logger  *slog.Logger
}

type InterviewRoundController struct {
	api     ports.InterviewAPI
	drafts  ports.InterviewRepository
	results ports.ResultRepository
	clock   ports.Clock
	metrics ports.InterviewMetrics
	logger  *slog.Logger

	mu       sync.Mutex
	phase    RoundPhase
	session  domain.InterviewSession
	position int
	result   *domain.Result
	aborted  bool
	lastErr  string
	notice   string
}

func NewInterviewRoundController(deps InterviewDeps, draft ports.InterviewDraft) (*InterviewRoundController, error) {
	if deps.API == nil {
		return nil, errors.New("interview api is required")
	}
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if draft.Session.ID == "" {
		return nil, errors.New("interview session id is required")
	}
	if len(draft.Session.Questions) == 0 {
		return nil, errors.New("interview round has no questions")
	}

	session := draft.Session.Clone()
	session.NormalizeAnswers()

	return &InterviewRoundController{
		api:      deps.API,
		drafts:   deps.Drafts,
		results:  deps.Results,
		clock:    deps.Clock,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
		phase:    PhaseAwaitingAnswers,
		session:  session,
		position: clampPosition(draft.Position, len(session.Questions)),
	}, nil
}

// SetAnswer replaces the answer at index. Content is not validated here.
func (c *InterviewRoundController) SetAnswer(ctx context.Context, index int, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.requireAwaitingLocked(); err != nil {
		return err
	}
	if err := c.session.SetAnswer(index, text); err != nil {
		c.lastErr = err.Error()
		return err
	}
	c.lastErr = ""

	return c.saveDraftLocked(ctx)
}

func (c *InterviewRoundController) Next(ctx context.Context) int {
	return c.moveTo(ctx, func(pos int) int { return pos + 1 })
}

func (c *InterviewRoundController) Previous(ctx context.Context) int {
	return c.moveTo(ctx, func(pos int) int { return pos - 1 })
}

func (c *InterviewRoundController) GoTo(ctx context.Context, index int) int {
	return c.moveTo(ctx, func(int) int { return index })
}

// SubmitRound validates the answers and sends them. Detailed interviews
// submit by round number and may continue; short interviews always end.
func (c *InterviewRoundController) SubmitRound(ctx context.Context) (RoundSnapshot, error) {
	c.mu.Lock()
	if err := c.requireAwaitingLocked(); err != nil {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, err
	}

	c.session.NormalizeAnswers()
	if err := c.session.ValidateAnswers(); err != nil {
		c.lastErr = err.Error()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, err
	}

	c.phase = PhaseSubmitting
	submitted := c.session.Clone()
	c.mu.Unlock()

	outcome, err := c.send(ctx, submitted)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		return c.failLocked(submitted, fmt.Errorf("submit round %d: %w", submitted.RoundNumber(), err))
	}

	switch o := outcome.(type) {
	case domain.Continuation:
		if len(o.NextQuestions) == 0 || o.NextRoundIndex < 0 {
			return c.failLocked(submitted, fmt.Errorf("%w: continuation without next round questions", domain.ErrMalformedOutcome))
		}
		return c.continueLocked(ctx, o)
	case domain.Terminal:
		result, err := domain.NormalizeResult(submitted, o, c.clock.Now())
		if err != nil {
			return c.failLocked(submitted, err)
		}
		return c.finishLocked(ctx, result)
	default:
		return c.failLocked(submitted, fmt.Errorf("%w: unexpected outcome %T", domain.ErrMalformedOutcome, outcome))
	}
}

// Abort discards the interview. It is rejected while a submit is in flight.
func (c *InterviewRoundController) Abort(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseSubmitting:
		return domain.ErrSubmitInFlight
	case PhaseTerminal:
		return nil
	}

	c.phase = PhaseTerminal
	c.aborted = true
	c.lastErr = ""
	if c.drafts != nil {
		if err := c.drafts.Delete(ctx); err != nil {
			return fmt.Errorf("delete interview draft: %w", err)
		}
	}

	return nil
}

func (c *InterviewRoundController) Snapshot() RoundSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

func (c *InterviewRoundController) send(ctx context.Context, session domain.InterviewSession) (domain.RoundOutcome, error) {
	if session.Mode == domain.InterviewModeDetailed {
		return c.api.SubmitRound(ctx, session.ID, session.Answers, session.RoundNumber())
	}

	terminal, err := c.api.SubmitAnswers(ctx, session.ID, session.Answers)
	if err != nil {
		return nil, err
	}

	return terminal, nil
}

// continueLocked adopts the next round. The server has already moved on, so
// a draft that cannot be rewritten is dropped rather than left resumable at
// the old round number.
func (c *InterviewRoundController) continueLocked(ctx context.Context, next domain.Continuation) (RoundSnapshot, error) {
	advanced := c.session.Clone()
	advanced.ReplaceRound(next)

	saveErr := c.saveSessionLocked(ctx, advanced, 0)
	if saveErr != nil && c.drafts != nil {
		if err := c.drafts.Delete(ctx); err != nil {
			c.logger.Error("drop stale interview draft", "session_id", advanced.ID, "error", err)
		}
	}

	c.session = advanced
	c.position = 0
	c.phase = PhaseAwaitingAnswers
	c.lastErr = ""
	c.notice = next.Message
	c.record("continued")
	c.logger.Info("interview round advanced", "session_id", c.session.ID, "round", c.session.RoundNumber(), "questions", len(c.session.Questions))

	if saveErr != nil {
		c.lastErr = saveErr.Error()
		c.logger.Warn("interview round not saved", "session_id", c.session.ID, "round", c.session.RoundNumber(), "error", saveErr)
		return c.snapshotLocked(), saveErr
	}

	return c.snapshotLocked(), nil
}

func (c *InterviewRoundController) finishLocked(ctx context.Context, result domain.Result) (RoundSnapshot, error) {
	c.phase = PhaseTerminal
	c.result = &result
	c.lastErr = ""
	c.notice = result.Message
	c.record("terminal")
	c.logger.Info("interview finished", "session_id", result.SessionID, "average", result.AverageScore, "method", string(result.Method))

	var errs []error
	if c.results != nil {
		if err := c.results.Append(ctx, result); err != nil {
			errs = append(errs, fmt.Errorf("store interview result: %w", err))
		}
	}
	if c.drafts != nil {
		if err := c.drafts.Delete(ctx); err != nil {
			errs = append(errs, fmt.Errorf("delete interview draft: %w", err))
		}
	}
	for _, err := range errs {
		c.logger.Warn("interview result persistence", "error", err)
	}

	return c.snapshotLocked(), nil
}

// failLocked returns to AwaitingAnswers with the round left exactly as it was submitted.
func (c *InterviewRoundController) failLocked(submitted domain.InterviewSession, err error) (RoundSnapshot, error) {
	c.phase = PhaseAwaitingAnswers
	c.session = submitted
	c.lastErr = err.Error()
	c.record("error")
	c.logger.Warn("interview submit failed", "session_id", submitted.ID, "round", submitted.RoundNumber(), "error", err)

	return c.snapshotLocked(), err
}

func (c *InterviewRoundController) moveTo(ctx context.Context, target func(int) int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.position = clampPosition(target(c.position), len(c.session.Questions))
	if c.phase == PhaseAwaitingAnswers {
		if err := c.saveDraftLocked(ctx); err != nil {
			c.logger.Warn("save interview position", "error", err)
		}
	}

	return c.position
}

func (c *InterviewRoundController) requireAwaitingLocked() error {
	switch c.phase {
	case PhaseSubmitting:
		return domain.ErrSubmitInFlight
	case PhaseTerminal:
		return domain.ErrInterviewFinished
	default:
		return nil
	}
}

func (c *InterviewRoundController) saveDraftLocked(ctx context.Context) error {
	return c.saveSessionLocked(ctx, c.session, c.position)
}

func (c *InterviewRoundController) saveSessionLocked(ctx context.Context, session domain.InterviewSession, position int) error {
	if c.drafts == nil {
		return nil
	}

	draft := ports.InterviewDraft{Session: session.Clone(), Position: position}
	if err := c.drafts.Save(ctx, draft); err != nil {
		return fmt.Errorf("save interview draft: %w", err)
	}

	return nil
}

func (c *InterviewRoundController) snapshotLocked() RoundSnapshot {
	snap := RoundSnapshot{
		Phase:    c.phase,
		Session:  c.session.Clone(),
		Position: c.position,
		Aborted:  c.aborted,
		Error:    c.lastErr,
		Notice:   c.notice,
	}
	if c.result != nil {
		result := *c.result
		snap.Result = &result
	}

	return snap
}

func (c *InterviewRoundController) record(outcome string) {
	if c.metrics != nil {
		c.metrics.RoundSubmitted(c.session.Mode, outcome)
	}
}

func clampPosition(pos, count int) int {
	if count == 0 {
		return 0
	}

	return min(max(pos, 0), count-1)
}
