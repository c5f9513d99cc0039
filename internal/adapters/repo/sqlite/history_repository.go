// Package sqlite stores finished interviews in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id         TEXT    NOT NULL UNIQUE,
	role               TEXT    NOT NULL,
	company            TEXT    NOT NULL,
	mode               TEXT    NOT NULL,
	rounds_played      INTEGER NOT NULL,
	passed             INTEGER,
	method             TEXT    NOT NULL,
	average_score      REAL    NOT NULL,
	total_score        REAL    NOT NULL,
	fit_percentage     INTEGER NOT NULL,
	improvement_needed REAL,
	roadmap            TEXT    NOT NULL DEFAULT '',
	message            TEXT    NOT NULL DEFAULT '',
	strengths          TEXT    NOT NULL DEFAULT '[]',
	weak_areas         TEXT    NOT NULL DEFAULT '[]',
	questions          TEXT    NOT NULL DEFAULT '[]',
	completed_at       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_completed_at ON results(completed_at);
`

const selectColumns = `session_id, role, company, mode, rounds_played, passed, method,
	average_score, total_score, fit_percentage, improvement_needed, roadmap, message,
	strengths, weak_areas, questions, completed_at`

// HistoryRepository appends terminal results and lists them newest first.
type HistoryRepository struct {
	db *sql.DB
}

var _ ports.ResultRepository = (*HistoryRepository)(nil)

func Open(ctx context.Context, path string) (*HistoryRepository, error) {
	if path == "" {
		return nil, errors.New("history database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure history database: %w", err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}

	return &HistoryRepository{db: db}, nil
}

func (r *HistoryRepository) Close() error {
	return r.db.Close()
}

// Append stores result. A retried append for the same session replaces the row.
func (r *HistoryRepository) Append(ctx context.Context, result domain.Result) error {
	if result.SessionID == "" {
		return errors.New("append result: session id is empty")
	}

	strengths, err := json.Marshal(nonNil(result.Strengths))
	if err != nil {
		return fmt.Errorf("encode strengths: %w", err)
	}
	weakAreas, err := json.Marshal(nonNil(result.WeakAreas))
	if err != nil {
		return fmt.Errorf("encode weak areas: %w", err)
	}
	questions, err := json.Marshal(toQuestionRows(result.Questions))
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	var passed sql.NullBool
	if result.Passed != nil {
		passed = sql.NullBool{Bool: *result.Passed, Valid: true}
	}
	var improvement sql.NullFloat64
	if result.ImprovementNeeded != nil {
		improvement = sql.NullFloat64{Float64: *result.ImprovementNeeded, Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `INSERT OR REPLACE INTO results (`+selectColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		result.SessionID, result.Role, result.Company, string(result.Mode), result.RoundsPlayed,
		passed, string(result.Method), result.AverageScore, result.TotalScore, result.FitPercentage,
		improvement, result.Roadmap, result.Message, string(strengths), string(weakAreas),
		string(questions), result.CompletedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("append result: %w", err)
	}

	return nil
}

// List returns up to limit results, newest first. limit <= 0 means all.
func (r *HistoryRepository) List(ctx context.Context, limit int) ([]domain.Result, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM results
		ORDER BY completed_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Result
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}

	return results, nil
}

func scanResult(rows *sql.Rows) (domain.Result, error) {
	var (
		result                          domain.Result
		mode, method                    string
		passed                          sql.NullBool
		improvement                     sql.NullFloat64
		strengths, weakAreas, questions string
		completedAt                     int64
	)
	err := rows.Scan(
		&result.SessionID, &result.Role, &result.Company, &mode, &result.RoundsPlayed, &passed,
		&method, &result.AverageScore, &result.TotalScore, &result.FitPercentage, &improvement,
		&result.Roadmap, &result.Message, &strengths, &weakAreas, &questions, &completedAt,
	)
	if err != nil {
		return domain.Result{}, fmt.Errorf("scan result: %w", err)
	}

	result.Mode = domain.InterviewMode(mode)
	result.Method = domain.ScoringMethod(method)
	result.CompletedAt = time.UnixMilli(completedAt)
	if passed.Valid {
		result.Passed = &passed.Bool
	}
	if improvement.Valid {
		result.ImprovementNeeded = &improvement.Float64
	}

	var rowsOut []questionRow
	if err := errors.Join(
		json.Unmarshal([]byte(strengths), &result.Strengths),
		json.Unmarshal([]byte(weakAreas), &result.WeakAreas),
		json.Unmarshal([]byte(questions), &rowsOut),
	); err != nil {
		return domain.Result{}, fmt.Errorf("decode result %s: %w", result.SessionID, err)
	}
	result.Questions = fromQuestionRows(rowsOut)
	if len(result.Strengths) == 0 {
		result.Strengths = nil
	}
	if len(result.WeakAreas) == 0 {
		result.WeakAreas = nil
	}

	return result, nil
}

type questionRow struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Score    *float64 `json:"score,omitempty"`
	Feedback string   `json:"feedback,omitempty"`
}

func toQuestionRows(questions []domain.ScoredQuestion) []questionRow {
	rows := make([]questionRow, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, questionRow(q))
	}

	return rows
}

func fromQuestionRows(rows []questionRow) []domain.ScoredQuestion {
	if len(rows) == 0 {
		return nil
	}

	questions := make([]domain.ScoredQuestion, 0, len(rows))
	for _, row := range rows {
		questions = append(questions, domain.ScoredQuestion(row))
	}

	return questions
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}

	return values
}
