package toml

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
)

// DraftRepository keeps the single in-progress interview in a TOML file.
type DraftRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.InterviewRepository = (*DraftRepository)(nil)

func NewDraftRepository(path string) (*DraftRepository, error) {
	normalized, err := NormalizePath(path)
	if err != nil {
		return nil, fmt.Errorf("interview draft path: %w", err)
	}

	return &DraftRepository{path: normalized, mu: LockForPath(normalized)}, nil
}

func (r *DraftRepository) Path() string {
	return r.path
}

func (r *DraftRepository) Load(ctx context.Context) (ports.InterviewDraft, error) {
	if err := ctx.Err(); err != nil {
		return ports.InterviewDraft{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := ReadFile(r.path)
	if err != nil {
		return ports.InterviewDraft{}, err
	}
	if data == nil {
		return ports.InterviewDraft{}, domain.ErrInterviewNotFound
	}

	var file draftFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return ports.InterviewDraft{}, fmt.Errorf("decode interview draft: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return ports.InterviewDraft{}, err
	}
	if file.Session.ID == "" {
		return ports.InterviewDraft{}, domain.ErrInterviewNotFound
	}

	return fromDraftSchema(file)
}

func (r *DraftRepository) Save(ctx context.Context, draft ports.InterviewDraft) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file := toDraftSchema(draft)
	file.applyDefaults()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode interview draft: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := WriteFile(r.path, data); err != nil {
		return fmt.Errorf("save interview draft: %w", err)
	}

	return nil
}

func (r *DraftRepository) Delete(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return RemoveFile(r.path)
}

func toDraftSchema(draft ports.InterviewDraft) draftFileSchema {
	s := draft.Session
	return draftFileSchema{
		Position: draft.Position,
		Session: sessionSchema{
			ID:          s.ID,
			Role:        s.Role,
			Company:     s.Company,
			Mode:        string(s.Mode),
			RoundIndex:  s.RoundIndex,
			RoundName:   s.RoundName,
			TotalRounds: s.TotalRounds,
			Description: s.Description,
			Questions:   s.Questions,
			Answers:     s.Answers,
		},
	}
}

func fromDraftSchema(file draftFileSchema) (ports.InterviewDraft, error) {
	mode, err := domain.ParseInterviewMode(file.Session.Mode)
	if err != nil {
		return ports.InterviewDraft{}, fmt.Errorf("decode interview draft: %w", err)
	}

	session := domain.InterviewSession{
		ID:          file.Session.ID,
		Role:        file.Session.Role,
		Company:     file.Session.Company,
		Mode:        mode,
		RoundIndex:  file.Session.RoundIndex,
		RoundName:   file.Session.RoundName,
		TotalRounds: file.Session.TotalRounds,
		Description: file.Session.Description,
		Questions:   file.Session.Questions,
		Answers:     file.Session.Answers,
	}
	session.NormalizeAnswers()

	return ports.InterviewDraft{Session: session, Position: file.Position}, nil
}
