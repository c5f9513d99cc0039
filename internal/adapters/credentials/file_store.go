package credentials

import (
	"context"
	"fmt"
	"sync"

	tomlrepo "github.com/bnema/interview-prep-cli/internal/adapters/repo/toml"
	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
)

// FileStore keeps the session record in a 0600 TOML file.
type FileStore struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.CredentialStore = (*FileStore)(nil)

func NewFileStore(path string) (*FileStore, error) {
	normalized, err := tomlrepo.NormalizePath(path)
	if err != nil {
		return nil, fmt.Errorf("credentials path: %w", err)
	}

	return &FileStore{path: normalized, mu: tomlrepo.LockForPath(normalized)}, nil
}

// Path is the file other processes write; the session watcher follows it.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (domain.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.SessionRecord{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := tomlrepo.ReadFile(s.path)
	if err != nil {
		return domain.SessionRecord{}, fmt.Errorf("load session: %w", err)
	}
	if data == nil {
		return domain.SessionRecord{}, domain.ErrCredentialNotFound
	}

	return decodeRecord(data)
}

func (s *FileStore) Save(ctx context.Context, record domain.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeRecord(record)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := tomlrepo.WriteFile(s.path, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (s *FileStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := tomlrepo.RemoveFile(s.path); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}
