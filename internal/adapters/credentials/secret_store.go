package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/interview-prep-cli/internal/domain"
	"github.com/bnema/interview-prep-cli/internal/ports"
)

// DefaultSecretKey is where the session record lives in a secret backend.
const DefaultSecretKey = "prep/session"

// SecretStore keeps the session record as one entry of a ports.SecretStore.
type SecretStore struct {
	secrets ports.SecretStore
	key     string
}

var _ ports.CredentialStore = (*SecretStore)(nil)

func NewSecretStore(secrets ports.SecretStore, key string) (*SecretStore, error) {
	if secrets == nil {
		return nil, errors.New("secret store is nil")
	}
	if key == "" {
		key = DefaultSecretKey
	}

	return &SecretStore{secrets: secrets, key: key}, nil
}

func (s *SecretStore) Load(ctx context.Context) (domain.SessionRecord, error) {
	value, err := s.secrets.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, domain.ErrSecretNotFound) {
			return domain.SessionRecord{}, domain.ErrCredentialNotFound
		}
		return domain.SessionRecord{}, fmt.Errorf("load session: %w", err)
	}
	if value == "" {
		return domain.SessionRecord{}, domain.ErrCredentialNotFound
	}

	return decodeRecord([]byte(value))
}

func (s *SecretStore) Save(ctx context.Context, record domain.SessionRecord) error {
	data, err := encodeRecord(record)
	if err != nil {
		return err
	}
	if err := s.secrets.Put(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (s *SecretStore) Clear(ctx context.Context) error {
	if err := s.secrets.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}
