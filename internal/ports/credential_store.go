package ports

import (
	"context"

	"github.com/bnema/interview-prep-cli/internal/domain"
)

// CredentialStore reads and writes the credential and identity as one record.
type CredentialStore interface {
	// Load returns domain.ErrCredentialNotFound when nothing is stored.
	Load(ctx context.Context) (domain.SessionRecord, error)
	Save(ctx context.Context, record domain.SessionRecord) error
	Clear(ctx context.Context) error
}
