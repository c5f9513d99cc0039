package credentials

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bnema/interview-prep-cli/internal/domain"
	portmocks "github.com/bnema/interview-prep-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sampleRecord() domain.SessionRecord {
	return domain.SessionRecord{
		Credential: domain.Credential{
			Token:    "eyJhbGciOi.tok",
			IssuedAt: time.UnixMilli(1_760_000_000_123),
		},
		Identity: domain.Identity{UserID: "42", Email: "ada@example.com", DisplayName: "Ada Lovelace"},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.toml")
	store, err := NewFileStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), sampleRecord()))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleRecord().Credential.Token, got.Credential.Token)
	assert.True(t, sampleRecord().Credential.IssuedAt.Equal(got.Credential.IssuedAt))
	assert.Equal(t, sampleRecord().Identity, got.Identity)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "login_time = 1760000000123")
}

func TestFileStoreMissingAndClear(t *testing.T) {
	t.Parallel()

	store, err := NewFileStore(filepath.Join(t.TempDir(), "session.toml"))
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)

	require.NoError(t, store.Save(context.Background(), sampleRecord()))
	require.NoError(t, store.Clear(context.Background()))
	require.NoError(t, store.Clear(context.Background()))

	_, err = store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestFileStorePartialRecordIsReturned(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("token = \"abc\"\n"), 0o600))
	store, err := NewFileStore(path)
	require.NoError(t, err)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc", got.Credential.Token)
	assert.True(t, got.Credential.IssuedAt.IsZero())
	assert.False(t, got.Credential.Valid())
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(path, []byte("token = "), 0o600))
	store, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorContains(t, err, "decode session record")
	assert.NotErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestSecretStoreRoundTrip(t *testing.T) {
	t.Parallel()

	secrets := portmocks.NewMockSecretStore(t)
	store, err := NewSecretStore(secrets, "")
	require.NoError(t, err)

	var saved string
	secrets.EXPECT().Put(mock.Anything, DefaultSecretKey, mock.AnythingOfType("string")).
		Run(func(_ context.Context, _ string, value string) { saved = value }).
		Return(nil).Once()
	require.NoError(t, store.Save(context.Background(), sampleRecord()))

	secrets.EXPECT().Get(mock.Anything, DefaultSecretKey).RunAndReturn(func(context.Context, string) (string, error) {
		return saved, nil
	}).Once()
	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleRecord().Identity, got.Identity)
}

func TestSecretStoreNotFoundMapsToCredentialNotFound(t *testing.T) {
	t.Parallel()

	secrets := portmocks.NewMockSecretStore(t)
	store, err := NewSecretStore(secrets, "custom/key")
	require.NoError(t, err)

	secrets.EXPECT().Get(mock.Anything, "custom/key").Return("", domain.ErrSecretNotFound).Once()
	_, err = store.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrCredentialNotFound)

	secrets.EXPECT().Get(mock.Anything, "custom/key").Return("", errors.New("gpg agent down")).Once()
	_, err = store.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCredentialNotFound)
}

func TestSecretStoreClear(t *testing.T) {
	t.Parallel()

	secrets := portmocks.NewMockSecretStore(t)
	store, err := NewSecretStore(secrets, "")
	require.NoError(t, err)

	secrets.EXPECT().Delete(mock.Anything, DefaultSecretKey).Return(errors.New("pass failed")).Once()
	assert.ErrorContains(t, store.Clear(context.Background()), "clear session")
}
