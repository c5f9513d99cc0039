// Package credentials persists the session record. Token, login time and
// user always travel in one document so they are written and cleared together.
package credentials

import (
	"fmt"
	"time"

	"github.com/bnema/interview-prep-cli/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

const currentRecordVersion = 1

type recordSchema struct {
	Version int    `toml:"version"`
	Token   string `toml:"token"`
	// LoginTime is epoch milliseconds.
	LoginTime int64      `toml:"login_time"`
	User      userSchema `toml:"user"`
}

type userSchema struct {
	ID       string `toml:"id,omitempty"`
	Email    string `toml:"email,omitempty"`
	FullName string `toml:"full_name,omitempty"`
}

func encodeRecord(record domain.SessionRecord) ([]byte, error) {
	data, err := toml.Marshal(recordSchema{
		Version:   currentRecordVersion,
		Token:     record.Credential.Token,
		LoginTime: record.Credential.IssuedAt.UnixMilli(),
		User: userSchema{
			ID:       record.Identity.UserID,
			Email:    record.Identity.Email,
			FullName: record.Identity.DisplayName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode session record: %w", err)
	}

	return data, nil
}

// decodeRecord returns whatever is stored, even partial; the session
// controller decides what a partial record means.
func decodeRecord(data []byte) (domain.SessionRecord, error) {
	var schema recordSchema
	if err := toml.Unmarshal(data, &schema); err != nil {
		return domain.SessionRecord{}, fmt.Errorf("decode session record: %w", err)
	}
	if schema.Version > currentRecordVersion {
		return domain.SessionRecord{}, fmt.Errorf("unsupported session record version %d (current %d)", schema.Version, currentRecordVersion)
	}

	record := domain.SessionRecord{
		Credential: domain.Credential{Token: schema.Token},
		Identity: domain.Identity{
			UserID:      schema.User.ID,
			Email:       schema.User.Email,
			DisplayName: schema.User.FullName,
		},
	}
	if schema.LoginTime > 0 {
		record.Credential.IssuedAt = time.UnixMilli(schema.LoginTime)
	}

	return record, nil
}
