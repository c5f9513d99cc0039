package toml

import "fmt"

const currentSchemaVersion = 1

type draftFileSchema struct {
	Version  int           `toml:"version"`
	Position int           `toml:"position"`
	Session  sessionSchema `toml:"session"`
}

func (s *draftFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s draftFileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported interview draft schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	ID          string   `toml:"id"`
	Role        string   `toml:"role"`
	Company     string   `toml:"company"`
	Mode        string   `toml:"mode"`
	RoundIndex  int      `toml:"round_index"`
	RoundName   string   `toml:"round_name,omitempty"`
	TotalRounds int      `toml:"total_rounds,omitempty"`
	Description string   `toml:"description,omitempty"`
	Questions   []string `toml:"questions"`
	Answers     []string `toml:"answers"`
}
