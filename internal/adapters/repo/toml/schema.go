package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported sessions schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	Scope              string         `toml:"scope"`
	TransactionID      string         `toml:"transaction_id"`
	Username           string         `toml:"username,omitempty"`
	CurrentStep        string         `toml:"current_step,omitempty"`
	TransactionDetails *detailsSchema `toml:"transaction_details,omitempty"`
}

// Amounts are kept as decimal strings so no precision is lost in the file.
type detailsSchema struct {
	Amount      string `toml:"amount"`
	BillerName  string `toml:"biller_name"`
	Description string `toml:"description"`
}
