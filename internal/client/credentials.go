// Package client implements the invoice tracker client core: session state,
// the persisted credential slot, route gating, invoice submission and the
// dashboard refresh cycle.
package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tokenFileName is the well-known name of the persisted credential slot.
const tokenFileName = "token"

// CredentialStore is the single persisted credential slot. Absence of a
// token is reported as an empty string, not an error.
type CredentialStore interface {
	// Load reads the persisted token; returns "" when none is stored.
	Load() (string, error)

	// Save writes the token, replacing any previous value.
	Save(token string) error

	// Clear removes the persisted token. Clearing an empty slot is not an error.
	Clear() error
}

// FileCredentialStore persists the token as a single file on disk.
type FileCredentialStore struct {
	path string
}

// NewFileCredentialStore creates a credential store backed by the given file path.
func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{path: path}
}

// DefaultCredentialPath returns the well-known credential location under the
// user's config directory.
func DefaultCredentialPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, "invoicetrack", tokenFileName), nil
}

// Load reads the persisted token.
func (s *FileCredentialStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read credential file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with owner-only permissions.
func (s *FileCredentialStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credential dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}
	return nil
}

// Clear removes the persisted token.
func (s *FileCredentialStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credential file: %w", err)
	}
	return nil
}
