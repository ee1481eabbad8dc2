// Package storage implements document storage for uploaded invoices.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/invoice-tracker/invoicetrack/internal/application/adapter"
)

// LocalStore implements adapter.FileStore on the local filesystem. Documents
// live under <root>/<owner-id>/; stored names get a random prefix so two
// uploads of the same file never collide.
type LocalStore struct {
	root string
}

// NewLocalStore creates a local file store rooted at the given directory.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Save stores the document under the owner's namespace and returns its path.
func (s *LocalStore) Save(_ context.Context, ownerID uuid.UUID, fileName string, content io.Reader) (string, error) {
	dir := filepath.Join(s.root, ownerID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create owner directory: %w", err)
	}

	// filepath.Base strips any path components a hostile client sends.
	stored := uuid.NewString() + "_" + filepath.Base(fileName)
	path := filepath.Join(dir, stored)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, content); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

// Remove deletes a previously stored document. Missing files are not an error.
func (s *LocalStore) Remove(_ context.Context, path string) error {
	// Only paths under the store root are removable.
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	root, err := filepath.Abs(s.root)
	if err != nil {
		return fmt.Errorf("failed to resolve root: %w", err)
	}
	if !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return fmt.Errorf("path %q is outside the upload directory", path)
	}

	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

var _ adapter.FileStore = (*LocalStore)(nil)
