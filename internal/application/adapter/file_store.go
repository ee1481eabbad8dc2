// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// FileStore defines the interface for storing uploaded invoice documents.
type FileStore interface {
	// Save stores the document under the owner's namespace and returns its path.
	Save(ctx context.Context, ownerID uuid.UUID, fileName string, content io.Reader) (string, error)

	// Remove deletes a previously stored document. Missing files are not an error.
	Remove(ctx context.Context, path string) error
}
