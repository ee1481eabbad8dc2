// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

// ExtractionRequest represents an uploaded document to extract invoice fields from.
type ExtractionRequest struct {
	FileName string
	MIMEType string
	Data     []byte
}

// ExtractionService defines the interface for AI-based invoice field extraction.
type ExtractionService interface {
	// IsAvailable reports whether the extraction service is configured.
	IsAvailable() bool

	// Extract recovers invoice fields from the uploaded document.
	Extract(ctx context.Context, request *ExtractionRequest) (*entity.ExtractionResult, error)

	// ModelName returns the identifier of the underlying model.
	ModelName() string
}
