// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExtractionResult holds the invoice fields the AI extractor recovered from
// an uploaded document. Fields the extractor could not determine stay nil.
type ExtractionResult struct {
	Vendor      *string
	Amount      *decimal.Decimal
	InvoiceDate *time.Time
	Category    *string
	Keywords    []string
}

// ExtractionLog records one extraction attempt for an uploaded invoice,
// kept for debugging and prompt tuning.
type ExtractionLog struct {
	ID        uuid.UUID
	InvoiceID uuid.UUID
	OwnerID   uuid.UUID
	Model     string
	Keywords  []string
	Succeeded bool
	LastError string
	CreatedAt time.Time
}

// NewExtractionLog creates a new ExtractionLog for the given invoice.
func NewExtractionLog(invoiceID, ownerID uuid.UUID, model string) *ExtractionLog {
	return &ExtractionLog{
		ID:        uuid.New(),
		InvoiceID: invoiceID,
		OwnerID:   ownerID,
		Model:     model,
		CreatedAt: time.Now().UTC(),
	}
}
