// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

// InvoiceRepository defines the interface for invoice persistence operations.
type InvoiceRepository interface {
	// Create persists a new invoice record.
	Create(ctx context.Context, invoice *entity.Invoice) error

	// FindByOwner retrieves the invoices owned by the given user,
	// newest upload first, with skip/limit pagination.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, skip, limit int) ([]*entity.Invoice, error)

	// FindByIDAndOwner retrieves a single invoice scoped to its owner.
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Invoice, error)

	// Update updates an existing invoice record.
	Update(ctx context.Context, invoice *entity.Invoice) error

	// Delete removes an invoice record scoped to its owner.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// ExtractionLogRepository defines the interface for persisting extraction attempts.
type ExtractionLogRepository interface {
	// Create persists a new extraction log entry.
	Create(ctx context.Context, log *entity.ExtractionLog) error

	// FindByInvoice retrieves the extraction log entries for an invoice.
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*entity.ExtractionLog, error)
}
