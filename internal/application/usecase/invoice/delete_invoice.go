// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/invoice-tracker/invoicetrack/internal/application/adapter"
	domainerror "github.com/invoice-tracker/invoicetrack/internal/domain/error"
)

// DeleteInvoiceInput represents the input for deleting an invoice record.
type DeleteInvoiceInput struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

// DeleteInvoiceUseCase handles invoice deletion, including the stored document.
type DeleteInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	fileStore   adapter.FileStore
}

// NewDeleteInvoiceUseCase creates a new DeleteInvoiceUseCase instance.
func NewDeleteInvoiceUseCase(invoiceRepo adapter.InvoiceRepository, fileStore adapter.FileStore) *DeleteInvoiceUseCase {
	return &DeleteInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		fileStore:   fileStore,
	}
}

// Execute performs the invoice deletion.
func (uc *DeleteInvoiceUseCase) Execute(ctx context.Context, input DeleteInvoiceInput) error {
	invoice, err := uc.invoiceRepo.FindByIDAndOwner(ctx, input.ID, input.OwnerID)
	if err != nil {
		return domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceNotFound,
			"invoice not found",
			domainerror.ErrInvoiceNotFound,
		)
	}

	if err := uc.invoiceRepo.Delete(ctx, invoice.ID, invoice.OwnerID); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	// The record is the source of truth; a leftover document is logged and
	// cleaned up later, not surfaced.
	if invoice.FilePath != "" {
		if err := uc.fileStore.Remove(ctx, invoice.FilePath); err != nil {
			slog.WarnContext(ctx, "failed to remove stored document",
				slog.String("invoice_id", invoice.ID.String()),
				slog.String("path", invoice.FilePath),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}
