// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoice-tracker/invoicetrack/internal/application/adapter"
	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
	domainerror "github.com/invoice-tracker/invoicetrack/internal/domain/error"
)

// UpdateInvoiceInput represents the input for updating an invoice record.
// The metadata fields replace the stored ones wholesale: a nil field clears
// the stored value.
type UpdateInvoiceInput struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Vendor      *string
	Amount      *decimal.Decimal
	InvoiceDate *string
	Category    *string
}

// UpdateInvoiceOutput represents the output of updating an invoice record.
type UpdateInvoiceOutput struct {
	Invoice *entity.Invoice
}

// UpdateInvoiceUseCase handles invoice metadata updates.
type UpdateInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewUpdateInvoiceUseCase creates a new UpdateInvoiceUseCase instance.
func NewUpdateInvoiceUseCase(invoiceRepo adapter.InvoiceRepository) *UpdateInvoiceUseCase {
	return &UpdateInvoiceUseCase{invoiceRepo: invoiceRepo}
}

// Execute performs the invoice update.
func (uc *UpdateInvoiceUseCase) Execute(ctx context.Context, input UpdateInvoiceInput) (*UpdateInvoiceOutput, error) {
	invoiceDate, err := parseInvoiceDate(input.InvoiceDate)
	if err != nil {
		return nil, err
	}

	invoice, err := uc.invoiceRepo.FindByIDAndOwner(ctx, input.ID, input.OwnerID)
	if err != nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvoiceNotFound,
			"invoice not found",
			domainerror.ErrInvoiceNotFound,
		)
	}

	invoice.Vendor = input.Vendor
	invoice.Amount = input.Amount
	invoice.InvoiceDate = invoiceDate
	invoice.Category = input.Category
	invoice.UpdatedAt = time.Now().UTC()

	if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	return &UpdateInvoiceOutput{Invoice: invoice}, nil
}
