// Package invoice contains invoice-related use cases.
package invoice

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/invoice-tracker/invoicetrack/internal/application/adapter"
	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
)

// ListInvoicesInput represents the input for listing invoices.
type ListInvoicesInput struct {
	OwnerID uuid.UUID
	Skip    int
	Limit   int
}

// ListInvoicesOutput represents the output of listing invoices.
type ListInvoicesOutput struct {
	Invoices []*entity.Invoice
}

// ListInvoicesUseCase handles listing the caller's invoices.
type ListInvoicesUseCase struct {
	invoiceRepo adapter.InvoiceRepository
}

// NewListInvoicesUseCase creates a new ListInvoicesUseCase instance.
func NewListInvoicesUseCase(invoiceRepo adapter.InvoiceRepository) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{invoiceRepo: invoiceRepo}
}

// Execute retrieves the caller's invoices, newest upload first.
func (uc *ListInvoicesUseCase) Execute(ctx context.Context, input ListInvoicesInput) (*ListInvoicesOutput, error) {
	skip := input.Skip
	if skip < 0 {
		skip = 0
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	invoices, err := uc.invoiceRepo.FindByOwner(ctx, input.OwnerID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	return &ListInvoicesOutput{Invoices: invoices}, nil
}
