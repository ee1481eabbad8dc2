// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceDateLayout is the calendar-date layout invoices are exchanged in.
const InvoiceDateLayout = "2006-01-02"

// Invoice represents a single expense-invoice record. Vendor, Amount,
// InvoiceDate and Category are nullable: a blank field is distinct from a
// zero value and both are preserved end to end.
type Invoice struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	FileName    string
	FilePath    string
	Vendor      *string
	Amount      *decimal.Decimal
	InvoiceDate *time.Time
	Category    *string
	UploadDate  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewInvoice creates a new Invoice owned by the given user.
func NewInvoice(
	ownerID uuid.UUID,
	fileName, filePath string,
	vendor *string,
	amount *decimal.Decimal,
	invoiceDate *time.Time,
	category *string,
) *Invoice {
	now := time.Now().UTC()

	return &Invoice{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		FileName:    fileName,
		FilePath:    filePath,
		Vendor:      vendor,
		Amount:      amount,
		InvoiceDate: invoiceDate,
		Category:    category,
		UploadDate:  now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
