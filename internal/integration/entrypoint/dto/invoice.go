// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

// InvoiceDataRequest represents the invoice metadata of an upload or update.
// All fields are nullable: a null field was deliberately left blank.
type InvoiceDataRequest struct {
	Vendor      *string          `json:"vendor"`
	Amount      *decimal.Decimal `json:"amount"`
	InvoiceDate *string          `json:"invoice_date"`
	Category    *string          `json:"category"`
}

// InvoiceResponse represents an invoice record in API responses.
type InvoiceResponse struct {
	ID          string           `json:"id"`
	Vendor      *string          `json:"vendor"`
	Amount      *decimal.Decimal `json:"amount"`
	InvoiceDate *string          `json:"invoice_date"`
	Category    *string          `json:"category"`
	FileName    string           `json:"file_name"`
	UploadDate  time.Time        `json:"upload_date"`
}

// ToInvoiceResponse converts an Invoice entity to an InvoiceResponse.
func ToInvoiceResponse(invoice *entity.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:         invoice.ID.String(),
		Vendor:     invoice.Vendor,
		Amount:     invoice.Amount,
		Category:   invoice.Category,
		FileName:   invoice.FileName,
		UploadDate: invoice.UploadDate,
	}
	if invoice.InvoiceDate != nil {
		d := invoice.InvoiceDate.Format(entity.InvoiceDateLayout)
		resp.InvoiceDate = &d
	}
	return resp
}

// ToInvoiceResponses converts a slice of Invoice entities.
func ToInvoiceResponses(invoices []*entity.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, ToInvoiceResponse(inv))
	}
	return out
}
