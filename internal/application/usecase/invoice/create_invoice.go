// Package invoice contains invoice-related use cases.
package invoice

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoice-tracker/invoicetrack/internal/application/adapter"
	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
	domainerror "github.com/invoice-tracker/invoicetrack/internal/domain/error"
)

const manualEntryFileName = "manual-entry"

// CreateInvoiceInput represents the input for creating an invoice record.
// File is nil for manual entries. The metadata fields are nullable: a nil
// field was left blank by the caller and stays blank unless extraction
// fills it.
type CreateInvoiceInput struct {
	OwnerID     uuid.UUID
	FileName    string
	File        []byte
	Vendor      *string
	Amount      *decimal.Decimal
	InvoiceDate *string
	Category    *string
}

// CreateInvoiceOutput represents the output of creating an invoice record.
type CreateInvoiceOutput struct {
	Invoice *entity.Invoice
}

// CreateInvoiceUseCase handles invoice creation: document storage, AI field
// extraction for fields the caller left blank, and persistence.
type CreateInvoiceUseCase struct {
	invoiceRepo adapter.InvoiceRepository
	logRepo     adapter.ExtractionLogRepository
	fileStore   adapter.FileStore
	extractor   adapter.ExtractionService
}

// NewCreateInvoiceUseCase creates a new CreateInvoiceUseCase instance.
func NewCreateInvoiceUseCase(
	invoiceRepo adapter.InvoiceRepository,
	logRepo adapter.ExtractionLogRepository,
	fileStore adapter.FileStore,
	extractor adapter.ExtractionService,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		logRepo:     logRepo,
		fileStore:   fileStore,
		extractor:   extractor,
	}
}

// Execute performs the invoice creation.
func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, input CreateInvoiceInput) (*CreateInvoiceOutput, error) {
	if input.File == nil && input.Vendor == nil && input.Amount == nil &&
		input.InvoiceDate == nil && input.Category == nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeMissingInvoiceData,
			"either a document or invoice data must be provided",
			nil,
		)
	}

	invoiceDate, err := parseInvoiceDate(input.InvoiceDate)
	if err != nil {
		return nil, err
	}

	fileName := manualEntryFileName
	filePath := ""
	if input.File != nil {
		if !strings.EqualFold(filepath.Ext(input.FileName), ".pdf") {
			return nil, domainerror.NewInvoiceError(
				domainerror.ErrCodeUnsupportedFileType,
				"only PDF files allowed",
				domainerror.ErrUnsupportedFileType,
			)
		}
		fileName = input.FileName

		filePath, err = uc.fileStore.Save(ctx, input.OwnerID, input.FileName, bytes.NewReader(input.File))
		if err != nil {
			return nil, fmt.Errorf("failed to store document: %w", err)
		}
	}

	invoice := entity.NewInvoice(
		input.OwnerID,
		fileName,
		filePath,
		input.Vendor,
		input.Amount,
		invoiceDate,
		input.Category,
	)

	// Fill blank fields from the document. Extraction is best effort: the
	// record is created either way, and the attempt is logged.
	if input.File != nil && uc.extractor != nil && uc.extractor.IsAvailable() {
		uc.extractFields(ctx, invoice, input)
	}

	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		if filePath != "" {
			if rmErr := uc.fileStore.Remove(ctx, filePath); rmErr != nil {
				slog.WarnContext(ctx, "failed to remove orphaned document",
					slog.String("path", filePath),
					slog.String("error", rmErr.Error()),
				)
			}
		}
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	return &CreateInvoiceOutput{Invoice: invoice}, nil
}

func (uc *CreateInvoiceUseCase) extractFields(ctx context.Context, invoice *entity.Invoice, input CreateInvoiceInput) {
	log := entity.NewExtractionLog(invoice.ID, invoice.OwnerID, uc.extractor.ModelName())

	result, err := uc.extractor.Extract(ctx, &adapter.ExtractionRequest{
		FileName: input.FileName,
		MIMEType: "application/pdf",
		Data:     input.File,
	})
	if err != nil {
		log.LastError = err.Error()
		slog.WarnContext(ctx, "invoice field extraction failed",
			slog.String("invoice_id", invoice.ID.String()),
			slog.String("error", err.Error()),
		)
	} else {
		log.Succeeded = true
		log.Keywords = result.Keywords

		// Manually entered values always win over extracted ones.
		if invoice.Vendor == nil {
			invoice.Vendor = result.Vendor
		}
		if invoice.Amount == nil {
			invoice.Amount = result.Amount
		}
		if invoice.InvoiceDate == nil {
			invoice.InvoiceDate = result.InvoiceDate
		}
		if invoice.Category == nil {
			invoice.Category = result.Category
		}
	}

	if uc.logRepo != nil {
		if err := uc.logRepo.Create(ctx, log); err != nil {
			slog.WarnContext(ctx, "failed to persist extraction log",
				slog.String("invoice_id", invoice.ID.String()),
				slog.String("error", err.Error()),
			)
		}
	}
}

// parseInvoiceDate validates and parses an optional calendar date.
func parseInvoiceDate(raw *string) (*time.Time, error) {
	if raw == nil {
		return nil, nil
	}
	t, err := time.Parse(entity.InvoiceDateLayout, *raw)
	if err != nil {
		return nil, domainerror.NewInvoiceError(
			domainerror.ErrCodeInvalidInvoiceDate,
			fmt.Sprintf("invalid invoice date %q, expected YYYY-MM-DD", *raw),
			domainerror.ErrInvalidInvoiceDate,
		)
	}
	return &t, nil
}
