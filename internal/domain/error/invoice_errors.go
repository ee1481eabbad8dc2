// Package error defines domain-specific errors for the Invoice Tracker application.
package error

import "errors"

// Invoice domain errors.
var (
	// ErrInvoiceNotFound is returned when an invoice does not exist or is not owned by the caller.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvalidInvoiceDate is returned when an invoice date is not a valid calendar date.
	ErrInvalidInvoiceDate = errors.New("invalid invoice date")

	// ErrInvalidAmount is returned when an invoice amount cannot be parsed as a number.
	ErrInvalidAmount = errors.New("invalid invoice amount")

	// ErrUnsupportedFileType is returned when an uploaded document is not a PDF.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// InvoiceErrorCode defines error codes for invoice errors.
// Format: INV-XXYYYY where XX is category and YYYY is specific error.
type InvoiceErrorCode string

const (
	// Create/update errors (01XXXX)
	ErrCodeInvalidInvoiceDate  InvoiceErrorCode = "INV-010001"
	ErrCodeInvalidAmount       InvoiceErrorCode = "INV-010002"
	ErrCodeUnsupportedFileType InvoiceErrorCode = "INV-010003"
	ErrCodeMissingInvoiceData  InvoiceErrorCode = "INV-010004"

	// Lookup errors (02XXXX)
	ErrCodeInvoiceNotFound InvoiceErrorCode = "INV-020001"
)

// InvoiceError represents an invoice error with code and message.
type InvoiceError struct {
	Code    InvoiceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *InvoiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *InvoiceError) Unwrap() error {
	return e.Err
}

// NewInvoiceError creates a new InvoiceError with the given code and message.
func NewInvoiceError(code InvoiceErrorCode, message string, err error) *InvoiceError {
	return &InvoiceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
