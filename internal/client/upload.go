package client

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// Local validation failures. These are raised before any network call.
var (
	// ErrSubmissionInFlight is returned while a previous submission is pending.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")

	// ErrNothingToSubmit is returned when neither a file is selected nor
	// manual entry is enabled.
	ErrNothingToSubmit = errors.New("select a PDF invoice or enable manual entry")

	// ErrNotPDF is returned when the selected file is not a PDF.
	ErrNotPDF = errors.New("only PDF files allowed")

	// ErrInvalidAmountText is returned when the amount field cannot be
	// parsed as a number. A blank amount is fine; it is sent as unspecified.
	ErrInvalidAmountText = errors.New("amount is not a number")
)

// InvoiceSubmitter is the external submission collaborator.
type InvoiceSubmitter interface {
	UploadInvoice(ctx context.Context, file *FileAttachment, metadata InvoiceMetadata) error
}

// RefreshFunc is invoked after a successful submission so the dashboard can
// refetch and re-aggregate.
type RefreshFunc func()

// UploadCoordinator validates and submits one invoice at a time. Exactly one
// of two modes must hold before a submission goes out: a file is selected,
// or the manual-entry toggle is on. While a submission is in flight, further
// attempts are rejected until it resolves.
type UploadCoordinator struct {
	api       InvoiceSubmitter
	onRefresh RefreshFunc

	mu          sync.Mutex
	inFlight    bool
	file        *FileAttachment
	manualEntry bool
	form        InvoiceMetadata
	message     string
}

// NewUploadCoordinator creates a coordinator. onRefresh may be nil.
func NewUploadCoordinator(api InvoiceSubmitter, onRefresh RefreshFunc) *UploadCoordinator {
	return &UploadCoordinator{
		api:       api,
		onRefresh: onRefresh,
	}
}

// SelectFile attaches a document to the pending form. Non-PDF selections
// are rejected and leave any previous selection in place.
func (c *UploadCoordinator) SelectFile(name string, content []byte) error {
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		c.setMessage(ErrNotPDF.Error())
		return ErrNotPDF
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.file = &FileAttachment{Name: name, Content: content}
	c.message = ""
	return nil
}

// SetManualEntry toggles the no-file submission mode.
func (c *UploadCoordinator) SetManualEntry(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.manualEntry = enabled
}

// SetMetadata replaces the pending form fields.
func (c *UploadCoordinator) SetMetadata(form InvoiceMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form = form
}

// Submit validates the pending form and sends it. On success the form is
// cleared and the refresh callback runs; on failure the entered values stay
// put so the user can retry.
func (c *UploadCoordinator) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmissionInFlight
	}

	// Local validation happens before any network call.
	if c.file == nil && !c.manualEntry {
		c.message = ErrNothingToSubmit.Error()
		c.mu.Unlock()
		return ErrNothingToSubmit
	}
	if amount := strings.TrimSpace(c.form.Amount); amount != "" {
		if _, err := decimal.NewFromString(amount); err != nil {
			c.message = ErrInvalidAmountText.Error()
			c.mu.Unlock()
			return ErrInvalidAmountText
		}
	}

	c.inFlight = true
	c.message = ""
	file := c.file
	form := c.form
	c.mu.Unlock()

	err := c.api.UploadInvoice(ctx, file, form)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		c.message = failureMessage(err, "Error uploading invoice")
		return err
	}

	c.file = nil
	c.form = InvoiceMetadata{}
	c.message = ""
	if c.onRefresh != nil {
		c.onRefresh()
	}
	return nil
}

// IsBusy reports whether a submission is in flight.
func (c *UploadCoordinator) IsBusy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Message returns the current user-facing message, or "".
func (c *UploadCoordinator) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Metadata returns a copy of the pending form fields.
func (c *UploadCoordinator) Metadata() InvoiceMetadata {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// SelectedFile returns the pending attachment, or nil.
func (c *UploadCoordinator) SelectedFile() *FileAttachment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file
}

func (c *UploadCoordinator) setMessage(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.message = msg
}
