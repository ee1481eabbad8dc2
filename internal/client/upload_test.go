package client

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	mu       sync.Mutex
	calls    int
	lastFile *FileAttachment
	lastForm InvoiceMetadata
	err      error

	// When non-nil, UploadInvoice blocks until the channel is closed.
	release chan struct{}
	started chan struct{}
}

func (f *fakeSubmitter) UploadInvoice(_ context.Context, file *FileAttachment, form InvoiceMetadata) error {
	f.mu.Lock()
	f.calls++
	f.lastFile = file
	f.lastForm = form
	started := f.started
	release := f.release
	err := f.err
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if release != nil {
		<-release
	}
	return err
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestUploadCoordinator_SelectFile(t *testing.T) {
	c := NewUploadCoordinator(&fakeSubmitter{}, nil)

	t.Run("accepts pdf regardless of case", func(t *testing.T) {
		require.NoError(t, c.SelectFile("invoice.PDF", []byte("%PDF-1.4")))
		require.NotNil(t, c.SelectedFile())
		assert.Equal(t, "invoice.PDF", c.SelectedFile().Name)
	})

	t.Run("rejects other extensions and keeps previous selection", func(t *testing.T) {
		err := c.SelectFile("report.docx", []byte("doc"))
		assert.ErrorIs(t, err, ErrNotPDF)
		assert.Equal(t, ErrNotPDF.Error(), c.Message())
		require.NotNil(t, c.SelectedFile())
		assert.Equal(t, "invoice.PDF", c.SelectedFile().Name)
	})
}

func TestUploadCoordinator_SubmitValidation(t *testing.T) {
	t.Run("nothing to submit never reaches the api", func(t *testing.T) {
		api := &fakeSubmitter{}
		c := NewUploadCoordinator(api, nil)

		err := c.Submit(context.Background())
		assert.ErrorIs(t, err, ErrNothingToSubmit)
		assert.Equal(t, 0, api.callCount())
		assert.Equal(t, ErrNothingToSubmit.Error(), c.Message())
	})

	t.Run("unparseable amount never reaches the api", func(t *testing.T) {
		api := &fakeSubmitter{}
		c := NewUploadCoordinator(api, nil)
		c.SetManualEntry(true)
		c.SetMetadata(InvoiceMetadata{Vendor: "Acme", Amount: "twelve"})

		err := c.Submit(context.Background())
		assert.ErrorIs(t, err, ErrInvalidAmountText)
		assert.Equal(t, 0, api.callCount())
	})

	t.Run("blank amount is accepted", func(t *testing.T) {
		api := &fakeSubmitter{}
		c := NewUploadCoordinator(api, nil)
		c.SetManualEntry(true)
		c.SetMetadata(InvoiceMetadata{Vendor: "Acme", Amount: "  "})

		require.NoError(t, c.Submit(context.Background()))
		assert.Equal(t, 1, api.callCount())
	})
}

func TestUploadCoordinator_SubmitSuccessClearsForm(t *testing.T) {
	refreshed := 0
	api := &fakeSubmitter{}
	c := NewUploadCoordinator(api, func() { refreshed++ })

	require.NoError(t, c.SelectFile("invoice.pdf", []byte("%PDF-1.4")))
	c.SetMetadata(InvoiceMetadata{Vendor: "Acme", Amount: "12.50", Category: "travel"})

	require.NoError(t, c.Submit(context.Background()))

	assert.Equal(t, 1, refreshed)
	assert.Nil(t, c.SelectedFile())
	assert.Equal(t, InvoiceMetadata{}, c.Metadata())
	assert.Empty(t, c.Message())
	require.NotNil(t, api.lastFile)
	assert.Equal(t, "invoice.pdf", api.lastFile.Name)
	assert.Equal(t, "Acme", api.lastForm.Vendor)
}

func TestUploadCoordinator_SubmitFailureKeepsForm(t *testing.T) {
	refreshed := 0
	api := &fakeSubmitter{err: &APIError{StatusCode: 400, Detail: "Only PDF files allowed"}}
	c := NewUploadCoordinator(api, func() { refreshed++ })
	c.SetManualEntry(true)
	c.SetMetadata(InvoiceMetadata{Vendor: "Acme", Amount: "12.50"})

	err := c.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, 0, refreshed)
	assert.Equal(t, "Only PDF files allowed", c.Message())
	assert.Equal(t, "Acme", c.Metadata().Vendor)
	assert.False(t, c.IsBusy())
}

func TestUploadCoordinator_SingleFlight(t *testing.T) {
	api := &fakeSubmitter{
		release: make(chan struct{}),
		started: make(chan struct{}),
	}
	c := NewUploadCoordinator(api, nil)
	c.SetManualEntry(true)

	first := make(chan error, 1)
	go func() {
		first <- c.Submit(context.Background())
	}()

	<-api.started
	assert.True(t, c.IsBusy())

	// A second attempt while the first is pending is rejected without
	// touching the api again.
	err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Equal(t, 1, api.callCount())

	close(api.release)
	require.NoError(t, <-first)
	assert.False(t, c.IsBusy())

	// Once resolved, a fresh submission goes through.
	api.mu.Lock()
	api.release = nil
	api.started = nil
	api.mu.Unlock()
	require.NoError(t, c.Submit(context.Background()))
	assert.Equal(t, 2, api.callCount())
}
