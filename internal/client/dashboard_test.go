package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

type fakeLister struct {
	// Each call takes the next response off the queue. A response with a
	// non-nil gate blocks until the gate is closed.
	mu        sync.Mutex
	responses []listerResponse
	calls     int
}

type listerResponse struct {
	invoices []*entity.Invoice
	err      error
	gate     chan struct{}
}

func (f *fakeLister) ListInvoices(context.Context) ([]*entity.Invoice, error) {
	f.mu.Lock()
	resp := f.responses[f.calls]
	f.calls++
	f.mu.Unlock()
	if resp.gate != nil {
		<-resp.gate
	}
	return resp.invoices, resp.err
}

func testInvoice(vendor, category, amount, date string) *entity.Invoice {
	inv := &entity.Invoice{}
	if vendor != "" {
		inv.Vendor = &vendor
	}
	if category != "" {
		inv.Category = &category
	}
	if amount != "" {
		d := decimal.RequireFromString(amount)
		inv.Amount = &d
	}
	if date != "" {
		ts, err := time.Parse(entity.InvoiceDateLayout, date)
		if err != nil {
			panic(err)
		}
		inv.InvoiceDate = &ts
	}
	return inv
}

func TestDashboard_RefreshBuildsSnapshot(t *testing.T) {
	lister := &fakeLister{responses: []listerResponse{
		{invoices: []*entity.Invoice{
			testInvoice("Acme", "travel", "12.50", "2024-01-15"),
			testInvoice("Acme", "", "7.50", "2024-01-20"),
		}},
	}}
	d := NewDashboard(lister)

	require.Nil(t, d.Snapshot())
	require.NoError(t, d.Refresh(context.Background()))

	snap := d.Snapshot()
	require.NotNil(t, snap)
	assert.Len(t, snap.Invoices, 2)
	assert.Equal(t, 2, snap.Summary.Count)
	assert.True(t, snap.Summary.TotalSpend.Equal(decimal.RequireFromString("20")))
	assert.Equal(t, map[string]int{"Travel": 1, "Uncategorized": 1}, snap.Categories)
	require.Len(t, snap.Monthly, 1)
	assert.Equal(t, "2024-01", snap.Monthly[0].Month)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestDashboard_RefreshError(t *testing.T) {
	lister := &fakeLister{responses: []listerResponse{
		{err: errors.New("connection refused")},
	}}
	d := NewDashboard(lister)

	err := d.Refresh(context.Background())
	require.Error(t, err)
	assert.Nil(t, d.Snapshot())
}

func TestDashboard_StaleCompletionDropped(t *testing.T) {
	gate := make(chan struct{})
	lister := &fakeLister{responses: []listerResponse{
		{invoices: []*entity.Invoice{testInvoice("Old", "", "1.00", "")}, gate: gate},
		{invoices: []*entity.Invoice{testInvoice("New", "", "2.00", "")}},
	}}
	d := NewDashboard(lister)

	slow := make(chan error, 1)
	go func() {
		slow <- d.Refresh(context.Background())
	}()

	// Give the slow refresh its generation stamp before starting the fast
	// one. The fake serializes the calls for us: the goroutine holds on the
	// gate with generation 1, while the second call takes generation 2.
	waitForCall(t, lister, 1)

	require.NoError(t, d.Refresh(context.Background()))
	require.NotNil(t, d.Snapshot())
	assert.Equal(t, "New", *d.Snapshot().Invoices[0].Vendor)

	// The older fetch resolves afterwards; its result must not win.
	close(gate)
	require.NoError(t, <-slow)
	assert.Equal(t, "New", *d.Snapshot().Invoices[0].Vendor)
}

func TestDashboard_ClosedDropsCompletions(t *testing.T) {
	gate := make(chan struct{})
	lister := &fakeLister{responses: []listerResponse{
		{invoices: []*entity.Invoice{testInvoice("Acme", "", "1.00", "")}, gate: gate},
	}}
	d := NewDashboard(lister)

	done := make(chan error, 1)
	go func() {
		done <- d.Refresh(context.Background())
	}()
	waitForCall(t, lister, 1)

	d.Close()
	close(gate)
	require.NoError(t, <-done)
	assert.Nil(t, d.Snapshot())
}

func waitForCall(t *testing.T, lister *fakeLister, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		lister.mu.Lock()
		calls := lister.calls
		lister.mu.Unlock()
		if calls >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("lister never reached %d calls", n)
}
