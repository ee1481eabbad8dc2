package client

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoice-tracker/invoicetrack/internal/analytics"
	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

// InvoiceLister is the fetch collaborator the dashboard refreshes from.
type InvoiceLister interface {
	ListInvoices(ctx context.Context) ([]*entity.Invoice, error)
}

// Snapshot is one consistent view of the fetched records and every derived
// aggregate, all computed from the same fetch.
type Snapshot struct {
	Invoices   []*entity.Invoice
	Categories map[string]int
	Monthly    []analytics.MonthlyBucket
	Vendors    map[string]decimal.Decimal
	Summary    analytics.Summary
	FetchedAt  time.Time
}

// Dashboard drives the fetch/aggregate cycle. Each refresh is stamped with a
// monotonically increasing generation; a fetch that resolves after a newer
// one has already been applied is dropped, so an out-of-order completion can
// never overwrite newer state. After Close, late completions are no-ops.
type Dashboard struct {
	api InvoiceLister

	mu         sync.Mutex
	nextGen    uint64
	appliedGen uint64
	closed     bool
	snapshot   *Snapshot
}

// NewDashboard creates a dashboard over the given fetch collaborator.
func NewDashboard(api InvoiceLister) *Dashboard {
	return &Dashboard{api: api}
}

// Refresh fetches the invoice collection and recomputes every aggregate.
// Stale completions are silently discarded.
func (d *Dashboard) Refresh(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.nextGen++
	gen := d.nextGen
	d.mu.Unlock()

	invoices, err := d.api.ListInvoices(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	if gen <= d.appliedGen {
		// A newer fetch already completed; drop this one.
		return nil
	}
	if err != nil {
		return err
	}

	d.appliedGen = gen
	d.snapshot = &Snapshot{
		Invoices:   invoices,
		Categories: analytics.CategoryDistribution(invoices),
		Monthly:    analytics.MonthlySpending(invoices),
		Vendors:    analytics.VendorTotals(invoices),
		Summary:    analytics.Summarize(invoices),
		FetchedAt:  time.Now().UTC(),
	}
	return nil
}

// Snapshot returns the most recently applied view, or nil before the first
// successful refresh.
func (d *Dashboard) Snapshot() *Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot
}

// Close marks the dashboard as gone; any in-flight refresh completing after
// this point leaves no trace.
func (d *Dashboard) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}
