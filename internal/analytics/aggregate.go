// Package analytics derives spending summaries from invoice records.
//
// Every function in this package is a pure transformation: given the same
// input slice the output is identical regardless of call order, and no
// function ever returns an error. Malformed records degrade to a documented
// sentinel or zero instead of failing, because the dashboard must always be
// able to render something from partial data.
package analytics

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/invoice-tracker/invoicetrack/internal/domain/entity"
)

const (
	// CategoryUncategorized is the sentinel bucket for records without a usable category.
	CategoryUncategorized = "Uncategorized"

	// VendorUnknown is the sentinel key for records without a usable vendor.
	VendorUnknown = "Unknown"

	// monthKeyLayout formats a bucket month as "YYYY-MM".
	monthKeyLayout = "2006-01"
)

// MonthlyBucket is one month's spending total.
type MonthlyBucket struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// Summary holds the headline dashboard figures.
type Summary struct {
	Count      int             `json:"count"`
	TotalSpend decimal.Decimal `json:"total_spend"`
}

// NormalizeCategory maps a raw category value to its canonical label.
// Input that is empty after trimming becomes CategoryUncategorized;
// otherwise the first rune is upper-cased and the remainder lower-cased,
// with internal whitespace left untouched. The function is total and
// idempotent: NormalizeCategory(NormalizeCategory(x)) == NormalizeCategory(x).
func NormalizeCategory(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return CategoryUncategorized
	}

	first, size := utf8.DecodeRuneInString(raw)
	return string(unicode.ToUpper(first)) + strings.ToLower(raw[size:])
}

// CategoryDistribution counts invoices per canonical category. Records with
// a missing category count under CategoryUncategorized, so the counts always
// sum to len(invoices).
func CategoryDistribution(invoices []*entity.Invoice) map[string]int {
	dist := make(map[string]int, len(invoices))
	for _, inv := range invoices {
		var raw string
		if inv.Category != nil {
			raw = *inv.Category
		}
		dist[NormalizeCategory(raw)]++
	}
	return dist
}

// MonthlySpending buckets invoice amounts by calendar year-month, ascending.
// Records without a date or without an amount are excluded entirely rather
// than contributing a zero bucket. Ordering is by calendar chronology, not
// by string comparison, so year boundaries sort correctly.
func MonthlySpending(invoices []*entity.Invoice) []MonthlyBucket {
	totals := make(map[string]decimal.Decimal)
	for _, inv := range invoices {
		if inv.InvoiceDate == nil || inv.Amount == nil {
			continue
		}
		key := inv.InvoiceDate.Format(monthKeyLayout)
		totals[key] = totals[key].Add(*inv.Amount)
	}

	buckets := make([]MonthlyBucket, 0, len(totals))
	for month, total := range totals {
		buckets = append(buckets, MonthlyBucket{Month: month, Total: total})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return monthKeyTime(buckets[i].Month).Before(monthKeyTime(buckets[j].Month))
	})

	return buckets
}

// monthKeyTime converts a "YYYY-MM" key back to a point in time for
// chronological comparison. Keys produced by MonthlySpending always parse.
func monthKeyTime(key string) time.Time {
	t, _ := time.Parse(monthKeyLayout, key)
	return t
}

// VendorTotals sums invoice amounts per vendor. The grouping key is the raw
// vendor trimmed of surrounding whitespace with case preserved, so "Acme"
// and "acme" stay distinct entries. Records without an amount still appear,
// contributing zero. Each total is rounded to 2 places, half up.
func VendorTotals(invoices []*entity.Invoice) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, inv := range invoices {
		vendor := VendorUnknown
		if inv.Vendor != nil {
			if trimmed := strings.TrimSpace(*inv.Vendor); trimmed != "" {
				vendor = trimmed
			}
		}

		amount := decimal.Zero
		if inv.Amount != nil {
			amount = *inv.Amount
		}
		totals[vendor] = totals[vendor].Add(amount)
	}

	for vendor, total := range totals {
		totals[vendor] = total.Round(2)
	}
	return totals
}

// Summarize computes the headline summary: total record count and the sum
// of all present amounts, missing amounts contributing zero.
func Summarize(invoices []*entity.Invoice) Summary {
	total := decimal.Zero
	for _, inv := range invoices {
		if inv.Amount != nil {
			total = total.Add(*inv.Amount)
		}
	}
	return Summary{
		Count:      len(invoices),
		TotalSpend: total,
	}
}
