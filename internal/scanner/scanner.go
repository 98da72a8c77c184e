// Package scanner turns raw receipt OCR text into a structured receipt
// record: store name, bill number, date, line items and the declared total.
//
// OCR output is noisy and receipt layouts vary wildly between retailers, so
// extraction is a prioritized cascade of narrow patterns rather than one
// grammar: the first plausible hit wins, and anything unrecognized is
// skipped. Parsing never fails; the worst case is a partially populated
// record.
package scanner

import "strings"

// LineItem is one purchased product entry on a receipt.
type LineItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Total     float64 `json:"total"`
}

// ReceiptRecord is the structured output of parsing one OCR text blob.
// A zero TotalAmount means "not found", not "free". Date is the matched
// substring verbatim; it is not parsed into a calendar type.
type ReceiptRecord struct {
	StoreName   string     `json:"store_name"`
	BillNumber  string     `json:"bill_number"`
	Date        string     `json:"date"`
	TotalAmount float64    `json:"total_amount"`
	Items       []LineItem `json:"items"`
}

// ItemsTotal returns the sum of all recognized line item totals, for
// reconciliation against the declared TotalAmount.
func (r *ReceiptRecord) ItemsTotal() float64 {
	var sum float64
	for i := range r.Items {
		sum += r.Items[i].Total
	}
	return sum
}

// Parse extracts a receipt record from raw OCR text. It never returns an
// error: empty or garbled input produces an empty record. Each call owns its
// record, so Parse is safe to invoke concurrently for independent receipts.
func Parse(raw string) ReceiptRecord {
	rec := ReceiptRecord{Items: []LineItem{}}
	if strings.TrimSpace(raw) == "" {
		return rec
	}

	text := NormalizeCurrency(raw)
	lines := strings.Split(text, "\n")

	extractMetadata(lines, &rec)
	scanItems(lines, &rec)
	extractTotal(lines, &rec)

	return rec
}
