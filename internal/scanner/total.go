package scanner

import "regexp"

// The declared grand total lives near the bottom of a receipt.
const totalWindow = 15

// A plausible declared total: rejects zero/negative OCR artifacts and
// implausibly large misreads.
const maxPlausibleTotal = 1000000

var reTotalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)TOTAL\s*:?\s*[$₹]?(\d+\.?\d*)`),
	regexp.MustCompile(`(?i)Net\s*Amt\s*:?\s*[$₹]?(\d+\.?\d*)`),
	regexp.MustCompile(`(?i)Grand\s*Total\s*:?\s*[$₹]?(\d+\.?\d*)`),
	regexp.MustCompile(`(?i)Amount\s*:?\s*[$₹]?(\d+\.?\d*)`),
}

// extractTotal scans the trailing window tail-to-head and stops at the first
// line that yields a plausible total. A total already found by the item scan
// is never overwritten.
func extractTotal(lines []string, rec *ReceiptRecord) {
	start := len(lines) - totalWindow
	if start < 0 {
		start = 0
	}
	tail := lines[start:]
	for i := len(tail) - 1; i >= 0; i-- {
		if tryExtractTotal(tail[i], rec) {
			return
		}
	}
}

// tryExtractTotal attempts the labelled total patterns against one line.
// First write wins: once the record carries a nonzero total, later calls
// from either call site are no-ops. Returns true when the total is set.
func tryExtractTotal(line string, rec *ReceiptRecord) bool {
	if rec.TotalAmount > 0 {
		return true
	}
	for _, re := range reTotalPatterns {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		amount, ok := parseAmount(m[1])
		if !ok {
			continue
		}
		if amount > 0 && amount < maxPlausibleTotal {
			rec.TotalAmount = amount
			return true
		}
	}
	return false
}
