package scanner

import (
	"regexp"
	"strings"
	"unicode"
)

// Receipt metadata lives near the top: the store name inside the first 15
// lines, bill number and date inside the first 20.
const (
	storeNameWindow = 15
	metadataWindow  = 20
)

var (
	// Lines matching obvious billing/address/tax boilerplate are never store
	// name candidates.
	reStoreExclude = regexp.MustCompile(`(?i)Bill|Date|Name:\s*CASH|ADD:|Mob|Phone|GSTIN|TAX|INVOICE|DESCRIPTION|QTY|AMOUNT|HSN|M\.R\.P`)

	// A candidate must carry a recognizable word: a capitalized run of three
	// or more letters, or an all-caps run of two or more.
	reStoreWord = regexp.MustCompile(`[A-Z][a-z]{2,}|[A-Z]{2,}`)

	reBillPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Bill\s*No\.?\s*:?\s*[:.]?\s*(\d+)`),
		regexp.MustCompile(`(?i)No\.?\s*:?\s*(\d{5,})`),
		regexp.MustCompile(`(?i)Invoice\s*No\.?\s*:?\s*(\d+)`),
		regexp.MustCompile(`(?i)Receipt\s*No\.?\s*:?\s*(\d+)`),
	}

	// Date is captured verbatim; day/month ranges are not validated.
	reDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`Date?\s*:?\s*(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{2,4})`),
		regexp.MustCompile(`(\d{1,2}[/\-.]\d{1,2}[/\-.]\d{4})`),
	}
)

// extractMetadata fills StoreName, BillNumber and Date from the leading
// window of the text. Absence of a match leaves the field empty.
func extractMetadata(lines []string, rec *ReceiptRecord) {
	rec.StoreName = pickStoreName(lines)

	head := lines
	if len(head) > metadataWindow {
		head = head[:metadataWindow]
	}

	for _, line := range head {
		for _, re := range reBillPatterns {
			if m := re.FindStringSubmatch(line); m != nil {
				rec.BillNumber = m[1]
				break
			}
		}
		if rec.BillNumber != "" {
			break
		}
	}

	for _, line := range head {
		for _, re := range reDatePatterns {
			if m := re.FindStringSubmatch(line); m != nil {
				rec.Date = m[1]
				break
			}
		}
		if rec.Date != "" {
			break
		}
	}
}

// pickStoreName scores each leading line and prefers the earliest strong
// candidate: enough letters to outweigh OCR garbage, and no boilerplate
// markers. Returns "" when nothing qualifies.
func pickStoreName(lines []string) string {
	window := lines
	if len(window) > storeNameWindow {
		window = window[:storeNameWindow]
	}

	for _, line := range window {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) <= 3 {
			continue
		}
		if reStoreExclude.MatchString(trimmed) {
			continue
		}
		if !reStoreWord.MatchString(trimmed) {
			continue
		}

		alpha, special := charCounts(trimmed)
		if alpha <= 3 || alpha <= special {
			continue
		}

		// Earliest strong candidate wins.
		return trimmed
	}
	return ""
}

// charCounts returns the number of letters and the number of characters that
// are neither alphanumeric nor whitespace.
func charCounts(s string) (alpha, special int) {
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			alpha++
		case unicode.IsDigit(r) || unicode.IsSpace(r):
		default:
			special++
		}
	}
	return alpha, special
}
