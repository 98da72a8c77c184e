package scanner

import (
	"regexp"
	"strings"
	"unicode"
)

// Vocabulary of receipt boilerplate that disqualifies an item name: totals,
// tax labels, payment terms, address markers, signature prompts.
var itemExcludeTerms = []string{
	"total", "subtotal", "tax", "cash", "change", "card",
	"amount", "balance", "paid", "tender", "summary",
	"cashier", "clerk", "register", "receipt", "thank",
	"date", "time", "phone", "address", "road", "street",
	"gst", "cgst", "sgst", "e.&.o.e", "items=", "r.off",
	"user name", "signature", "exchange", "damage", "visit",
	"rupees", "only", "bill no", "invoice", "hsn item",
	"description", "qty", "m.r.p", "rate",
}

var (
	reItemBadPrefix    = regexp.MustCompile(`(?i)^(tax|cgst|sgst|total|subtotal|amount|qty)`)
	reTrailingAsterisk = regexp.MustCompile(`\*+$`)
	reInnerSpaces      = regexp.MustCompile(`\s+`)
)

// isValidItem reports whether a candidate name plausibly names a product.
// The alphabetic-ratio and symbol-count checks reject garbage OCR lines that
// happen to fit a numeric shape.
func isValidItem(name string) bool {
	lower := strings.ToLower(name)
	for _, term := range itemExcludeTerms {
		if strings.Contains(lower, term) {
			return false
		}
	}
	if reItemBadPrefix.MatchString(lower) {
		return false
	}
	if len(name) < 2 {
		return false
	}

	var alpha, special, nonSpace int
	for _, r := range name {
		switch {
		case unicode.IsLetter(r):
			alpha++
			nonSpace++
		case unicode.IsSpace(r):
		case unicode.IsDigit(r):
			nonSpace++
		default:
			special++
			nonSpace++
		}
	}
	if alpha == 0 {
		return false
	}
	if nonSpace > 0 && float64(alpha)/float64(nonSpace) < 0.3 {
		return false
	}
	if special*2 > len(name) {
		return false
	}
	return true
}

// cleanItemName strips OCR artifacts: trailing asterisk runs, stray
// whitespace, collapsed internal space runs.
func cleanItemName(name string) string {
	name = reTrailingAsterisk.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	name = reInnerSpaces.ReplaceAllString(name, " ")
	return name
}
