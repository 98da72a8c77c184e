package scanner

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Column headers mark the item table but carry no data themselves.
	reColumnHeader = regexp.MustCompile(`(?i)DESCRIPTION|ITEM|PRODUCT|HSN\s+Item`)

	// Boilerplate prefixes that can never start an item line.
	reLinePrefix = regexp.MustCompile(`(?i)^(QTY|AMOUNT|Rate|M\.R\.P|Bill No|Date|Name|ADD:|Mob|Phone|GSTIN|TAX INVOICE|User Name|Signature|Exchange|Thank|Visit)`)

	// Summary/tax-section markers end individual items; total-bearing ones
	// are forwarded to the total extractor.
	reSummaryMarker = regexp.MustCompile(`(?i)E\.&\.O\.E|Tax-X|Items=|Total|Subtotal|CGST|SGST|Net Amt`)

	// Item line shapes, tried in fixed priority order.
	reItemQtyTotal    = regexp.MustCompile(`^(.+?)\s+(\d+\.?\d*)\s+\$?(\d+\.?\d*)$`)
	reItemQtyRateAmt  = regexp.MustCompile(`^(.+?)\s+(\d+\.?\d*)\s+(\d+\.?\d*)\s+(\d+\.?\d*)$`)
	reHSNCodeName     = regexp.MustCompile(`^(\d{4})\s+(.+)$`)
	reHSNDetail       = regexp.MustCompile(`^(\d+)\s+(\d+\.?\d*)\s+(\d+\.?\d*)\s+(\d+\.?\d*)\s+(\d+\.?\d*)$`)
	reCodedSixField   = regexp.MustCompile(`^(.+?)\s+(\d+)\s+(\d+\.?\d*)\s+(\d+\.?\d*)\s+(\d+\.?\d*)\s+(\d+\.?\d*)$`)
	reLeadingItemCode = regexp.MustCompile(`^\d+\s+`)

	// Lenient acceptance used by the fallback HSN rule: any run of two or
	// more letters passes.
	reLenientName = regexp.MustCompile(`[A-Za-z]{2,}`)
)

// itemCandidate holds the fields extracted by one pattern before validation.
type itemCandidate struct {
	name      string
	quantity  float64
	unitPrice float64
	total     float64
}

// itemRule pairs a shape matcher with its validation mode. Rules are tried
// in slice order; the first rule whose shape matches and whose candidate
// passes validation wins the line.
type itemRule struct {
	name    string
	lenient bool
	match   func(line, next string) (itemCandidate, bool)
}

// itemRules is the fixed-priority pattern table. Structured single-line
// shapes come first; the looser two-line HSN fallback trades precision for
// recall on a known-hard layout and therefore runs late with a lenient
// name check.
var itemRules = []itemRule{
	{name: "qty-total", match: matchQtyTotal},
	{name: "qty-rate-amount", match: matchQtyRateAmount},
	{name: "hsn-two-line", match: matchHSNTwoLine},
	{name: "hsn-two-line-lenient", lenient: true, match: matchHSNTwoLine},
	{name: "coded-six-field", match: matchCodedSixField},
}

// scanItems walks the text once, classifying each line as an item record or
// noise. Summary lines containing Total or Net Amt are forwarded to the
// total extractor. An unrecognized line never aborts the scan.
func scanItems(lines []string, rec *ReceiptRecord) {
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 3 {
			continue
		}
		if reColumnHeader.MatchString(line) {
			continue
		}
		if reLinePrefix.MatchString(line) {
			continue
		}
		if reSummaryMarker.MatchString(line) {
			if strings.Contains(line, "Total") || strings.Contains(line, "Net Amt") {
				tryExtractTotal(line, rec)
			}
			continue
		}

		next := ""
		if i+1 < len(lines) {
			next = strings.TrimSpace(lines[i+1])
		}

		for _, rule := range itemRules {
			cand, ok := rule.match(line, next)
			if !ok {
				continue
			}
			if rule.lenient {
				if len(cand.name) < 2 || !reLenientName.MatchString(cand.name) {
					continue
				}
			} else if !isValidItem(cand.name) {
				continue
			}
			rec.Items = append(rec.Items, LineItem{
				Name:      cleanItemName(cand.name),
				Quantity:  cand.quantity,
				UnitPrice: cand.unitPrice,
				Total:     cand.total,
			})
			break
		}
	}
}

// matchQtyTotal handles "name qty [$]total". The unit price is derived from
// the total; a zero quantity falls back to the total itself.
func matchQtyTotal(line, _ string) (itemCandidate, bool) {
	m := reItemQtyTotal.FindStringSubmatch(line)
	if m == nil {
		return itemCandidate{}, false
	}
	qty, ok1 := parseAmount(m[2])
	total, ok2 := parseAmount(m[3])
	if !ok1 || !ok2 {
		return itemCandidate{}, false
	}
	unit := total
	if qty > 0 {
		unit = total / qty
	}
	return itemCandidate{name: strings.TrimSpace(m[1]), quantity: qty, unitPrice: unit, total: total}, true
}

// matchQtyRateAmount handles "name qty unit_price total".
func matchQtyRateAmount(line, _ string) (itemCandidate, bool) {
	m := reItemQtyRateAmt.FindStringSubmatch(line)
	if m == nil {
		return itemCandidate{}, false
	}
	qty, ok1 := parseAmount(m[2])
	unit, ok2 := parseAmount(m[3])
	total, ok3 := parseAmount(m[4])
	if !ok1 || !ok2 || !ok3 {
		return itemCandidate{}, false
	}
	return itemCandidate{name: strings.TrimSpace(m[1]), quantity: qty, unitPrice: unit, total: total}, true
}

// matchHSNTwoLine handles the two-line HSN layout: "4-digit-code name"
// followed by "lineNo qty mrp rate amount". Quantity, rate and amount come
// from the detail line.
func matchHSNTwoLine(line, next string) (itemCandidate, bool) {
	m1 := reHSNCodeName.FindStringSubmatch(line)
	if m1 == nil || next == "" {
		return itemCandidate{}, false
	}
	m2 := reHSNDetail.FindStringSubmatch(next)
	if m2 == nil {
		return itemCandidate{}, false
	}
	qty, ok1 := parseAmount(m2[2])
	unit, ok2 := parseAmount(m2[4])
	total, ok3 := parseAmount(m2[5])
	if !ok1 || !ok2 || !ok3 {
		return itemCandidate{}, false
	}
	return itemCandidate{name: strings.TrimSpace(m1[2]), quantity: qty, unitPrice: unit, total: total}, true
}

// matchCodedSixField handles a single line with a leading numeric code and
// five trailing numeric fields; the bare code token is stripped from the
// name.
func matchCodedSixField(line, _ string) (itemCandidate, bool) {
	m := reCodedSixField.FindStringSubmatch(line)
	if m == nil {
		return itemCandidate{}, false
	}
	qty, ok1 := parseAmount(m[3])
	unit, ok2 := parseAmount(m[5])
	total, ok3 := parseAmount(m[6])
	if !ok1 || !ok2 || !ok3 {
		return itemCandidate{}, false
	}
	name := reLeadingItemCode.ReplaceAllString(strings.TrimSpace(m[1]), "")
	return itemCandidate{name: name, quantity: qty, unitPrice: unit, total: total}, true
}

// parseAmount converts a regex-captured numeric token. A failure is treated
// as "shape did not match" so one garbled line never aborts the parse.
func parseAmount(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
