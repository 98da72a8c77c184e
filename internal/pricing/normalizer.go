// Package pricing compares grocery product prices across quick-commerce
// storefronts. Product listings use wildly inconsistent naming, so
// comparison happens on normalized names with brand and pack size split out.
package pricing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NormalizedProduct is a store listing name reduced to comparable parts.
type NormalizedProduct struct {
	BaseName     string
	Brand        string
	Quantity     string
	OriginalName string
}

// brandAliases maps canonical brand names to the spellings seen in listings.
var brandAliases = map[string][]string{
	"Amul":         {"amul", "a-mul"},
	"Nestle":       {"nestle", "nestlé", "maggi"},
	"Britannia":    {"britannia", "britania"},
	"Tata":         {"tata", "tata salt"},
	"Mother Dairy": {"mother dairy", "motherdairy"},
	"MTR":          {"mtr"},
	"Aashirvaad":   {"aashirvaad", "ashirvad"},
}

var fillerWords = []string{"fresh", "premium", "original", "natural", "pure", "organic"}

var quantityPatterns = []struct {
	unit  string
	scale float64 // multiplier into the base unit, 0 means take as-is
	re    *regexp.Regexp
}{
	{"g", 1000, regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:kg|kilo|kilogram)\b`)},
	{"g", 0, regexp.MustCompile(`(\d+)\s*(?:g|gram|grams)\b`)},
	{"ml", 1000, regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:l|litre|liter)\b`)},
	{"ml", 0, regexp.MustCompile(`(\d+)\s*(?:ml|milliliter)\b`)},
	{"pieces", 0, regexp.MustCompile(`(\d+)\s*(?:pcs|pieces|nos?)\b`)},
	{"pack", 0, regexp.MustCompile(`(\d+)\s*(?:pack|pkt|packet)\b`)},
}

var (
	reDigitsWord   = regexp.MustCompile(`\d+[a-zA-Z]*`)
	reNonWord      = regexp.MustCompile(`[^\w\s]`)
	reQuantityPart = regexp.MustCompile(`\d+\s*(?:g|kg|ml|l|pcs|pack)\b`)
)

// Normalize reduces a listing name to brand, pack size and base product name.
func Normalize(productName string) NormalizedProduct {
	name := strings.ToLower(strings.TrimSpace(productName))
	for _, w := range fillerWords {
		name = strings.ReplaceAll(name, w, "")
	}

	var brand string
	for canonical, variants := range brandAliases {
		for _, v := range variants {
			if strings.Contains(name, v) {
				brand = canonical
				break
			}
		}
		if brand != "" {
			break
		}
	}

	quantity := extractQuantity(name)

	base := name
	if brand != "" {
		base = strings.ReplaceAll(base, strings.ToLower(brand), "")
	}
	base = reQuantityPart.ReplaceAllString(base, "")
	base = reDigitsWord.ReplaceAllString(base, "")
	base = reNonWord.ReplaceAllString(base, "")
	base = strings.Join(strings.Fields(base), " ")

	return NormalizedProduct{
		BaseName:     base,
		Brand:        brand,
		Quantity:     quantity,
		OriginalName: productName,
	}
}

// extractQuantity finds a pack size and standardizes it to grams or
// milliliters where possible.
func extractQuantity(text string) string {
	for _, p := range quantityPatterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if p.scale > 0 {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			return fmt.Sprintf("%g%s", v*p.scale, p.unit)
		}
		return m[1] + p.unit
	}
	return ""
}

// Relevance scores how well a listing name answers the query. Exact
// substring match wins outright; otherwise word overlap decides.
func Relevance(productName, query string) int {
	name := strings.ToLower(productName)
	query = strings.ToLower(query)

	if strings.Contains(name, query) {
		return 100
	}

	nameWords := map[string]bool{}
	for _, w := range strings.Fields(name) {
		nameWords[w] = true
	}
	common := 0
	for _, w := range strings.Fields(query) {
		if nameWords[w] {
			common++
		}
	}
	if common > 0 {
		return common * 20
	}

	for _, w := range strings.Fields(query) {
		if strings.Contains(name, w) {
			return 30
		}
	}
	return 10
}
