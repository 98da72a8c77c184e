package scanner

import "regexp"

// OCR often misreads the dollar sign as S, § or ¢. A glyph directly before a
// digit is the currency symbol; after a digit it is noise and dropped. The
// after-digit rule only fires when the glyph is not the start of a word, so
// a code followed by a product name ("1701 SUGAR") survives intact.
var (
	reGlyphBeforeDigit = regexp.MustCompile(`[S§¢]\s*([0-9])`)
	reGlyphAfterDigit  = regexp.MustCompile(`([0-9])\s*[S§¢]([^A-Za-z]|$)`)
)

// NormalizeCurrency rewrites OCR-ambiguous currency glyphs to a canonical $.
// It is idempotent and performs no other transformation.
func NormalizeCurrency(text string) string {
	text = reGlyphBeforeDigit.ReplaceAllString(text, `$$$1`)
	text = reGlyphAfterDigit.ReplaceAllString(text, `$1$2`)
	return text
}
