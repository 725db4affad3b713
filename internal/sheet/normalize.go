package sheet

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// fold decomposes and strips combining marks, so "Validação" becomes
// "Validacao" regardless of which diacritics the sheet author typed.
var fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader turns a raw spreadsheet header into its canonical lookup
// key: lower-cased, diacritics folded, inner whitespace collapsed to `_`.
// Total function; garbage in yields "".
func NormalizeHeader(s string) string {
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	return strings.Join(strings.Fields(folded), "_")
}

// NormalizeName is the dedup key for lead display names: case-insensitive
// and whitespace-insensitive, diacritics kept ("Ana" and "Anã" are different
// people).
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
