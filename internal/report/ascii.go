package report

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Inspectors paste notes from phones and sheets, so free text arrives with
// smart punctuation and the odd accented character. The report fonts only
// carry Latin-1, so everything is folded down before rendering.

// punctuation maps typographic characters to plain equivalents before the
// diacritic fold runs.
var punctuation = strings.NewReplacer(
	"–", "-", // en dash
	"—", "-", // em dash
	"•", "*", // bullet
	"·", "*", // middle dot
	"“", `"`,
	"”", `"`,
	"‘", "'",
	"’", "'",
	"…", "...",
	"°", " deg ",
	"×", "x",
	"✓", "OK",
	" ", " ", // non-breaking space
)

// foldDiacritics decomposes characters and strips combining marks, so
// "Señor" becomes "Senor" rather than being dropped.
var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Transliterate renders arbitrary free text in Latin-1, replacing smart
// punctuation, folding diacritics, and discarding whatever remains outside
// the target set.
func Transliterate(s string) string {
	if s == "" {
		return ""
	}
	s = punctuation.Replace(s)
	if folded, _, err := transform.String(foldDiacritics, s); err == nil {
		s = folded
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r <= 0xFF {
			b.WriteRune(r)
		}
	}
	return b.String()
}
