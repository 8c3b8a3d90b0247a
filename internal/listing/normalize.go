package listing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes characters and strips combining marks, so
// "Valparaíso" and "Valparaiso" compare equal.
var foldTransformer = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Fold normalizes text for matching: NFKD-decompose, drop diacritics and
// any remaining non-ASCII runes, lowercase, and collapse whitespace.
func Fold(text string) string {
	if text == "" {
		return ""
	}

	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		folded = text
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(strings.ToLower(b.String())), " ")
}
