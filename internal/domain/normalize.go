package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripDiacritics decomposes to NFD and drops combining marks,
// so "licitação" and "licitacao" compare equal.
var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// Normalize lowercases, strips diacritics, and collapses whitespace.
// Course text and query terms must go through the same normalization
// or substring comparisons between them are meaningless.
func Normalize(s string) string {
	lowered := strings.ToLower(s)
	stripped, _, err := transform.String(stripDiacritics, lowered)
	if err != nil {
		// transform only fails on malformed UTF-8; fall back to the lowered form
		stripped = lowered
	}
	return strings.Join(strings.Fields(stripped), " ")
}

// Tokenize normalizes and splits into whitespace-separated tokens.
func Tokenize(s string) []string {
	n := Normalize(s)
	if n == "" {
		return nil
	}
	return strings.Split(n, " ")
}
