package domain

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// NormalizeWord prepares a vocabulary word for table lookups and remote queries:
//   - trims leading/trailing whitespace
//   - compresses internal whitespace runs into one space
//   - converts to lowercase
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeWord(word string) string {
	t := transform.Chain(&whitespaceFolder{}, cases.Lower(language.Und))
	out, _, err := transform.String(t, word)
	if err != nil {
		// Only reachable with invalid transformer state; fall back to the input.
		return word
	}
	return out
}
