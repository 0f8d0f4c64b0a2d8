// Package similarity scores how alike two text fragments are.
//
// The score is the classic sequence-matching ratio: twice the number of runes
// covered by order-preserving, non-overlapping matching blocks divided by the
// combined length of both inputs. It rewards substring containment and
// penalises reordering; there is no tokenization, stemming or synonym
// handling.
package similarity

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ratio compares a and b case-insensitively and returns a score in [0, 1].
// Long b values get the auto-junk treatment, so characters that are very
// common in b (spaces, vowels) do not seed matches on their own.
func Ratio(a, b string) float64 {
	return NewSequenceMatcher(Fold(a), Fold(b), true).Ratio()
}

// Fold lower-cases s with full Unicode case mapping and returns its runes.
func Fold(s string) []rune {
	// A Caser keeps state between calls and must not be shared.
	return []rune(cases.Lower(language.Und).String(s))
}
