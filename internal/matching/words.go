package matching

import (
	"strings"
	"unicode"
)

// words splits text into lower-cased words. Letters, digits, '+', '#' and '.'
// belong to words so "c++", "c#" and "node.js" survive; trailing dots are
// dropped.
func words(text string) []string {
	var (
		out  []string
		word strings.Builder
	)

	flush := func() {
		w := strings.TrimRight(word.String(), ".")
		word.Reset()
		if w != "" {
			out = append(out, w)
		}
	}

	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' {
			word.WriteRune(r)
			continue
		}
		flush()
	}
	flush()

	return out
}
