package geo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize canonicalizes a place name for comparison: diacritics are
// stripped, typographic apostrophes unified, spacing and punctuation
// removed and the result lowercased. "Côte d'Ivoire" and "Cote dIvoire"
// normalize to the same string.
func Normalize(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case unicode.IsSpace(r):
		case r == '’', r == '‘', r == 'ʼ', r == '\'':
		case r == ',', r == '.', r == '"', r == '(', r == ')', r == '-':
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return strings.TrimSpace(b.String())
}

// Match reports whether two names refer to the same place.
func Match(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// EvaluateClick classifies a click on clicked while target is asked for.
func EvaluateClick(clicked, target string) Outcome {
	if target != "" && Match(clicked, target) {
		return Correct
	}
	return Incorrect
}
