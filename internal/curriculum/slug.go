package curriculum

import (
	"strings"
	"unicode"
)

// Slug converts a display title into the kebab-case ID used for URLs,
// storage keys and registry lookups. Anything outside [a-z0-9], whitespace
// and '-' is dropped, the result is trimmed, and whitespace runs become a
// single '-'. Existing hyphens are kept as-is, so "Number - Fractions"
// becomes "number---fractions".
func Slug(s string) string {
	var kept strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			kept.WriteRune(r)
		case unicode.IsSpace(r):
			kept.WriteRune(' ')
		}
	}

	var b strings.Builder
	inSpace := false
	for _, r := range strings.TrimSpace(kept.String()) {
		if r == ' ' {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
