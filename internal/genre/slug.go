// Package genre normalizes free-text genre labels into stable slugs.
// Feed filtering matches on the slug, never on the display label.
package genre

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slugify reduces a label to lowercase ASCII letters and digits joined by
// single hyphens: "Science Fiction" -> "science-fiction", "Sci-Fi/Fantasy"
// -> "sci-fi-fantasy". Accents decompose and drop, so "Röman" -> "roman".
// A label with no usable characters slugs to "".
func Slugify(label string) string {
	var b strings.Builder
	b.Grow(len(label))

	hyphenDue := false
	for _, r := range norm.NFKD.String(label) {
		switch {
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r > unicode.MaxASCII:
			// Combining marks and other non-ASCII drop out entirely
			// rather than becoming separators.
			continue
		default:
			if b.Len() > 0 {
				hyphenDue = true
			}
			continue
		}
		if hyphenDue {
			b.WriteByte('-')
			hyphenDue = false
		}
		b.WriteRune(r)
	}

	return b.String()
}
