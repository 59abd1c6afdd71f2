package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify converts text into a slug made of lowercase ASCII letters, digits
// and single hyphens. The result never starts or ends with a hyphen and may be
// empty when nothing in text survives transliteration.
func Slugify(text string) string {
	folded := foldMarks(transliterate(text))

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false

	for _, r := range folded {
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}

		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case dropped[r]:
		default:
			pendingSep = true
		}
	}

	return b.String()
}

// transliterate spells out table symbols and letters.
func transliterate(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		if word, ok := symbols[r]; ok {
			b.WriteByte(' ')
			b.WriteString(word)
			b.WriteByte(' ')
			continue
		}
		if repl, ok := letters[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// foldMarks decomposes text and strips combining marks ("café" -> "cafe").
func foldMarks(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}
