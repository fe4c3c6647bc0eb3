package app

import (
	"strings"
	"unicode"
)

// excerptMaxRunes is the excerpt length limit before the ellipsis.
const excerptMaxRunes = 100

// makeExcerpt derives the journal preview: the first 100 characters of
// content, trimmed back to the last word boundary so it never ends mid-word,
// with "..." appended. Content that already fits is returned unchanged.
func makeExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptMaxRunes {
		return content
	}
	cut := runes[:excerptMaxRunes]
	boundary := -1
	for i, r := range cut {
		if unicode.IsSpace(r) {
			boundary = i
		}
	}
	if boundary > 0 {
		cut = cut[:boundary]
	}
	return strings.TrimRightFunc(string(cut), unicode.IsSpace) + "..."
}
