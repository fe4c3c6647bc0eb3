package app

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestMakeExcerptShortContentUnchanged(t *testing.T) {
	content := "The quick brown fox jumps over the lazy dog"
	if got := makeExcerpt(content); got != content {
		t.Fatalf("excerpt = %q, want content unchanged", got)
	}
}

func TestMakeExcerptExactly100Unchanged(t *testing.T) {
	content := strings.Repeat("x", 100)
	if got := makeExcerpt(content); got != content {
		t.Fatalf("100-char content should be its own excerpt, got %q", got)
	}
}

func TestMakeExcerptTrimsToWordBoundary(t *testing.T) {
	// "word " repeated: position 100 lands mid-word, so the excerpt must end
	// at the last complete word before it.
	content := strings.Repeat("lorem ipsum ", 20)
	got := makeExcerpt(content)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("long content excerpt must end with ellipsis, got %q", got)
	}
	body := strings.TrimSuffix(got, "...")
	if strings.HasSuffix(body, " ") {
		t.Fatalf("excerpt body must not end with whitespace: %q", body)
	}
	if !strings.HasPrefix(content, body) {
		t.Fatalf("excerpt body must be a prefix of content: %q", body)
	}
	rest := content[len(body):]
	if !strings.HasPrefix(rest, " ") {
		t.Fatalf("excerpt must end at a word boundary, next chars: %q", rest[:5])
	}
}

func TestMakeExcerptLengthBound(t *testing.T) {
	tests := []string{
		strings.Repeat("a", 250),                 // no spaces at all
		strings.Repeat("word ", 50),              // regular prose
		"short",                                  // trivial
		strings.Repeat("ä", 150),                 // multi-byte runes
		strings.Repeat("one two three four ", 9), // boundary near 100
	}
	for _, content := range tests {
		got := makeExcerpt(content)
		if n := utf8.RuneCountInString(got); n > excerptMaxRunes+3 {
			t.Fatalf("excerpt of %d runes exceeds bound: %d", utf8.RuneCountInString(content), n)
		}
		if utf8.RuneCountInString(content) <= excerptMaxRunes && got != content {
			t.Fatalf("short content must be returned unchanged")
		}
	}
}

func TestMakeExcerptNoSpacesHardCut(t *testing.T) {
	content := strings.Repeat("a", 150)
	got := makeExcerpt(content)
	if got != strings.Repeat("a", 100)+"..." {
		t.Fatalf("spaceless content should hard-cut at 100, got %d runes", utf8.RuneCountInString(got))
	}
}
