package pipeline

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func kw(phrase string) []KeywordCandidate {
	return []KeywordCandidate{{Phrase: phrase, Score: 1, Rank: 1}}
}

func TestSuggestMetaLengthBounds(t *testing.T) {
	long := strings.Repeat("some reasonably long sentence about search engines ", 10) + "."
	meta := SuggestMeta(long, kw("search engines"), 60, 160)

	if n := utf8.RuneCountInString(meta.Title); n > 60 {
		t.Errorf("title length %d exceeds 60", n)
	}
	if n := utf8.RuneCountInString(meta.Description); n > 160 {
		t.Errorf("description length %d exceeds 160", n)
	}
}

func TestSuggestMetaPrefixesMissingKeyword(t *testing.T) {
	meta := SuggestMeta("Websites need good structure. More detail follows here.", kw("seo"), 60, 160)
	if !strings.HasPrefix(meta.Title, "Seo - ") {
		t.Errorf("title %q should be prefixed with the top keyword", meta.Title)
	}
	if !strings.Contains(strings.ToLower(meta.Description), "seo") {
		t.Errorf("description %q should mention the top keyword", meta.Description)
	}
}

func TestSuggestMetaKeepsPresentKeyword(t *testing.T) {
	meta := SuggestMeta("SEO helps websites. It matters a lot.", kw("seo"), 60, 160)
	if meta.Title != "SEO helps websites" {
		t.Errorf("title %q should be the unmodified first sentence", meta.Title)
	}
}

func TestSuggestMetaExtractiveFallback(t *testing.T) {
	meta := SuggestMeta("Plain first sentence. Plain second sentence.", nil, 60, 160)
	if meta.Title != "Plain first sentence" {
		t.Errorf("title %q, want first sentence with no injection", meta.Title)
	}
	if meta.Description != "Plain first sentence. Plain second sentence." {
		t.Errorf("description %q, want the two-sentence window", meta.Description)
	}
}

func TestSuggestMetaNeverSplitsWords(t *testing.T) {
	meta := SuggestMeta("supercalifragilistic expialidocious antidisestablishmentarianism words continue", nil, 30, 160)
	for _, w := range strings.Fields(meta.Title) {
		if !strings.Contains("supercalifragilistic expialidocious antidisestablishmentarianism words continue", w) {
			t.Errorf("title contains split word %q", w)
		}
	}
}

func TestSuggestMetaSingleWordInput(t *testing.T) {
	meta := SuggestMeta("hello", nil, 60, 160)
	if meta.Title != "hello" || meta.Description != "hello." {
		t.Errorf("got %+v, want extractive passthrough", meta)
	}
}
