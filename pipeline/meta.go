package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SuggestMeta synthesizes a meta title and description from the text and the
// top-ranked keyword. The title is the first sentence, prefixed with the top
// keyword when it is not already there; the description is a window of the
// first two sentences with the keyword injected when absent and space allows.
// With no keywords available the output is purely extractive. Never fails.
func SuggestMeta(normalized string, keywords []KeywordCandidate, titleMax, descMax int) MetaSuggestion {
	sentences := Sentences(normalized)

	title := normalized
	if len(sentences) > 0 {
		title = sentences[0]
	}
	desc := normalized
	if len(sentences) > 0 {
		n := len(sentences)
		if n > 2 {
			n = 2
		}
		desc = strings.Join(sentences[:n], ". ") + "."
	}

	if len(keywords) > 0 {
		top := keywords[0].Phrase
		lower := strings.ToLower(top)
		if !strings.Contains(strings.ToLower(title), lower) {
			title = titleCase(top) + " - " + title
		}
		if !strings.Contains(strings.ToLower(desc), lower) &&
			utf8.RuneCountInString(desc)+utf8.RuneCountInString(top)+2 <= descMax {
			desc = titleCase(top) + ": " + desc
		}
	}

	return MetaSuggestion{
		Title:       truncateAtWord(title, titleMax),
		Description: truncateAtWord(desc, descMax),
	}
}

// truncateAtWord bounds s to max runes, cutting back to the last word
// boundary so no word is split.
func truncateAtWord(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	cut := len(s)
	count := 0
	for i := range s {
		if count == max {
			cut = i
			break
		}
		count++
	}
	head := s[:cut]
	if sp := strings.LastIndexByte(head, ' '); sp > 0 {
		head = head[:sp]
	}
	return strings.TrimRight(head, " ,;:")
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
