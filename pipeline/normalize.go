package pipeline

import (
	"strings"
	"unicode/utf8"
)

// Normalize converts raw input into the canonical analysis string: whitespace
// runs collapsed to single spaces, leading/trailing whitespace stripped,
// sentence punctuation preserved. Returns ErrEmptyInput when nothing remains.
// Text beyond maxLen runes is cut at a sentence boundary, falling back to the
// last word boundary when a single sentence overruns the cap.
func Normalize(raw string, maxLen int) (string, error) {
	collapsed := strings.Join(strings.Fields(raw), " ")
	if collapsed == "" {
		return "", ErrEmptyInput
	}
	if maxLen <= 0 || utf8.RuneCountInString(collapsed) <= maxLen {
		return collapsed, nil
	}
	return truncate(collapsed, maxLen), nil
}

func truncate(s string, maxLen int) string {
	// Find the byte offset of the maxLen-th rune.
	cut := len(s)
	count := 0
	for i := range s {
		if count == maxLen {
			cut = i
			break
		}
		count++
	}
	head := s[:cut]

	if end := lastSentenceEnd(head); end > 0 {
		return strings.TrimSpace(head[:end])
	}
	if sp := strings.LastIndexByte(head, ' '); sp > 0 {
		return strings.TrimSpace(head[:sp])
	}
	return head
}

// lastSentenceEnd returns the byte offset just past the last terminal
// punctuation mark in s, or 0 when there is none.
func lastSentenceEnd(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case '.', '!', '?':
			return i + 1
		}
	}
	return 0
}
