package pipeline

import "math"

// Density computes how much of the document a keyword phrase covers.
// Matching is case-insensitive on token boundaries, non-overlapping,
// leftmost-first. The percentage is occurrences × phrase-token-length /
// total-token-count × 100, rounded to two decimals.
func Density(normalized, phrase string) DensityEntry {
	docTokens := Tokens(normalized)
	phraseTokens := Tokens(phrase)

	entry := DensityEntry{Keyword: phrase}
	if len(docTokens) == 0 || len(phraseTokens) == 0 {
		return entry
	}

	k := len(phraseTokens)
	for i := 0; i+k <= len(docTokens); {
		if tokensMatch(docTokens[i:i+k], phraseTokens) {
			entry.Occurrences++
			i += k
			continue
		}
		i++
	}

	pct := float64(entry.Occurrences*k) / float64(len(docTokens)) * 100
	entry.Percentage = round2(pct)
	return entry
}

func tokensMatch(window, phrase []string) bool {
	for i := range phrase {
		if window[i] != phrase[i] {
			return false
		}
	}
	return true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
