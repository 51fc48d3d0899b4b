package pipeline

import (
	"sort"
	"strings"

	"github.com/seo-intel/backend/capability"
)

// rankKeywords turns raw capability output into the final candidate list:
// scores clamped to [0,1], sorted descending with first-occurrence tie-break,
// case-insensitive uniqueness, substring subsumption dedup, capped at topN.
func rankKeywords(ranked []capability.RankedPhrase, normalized string, topN int) []KeywordCandidate {
	lowerText := strings.ToLower(normalized)

	type scored struct {
		phrase   string
		lower    string
		score    float64
		firstPos int
	}

	candidates := make([]scored, 0, len(ranked))
	for _, r := range ranked {
		phrase := strings.TrimSpace(r.Phrase)
		if phrase == "" {
			continue
		}
		lower := strings.ToLower(phrase)
		pos := strings.Index(lowerText, lower)
		if pos < 0 {
			pos = len(lowerText) // never seen in text, sorts last among ties
		}
		candidates = append(candidates, scored{
			phrase:   phrase,
			lower:    lower,
			score:    clamp01(r.Score),
			firstPos: pos,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].firstPos < candidates[j].firstPos
	})

	var kept []KeywordCandidate
	keptLower := make([]string, 0, topN)
	for _, c := range candidates {
		if topN > 0 && len(kept) == topN {
			break
		}
		if subsumed(c.lower, keptLower) {
			continue
		}
		kept = append(kept, KeywordCandidate{
			Phrase: c.phrase,
			Score:  c.score,
			Rank:   len(kept) + 1,
		})
		keptLower = append(keptLower, c.lower)
	}
	return kept
}

// subsumed reports whether phrase duplicates or is contained in an
// already-kept, higher-ranked phrase. Because candidates arrive in rank
// order, a contained phrase never outscores its container here.
func subsumed(phrase string, kept []string) bool {
	for _, k := range kept {
		if k == phrase || strings.Contains(k, phrase) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
