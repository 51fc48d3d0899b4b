package pipeline

import (
	"sort"
	"strings"

	"github.com/seo-intel/backend/capability"
)

// collectEntities passes capability entities through unchanged except for
// whitespace trimming. Duplicates are preserved; position is kept when the
// capability reported one.
func collectEntities(analysis capability.Analysis) []Entity {
	entities := make([]Entity, 0, len(analysis.Entities))
	for _, e := range analysis.Entities {
		text := strings.TrimSpace(e.Text)
		if text == "" {
			continue
		}
		entities = append(entities, Entity{
			Text:     text,
			Category: e.Category,
			Position: e.Position,
		})
	}
	return entities
}

// collectTopics filters and dedupes noun phrases: exact-match dedup,
// single-character and pure-stopword phrases dropped, ordered by first
// occurrence in the normalized text, capped at limit. Ordering is recomputed
// here rather than trusted from the capability, so remote analyzers that emit
// in an arbitrary order still produce the same report.
func collectTopics(analysis capability.Analysis, normalized string, limit int) []TopicPhrase {
	lower := strings.ToLower(normalized)

	type positioned struct {
		phrase string
		pos    int
	}
	seen := make(map[string]bool, len(analysis.NounPhrases))
	var topics []positioned
	for i, raw := range analysis.NounPhrases {
		phrase := strings.TrimSpace(raw)
		if len(phrase) <= 1 || seen[phrase] || allStopwords(phrase) {
			continue
		}
		seen[phrase] = true
		pos := strings.Index(lower, strings.ToLower(phrase))
		if pos < 0 {
			// Phrase not literally present; keep it after in-text phrases,
			// stable in emission order.
			pos = len(lower) + i
		}
		topics = append(topics, positioned{phrase: phrase, pos: pos})
	}
	sort.SliceStable(topics, func(i, j int) bool { return topics[i].pos < topics[j].pos })

	if limit > 0 && len(topics) > limit {
		topics = topics[:limit]
	}
	result := make([]TopicPhrase, len(topics))
	for i, tp := range topics {
		result[i] = TopicPhrase{Phrase: tp.phrase}
	}
	return result
}

func allStopwords(phrase string) bool {
	words := strings.Fields(strings.ToLower(phrase))
	if len(words) == 0 {
		return true
	}
	for _, w := range words {
		if !capability.IsStopword(w) {
			return false
		}
	}
	return true
}
