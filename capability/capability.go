// Package capability defines the external language-model capabilities the
// analysis pipeline depends on: semantic keyword ranking and named-entity /
// noun-phrase analysis. Implementations are injected into the pipeline at
// construction so a remote model service, the built-in heuristics, or a test
// double can be swapped without touching the pipeline itself.
package capability

import "context"

// RankedPhrase is one candidate keyword with its relevance score in [0,1].
type RankedPhrase struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
}

// Entity is a named entity found in the text. Position is the byte offset of
// the first character, or -1 when the backing capability does not report one.
type Entity struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Position int    `json:"position"`
}

// Analysis bundles the outputs of the entity/phrase capability.
type Analysis struct {
	Entities    []Entity `json:"entities"`
	NounPhrases []string `json:"noun_phrases"`
}

// KeywordRanker ranks candidate keywords for a text. Implementations must
// return phrases ordered by descending relevance, at most topN of them.
type KeywordRanker interface {
	Rank(ctx context.Context, text string, topN int) ([]RankedPhrase, error)
}

// LanguageAnalyzer extracts named entities and noun phrases from a text.
type LanguageAnalyzer interface {
	Analyze(ctx context.Context, text string) (Analysis, error)
}
