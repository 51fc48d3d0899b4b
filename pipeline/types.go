package pipeline

import "time"

// SourceKind tells where the analyzed text came from.
type SourceKind string

const (
	SourceText SourceKind = "text"
	SourceURL  SourceKind = "url"
)

// Input is the tagged input variant for one analysis run.
type Input struct {
	Text      string     `json:"text"`
	SourceURL string     `json:"source_url,omitempty"`
	Kind      SourceKind `json:"kind"`
}

// KeywordCandidate is one ranked keyword. Rank starts at 1 and increases by
// descending score; phrases are unique case-insensitively within a report.
type KeywordCandidate struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
	Rank   int     `json:"rank"`
}

// DensityEntry reports how much of the document a keyword covers.
type DensityEntry struct {
	Keyword     string  `json:"keyword"`
	Occurrences int     `json:"occurrences"`
	Percentage  float64 `json:"percentage"`
}

// Entity is a named entity as the capability reported it, trimmed. Duplicate
// occurrences are preserved. Position is -1 when unknown.
type Entity struct {
	Text     string `json:"text"`
	Category string `json:"category"`
	Position int    `json:"position"`
}

// TopicPhrase is a candidate topic, deduplicated by exact text.
type TopicPhrase struct {
	Phrase string `json:"phrase"`
}

// ReadabilityScore holds the two standard readability estimates. Values are
// not clamped; extremely dense text can push ease below zero.
type ReadabilityScore struct {
	Ease       float64 `json:"ease"`
	GradeLevel float64 `json:"grade_level"`
}

// SentimentSummary is the VADER polarity breakdown of the text.
type SentimentSummary struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Label    string  `json:"label"`
}

// MetaSuggestion is the synthesized title and description pair.
type MetaSuggestion struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AnalysisReport is the full result of one pipeline run. It is immutable once
// built; degraded stages appear as empty sections, never as errors.
type AnalysisReport struct {
	ID            string             `json:"id"`
	Source        string             `json:"source"`
	Kind          SourceKind         `json:"kind"`
	TextLength    int                `json:"text_length"`
	WordCount     int                `json:"word_count"`
	SentenceCount int                `json:"sentence_count"`
	Keywords      []KeywordCandidate `json:"keywords"`
	Densities     []DensityEntry     `json:"densities"`
	Entities      []Entity           `json:"entities"`
	Topics        []TopicPhrase      `json:"topics"`
	Readability   ReadabilityScore   `json:"readability"`
	Sentiment     SentimentSummary   `json:"sentiment"`
	Meta          MetaSuggestion     `json:"meta"`
	CreatedAt     time.Time          `json:"created_at"`
}

// ComparisonResult is the structured diff of two reports.
type ComparisonResult struct {
	SharedKeywords    []string `json:"shared_keywords"`
	UniqueToA         []string `json:"unique_to_a"`
	UniqueToB         []string `json:"unique_to_b"`
	ReadabilityDelta  float64  `json:"readability_delta"`
	KeywordCountDelta int      `json:"keyword_count_delta"`
}
