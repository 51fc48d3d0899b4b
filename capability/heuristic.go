package capability

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Heuristic is the built-in, dependency-free capability implementation. It
// ranks keywords by frequency with a position boost and recognizes entities
// with rule-based patterns. It is deterministic for a given input, which also
// makes it the reference double for pipeline tests.
type Heuristic struct{}

// NewHeuristic returns the built-in capability implementation.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

const (
	minTokenRunes = 2
	bigramBonus   = 1.5
	positionBoost = 0.3
)

type token struct {
	text  string // original case
	lower string
	start int // byte offset into the source text
}

// tokenize splits text into letter/digit runs, keeping byte offsets.
func tokenize(text string) []token {
	var tokens []token
	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			raw := text[start:i]
			tokens = append(tokens, token{text: raw, lower: strings.ToLower(raw), start: start})
			start = -1
		}
	}
	if start >= 0 {
		raw := text[start:]
		tokens = append(tokens, token{text: raw, lower: strings.ToLower(raw), start: start})
	}
	return tokens
}

type candidate struct {
	phrase   string
	count    int
	firstIdx int
	words    int
}

// Rank scores unigram and bigram candidates by frequency, boosted by how
// early the candidate first appears, and normalizes scores to [0,1].
func (h *Heuristic) Rank(ctx context.Context, text string, topN int) ([]RankedPhrase, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, nil
	}

	isContent := func(t token) bool {
		return !stopwords[t.lower] && utf8.RuneCountInString(t.lower) >= minTokenRunes
	}

	seen := make(map[string]*candidate)
	order := make([]*candidate, 0, len(tokens))
	add := func(phrase string, idx, words int) {
		c, ok := seen[phrase]
		if !ok {
			c = &candidate{phrase: phrase, firstIdx: idx, words: words}
			seen[phrase] = c
			order = append(order, c)
		}
		c.count++
	}

	for i, t := range tokens {
		if !isContent(t) {
			continue
		}
		add(t.lower, i, 1)
		if i+1 < len(tokens) && isContent(tokens[i+1]) {
			add(t.lower+" "+tokens[i+1].lower, i, 2)
		}
	}

	scored := make([]RankedPhrase, 0, len(order))
	raw := make(map[string]float64, len(order))
	maxRaw := 0.0
	for _, c := range order {
		if c.words > 1 && c.count < 2 {
			continue // one-off bigrams are noise
		}
		score := float64(c.count)
		if c.words > 1 {
			score *= bigramBonus
		}
		score *= 1 + positionBoost*(1-float64(c.firstIdx)/float64(len(tokens)))
		raw[c.phrase] = score
		if score > maxRaw {
			maxRaw = score
		}
		scored = append(scored, RankedPhrase{Phrase: c.phrase})
	}
	if maxRaw == 0 {
		return nil, nil
	}
	for i := range scored {
		scored[i].Score = raw[scored[i].Phrase] / maxRaw
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return seen[scored[i].Phrase].firstIdx < seen[scored[j].Phrase].firstIdx
	})

	if topN > 0 && len(scored) > topN {
		scored = scored[:topN]
	}
	return scored, nil
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	urlPattern   = regexp.MustCompile(`https?://[^\s<>"]+|www\.[^\s<>"]+`)
	datePattern  = regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:,\s*\d{4})?\b|\b(?:19|20)\d{2}\b`)
)

// Analyze extracts rule-based entities (emails, URLs, dates, capitalized name
// spans) and noun phrases (maximal runs of content words).
func (h *Heuristic) Analyze(ctx context.Context, text string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}

	var entities []Entity
	for _, m := range emailPattern.FindAllStringIndex(text, -1) {
		entities = append(entities, Entity{Text: text[m[0]:m[1]], Category: "EMAIL", Position: m[0]})
	}
	for _, m := range urlPattern.FindAllStringIndex(text, -1) {
		// The pattern is greedy; drop sentence punctuation stuck to the end.
		url := strings.TrimRight(text[m[0]:m[1]], ".,;:!?)")
		entities = append(entities, Entity{Text: url, Category: "URL", Position: m[0]})
	}
	for _, m := range datePattern.FindAllStringIndex(text, -1) {
		entities = append(entities, Entity{Text: text[m[0]:m[1]], Category: "DATE", Position: m[0]})
	}

	tokens := tokenize(text)
	entities = append(entities, nameSpans(text, tokens)...)

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Position < entities[j].Position
	})

	return Analysis{Entities: entities, NounPhrases: nounPhrases(text, tokens)}, nil
}

// nameSpans finds runs of capitalized words. A run that opens a sentence only
// counts when it is at least two words long, since any word is capitalized
// there.
func nameSpans(text string, tokens []token) []Entity {
	var spans []Entity
	i := 0
	for i < len(tokens) {
		if !isCapitalized(tokens[i]) {
			i++
			continue
		}
		j := i
		for j+1 < len(tokens) && isCapitalized(tokens[j+1]) && !sentenceBreakBetween(text, tokens[j], tokens[j+1]) {
			j++
		}
		length := j - i + 1
		if length >= 2 || !atSentenceStart(text, tokens[i]) {
			start := tokens[i].start
			end := tokens[j].start + len(tokens[j].text)
			spans = append(spans, Entity{Text: text[start:end], Category: "NAME", Position: start})
		}
		i = j + 1
	}
	return spans
}

func isCapitalized(t token) bool {
	r, _ := utf8.DecodeRuneInString(t.text)
	if !unicode.IsUpper(r) {
		return false
	}
	return !stopwords[t.lower] && utf8.RuneCountInString(t.text) >= minTokenRunes
}

func atSentenceStart(text string, t token) bool {
	for i := t.start - 1; i >= 0; i-- {
		r, _ := utf8.DecodeLastRuneInString(text[:i+1])
		if unicode.IsSpace(r) || r == '"' || r == '\'' || r == '(' {
			continue
		}
		return r == '.' || r == '!' || r == '?'
	}
	return true
}

func sentenceBreakBetween(text string, a, b token) bool {
	between := text[a.start+len(a.text) : b.start]
	return strings.ContainsAny(between, ".!?")
}

// nounPhrases returns maximal runs of consecutive content words, lowercased.
// Runs break at punctuation and are clipped to four words. Single words are
// kept; downstream filtering decides what survives.
func nounPhrases(text string, tokens []token) []string {
	var phrases []string
	var run []string
	flush := func() {
		if len(run) == 0 {
			return
		}
		if len(run) > 4 {
			run = run[:4]
		}
		phrases = append(phrases, strings.Join(run, " "))
		run = nil
	}
	var prev *token
	for i := range tokens {
		t := tokens[i]
		if prev != nil && strings.ContainsAny(text[prev.start+len(prev.text):t.start], ".,!?;:") {
			flush()
		}
		prev = &tokens[i]
		if stopwords[t.lower] || utf8.RuneCountInString(t.lower) < minTokenRunes || isNumeric(t.lower) {
			flush()
			continue
		}
		run = append(run, t.lower)
	}
	flush()
	return phrases
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
