// Package pipeline implements the content analysis pipeline: it normalizes
// input text, extracts and ranks keywords, computes keyword density, collects
// named entities and topic phrases, scores readability and sentiment,
// synthesizes meta suggestions, and assembles everything into one report.
// Capability failures degrade to empty report sections; only empty input
// aborts a run.
package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonreiter/govader"

	"github.com/seo-intel/backend/capability"
	"github.com/seo-intel/backend/config"
	"github.com/seo-intel/backend/stats"
)

// Pipeline runs content analyses. Construct once with New and reuse; the
// capability handles it owns are process-scoped, never implicit singletons.
type Pipeline struct {
	cfg       *config.Config
	ranker    capability.KeywordRanker
	analyzer  capability.LanguageAnalyzer
	sentiment *govader.SentimentIntensityAnalyzer
	stats     *stats.Storage
	log       *slog.Logger
}

// New builds a pipeline around the given capability implementations.
// The stats storage may be nil.
func New(cfg *config.Config, ranker capability.KeywordRanker, analyzer capability.LanguageAnalyzer, st *stats.Storage, log *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:       cfg,
		ranker:    ranker,
		analyzer:  analyzer,
		sentiment: govader.NewSentimentIntensityAnalyzer(),
		stats:     st,
		log:       log,
	}
}

// Analyze runs the full pipeline over one input and returns the report.
// The keyword, entity, and scoring stages run concurrently; they only read
// the normalized text and write disjoint slots. Returns ErrEmptyInput when
// the input has no analyzable text.
func (p *Pipeline) Analyze(ctx context.Context, input Input) (*AnalysisReport, error) {
	normalized, err := Normalize(input.Text, p.cfg.MaxInputLength)
	if err != nil {
		return nil, err
	}

	var (
		ranked   []capability.RankedPhrase
		analysis capability.Analysis
		read     ReadabilityScore
		sent     SentimentSummary
	)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		stageCtx, cancel := context.WithTimeout(ctx, p.cfg.StageTimeout)
		defer cancel()
		r, err := p.ranker.Rank(stageCtx, normalized, p.cfg.TopKeywordCount)
		if err != nil {
			p.degrade("keywords", err)
			return
		}
		ranked = r
	}()

	go func() {
		defer wg.Done()
		stageCtx, cancel := context.WithTimeout(ctx, p.cfg.StageTimeout)
		defer cancel()
		a, err := p.analyzer.Analyze(stageCtx, normalized)
		if err != nil {
			p.degrade("entities", err)
			return
		}
		analysis = a
	}()

	go func() {
		defer wg.Done()
		read = Readability(normalized)
		sent = scoreSentiment(p.sentiment, normalized)
	}()

	wg.Wait()

	keywords := rankKeywords(ranked, normalized, p.cfg.TopKeywordCount)

	densities := make([]DensityEntry, 0, len(keywords))
	for _, kw := range keywords {
		densities = append(densities, Density(normalized, kw.Phrase))
	}

	report := &AnalysisReport{
		ID:            uuid.NewString(),
		Source:        input.SourceURL,
		Kind:          input.Kind,
		TextLength:    len(normalized),
		WordCount:     len(Tokens(normalized)),
		SentenceCount: len(Sentences(normalized)),
		Keywords:      keywords,
		Densities:     densities,
		Entities:      collectEntities(analysis),
		Topics:        collectTopics(analysis, normalized, p.cfg.TopicPhraseLimit),
		Readability:   read,
		Sentiment:     sent,
		Meta:          SuggestMeta(normalized, keywords, p.cfg.MetaTitleMaxLen, p.cfg.MetaDescriptionMaxLen),
		CreatedAt:     time.Now().UTC(),
	}
	if report.Kind == "" {
		report.Kind = SourceText
	}

	p.stats.RecordAnalysis()
	return report, nil
}

// degrade logs a capability failure and counts it. The affected report
// section stays empty; the run continues.
func (p *Pipeline) degrade(stage string, err error) {
	p.log.Warn("stage degraded to empty result",
		slog.String("stage", stage),
		slog.Any("error", err))
	p.stats.RecordDegraded()
}
