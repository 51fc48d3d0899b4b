package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// WriteCSV renders the report as the downloadable metric/value table:
// a `metric,value` header row, the scalar metrics, then one row per keyword
// carrying its score and density.
func WriteCSV(w io.Writer, r *AnalysisReport) error {
	cw := csv.NewWriter(w)

	rows := [][]string{
		{"metric", "value"},
		{"report_id", r.ID},
		{"source", sourceLabel(r)},
		{"created_at", r.CreatedAt.Format(time.RFC3339)},
		{"text_length", fmt.Sprintf("%d", r.TextLength)},
		{"word_count", fmt.Sprintf("%d", r.WordCount)},
		{"sentence_count", fmt.Sprintf("%d", r.SentenceCount)},
		{"reading_ease", fmt.Sprintf("%.2f", r.Readability.Ease)},
		{"grade_level", fmt.Sprintf("%.2f", r.Readability.GradeLevel)},
		{"sentiment", r.Sentiment.Label},
		{"sentiment_compound", fmt.Sprintf("%.2f", r.Sentiment.Compound)},
		{"meta_title", r.Meta.Title},
		{"meta_description", r.Meta.Description},
		{"keyword_count", fmt.Sprintf("%d", len(r.Keywords))},
		{"entity_count", fmt.Sprintf("%d", len(r.Entities))},
		{"topic_count", fmt.Sprintf("%d", len(r.Topics))},
	}

	density := make(map[string]DensityEntry, len(r.Densities))
	for _, d := range r.Densities {
		density[d.Keyword] = d
	}
	for _, kw := range r.Keywords {
		d := density[kw.Phrase]
		rows = append(rows, []string{
			"keyword:" + kw.Phrase,
			fmt.Sprintf("score=%.2f density=%.2f%%", kw.Score, d.Percentage),
		})
	}

	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func sourceLabel(r *AnalysisReport) string {
	if r.Kind == SourceURL && r.Source != "" {
		return r.Source
	}
	return string(SourceText)
}
