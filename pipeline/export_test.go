package pipeline

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
)

func TestWriteCSV(t *testing.T) {
	report := &AnalysisReport{
		ID:            "test-id",
		Kind:          SourceText,
		TextLength:    64,
		WordCount:     10,
		SentenceCount: 2,
		Keywords: []KeywordCandidate{
			{Phrase: "seo", Score: 0.9, Rank: 1},
		},
		Densities: []DensityEntry{
			{Keyword: "seo", Occurrences: 2, Percentage: 20},
		},
		Readability: ReadabilityScore{Ease: 75.5, GradeLevel: 4.2},
		Sentiment:   SentimentSummary{Label: "neutral"},
		Meta:        MetaSuggestion{Title: "Some title", Description: "Some description"},
		CreatedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, report); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v", err)
	}

	if got := records[0]; got[0] != "metric" || got[1] != "value" {
		t.Errorf("header row: got %v, want [metric value]", got)
	}

	byMetric := make(map[string]string, len(records))
	for _, rec := range records[1:] {
		byMetric[rec[0]] = rec[1]
	}

	if byMetric["report_id"] != "test-id" {
		t.Errorf("report_id: got %q", byMetric["report_id"])
	}
	if byMetric["reading_ease"] != "75.50" {
		t.Errorf("reading_ease: got %q, want 75.50", byMetric["reading_ease"])
	}
	if byMetric["word_count"] != "10" {
		t.Errorf("word_count: got %q, want 10", byMetric["word_count"])
	}
	if got, ok := byMetric["keyword:seo"]; !ok || !strings.Contains(got, "density=20.00%") {
		t.Errorf("keyword row: got %q, want score and density", got)
	}
}
