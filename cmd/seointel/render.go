package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/seo-intel/backend/pipeline"
)

func renderReport(out io.Writer, r *pipeline.AnalysisReport) {
	fmt.Fprintf(out, "Report %s (%s)\n", r.ID, r.Kind)
	fmt.Fprintf(out, "Words: %d  Sentences: %d  Reading ease: %.2f  Grade level: %.2f\n",
		r.WordCount, r.SentenceCount, r.Readability.Ease, r.Readability.GradeLevel)
	fmt.Fprintf(out, "Sentiment: %s (compound %.2f)\n\n", r.Sentiment.Label, r.Sentiment.Compound)

	density := make(map[string]pipeline.DensityEntry, len(r.Densities))
	for _, d := range r.Densities {
		density[d.Keyword] = d
	}

	kw := table.NewWriter()
	kw.SetOutputMirror(out)
	kw.SetTitle("Top Keywords")
	kw.AppendHeader(table.Row{"#", "Phrase", "Score", "Occurrences", "Density"})
	for _, k := range r.Keywords {
		d := density[k.Phrase]
		kw.AppendRow(table.Row{
			k.Rank, k.Phrase,
			fmt.Sprintf("%.2f", k.Score),
			d.Occurrences,
			fmt.Sprintf("%.2f%%", d.Percentage),
		})
	}
	kw.Render()

	if len(r.Entities) > 0 {
		et := table.NewWriter()
		et.SetOutputMirror(out)
		et.SetTitle("Named Entities")
		et.AppendHeader(table.Row{"Text", "Category"})
		for _, e := range r.Entities {
			et.AppendRow(table.Row{e.Text, e.Category})
		}
		et.Render()
	}

	if len(r.Topics) > 0 {
		phrases := make([]string, 0, len(r.Topics))
		for _, t := range r.Topics {
			phrases = append(phrases, t.Phrase)
		}
		fmt.Fprintf(out, "\nTopics: %s\n", strings.Join(phrases, ", "))
	}

	fmt.Fprintf(out, "\nMeta title:       %s\n", r.Meta.Title)
	fmt.Fprintf(out, "Meta description: %s\n", r.Meta.Description)
}

func renderComparison(out io.Writer, result pipeline.ComparisonResult) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle("Comparison")
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"Shared keywords", joinOrNone(result.SharedKeywords)})
	t.AppendRow(table.Row{"Unique to A", joinOrNone(result.UniqueToA)})
	t.AppendRow(table.Row{"Unique to B", joinOrNone(result.UniqueToB)})
	t.AppendRow(table.Row{"Readability delta (B-A)", fmt.Sprintf("%.2f", result.ReadabilityDelta)})
	t.AppendRow(table.Row{"Keyword count delta (B-A)", result.KeywordCountDelta})
	t.Render()
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
