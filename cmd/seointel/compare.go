package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seo-intel/backend/config"
	"github.com/seo-intel/backend/pipeline"
)

func newCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Analyze two pieces of content and compare their keyword sets",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			reportA, err := runAnalysis(cmd.Context(), cfg, args[0])
			if err != nil {
				return fmt.Errorf("analyze %s: %w", args[0], err)
			}
			reportB, err := runAnalysis(cmd.Context(), cfg, args[1])
			if err != nil {
				return fmt.Errorf("analyze %s: %w", args[1], err)
			}

			result := pipeline.Compare(reportA, reportB)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "A: %s\n", describe(reportA, args[0]))
			fmt.Fprintf(out, "B: %s\n\n", describe(reportB, args[1]))
			renderComparison(out, result)
			return nil
		},
	}
}

func describe(r *pipeline.AnalysisReport, target string) string {
	return fmt.Sprintf("%s (%d words, ease %.2f, %d keywords)",
		truncateLabel(target, 60), r.WordCount, r.Readability.Ease, len(r.Keywords))
}

func truncateLabel(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-3]) + "..."
}
