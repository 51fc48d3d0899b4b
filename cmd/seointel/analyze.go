package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seo-intel/backend/config"
	"github.com/seo-intel/backend/pipeline"
)

func newAnalyzeCommand() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "analyze <url|file|->",
		Short: "Run a content analysis and print the report",
		Long: `Analyze written content for SEO signals. The argument is a URL,
a path to a text file, or "-" to read from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			report, err := runAnalysis(cmd.Context(), cfg, args[0])
			if err != nil {
				return err
			}

			renderReport(cmd.OutOrStdout(), report)

			if csvPath != "" {
				if err := writeCSVFile(csvPath, report); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nCSV export written to %s\n", csvPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the metric/value CSV export to this path")
	return cmd
}

// runAnalysis resolves the target into text and runs the pipeline over it.
func runAnalysis(ctx context.Context, cfg *config.Config, target string) (*pipeline.AnalysisReport, error) {
	input, err := resolveTarget(ctx, cfg, target)
	if err != nil {
		return nil, err
	}
	return newPipeline(cfg).Analyze(ctx, input)
}

func resolveTarget(ctx context.Context, cfg *config.Config, target string) (pipeline.Input, error) {
	switch {
	case target == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return pipeline.Input{}, fmt.Errorf("read stdin: %w", err)
		}
		return pipeline.Input{Text: string(data), Kind: pipeline.SourceText}, nil

	case strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://"):
		text, err := newFetcher(cfg).Fetch(ctx, target)
		if err != nil {
			return pipeline.Input{}, err
		}
		return pipeline.Input{Text: text, SourceURL: target, Kind: pipeline.SourceURL}, nil

	default:
		data, err := os.ReadFile(target)
		if err != nil {
			return pipeline.Input{}, fmt.Errorf("read file: %w", err)
		}
		return pipeline.Input{Text: string(data), Kind: pipeline.SourceText}, nil
	}
}

func writeCSVFile(path string, report *pipeline.AnalysisReport) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	if err := pipeline.WriteCSV(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
