package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/seo-intel/backend/capability"
	"github.com/seo-intel/backend/config"
	"github.com/seo-intel/backend/fetcher"
	"github.com/seo-intel/backend/logging"
	"github.com/seo-intel/backend/pipeline"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "seointel",
		Short:         "Analyze written content for SEO signals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			logging.Init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newCompareCommand())

	return rootCmd
}

// newPipeline wires a local pipeline with the built-in capabilities, or the
// remote services when the environment configures them.
func newPipeline(cfg *config.Config) *pipeline.Pipeline {
	var ranker capability.KeywordRanker = capability.NewHeuristic()
	var analyzer capability.LanguageAnalyzer = capability.NewHeuristic()
	if cfg.KeywordServiceURL != "" || cfg.NLPServiceURL != "" {
		remote := capability.NewRemoteClient(cfg.KeywordServiceURL, cfg.NLPServiceURL,
			cfg.StageTimeout, logging.Component("capability"))
		if cfg.KeywordServiceURL != "" {
			ranker = remote
		}
		if cfg.NLPServiceURL != "" {
			analyzer = remote
		}
	}
	return pipeline.New(cfg, ranker, analyzer, nil, logging.Component("pipeline"))
}

func newFetcher(cfg *config.Config) *fetcher.Fetcher {
	return fetcher.New(cfg.FetchTimeout, cfg.FetchCacheTTL, nil, logging.Component("fetcher"))
}
