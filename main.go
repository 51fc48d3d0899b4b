package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/seo-intel/backend/capability"
	"github.com/seo-intel/backend/config"
	"github.com/seo-intel/backend/fetcher"
	"github.com/seo-intel/backend/history"
	"github.com/seo-intel/backend/logging"
	"github.com/seo-intel/backend/middleware"
	"github.com/seo-intel/backend/pipeline"
	"github.com/seo-intel/backend/stats"
)

var (
	cfg          *config.Config
	pipe         *pipeline.Pipeline
	pages        *fetcher.Fetcher
	reportStore  *history.Store
	statsStorage *stats.Storage
)

func loadEnv() {
	// Try .env.development first (local development), then regular .env.
	if err := godotenv.Load(".env.development"); err != nil {
		if err := godotenv.Load(); err != nil {
			slog.Info("no .env file found, using environment variables")
		}
	}
}

func setupGinMode() {
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
}

func main() {
	loadEnv()
	logging.Init()
	setupGinMode()

	cfg = config.Load()

	var err error
	statsStorage, err = stats.NewStorage(cfg.DataDir)
	if err != nil {
		slog.Error("failed to initialize stats storage", slog.Any("error", err))
		os.Exit(1)
	}

	reportStore, err = history.Open(cfg.DataDir)
	if err != nil {
		slog.Error("failed to open report store", slog.Any("error", err))
		os.Exit(1)
	}

	pages = fetcher.New(cfg.FetchTimeout, cfg.FetchCacheTTL, statsStorage, logging.Component("fetcher"))
	pipe = pipeline.New(cfg, newRanker(), newAnalyzer(), statsStorage, logging.Component("pipeline"))

	rateLimiter := middleware.NewRateLimiter(2, 5) // 2 requests per second, bursts of 5

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(rateLimiter.RateLimit())
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/analyze", analyzeContent)
		api.POST("/compare", compareContent)

		api.GET("/history", listHistory)
		api.GET("/reports/:id/export", exportReport)

		api.GET("/statistics", func(c *gin.Context) {
			c.JSON(http.StatusOK, statsStorage.GetCurrentStats())
		})
	}

	slog.Info("server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		slog.Error("server failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// newRanker prefers the remote keyword service when configured and falls
// back to the built-in heuristic.
func newRanker() capability.KeywordRanker {
	if cfg.KeywordServiceURL != "" {
		return capability.NewRemoteClient(cfg.KeywordServiceURL, cfg.NLPServiceURL,
			cfg.StageTimeout, logging.Component("capability"))
	}
	return capability.NewHeuristic()
}

func newAnalyzer() capability.LanguageAnalyzer {
	if cfg.NLPServiceURL != "" {
		return capability.NewRemoteClient(cfg.KeywordServiceURL, cfg.NLPServiceURL,
			cfg.StageTimeout, logging.Component("capability"))
	}
	return capability.NewHeuristic()
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// analysisInput is one text-or-url input as the API receives it.
type analysisInput struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// resolve turns an API input into a pipeline input, fetching the URL when one
// was given.
func resolve(c *gin.Context, in analysisInput) (pipeline.Input, error) {
	if strings.TrimSpace(in.URL) != "" {
		text, err := pages.Fetch(c.Request.Context(), in.URL)
		if err != nil {
			return pipeline.Input{}, err
		}
		return pipeline.Input{Text: text, SourceURL: in.URL, Kind: pipeline.SourceURL}, nil
	}
	return pipeline.Input{Text: in.Text, Kind: pipeline.SourceText}, nil
}

func analyzeContent(c *gin.Context) {
	var request analysisInput
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input, err := resolve(c, request)
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := pipe.Analyze(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := reportStore.Save(c.Request.Context(), report); err != nil {
		slog.Error("failed to persist report",
			slog.String("report_id", report.ID),
			slog.Any("error", err))
	}

	c.JSON(http.StatusOK, report)
}

func compareContent(c *gin.Context) {
	var request struct {
		A analysisInput `json:"a"`
		B analysisInput `json:"b"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	inputA, err := resolve(c, request.A)
	if err != nil {
		respondError(c, err)
		return
	}
	inputB, err := resolve(c, request.B)
	if err != nil {
		respondError(c, err)
		return
	}

	reportA, err := pipe.Analyze(c.Request.Context(), inputA)
	if err != nil {
		respondError(c, err)
		return
	}
	reportB, err := pipe.Analyze(c.Request.Context(), inputB)
	if err != nil {
		respondError(c, err)
		return
	}

	statsStorage.RecordComparison()

	c.JSON(http.StatusOK, gin.H{
		"a":          reportA,
		"b":          reportB,
		"comparison": pipeline.Compare(reportA, reportB),
	})
}

func listHistory(c *gin.Context) {
	summaries, err := reportStore.Recent(c.Request.Context(), 20)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": summaries})
}

func exportReport(c *gin.Context) {
	report, err := reportStore.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, history.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load report"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="seo_report.csv"`)
	if err := pipeline.WriteCSV(c.Writer, report); err != nil {
		slog.Error("failed to write csv export",
			slog.String("report_id", report.ID),
			slog.Any("error", err))
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, pipeline.ErrEmptyInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No analyzable text in input"})
	case errors.Is(err, fetcher.ErrSourceUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
	}
}
