package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all tunables for the content analysis pipeline and server.
// Values come from environment variables (loaded from .env in main) with
// sensible defaults for local use.
type Config struct {
	Port    string
	DataDir string

	// Pipeline knobs
	TopKeywordCount       int
	MaxInputLength        int
	TopicPhraseLimit      int
	MetaTitleMaxLen       int
	MetaDescriptionMaxLen int
	StageTimeout          time.Duration

	// Fetcher knobs
	FetchTimeout  time.Duration
	FetchCacheTTL time.Duration

	// Optional remote capability services. When empty the built-in
	// heuristic implementations are used instead.
	KeywordServiceURL string
	NLPServiceURL     string
}

// Load reads configuration from the environment.
func Load() *Config {
	return &Config{
		Port:                  envString("PORT", "8082"),
		DataDir:               envString("DATA_DIR", "data"),
		TopKeywordCount:       envInt("TOP_KEYWORD_COUNT", 10),
		MaxInputLength:        envInt("MAX_INPUT_LENGTH", 20000),
		TopicPhraseLimit:      envInt("TOPIC_PHRASE_LIMIT", 15),
		MetaTitleMaxLen:       envInt("META_TITLE_MAX_LEN", 60),
		MetaDescriptionMaxLen: envInt("META_DESCRIPTION_MAX_LEN", 160),
		StageTimeout:          envDuration("STAGE_TIMEOUT_MS", 5000*time.Millisecond),
		FetchTimeout:          envDuration("FETCH_TIMEOUT_MS", 15000*time.Millisecond),
		FetchCacheTTL:         envDuration("FETCH_CACHE_TTL_MS", 30*time.Minute),
		KeywordServiceURL:     envString("KEYWORD_SERVICE_URL", ""),
		NLPServiceURL:         envString("NLP_SERVICE_URL", ""),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
