package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.TopKeywordCount != 10 {
		t.Errorf("top keyword count: got %d, want 10", cfg.TopKeywordCount)
	}
	if cfg.MaxInputLength != 20000 {
		t.Errorf("max input length: got %d, want 20000", cfg.MaxInputLength)
	}
	if cfg.TopicPhraseLimit != 15 {
		t.Errorf("topic phrase limit: got %d, want 15", cfg.TopicPhraseLimit)
	}
	if cfg.MetaTitleMaxLen != 60 || cfg.MetaDescriptionMaxLen != 160 {
		t.Errorf("meta bounds: got %d/%d, want 60/160", cfg.MetaTitleMaxLen, cfg.MetaDescriptionMaxLen)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TOP_KEYWORD_COUNT", "5")
	t.Setenv("STAGE_TIMEOUT_MS", "250")
	t.Setenv("PORT", "9999")

	cfg := Load()
	if cfg.TopKeywordCount != 5 {
		t.Errorf("top keyword count: got %d, want 5", cfg.TopKeywordCount)
	}
	if cfg.StageTimeout != 250*time.Millisecond {
		t.Errorf("stage timeout: got %v, want 250ms", cfg.StageTimeout)
	}
	if cfg.Port != "9999" {
		t.Errorf("port: got %q, want 9999", cfg.Port)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("TOP_KEYWORD_COUNT", "not-a-number")
	t.Setenv("MAX_INPUT_LENGTH", "-3")

	cfg := Load()
	if cfg.TopKeywordCount != 10 {
		t.Errorf("top keyword count: got %d, want default on parse failure", cfg.TopKeywordCount)
	}
	if cfg.MaxInputLength != 20000 {
		t.Errorf("max input length: got %d, want default on negative value", cfg.MaxInputLength)
	}
}
