package config

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.FuzzyThreshold != 0.85 {
		t.Errorf("FuzzyThreshold = %v, want 0.85", cfg.FuzzyThreshold)
	}
	if cfg.MaxLogSize != 1000 {
		t.Errorf("MaxLogSize = %d, want 1000", cfg.MaxLogSize)
	}
	if cfg.StorageDir == "" {
		t.Error("StorageDir should default to a home subdirectory")
	}
	if cfg.LearningDisabled {
		t.Error("learning should be enabled by default")
	}
}

func TestLoadHonorsEnvOverrides(t *testing.T) {
	t.Setenv("MUSAGE_STORAGE_DIR", "/tmp/musage-alt")
	t.Setenv("MUSAGE_LEARNING_DISABLED", "true")
	t.Setenv("MUSAGE_SCRAPER_MAX_RETRIES", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.StorageDir != "/tmp/musage-alt" {
		t.Errorf("StorageDir = %q, want env override", cfg.StorageDir)
	}
	if !cfg.LearningDisabled {
		t.Error("LearningDisabled should come from MUSAGE_LEARNING_DISABLED")
	}
	if cfg.Scraper.MaxRetries != 7 {
		t.Errorf("Scraper.MaxRetries = %d, want 7 from env", cfg.Scraper.MaxRetries)
	}
	// Untouched keys keep their defaults.
	if cfg.FuzzyThreshold != 0.85 {
		t.Errorf("FuzzyThreshold = %v, want default 0.85", cfg.FuzzyThreshold)
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.Search.Timeout(); got != 15*time.Second {
		t.Errorf("search timeout = %v", got)
	}
	if got := cfg.Scraper.RateDelay(); got != time.Second {
		t.Errorf("rate delay = %v", got)
	}

	half := ScraperConfig{RateLimitDelay: 0.5}
	if got := half.RateDelay(); got != 500*time.Millisecond {
		t.Errorf("fractional rate delay = %v", got)
	}
}
