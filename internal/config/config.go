package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	StorageDir       string        `yaml:"storage_dir" mapstructure:"storage_dir"`
	LearningDisabled bool          `yaml:"learning_disabled" mapstructure:"learning_disabled"`
	FuzzyThreshold   float64       `yaml:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`
	MinConfidence    float64       `yaml:"min_confidence" mapstructure:"min_confidence"`
	MaxLogSize       int           `yaml:"max_log_size" mapstructure:"max_log_size"`
	MaxHistory       int           `yaml:"max_history" mapstructure:"max_history"`
	Search           SearchConfig  `yaml:"search" mapstructure:"search"`
	Scraper          ScraperConfig `yaml:"scraper" mapstructure:"scraper"`
	Debug            bool          `yaml:"debug" mapstructure:"debug"`
}

type SearchConfig struct {
	MaxResults int `yaml:"max_results" mapstructure:"max_results"`
	TimeoutSec int `yaml:"timeout_sec" mapstructure:"timeout_sec"`
}

type ScraperConfig struct {
	UserAgent       string  `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSec      int     `yaml:"timeout_sec" mapstructure:"timeout_sec"`
	MaxRetries      int     `yaml:"max_retries" mapstructure:"max_retries"`
	RateLimitDelay  float64 `yaml:"rate_limit_delay" mapstructure:"rate_limit_delay"`
	MaxContentChars int     `yaml:"max_content_chars" mapstructure:"max_content_chars"`
}

func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		StorageDir:     filepath.Join(home, ".musage", "learning"),
		FuzzyThreshold: 0.85,
		MinConfidence:  0.75,
		MaxLogSize:     1000,
		MaxHistory:     10,
		Search: SearchConfig{
			MaxResults: 5,
			TimeoutSec: 15,
		},
		Scraper: ScraperConfig{
			UserAgent:       "Mozilla/5.0 (compatible; MuSage/1.0; +https://github.com/jeanpaul/musage)",
			TimeoutSec:      10,
			MaxRetries:      3,
			RateLimitDelay:  1.0,
			MaxContentChars: 5000,
		},
	}
}

func (s SearchConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

func (s ScraperConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

func (s ScraperConfig) RateDelay() time.Duration {
	return time.Duration(s.RateLimitDelay * float64(time.Second))
}

func Load() (*Config, error) {
	cfg := DefaultConfig()
	v := viper.New()

	// Every key must be registered as a default: viper only consults the
	// environment for keys it already knows about, so without these the
	// MUSAGE_* overrides are silently ignored when no config file exists.
	v.SetDefault("storage_dir", cfg.StorageDir)
	v.SetDefault("learning_disabled", cfg.LearningDisabled)
	v.SetDefault("fuzzy_threshold", cfg.FuzzyThreshold)
	v.SetDefault("min_confidence", cfg.MinConfidence)
	v.SetDefault("max_log_size", cfg.MaxLogSize)
	v.SetDefault("max_history", cfg.MaxHistory)
	v.SetDefault("search.max_results", cfg.Search.MaxResults)
	v.SetDefault("search.timeout_sec", cfg.Search.TimeoutSec)
	v.SetDefault("scraper.user_agent", cfg.Scraper.UserAgent)
	v.SetDefault("scraper.timeout_sec", cfg.Scraper.TimeoutSec)
	v.SetDefault("scraper.max_retries", cfg.Scraper.MaxRetries)
	v.SetDefault("scraper.rate_limit_delay", cfg.Scraper.RateLimitDelay)
	v.SetDefault("scraper.max_content_chars", cfg.Scraper.MaxContentChars)
	v.SetDefault("debug", cfg.Debug)

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Search paths
	v.AddConfigPath(".")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "musage"))
	}
	home, _ := os.UserHomeDir()
	v.AddConfigPath(filepath.Join(home, ".config", "musage"))

	// Environment variables (MUSAGE_STORAGE_DIR, MUSAGE_LEARNING_DISABLED, ...)
	v.SetEnvPrefix("MUSAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error produced
			return nil, err
		}
		// Config file not found; ignore and use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	cfg.StorageDir = os.ExpandEnv(cfg.StorageDir)
	return cfg, nil
}
