// Package config loads application settings from an optional config
// file and environment variables, with sensible defaults for both.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the tunable settings of the app.
type Config struct {
	DBPath       string  `mapstructure:"db_path"`       // sqlite database location; empty means the platform default
	CorpusPath   string  `mapstructure:"corpus_path"`   // external corpus JSON; empty means the embedded corpus
	MaxQuestions int     `mapstructure:"max_questions"` // questions generated per session
	Quota        Quota   `mapstructure:"quota"`         // session quota section
	Quiz         Quiz    `mapstructure:"quiz"`          // question tuning section
}

// Quota limits how many sessions can start per refill window.
type Quota struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

// Quiz tunes question generation and grading.
type Quiz struct {
	RecallThreshold float64 `mapstructure:"recall_threshold"` // minimum similarity for a recall answer to pass
}

// Load reads configuration from an optional config file and the
// environment. Every key has a default so a bare install works.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/versequest")

	v.SetDefault("db_path", "")
	v.SetDefault("corpus_path", "")
	v.SetDefault("max_questions", 5)
	v.SetDefault("quota.limit", 5)
	v.SetDefault("quota.window", "24h")
	v.SetDefault("quiz.recall_threshold", 0.90)

	v.SetEnvPrefix("versequest")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("db_path", "VERSEQUEST_DB")
	_ = v.BindEnv("corpus_path", "VERSEQUEST_CORPUS")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MaxQuestions < 1 {
		return fmt.Errorf("max_questions must be at least 1, got %d", c.MaxQuestions)
	}
	if c.Quota.Limit < 1 {
		return fmt.Errorf("quota.limit must be at least 1, got %d", c.Quota.Limit)
	}
	if c.Quota.Window <= 0 {
		return fmt.Errorf("quota.window must be positive, got %s", c.Quota.Window)
	}
	if c.Quiz.RecallThreshold <= 0 || c.Quiz.RecallThreshold > 1 {
		return fmt.Errorf("quiz.recall_threshold must be in (0, 1], got %g", c.Quiz.RecallThreshold)
	}
	return nil
}
