// Package config loads quizbox settings from YAML with environment
// overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

//go:embed defaults/config.yaml
var defaultConfigYAML []byte

// Config is the full application configuration.
type Config struct {
	DB         string         `yaml:"db"`
	ContentDir string         `yaml:"content_dir"`
	LogLevel   string         `yaml:"log_level"`
	Timing     TimingConfig   `yaml:"timing"`
	Feedback   FeedbackConfig `yaml:"feedback"`

	// Source is where the configuration was read from.
	Source string `yaml:"-"`
}

// TimingConfig controls question pacing.
type TimingConfig struct {
	AdvanceDelay time.Duration `yaml:"advance_delay"`
	RoundTime    int           `yaml:"round_time"` // seconds
}

// FeedbackConfig controls the coin flash and confetti.
type FeedbackConfig struct {
	FlashDuration    time.Duration `yaml:"flash_duration"`
	ConfettiDuration time.Duration `yaml:"confetti_duration"`
	FlashTotalCoins  bool          `yaml:"flash_total_coins"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Timing: TimingConfig{
			AdvanceDelay: 1500 * time.Millisecond,
			RoundTime:    10,
		},
		Feedback: FeedbackConfig{
			FlashDuration:    1200 * time.Millisecond,
			ConfettiDuration: 1500 * time.Millisecond,
		},
		Source: "defaults",
	}
}

// ApplyEnv overrides cfg from QUIZBOX_* environment variables.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("QUIZBOX_DB"); v != "" {
		cfg.DB = v
	}
	if v := os.Getenv("QUIZBOX_CONTENT"); v != "" {
		cfg.ContentDir = v
	}
	if v := os.Getenv("QUIZBOX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("QUIZBOX_ADVANCE_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("QUIZBOX_ADVANCE_DELAY: %w", err)
		}
		cfg.Timing.AdvanceDelay = d
	}
	if v := os.Getenv("QUIZBOX_ROUND_TIME"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("QUIZBOX_ROUND_TIME: %w", err)
		}
		cfg.Timing.RoundTime = n
	}
	return nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	var errs []error
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Timing.AdvanceDelay < 0 {
		errs = append(errs, errors.New("timing.advance_delay must not be negative"))
	}
	if c.Timing.RoundTime <= 0 {
		errs = append(errs, errors.New("timing.round_time must be positive"))
	}
	if c.Feedback.FlashDuration < 0 || c.Feedback.ConfettiDuration < 0 {
		errs = append(errs, errors.New("feedback durations must not be negative"))
	}
	return errors.Join(errs...)
}

// Level returns the parsed log level, defaulting to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
