package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every search location at empty temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("QUIZBOX_DB", "")
	t.Setenv("QUIZBOX_CONTENT", "")
	t.Setenv("QUIZBOX_LOG_LEVEL", "")
	t.Setenv("QUIZBOX_ADVANCE_DELAY", "")
	t.Setenv("QUIZBOX_ROUND_TIME", "")
	t.Chdir(t.TempDir())
	return home
}

func TestEmbeddedDefaultsMatchDefaultConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "embedded", cfg.Source)

	want := DefaultConfig()
	want.Source = cfg.Source
	assert.Equal(t, want, cfg)
}

func TestLoadCustomPathKeepsMissingDefaults(t *testing.T) {
	isolate(t)

	p := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(p, []byte("log_level: debug\ntiming:\n  advance_delay: 800ms\n"), 0o644))

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, p, cfg.Source)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, 800*time.Millisecond, cfg.Timing.AdvanceDelay)
	assert.Equal(t, 10, cfg.Timing.RoundTime)
	assert.Equal(t, 1200*time.Millisecond, cfg.Feedback.FlashDuration)
}

func TestLoadCustomPathErrors(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	p := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(p, []byte("timing: [1, 2"), 0o644))
	_, err = Load(p)
	assert.Error(t, err)
}

func TestLoadUserConfigDir(t *testing.T) {
	home := isolate(t)

	dir := filepath.Join(home, "config", "quizbox")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("feedback:\n  flash_total_coins: true\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.Source)
	assert.True(t, cfg.Feedback.FlashTotalCoins)
}

func TestLoadLocalConfigsDir(t *testing.T) {
	isolate(t)

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(LocalPath, []byte("timing:\n  round_time: 6\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, LocalPath, cfg.Source)
	assert.Equal(t, 6, cfg.Timing.RoundTime)
}

func TestLoadMalformedLocalConfigErrors(t *testing.T) {
	isolate(t)

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(LocalPath, []byte("timing: [1, 2"), 0o644))

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), LocalPath)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("QUIZBOX_DB", "/tmp/q.db")
	t.Setenv("QUIZBOX_CONTENT", "/tmp/content")
	t.Setenv("QUIZBOX_LOG_LEVEL", "warn")
	t.Setenv("QUIZBOX_ADVANCE_DELAY", "2s")
	t.Setenv("QUIZBOX_ROUND_TIME", "15")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/q.db", cfg.DB)
	assert.Equal(t, "/tmp/content", cfg.ContentDir)
	assert.Equal(t, log.WarnLevel, cfg.Level())
	assert.Equal(t, 2*time.Second, cfg.Timing.AdvanceDelay)
	assert.Equal(t, 15, cfg.Timing.RoundTime)
}

func TestEnvOverrideParseErrors(t *testing.T) {
	isolate(t)
	t.Setenv("QUIZBOX_ROUND_TIME", "soon")

	_, err := Load("")
	assert.ErrorContains(t, err, "QUIZBOX_ROUND_TIME")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, false},
		{"zero round", func(c *Config) { c.Timing.RoundTime = 0 }, false},
		{"negative delay", func(c *Config) { c.Timing.AdvanceDelay = -time.Second }, false},
		{"negative flash", func(c *Config) { c.Feedback.FlashDuration = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
