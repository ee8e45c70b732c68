package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalPath is the project-local config file probed after the user file.
const LocalPath = "configs/quizbox.yaml"

// Load reads the configuration and applies environment overrides.
// Search order: customPath -> user config dir -> ./configs/quizbox.yaml -> embedded default.
// Keys missing from a file keep their default values.
func Load(customPath string) (Config, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", cfg.Source, err)
	}
	return cfg, nil
}

func loadFile(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.Source = customPath
		return cfg, nil
	}

	// Try user config directory
	if p := UserConfigPath(); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", p, err)
			}
			cfg.Source = p
			return cfg, nil
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(LocalPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", LocalPath, err)
		}
		cfg.Source = LocalPath
		return cfg, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultConfigYAML, &cfg); err != nil {
		return DefaultConfig(), nil
	}
	cfg.Source = "embedded"
	return cfg, nil
}

// UserConfigPath returns $XDG_CONFIG_HOME/quizbox/config.yaml, falling back
// to ~/.config, or empty if neither is available.
func UserConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "quizbox", "config.yaml")
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultConfigYAML
}
