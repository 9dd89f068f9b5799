package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SettingsFile is the settings file name looked up in each search location.
const SettingsFile = "settings.yaml"

// Load loads settings.
// Search order: customPath -> ~/.legacy/settings.yaml -> ./configs/settings.yaml -> embedded default.
// Keys missing from a file keep their default values.
func Load(customPath string) (Settings, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(SettingsFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", SettingsFile)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultSettingsYAML)
	if err != nil {
		return DefaultSettings(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parse(data []byte) (Settings, error) {
	cfg := DefaultSettings()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Settings{}, err
	}
	if cfg.Pacing.Preset != "" && cfg.Pacing.Preset.Valid() {
		// Explicit delays in the file win over the preset.
		explicit := cfg.Pacing
		ApplyPace(&cfg.Pacing, cfg.Pacing.Preset)
		if hasKey(data, "mismatch_delay_ms") {
			cfg.Pacing.MismatchDelayMS = explicit.MismatchDelayMS
		}
		if hasKey(data, "complete_delay_ms") {
			cfg.Pacing.CompleteDelayMS = explicit.CompleteDelayMS
		}
	}
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

// hasKey reports whether the pacing section of data sets key.
func hasKey(data []byte, key string) bool {
	var raw struct {
		Pacing map[string]any `yaml:"pacing"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false
	}
	_, ok := raw.Pacing[key]
	return ok
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".legacy", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
