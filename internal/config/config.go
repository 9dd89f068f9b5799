// Package config provides YAML-based settings loading for the game:
// presentation pacing, audio cues, storage location and catalog selection.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Settings is the full configuration.
type Settings struct {
	Pacing  PacingConfig  `yaml:"pacing"`
	Audio   AudioConfig   `yaml:"audio"`
	Storage StorageConfig `yaml:"storage"`
	Catalog CatalogConfig `yaml:"catalog"`
	Log     LogConfig     `yaml:"log"`
}

// PacingConfig defines the pauses after a verdict, in milliseconds.
type PacingConfig struct {
	Preset          PacePreset `yaml:"preset"`
	MismatchDelayMS int        `yaml:"mismatch_delay_ms"`
	CompleteDelayMS int        `yaml:"complete_delay_ms"`
}

// MismatchDelay returns the pause before a wrong pick set is cleared.
func (p PacingConfig) MismatchDelay() time.Duration {
	return time.Duration(p.MismatchDelayMS) * time.Millisecond
}

// CompleteDelay returns the default pause before a stage completes.
func (p PacingConfig) CompleteDelay() time.Duration {
	return time.Duration(p.CompleteDelayMS) * time.Millisecond
}

// AudioConfig controls feedback cues.
type AudioConfig struct {
	Muted bool `yaml:"muted"`
	Bell  bool `yaml:"bell"` // Ring the terminal bell on error and unlock
}

// StorageConfig locates the leaderboard database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// CatalogConfig selects the stage content.
// Path, when set, takes precedence over ID.
type CatalogConfig struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// LogConfig sets log verbosity.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ParseLevel returns the configured log level, defaulting to info.
func (l LogConfig) ParseLevel() log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(l.Level)))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Validate reports settings that cannot be used.
func (s Settings) Validate() error {
	if s.Pacing.MismatchDelayMS < 0 || s.Pacing.CompleteDelayMS < 0 {
		return fmt.Errorf("config: pacing delays must not be negative")
	}
	if s.Pacing.Preset != "" && !s.Pacing.Preset.Valid() {
		return fmt.Errorf("config: unknown pacing preset %q", s.Pacing.Preset)
	}
	if s.Catalog.ID == "" && s.Catalog.Path == "" {
		return fmt.Errorf("config: catalog id or path is required")
	}
	return nil
}
