package config

import (
	_ "embed"
)

//go:embed defaults/settings.yaml
var defaultSettingsYAML []byte

// DefaultSettings returns the built-in settings.
func DefaultSettings() Settings {
	return Settings{
		Pacing: PacingConfig{
			Preset:          PaceStandard,
			MismatchDelayMS: 1500,
			CompleteDelayMS: 2000,
		},
		Audio: AudioConfig{
			Muted: false,
			Bell:  true,
		},
		Storage: StorageConfig{
			DBPath: "~/.legacy/scores.db",
		},
		Catalog: CatalogConfig{
			ID: "delta",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
