package config

import "fmt"

// PacePreset is a named set of pacing delays.
type PacePreset string

const (
	PaceRelaxed  PacePreset = "relaxed"
	PaceStandard PacePreset = "standard"
	PaceBrisk    PacePreset = "brisk"
)

// Valid reports whether p is a known preset.
func (p PacePreset) Valid() bool {
	switch p {
	case PaceRelaxed, PaceStandard, PaceBrisk:
		return true
	}
	return false
}

// ParsePace converts a flag value to a preset.
func ParsePace(s string) (PacePreset, error) {
	p := PacePreset(s)
	if !p.Valid() {
		return "", fmt.Errorf("config: unknown pacing preset %q (relaxed, standard, brisk)", s)
	}
	return p, nil
}

// ApplyPace overwrites the delays in cfg with the preset's values.
func ApplyPace(cfg *PacingConfig, preset PacePreset) {
	switch preset {
	case PaceRelaxed:
		cfg.MismatchDelayMS = 2500
		cfg.CompleteDelayMS = 3000
	case PaceStandard:
		cfg.MismatchDelayMS = 1500
		cfg.CompleteDelayMS = 2000
	case PaceBrisk:
		cfg.MismatchDelayMS = 600
		cfg.CompleteDelayMS = 800
	default:
		return
	}
	cfg.Preset = preset
}
