package vap

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSettings = errors.New("invalid study settings")

const (
	DefaultMagicMultiplier        = 0.3
	DefaultChangeThresholdPercent = 0.30
	DefaultTargetLevels           = 50
)

// Settings are the study inputs. They are fixed for the life of a Study.
type Settings struct {
	Debug bool `json:"debug" yaml:"debug" env:"DEBUG, overwrite"`
	// LookbackBars is the legacy scan window. Zero means unset: a reset
	// replaces it with the visible span, and a scan that still sees zero
	// reads the last bar only.
	LookbackBars    int     `json:"lookback_bars" yaml:"lookback_bars" env:"LOOKBACK_BARS, overwrite"`
	MagicMultiplier float64 `json:"magic_multiplier" yaml:"magic_multiplier" env:"MAGIC_MULTIPLIER, overwrite"`
	UseBarAverage   bool    `json:"use_bar_average" yaml:"use_bar_average" env:"USE_BAR_AVERAGE, overwrite"`
	// ChangeThresholdPercent is carried for compatibility with saved study
	// inputs. The recompute path does not consult it.
	ChangeThresholdPercent float64 `json:"change_threshold_percent" yaml:"change_threshold_percent" env:"CHANGE_THRESHOLD_PERCENT, overwrite"`
	Adaptive               bool    `json:"adaptive" yaml:"adaptive" env:"ADAPTIVE, overwrite"`
	TargetLevels           int     `json:"target_levels" yaml:"target_levels" env:"TARGET_LEVELS, overwrite"`
}

// DefaultSettings returns the study defaults. The lookback is the number of
// bars visible when the study is added.
func DefaultSettings(visibleSpan int) Settings {
	if visibleSpan < 0 {
		visibleSpan = 0
	}
	return Settings{
		LookbackBars:           visibleSpan,
		MagicMultiplier:        DefaultMagicMultiplier,
		ChangeThresholdPercent: DefaultChangeThresholdPercent,
		Adaptive:               true,
		TargetLevels:           DefaultTargetLevels,
	}
}

// Validate rejects settings that would divide by zero in either algorithm.
func (s Settings) Validate() error {
	if s.TargetLevels <= 0 {
		return fmt.Errorf("%w: target_levels must be positive, got %d", ErrInvalidSettings, s.TargetLevels)
	}
	if !(s.MagicMultiplier > 0) || math.IsInf(s.MagicMultiplier, 0) {
		return fmt.Errorf("%w: magic_multiplier must be positive, got %v", ErrInvalidSettings, s.MagicMultiplier)
	}
	if s.LookbackBars < 0 {
		return fmt.Errorf("%w: lookback_bars must not be negative, got %d", ErrInvalidSettings, s.LookbackBars)
	}
	if s.ChangeThresholdPercent < 0 || math.IsNaN(s.ChangeThresholdPercent) {
		return fmt.Errorf("%w: change_threshold_percent must not be negative", ErrInvalidSettings)
	}
	return nil
}

// Mode returns the algorithm these settings select.
func (s Settings) Mode() Mode {
	if s.Adaptive {
		return ModeAdaptive
	}
	return ModeLegacy
}
