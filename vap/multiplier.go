package vap

import "math"

// LegacyOverrideTickSize is the tick size above which the legacy algorithm
// replaces its result with maxSpread * magic * tickSize, even when the bar
// average was requested.
const LegacyOverrideTickSize = 0.01

// MinMultiplier is the smallest multiplier ever published.
const MinMultiplier = 1

type Mode int

const (
	ModeAdaptive Mode = iota
	ModeLegacy
)

func (m Mode) String() string {
	switch m {
	case ModeAdaptive:
		return "adaptive"
	case ModeLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Calculate returns the multiplier for r under the algorithm s selects.
func Calculate(r PriceRange, s Settings, tickSize float64) int {
	if s.Adaptive {
		return Adaptive(r, tickSize, s.TargetLevels)
	}
	return Legacy(r, tickSize, s.MagicMultiplier, s.UseBarAverage)
}

// Adaptive sizes buckets so the visible price span holds about
// targetLevels of them.
func Adaptive(r PriceRange, tickSize float64, targetLevels int) int {
	ticks := r.Width() / tickSize
	return floor(round(ticks / float64(targetLevels)))
}

// Legacy derives the multiplier from recent bar spreads and the magic
// constant.
func Legacy(r PriceRange, tickSize, magic float64, useBarAverage bool) int {
	base := r.MaxSpread
	if useBarAverage {
		base = r.MeanSpread
	}
	m := round(base / magic)
	if legacyOverride(tickSize) {
		m = round(r.MaxSpread * magic * tickSize)
	}
	return floor(m)
}

// legacyOverride decides when the tick-size formula wins over the spread
// formula. It discards the bar-average result too.
func legacyOverride(tickSize float64) bool {
	return tickSize > LegacyOverrideTickSize
}

// round is half away from zero. NaN rounds to zero and out-of-range values
// saturate.
func round(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	case v <= math.MinInt32:
		return math.MinInt32
	}
	return int(math.Round(v))
}

func floor(m int) int {
	return max(m, MinMultiplier)
}
