package vap

import "github.com/rustyeddy/vapstudy/market"

// MultiplierSink is the host's active multiplier.
type MultiplierSink interface {
	Multiplier() int
	SetMultiplier(m int)
}

// Host is the chart the study runs inside. Calls are serialized per chart.
type Host interface {
	market.BarSource
	MultiplierSink

	// SetDefaults is true on the call that (re)initializes the study.
	SetDefaults() bool
	// LastCall is true on the final call before the study is removed.
	LastCall() bool
	ChartActive() bool
	VisibleRange() (first, last int)
	TickSize() float64
}
