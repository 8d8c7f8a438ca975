// Package indicators computes the session studies whose values are exported
// next to the volume-at-price histogram: session VWAP with deviation bands,
// the overnight range and period equilibrium levels.
package indicators

import "github.com/rustyeddy/vapstudy/market"

// Indicator computes a single streaming value from bars.
// It is deterministic and safe to use in live and replayed sessions.
type Indicator interface {
	// Name returns a stable identifier like "VWAP(rth)" or "EQ(week)".
	Name() string

	// Reset clears all internal state. Session indicators are reset at
	// each session boundary.
	Reset()

	// Update consumes the next bar and updates internal state.
	Update(b market.Bar)

	// Ready reports whether Value() is meaningful.
	Ready() bool
}

type ValueF64 interface {
	// Value returns the current indicator value, NaN when not Ready.
	Value() float64
}

// typical is the bar's typical price.
func typical(b market.Bar) float64 {
	return (b.High + b.Low + b.Close) / 3
}
