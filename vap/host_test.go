package vap

import "github.com/rustyeddy/vapstudy/market"

// fakeHost is a scripted chart. Fields are flipped between calls to model
// host updates.
type fakeHost struct {
	bars        []market.Bar
	first, last int
	tick        float64
	multiplier  int
	active      bool
	defaults    bool
	final       bool

	reads  int
	writes int
}

func newFakeHost(bars []market.Bar, first, last int, tick float64) *fakeHost {
	return &fakeHost{
		bars:       bars,
		first:      first,
		last:       last,
		tick:       tick,
		multiplier: 1,
		active:     true,
	}
}

func (h *fakeHost) Bar(i int) (market.Bar, bool) {
	h.reads++
	if i < 0 || i >= len(h.bars) {
		return market.Bar{}, false
	}
	return h.bars[i], true
}

func (h *fakeHost) Multiplier() int                 { return h.multiplier }
func (h *fakeHost) SetDefaults() bool               { return h.defaults }
func (h *fakeHost) LastCall() bool                  { return h.final }
func (h *fakeHost) ChartActive() bool               { return h.active }
func (h *fakeHost) VisibleRange() (first, last int) { return h.first, h.last }
func (h *fakeHost) TickSize() float64               { return h.tick }

func (h *fakeHost) SetMultiplier(m int) {
	h.writes++
	h.multiplier = m
}

// flatBars returns n bars each spanning [low, low+spread].
func flatBars(n int, low, spread float64) []market.Bar {
	bars := make([]market.Bar, n)
	for i := range bars {
		bars[i] = market.Bar{Low: low, High: low + spread}
	}
	return bars
}
