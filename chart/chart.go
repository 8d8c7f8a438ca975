// Package chart is a simulated charting host. It holds the bars, visible
// range, flags and active multiplier a real chart would expose to the study,
// and replays recorded sessions against it.
package chart

import (
	"github.com/rustyeddy/vapstudy/market"
	"github.com/rustyeddy/vapstudy/vap"
)

var _ vap.Host = (*Chart)(nil)

// Chart implements vap.Host over an in-memory bar set.
type Chart struct {
	bars *market.BarSet
	tick float64

	first, last int
	active      bool
	defaults    bool
	final       bool

	multiplier int
	writes     int
}

// New returns an active chart showing every bar. The first call after New
// is the one that sets the study defaults, as when a study is added.
func New(bars *market.BarSet, tick float64) *Chart {
	if bars == nil {
		bars = market.NewBarSet("", nil)
	}
	return &Chart{
		bars:       bars,
		tick:       tick,
		first:      0,
		last:       bars.Len() - 1,
		active:     true,
		defaults:   true,
		multiplier: vap.MinMultiplier,
	}
}

func (c *Chart) Bar(i int) (market.Bar, bool) { return c.bars.Bar(i) }

func (c *Chart) Multiplier() int { return c.multiplier }

func (c *Chart) SetMultiplier(m int) {
	c.multiplier = m
	c.writes++
}

func (c *Chart) SetDefaults() bool               { return c.defaults }
func (c *Chart) LastCall() bool                  { return c.final }
func (c *Chart) ChartActive() bool               { return c.active }
func (c *Chart) VisibleRange() (first, last int) { return c.first, c.last }
func (c *Chart) TickSize() float64               { return c.tick }

// Writes counts SetMultiplier calls.
func (c *Chart) Writes() int { return c.writes }

// Symbol is the instrument of the bar set.
func (c *Chart) Symbol() string { return c.bars.Instrument }

// LastIndex is the index of the newest bar, or -1 when there are none.
func (c *Chart) LastIndex() int { return c.bars.Len() - 1 }

// LastBar returns the newest bar.
func (c *Chart) LastBar() (market.Bar, bool) { return c.bars.Bar(c.LastIndex()) }

// View scrolls or zooms the chart.
func (c *Chart) View(first, last int) {
	c.first, c.last = first, last
}

func (c *Chart) SetActive(active bool) { c.active = active }

func (c *Chart) SetTickSize(tick float64) { c.tick = tick }

// RequestDefaults makes the next call reinitialize the study.
func (c *Chart) RequestDefaults() { c.defaults = true }

// Remove makes the next call the final one.
func (c *Chart) Remove() { c.final = true }

// AddBar appends a live bar. A chart that was showing the newest bar
// follows it, keeping the same number of bars in view.
func (c *Chart) AddBar(b market.Bar) {
	if c.bars.Len() == 0 {
		c.bars.Append(b)
		c.first, c.last = 0, 0
		return
	}
	following := c.last == c.bars.Len()-1
	c.bars.Append(b)
	if following {
		c.first++
		c.last++
	}
}

// endCall clears the one-shot defaults flag once the study has seen it.
func (c *Chart) endCall() {
	c.defaults = false
}
