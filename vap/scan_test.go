package vap

import (
	"testing"

	"github.com/rustyeddy/vapstudy/market"
	"github.com/stretchr/testify/assert"
)

// rampBars returns n bars where bar i spans [100+i, 100+2i+1], so spreads
// grow by one per bar.
func rampBars(n int) []market.Bar {
	bars := make([]market.Bar, n)
	for i := range bars {
		bars[i] = market.Bar{Low: 100 + float64(i), High: 100 + 2*float64(i) + 1}
	}
	return bars
}

func TestScanVisibleSkipsNegativeIndices(t *testing.T) {
	bars := rampBars(10)
	bars[8] = market.Bar{Low: 1, High: 9999} // outside the window
	h := newFakeHost(bars, -3, 5, 0.25)

	r := ScanVisible(h, Viewport{First: -3, Last: 5})

	assert.Equal(t, 6, r.Bars)
	assert.Equal(t, 100.0, r.Lowest)
	assert.Equal(t, 111.0, r.Highest)
	// only indices 0..5 are read
	assert.Equal(t, 6, h.reads)
}

func TestScanVisibleSeedsFromFirstBar(t *testing.T) {
	h := newFakeHost(flatBars(4, 5000, 2), 0, 3, 0.25)

	r := ScanVisible(h, Viewport{First: 0, Last: 3})

	assert.Equal(t, 5000.0, r.Lowest)
	assert.Equal(t, 5002.0, r.Highest)
	assert.Equal(t, 2.0, r.Width())
}

func TestScanVisibleEmpty(t *testing.T) {
	h := newFakeHost(rampBars(3), -5, -1, 0.25)
	assert.NotPanics(t, func() {
		r := ScanVisible(h, Viewport{First: -5, Last: -1})
		assert.Equal(t, 0, r.Bars)
	})

	// past the end of the data
	r := ScanVisible(h, Viewport{First: 10, Last: 12})
	assert.Equal(t, 0, r.Bars)
}

func TestScanLookback(t *testing.T) {
	h := newFakeHost(rampBars(10), 0, 9, 0.25)

	r := ScanLookback(h, 9, 3)

	// bars 6..9 have spreads 7, 8, 9, 10
	assert.Equal(t, 4, r.Bars)
	assert.Equal(t, 10.0, r.MaxSpread)
	assert.InDelta(t, 34.0/3.0, r.MeanSpread, 1e-9)
}

func TestScanLookbackDividesByConfiguredLength(t *testing.T) {
	h := newFakeHost(rampBars(10), 0, 2, 0.25)

	r := ScanLookback(h, 2, 5)

	// window is [-3, 2]; only bars 0..2 exist, spreads 1, 2, 3
	assert.Equal(t, 3, r.Bars)
	assert.Equal(t, 3.0, r.MaxSpread)
	assert.InDelta(t, 6.0/5.0, r.MeanSpread, 1e-9)
}

func TestScanLookbackZeroLength(t *testing.T) {
	h := newFakeHost(rampBars(10), 0, 4, 0.25)

	r := ScanLookback(h, 4, 0)

	assert.Equal(t, 1, r.Bars)
	assert.Equal(t, 5.0, r.MaxSpread)
	assert.Equal(t, 5.0, r.MeanSpread)
}
