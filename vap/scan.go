package vap

import "github.com/rustyeddy/vapstudy/market"

// PriceRange is what a scan found. Adaptive scans fill Highest and Lowest;
// lookback scans fill MaxSpread and MeanSpread. Bars counts the bars read.
type PriceRange struct {
	Highest    float64
	Lowest     float64
	MaxSpread  float64
	MeanSpread float64
	Bars       int
}

// Width is Highest minus Lowest.
func (r PriceRange) Width() float64 {
	return r.Highest - r.Lowest
}

// ScanVisible finds the highest high and lowest low over vp, inclusive.
// Negative indices and indices past the data are skipped. Extremes are
// seeded from the first bar actually read.
func ScanVisible(src market.BarSource, vp Viewport) PriceRange {
	var r PriceRange
	for i := vp.First; i <= vp.Last; i++ {
		if i < 0 {
			continue
		}
		b, ok := src.Bar(i)
		if !ok {
			continue
		}
		if r.Bars == 0 {
			r.Highest, r.Lowest = b.High, b.Low
		} else {
			r.Highest = max(r.Highest, b.High)
			r.Lowest = min(r.Lowest, b.Low)
		}
		r.Bars++
	}
	return r
}

// ScanLookback measures bar spreads over [last-lookback, last], skipping
// negative indices. MeanSpread divides by lookback, not by the number of
// bars read, so a window clipped at index 0 averages low. A zero lookback
// is a one-bar window and divides by one.
func ScanLookback(src market.BarSource, last, lookback int) PriceRange {
	var r PriceRange
	var sum float64
	for i := last - lookback; i <= last; i++ {
		if i < 0 {
			continue
		}
		b, ok := src.Bar(i)
		if !ok {
			continue
		}
		spread := b.Spread()
		r.MaxSpread = max(r.MaxSpread, spread)
		sum += spread
		r.Bars++
	}
	r.MeanSpread = sum / float64(max(lookback, 1))
	return r
}
