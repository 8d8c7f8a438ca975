package market

import "time"

// Bar is one chart bar. The multiplier engine only reads High and Low.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Spread returns the bar's high-low range.
func (b Bar) Spread() float64 {
	return b.High - b.Low
}

// BarSource gives indexed read access to the bars of a chart.
type BarSource interface {
	// Bar returns the bar at index i. ok is false when i is outside the data.
	Bar(i int) (b Bar, ok bool)
}

// BarSet is an in-memory BarSource backed by a slice.
type BarSet struct {
	Instrument string
	Source     string
	Bars       []Bar
}

func NewBarSet(instrument string, bars []Bar) *BarSet {
	return &BarSet{Instrument: instrument, Bars: bars}
}

func (bs *BarSet) Bar(i int) (Bar, bool) {
	if i < 0 || i >= len(bs.Bars) {
		return Bar{}, false
	}
	return bs.Bars[i], true
}

func (bs *BarSet) Len() int {
	return len(bs.Bars)
}

func (bs *BarSet) Append(b Bar) {
	bs.Bars = append(bs.Bars, b)
}
