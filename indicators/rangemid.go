package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/vapstudy/market"
)

// Range tracks the high and low of a period. Its Value is the equilibrium,
// the midpoint of the two.
type Range struct {
	name      string
	high, low float64
	n         int
}

func NewRange(period string) *Range {
	return &Range{name: fmt.Sprintf("EQ(%s)", period)}
}

func (r *Range) Name() string { return r.name }

func (r *Range) Reset() {
	r.high, r.low, r.n = 0, 0, 0
}

func (r *Range) Update(b market.Bar) {
	if r.n == 0 || b.High > r.high {
		r.high = b.High
	}
	if r.n == 0 || b.Low < r.low {
		r.low = b.Low
	}
	r.n++
}

func (r *Range) Ready() bool { return r.n > 0 }

func (r *Range) High() float64 {
	if !r.Ready() {
		return math.NaN()
	}
	return r.high
}

func (r *Range) Low() float64 {
	if !r.Ready() {
		return math.NaN()
	}
	return r.low
}

func (r *Range) Value() float64 {
	if !r.Ready() {
		return math.NaN()
	}
	return (r.high + r.low) / 2
}
