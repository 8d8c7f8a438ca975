package indicators

import (
	"fmt"
	"math"

	"github.com/rustyeddy/vapstudy/market"
)

// VWAP is a session volume weighted average of typical price with a
// volume weighted standard deviation. Bars without volume count with equal
// weight until the first bar with volume arrives.
type VWAP struct {
	name string

	sumV, sumPV, sumP2V float64
	// unweighted fallback
	n, sumP, sumP2 float64
}

func NewVWAP(session string) *VWAP {
	return &VWAP{name: fmt.Sprintf("VWAP(%s)", session)}
}

func (v *VWAP) Name() string { return v.name }

func (v *VWAP) Reset() {
	v.sumV, v.sumPV, v.sumP2V = 0, 0, 0
	v.n, v.sumP, v.sumP2 = 0, 0, 0
}

func (v *VWAP) Update(b market.Bar) {
	p := typical(b)
	v.n++
	v.sumP += p
	v.sumP2 += p * p
	if b.Volume > 0 {
		v.sumV += b.Volume
		v.sumPV += p * b.Volume
		v.sumP2V += p * p * b.Volume
	}
}

func (v *VWAP) Ready() bool { return v.n > 0 }

func (v *VWAP) Value() float64 {
	switch {
	case v.sumV > 0:
		return v.sumPV / v.sumV
	case v.n > 0:
		return v.sumP / v.n
	default:
		return math.NaN()
	}
}

// StdDev is the deviation of typical price around the VWAP.
func (v *VWAP) StdDev() float64 {
	var variance float64
	switch {
	case v.sumV > 0:
		mean := v.sumPV / v.sumV
		variance = v.sumP2V/v.sumV - mean*mean
	case v.n > 0:
		mean := v.sumP / v.n
		variance = v.sumP2/v.n - mean*mean
	default:
		return math.NaN()
	}
	// rounding can leave a tiny negative variance for constant prices
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// Band returns VWAP plus k standard deviations.
func (v *VWAP) Band(k float64) float64 {
	return v.Value() + k*v.StdDev()
}

// Snapshot freezes the current value and bands.
func (v *VWAP) Snapshot(k float64) Levels {
	if !v.Ready() {
		return NoLevels()
	}
	return Levels{Mid: v.Value(), Upper: v.Band(k), Lower: v.Band(-k)}
}

// Levels is a VWAP and its bands at one point in time.
type Levels struct {
	Mid, Upper, Lower float64
}

func NoLevels() Levels {
	nan := math.NaN()
	return Levels{Mid: nan, Upper: nan, Lower: nan}
}
