package market

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ValueFormat selects how a price is rendered. Values 0 through 10 are a
// count of decimal places. FormatThirtySeconds renders whole'32nds.
type ValueFormat int

const (
	FormatThirtySeconds ValueFormat = 32

	maxDecimals ValueFormat = 10
)

// Valid reports whether f is a known format.
func (f ValueFormat) Valid() bool {
	return f == FormatThirtySeconds || (f >= 0 && f <= maxDecimals)
}

// RoundToTick rounds v to the nearest multiple of tick, halves away from
// zero. A non-positive tick returns v unchanged.
func RoundToTick(v, tick float64) float64 {
	if tick <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	t := decimal.NewFromFloat(tick)
	n := decimal.NewFromFloat(v).Div(t).Round(0)
	return n.Mul(t).InexactFloat64()
}

// FormatPrice renders v according to f.
func FormatPrice(v float64, f ValueFormat) string {
	if f == FormatThirtySeconds {
		return formatThirtySeconds(v)
	}
	if !f.Valid() {
		f = 2
	}
	return decimal.NewFromFloat(v).StringFixed(int32(f))
}

func formatThirtySeconds(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	d := decimal.NewFromFloat(v)
	whole := d.Floor()
	frac := d.Sub(whole).Mul(decimal.NewFromInt(32)).Round(0).IntPart()
	w := whole.IntPart()
	if frac == 32 {
		w++
		frac = 0
	}
	return fmt.Sprintf("%s%d'%02d", sign, w, frac)
}
