package indicators

import (
	"math"

	"github.com/rustyeddy/vapstudy/export"
	"github.com/rustyeddy/vapstudy/market"
)

// Labels of the computed series, matching export.DefaultSeries.
const (
	LabelDayVWAP       = "dV"
	LabelDayUpper      = "dV+"
	LabelDayLower      = "dV-"
	LabelOvernightHigh = "ovnH"
	LabelOvernightLow  = "ovnL"
	LabelPrevDayVWAP   = "pdVWAP"
	LabelPrevDayUpper  = "pdStdD+"
	LabelPrevDayLower  = "pdStdD-"
	LabelPrevSessVWAP  = "psVWAP"
	LabelPrevSessUpper = "psStdD+"
	LabelPrevSessLower = "psStdD-"
	LabelDayEQ         = "dEQ"
	LabelWeekEQ        = "wEQ"
	LabelMonthEQ       = "mEQ"
)

// Options control Compute.
type Options struct {
	Calendar Calendar
	// Bands is the number of standard deviations for the VWAP bands.
	// Zero means 1.
	Bands float64
}

// Compute runs the session studies over bars in order and returns one
// column per label, one row per bar. Values that do not exist yet at a bar,
// such as the prior day before a second date is seen, are NaN.
//
//   - dV, dV+, dV-: regular session VWAP of the current date and its bands
//   - ovnH, ovnL: range of the current date's overnight bars
//   - pdVWAP, pdStdD+, pdStdD-: final regular session VWAP of the prior date
//   - psVWAP, psStdD+, psStdD-: final full session VWAP (overnight and
//     regular) of the prior date, stored one row early. Exported prior
//     session series read one bar back, so row i holds the value for bar
//     i+1 and the last row assumes the next bar shares its date.
//   - dEQ, wEQ, mEQ: range midpoint of the current date, ISO week and month
func Compute(bars []market.Bar, opts Options) *export.Table {
	cal := opts.Calendar
	k := opts.Bands
	if k == 0 {
		k = 1
	}

	n := len(bars)
	cols := make(map[string][]float64)
	col := func(label string) []float64 {
		c := make([]float64, n)
		cols[label] = c
		return c
	}
	dV, dVu, dVl := col(LabelDayVWAP), col(LabelDayUpper), col(LabelDayLower)
	ovnH, ovnL := col(LabelOvernightHigh), col(LabelOvernightLow)
	pdV, pdVu, pdVl := col(LabelPrevDayVWAP), col(LabelPrevDayUpper), col(LabelPrevDayLower)
	psV, psVu, psVl := col(LabelPrevSessVWAP), col(LabelPrevSessUpper), col(LabelPrevSessLower)
	dEQ, wEQ, mEQ := col(LabelDayEQ), col(LabelWeekEQ), col(LabelMonthEQ)

	rth := NewVWAP("rth")
	full := NewVWAP("session")
	overnight := NewRange("overnight")
	day, week, month := NewRange("day"), NewRange("week"), NewRange("month")
	session := []Indicator{rth, full, overnight, day}

	prevDay, prevSess := NoLevels(), NoLevels()
	var curDate, curWeek, curMonth int64 = math.MinInt64, math.MinInt64, math.MinInt64

	for i, b := range bars {
		if d := cal.Date(b.Time).Unix(); d != curDate {
			if curDate != math.MinInt64 {
				prevDay = rth.Snapshot(k)
				prevSess = full.Snapshot(k)
			}
			for _, ind := range session {
				ind.Reset()
			}
			curDate = d
		}
		if i > 0 {
			psV[i-1], psVu[i-1], psVl[i-1] = prevSess.Mid, prevSess.Upper, prevSess.Lower
		}
		if w := int64(cal.Week(b.Time)); w != curWeek {
			week.Reset()
			curWeek = w
		}
		if m := int64(cal.Month(b.Time)); m != curMonth {
			month.Reset()
			curMonth = m
		}

		full.Update(b)
		day.Update(b)
		week.Update(b)
		month.Update(b)
		switch {
		case cal.Overnight(b.Time):
			overnight.Update(b)
		case cal.Regular(b.Time):
			rth.Update(b)
		}

		cur := rth.Snapshot(k)
		dV[i], dVu[i], dVl[i] = cur.Mid, cur.Upper, cur.Lower
		ovnH[i], ovnL[i] = overnight.High(), overnight.Low()
		pdV[i], pdVu[i], pdVl[i] = prevDay.Mid, prevDay.Upper, prevDay.Lower
		dEQ[i], wEQ[i], mEQ[i] = day.Value(), week.Value(), month.Value()
	}

	if n > 0 {
		psV[n-1], psVu[n-1], psVl[n-1] = prevSess.Mid, prevSess.Upper, prevSess.Lower
	}

	tbl := export.NewTable()
	for label, values := range cols {
		tbl.Set(label, values)
	}
	return tbl
}
