// Package export writes the latest value of a fixed set of study outputs to
// a per-symbol text file, one "value,label,color" line per output.
package export

import (
	"math"
	"time"

	"github.com/rustyeddy/vapstudy/market"
	"github.com/sirupsen/logrus"
)

// DefaultInterval gates export passes to one per minute of bar time. A
// host that wants a line set on every call sets Interval to zero.
const DefaultInterval = 60 * time.Second

// Exporter runs export passes for one chart.
type Exporter struct {
	Symbol   string
	TickSize float64
	Format   market.ValueFormat
	// Interval is the minimum bar time between passes. Zero exports on
	// every call.
	Interval time.Duration
	Series   []Series

	lookup   StudyLookup
	appender Appender
	log      logrus.FieldLogger
	last     time.Time
}

// Report summarizes one pass.
type Report struct {
	Gated   bool
	Written []Line
	Missing []string
	Failed  []string
}

func New(symbol string, lookup StudyLookup, appender Appender, log logrus.FieldLogger) *Exporter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Exporter{
		Symbol:   symbol,
		Format:   2,
		Interval: DefaultInterval,
		Series:   DefaultSeries(),
		lookup:   lookup,
		appender: appender,
		log:      log,
	}
}

// Run exports every series at index. barTime is the time of the latest bar
// and drives the interval gate. Write failures are logged and reported but
// never returned: a broken export file must not stop the chart.
func (e *Exporter) Run(barTime time.Time, index int) Report {
	var rep Report
	if e.Interval > 0 && !e.last.IsZero() && barTime.Before(e.last.Add(e.Interval)) {
		rep.Gated = true
		return rep
	}
	e.last = barTime

	for _, s := range e.Series {
		l, ok := e.line(s, index)
		if !ok {
			rep.Missing = append(rep.Missing, s.Label)
			continue
		}
		if err := e.appender.Append(e.Symbol, l); err != nil {
			e.log.WithFields(logrus.Fields{
				"symbol": e.Symbol,
				"label":  s.Label,
			}).WithError(err).Warn("export write failed")
			rep.Failed = append(rep.Failed, s.Label)
			continue
		}
		e.log.WithFields(logrus.Fields{
			"symbol": e.Symbol,
			"line":   l.String(),
		}).Debug("exported")
		rep.Written = append(rep.Written, l)
	}
	return rep
}

func (e *Exporter) line(s Series, index int) (Line, bool) {
	values, ok := e.lookup.Values(s.Label)
	if !ok || len(values) == 0 {
		return Line{}, false
	}
	i := index + s.Offset
	if i < 0 || i >= len(values) {
		return Line{}, false
	}
	v := values[i]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Line{}, false
	}
	v = market.RoundToTick(v, e.TickSize)
	return Line{Value: market.FormatPrice(v, e.Format), Label: s.Label, Color: s.Color}, true
}
