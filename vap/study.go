package vap

import (
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

var ErrInvalidTickSize = errors.New("invalid tick size")

// Phase is the study's lifecycle state.
type Phase int

const (
	PhaseConfiguring Phase = iota
	PhaseActive
	PhaseShuttingDown
)

func (p Phase) String() string {
	switch p {
	case PhaseConfiguring:
		return "configuring"
	case PhaseActive:
		return "active"
	case PhaseShuttingDown:
		return "shutting_down"
	default:
		return "unknown"
	}
}

// Outcome says what a single call did.
type Outcome int

const (
	OutcomeConfigured Outcome = iota
	OutcomeInactive
	OutcomeUnchanged
	OutcomeEmpty
	OutcomeRecomputed
	OutcomePublished
	OutcomeShutdown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeConfigured:
		return "configured"
	case OutcomeInactive:
		return "inactive"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeEmpty:
		return "empty"
	case OutcomeRecomputed:
		return "recomputed"
	case OutcomePublished:
		return "published"
	case OutcomeShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Result describes one call. Range, Mode and Publication are only
// meaningful when the call scanned bars.
type Result struct {
	Phase       Phase
	Outcome     Outcome
	Viewport    Viewport
	Mode        Mode
	Range       PriceRange
	Publication Publication
}

// Study drives the multiplier for one chart.
type Study struct {
	settings Settings
	phase    Phase
	symbol   string
	log      logrus.FieldLogger
}

type Option func(*Study)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Study) { s.log = l }
}

// WithSymbol tags trace lines with the chart symbol.
func WithSymbol(symbol string) Option {
	return func(s *Study) { s.symbol = symbol }
}

// New validates settings and returns a study in the configuring phase.
func New(settings Settings, opts ...Option) (*Study, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	s := &Study{
		settings: settings,
		phase:    PhaseConfiguring,
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Study) Settings() Settings { return s.settings }
func (s *Study) Phase() Phase       { return s.phase }

// Call handles one host update. vp is the persisted last-seen viewport; it
// is rewritten only when a recompute completes or the study is reset.
func (s *Study) Call(h Host, vp *Viewport) (Result, error) {
	s.phase = s.next(h)
	switch s.phase {
	case PhaseConfiguring:
		return s.configure(h, vp), nil
	case PhaseShuttingDown:
		return s.shutdown(), nil
	default:
		return s.update(h, vp)
	}
}

// next picks the phase for this call. ShuttingDown is terminal.
func (s *Study) next(h Host) Phase {
	switch {
	case s.phase == PhaseShuttingDown:
		return PhaseShuttingDown
	case h.SetDefaults():
		return PhaseConfiguring
	case h.LastCall():
		return PhaseShuttingDown
	default:
		return PhaseActive
	}
}

// configure resets persisted state and fills in the lookback default from
// the current visible span.
func (s *Study) configure(h Host, vp *Viewport) Result {
	first, last := h.VisibleRange()
	if s.settings.LookbackBars == 0 {
		s.settings.LookbackBars = max(last-first, 0)
	}
	*vp = NewViewport()
	return Result{Phase: PhaseConfiguring, Outcome: OutcomeConfigured, Viewport: *vp}
}

func (s *Study) shutdown() Result {
	return Result{Phase: PhaseShuttingDown, Outcome: OutcomeShutdown}
}

func (s *Study) update(h Host, vp *Viewport) (Result, error) {
	res := Result{Phase: PhaseActive, Mode: s.settings.Mode()}
	if !h.ChartActive() {
		res.Outcome = OutcomeInactive
		return res, nil
	}

	first, last := h.VisibleRange()
	current := Viewport{First: first, Last: last}
	res.Viewport = current
	if Detect(current, *vp) == Unchanged {
		res.Outcome = OutcomeUnchanged
		return res, nil
	}

	tick := h.TickSize()
	if !(tick > 0) || math.IsInf(tick, 0) {
		return res, fmt.Errorf("%w: %v", ErrInvalidTickSize, tick)
	}

	if s.settings.Debug {
		s.log.WithFields(logrus.Fields{
			"symbol": s.symbol,
			"first":  first,
			"last":   last,
		}).Info("visible range changed")
	}

	if s.settings.Adaptive {
		res.Range = ScanVisible(h, current)
	} else {
		res.Range = ScanLookback(h, last, s.settings.LookbackBars)
	}
	if res.Range.Bars == 0 {
		res.Outcome = OutcomeEmpty
		return res, nil
	}

	m := Calculate(res.Range, s.settings, tick)
	if s.settings.Debug {
		s.trace(res, tick, m)
	}

	res.Publication = s.publish(h, m, current, vp)
	res.Outcome = OutcomeRecomputed
	if res.Publication.Changed {
		res.Outcome = OutcomePublished
	}
	return res, nil
}

func (s *Study) trace(res Result, tick float64, m int) {
	fields := logrus.Fields{
		"symbol":     s.symbol,
		"mode":       res.Mode.String(),
		"bars":       res.Range.Bars,
		"multiplier": m,
	}
	if res.Mode == ModeAdaptive {
		fields["price_range"] = res.Range.Width()
		fields["ticks"] = res.Range.Width() / tick
	} else {
		fields["max_spread"] = res.Range.MaxSpread
		fields["mean_spread"] = res.Range.MeanSpread
	}
	s.log.WithFields(fields).Info("calculated multiplier")
}
