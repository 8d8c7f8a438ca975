package chart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/vapstudy/export"
	"github.com/rustyeddy/vapstudy/journal"
	"github.com/rustyeddy/vapstudy/metrics"
	"github.com/rustyeddy/vapstudy/pkg/id"
	"github.com/rustyeddy/vapstudy/state"
	"github.com/rustyeddy/vapstudy/vap"
)

// Session runs one study on one chart and keeps its side effects: the
// persisted viewport, the change journal, the export file and metrics.
type Session struct {
	ID    string
	Chart *Chart
	Study *vap.Study

	// Key is the state store key for this chart and study.
	Key   string
	Store state.Store

	Journal  journal.Journal
	Exporter *export.Exporter // nil disables export
	Metrics  *metrics.Metrics // nil disables metrics

	Log logrus.FieldLogger
	Now func() time.Time

	ids      *id.Generator
	viewport vap.Viewport
	started  bool
	exported int
}

// Summary counts what a replay did.
type Summary struct {
	Calls      int
	Outcomes   map[vap.Outcome]int
	Errors     int
	Changes    int
	Multiplier int
	Viewport   vap.Viewport
	// Exported counts export lines written over the life of the session.
	Exported int
}

// NewSession wires a session with an in-memory store and no journal.
// Callers replace Store, Journal, Exporter and Metrics as needed before
// Start.
func NewSession(chartID string, c *Chart, study *vap.Study) *Session {
	return &Session{
		ID:      id.New(),
		Chart:   c,
		Study:   study,
		Key:     state.Key(chartID, c.Symbol()),
		Store:   state.NewMemoryStore(),
		Journal: journal.Discard{},
		Log:     logrus.StandardLogger(),
		Now:     time.Now,
		ids:     id.NewGenerator(),
	}
}

// Start loads the persisted viewport. A chart with no saved state starts
// from the never-observed sentinel.
func (s *Session) Start(ctx context.Context) error {
	vp, err := state.LoadOrNew(ctx, s.Store, s.Key)
	if err != nil {
		return fmt.Errorf("load viewport %s: %w", s.Key, err)
	}
	s.viewport = vp
	s.started = true
	s.Log.WithFields(logrus.Fields{
		"session":  s.ID,
		"key":      s.Key,
		"viewport": vp.String(),
	}).Debug("session started")
	return nil
}

// Viewport is the last-seen viewport as the study left it.
func (s *Session) Viewport() vap.Viewport { return s.viewport }

// Step applies ev to the chart and makes one study call.
func (s *Session) Step(ctx context.Context, ev Event) (vap.Result, error) {
	if !s.started {
		if err := s.Start(ctx); err != nil {
			return vap.Result{}, err
		}
	}
	ev.Apply(s.Chart)

	res, err := s.Study.Call(s.Chart, &s.viewport)
	s.Chart.endCall()
	if s.Metrics != nil {
		s.Metrics.ObserveCall(s.Chart.Symbol(), res, err)
	}
	if err != nil {
		return res, err
	}

	if err := s.persist(ctx, res); err != nil {
		return res, err
	}
	if res.Outcome == vap.OutcomePublished {
		s.record(ev, res)
	}
	s.export(ev, res)
	return res, nil
}

// persist mirrors the study's viewport into the store. Only calls that
// rewrote the viewport touch the store.
func (s *Session) persist(ctx context.Context, res vap.Result) error {
	switch res.Outcome {
	case vap.OutcomeConfigured:
		if err := s.Store.Reset(ctx, s.Key); err != nil {
			return fmt.Errorf("reset viewport %s: %w", s.Key, err)
		}
	case vap.OutcomeRecomputed, vap.OutcomePublished:
		if err := s.Store.Save(ctx, s.Key, s.viewport); err != nil {
			return fmt.Errorf("save viewport %s: %w", s.Key, err)
		}
	}
	return nil
}

// record journals a published change. Journal failures are logged; the
// chart already has the new value.
func (s *Session) record(ev Event, res vap.Result) {
	at := ev.Time
	if at.IsZero() {
		at = s.Now()
	}
	rec := journal.ChangeRecord{
		ID:      s.ids.At(at),
		Session: s.ID,
		Time:    at,
		Symbol:  s.Chart.Symbol(),
		First:   res.Viewport.First,
		Last:    res.Viewport.Last,
		Mode:    res.Mode.String(),
		Bars:    res.Range.Bars,
		Old:     res.Publication.Old,
		New:     res.Publication.New,
	}
	if err := s.Journal.RecordChange(rec); err != nil {
		s.Log.WithFields(logrus.Fields{
			"symbol": rec.Symbol,
			"old":    rec.Old,
			"new":    rec.New,
		}).WithError(err).Warn("journal write failed")
	}
}

// export runs an export pass at the newest bar while the study is live.
func (s *Session) export(ev Event, res vap.Result) {
	if s.Exporter == nil || res.Phase != vap.PhaseActive || res.Outcome == vap.OutcomeInactive {
		return
	}
	idx := s.Chart.LastIndex()
	if idx < 0 {
		return
	}
	at := ev.Time
	if b, ok := s.Chart.LastBar(); ok && !b.Time.IsZero() && b.Time.After(at) {
		at = b.Time
	}
	if at.IsZero() {
		at = s.Now()
	}
	rep := s.Exporter.Run(at, idx)
	s.exported += len(rep.Written)
	if s.Metrics != nil {
		s.Metrics.ObserveExport(s.Chart.Symbol(), rep)
	}
}

// Replay steps through events. An invalid tick size is logged and the
// replay continues, since the study retries on the next call. Store
// failures and context cancellation stop the replay.
func (s *Session) Replay(ctx context.Context, events []Event) (Summary, error) {
	sum := Summary{Outcomes: make(map[vap.Outcome]int)}
	if !s.started {
		if err := s.Start(ctx); err != nil {
			return sum, err
		}
	}

	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return s.finish(sum), err
		}
		writes := s.Chart.Writes()
		res, err := s.Step(ctx, ev)
		sum.Calls++
		if err != nil {
			if !errors.Is(err, vap.ErrInvalidTickSize) {
				return s.finish(sum), err
			}
			sum.Errors++
			s.Log.WithFields(logrus.Fields{
				"symbol": s.Chart.Symbol(),
				"event":  string(ev.Kind),
			}).WithError(err).Warn("study call failed")
			continue
		}
		sum.Outcomes[res.Outcome]++
		sum.Changes += s.Chart.Writes() - writes
	}
	return s.finish(sum), nil
}

func (s *Session) finish(sum Summary) Summary {
	sum.Multiplier = s.Chart.Multiplier()
	sum.Viewport = s.viewport
	sum.Exported = s.exported
	return sum
}
