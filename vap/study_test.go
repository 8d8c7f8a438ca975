package vap

import (
	"testing"

	"github.com/rustyeddy/vapstudy/market"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStudy(t *testing.T, s Settings) *Study {
	t.Helper()
	logger, _ := test.NewNullLogger()
	st, err := New(s, WithLogger(logger), WithSymbol("ES"))
	require.NoError(t, err)
	return st
}

func TestStudyFirstCallPublishes(t *testing.T) {
	// 100 points of range at 0.25 ticks: 400 ticks / 50 levels = 8
	bars := flatBars(60, 5000, 2)
	bars[30].High = 5100
	h := newFakeHost(bars, 10, 59, 0.25)
	st := newTestStudy(t, DefaultSettings(49))
	vp := NewViewport()

	res, err := st.Call(h, &vp)
	require.NoError(t, err)

	assert.Equal(t, PhaseActive, res.Phase)
	assert.Equal(t, OutcomePublished, res.Outcome)
	assert.Equal(t, 8, h.multiplier)
	assert.Equal(t, 1, h.writes)
	assert.Equal(t, Publication{Old: 1, New: 8, Changed: true}, res.Publication)
	assert.Equal(t, Viewport{First: 10, Last: 59}, vp)
	assert.Equal(t, 50, res.Range.Bars)
}

func TestStudyUnchangedViewportIsNoop(t *testing.T) {
	bars := flatBars(60, 5000, 2)
	bars[30].High = 5100
	h := newFakeHost(bars, 10, 59, 0.25)
	st := newTestStudy(t, DefaultSettings(49))
	vp := NewViewport()

	_, err := st.Call(h, &vp)
	require.NoError(t, err)
	reads, writes := h.reads, h.writes

	res, err := st.Call(h, &vp)
	require.NoError(t, err)

	assert.Equal(t, OutcomeUnchanged, res.Outcome)
	assert.Equal(t, reads, h.reads, "no second scan")
	assert.Equal(t, writes, h.writes)
	assert.Equal(t, 8, h.multiplier)
}

func TestStudyRecomputeWithoutChange(t *testing.T) {
	h := newFakeHost(flatBars(60, 5000, 2), 0, 20, 0.25)
	st := newTestStudy(t, DefaultSettings(20))
	vp := NewViewport()

	// 8 ticks / 50 levels rounds to 0, floored to the current value of 1
	res, err := st.Call(h, &vp)
	require.NoError(t, err)
	assert.Equal(t, OutcomeRecomputed, res.Outcome)
	assert.Equal(t, 0, h.writes)
	assert.Equal(t, Viewport{First: 0, Last: 20}, vp, "viewport persisted even without a write")
}

func TestStudyPanFollowsRange(t *testing.T) {
	bars := flatBars(200, 5000, 1)
	for i := 100; i < 200; i++ {
		low := 5000 + float64(i-100)*2 // trending leg
		bars[i] = market.Bar{Low: low, High: low + 1}
	}
	h := newFakeHost(bars, 0, 99, 0.25)
	st := newTestStudy(t, DefaultSettings(99))
	vp := NewViewport()

	_, err := st.Call(h, &vp)
	require.NoError(t, err)
	assert.Equal(t, 1, h.multiplier)

	h.first, h.last = 100, 199
	res, err := st.Call(h, &vp)
	require.NoError(t, err)

	// 5000..5199: 199 points = 796 ticks / 50 = 15.92
	assert.Equal(t, OutcomePublished, res.Outcome)
	assert.Equal(t, 16, h.multiplier)
	assert.Equal(t, Viewport{First: 100, Last: 199}, vp)
}

func TestStudyInactiveChart(t *testing.T) {
	h := newFakeHost(flatBars(10, 100, 1), 0, 9, 0.25)
	h.active = false
	st := newTestStudy(t, DefaultSettings(9))
	vp := NewViewport()

	res, err := st.Call(h, &vp)
	require.NoError(t, err)

	assert.Equal(t, OutcomeInactive, res.Outcome)
	assert.Equal(t, 0, h.reads)
	assert.False(t, vp.Observed())
}

func TestStudyShutdownIsTerminal(t *testing.T) {
	bars := flatBars(100, 5000, 2)
	bars[50].High = 5100
	h := newFakeHost(bars, 0, 9, 0.25)
	st := newTestStudy(t, DefaultSettings(9))
	vp := NewViewport()

	h.final = true
	res, err := st.Call(h, &vp)
	require.NoError(t, err)
	assert.Equal(t, OutcomeShutdown, res.Outcome)
	assert.Equal(t, PhaseShuttingDown, st.Phase())

	// the viewport moves onto the spike, but the study is gone
	h.final = false
	h.first, h.last = 40, 99
	res, err = st.Call(h, &vp)
	require.NoError(t, err)
	assert.Equal(t, OutcomeShutdown, res.Outcome)

	h.defaults = true
	res, err = st.Call(h, &vp)
	require.NoError(t, err)
	assert.Equal(t, OutcomeShutdown, res.Outcome)

	assert.Equal(t, 0, h.writes)
	assert.Equal(t, 0, h.reads)
}

func TestStudyConfigureResets(t *testing.T) {
	h := newFakeHost(flatBars(100, 5000, 2), 20, 80, 0.25)
	s := DefaultSettings(0)
	s.Adaptive = false
	st := newTestStudy(t, s)
	vp := Viewport{First: 20, Last: 80}

	h.defaults = true
	res, err := st.Call(h, &vp)
	require.NoError(t, err)

	assert.Equal(t, PhaseConfiguring, res.Phase)
	assert.Equal(t, OutcomeConfigured, res.Outcome)
	assert.Equal(t, NewViewport(), vp)
	assert.Equal(t, 60, st.Settings().LookbackBars)

	// next regular update recomputes the same viewport
	h.defaults = false
	res, err = st.Call(h, &vp)
	require.NoError(t, err)
	assert.Equal(t, PhaseActive, res.Phase)
	assert.NotEqual(t, OutcomeUnchanged, res.Outcome)
	assert.Equal(t, Viewport{First: 20, Last: 80}, vp)
}

func TestStudyConfigureKeepsExplicitLookback(t *testing.T) {
	h := newFakeHost(flatBars(10, 1, 1), 0, 9, 0.25)
	s := DefaultSettings(0)
	s.LookbackBars = 25
	st := newTestStudy(t, s)
	vp := NewViewport()

	h.defaults = true
	_, err := st.Call(h, &vp)
	require.NoError(t, err)
	assert.Equal(t, 25, st.Settings().LookbackBars)
}

func TestStudyLegacyMode(t *testing.T) {
	bars := flatBars(50, 5000, 4)
	bars[45].High = 5040 // 40 point bar
	h := newFakeHost(bars, 0, 49, 0.25)
	s := DefaultSettings(10)
	s.Adaptive = false
	st := newTestStudy(t, s)
	vp := NewViewport()

	res, err := st.Call(h, &vp)
	require.NoError(t, err)

	assert.Equal(t, ModeLegacy, res.Mode)
	assert.Equal(t, 11, res.Range.Bars)
	assert.Equal(t, 40.0, res.Range.MaxSpread)
	// tick override: round(40 * 0.3 * 0.25) = 3
	assert.Equal(t, 3, h.multiplier)
}

func TestStudyInvalidTickSize(t *testing.T) {
	bars := flatBars(60, 5000, 2)
	bars[30].High = 5100
	h := newFakeHost(bars, 10, 59, 0)
	st := newTestStudy(t, DefaultSettings(49))
	vp := NewViewport()

	_, err := st.Call(h, &vp)
	require.ErrorIs(t, err, ErrInvalidTickSize)
	assert.False(t, vp.Observed(), "viewport stays primed for a retry")
	assert.Equal(t, 0, h.writes)

	h.tick = 0.25
	res, err := st.Call(h, &vp)
	require.NoError(t, err)
	assert.Equal(t, OutcomePublished, res.Outcome)
	assert.Equal(t, 8, h.multiplier)
}

func TestStudyEmptyScan(t *testing.T) {
	h := newFakeHost(flatBars(5, 100, 1), -10, -2, 0.25)
	st := newTestStudy(t, DefaultSettings(8))
	vp := NewViewport()

	res, err := st.Call(h, &vp)
	require.NoError(t, err)

	assert.Equal(t, OutcomeEmpty, res.Outcome)
	assert.Equal(t, 0, h.writes)
	assert.False(t, vp.Observed())
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	s := DefaultSettings(10)
	s.TargetLevels = 0
	_, err := New(s)
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestStudyDebugTrace(t *testing.T) {
	bars := flatBars(60, 5000, 2)
	bars[30].High = 5100

	tests := []struct {
		name  string
		debug bool
		want  []string
	}{
		{"debug on", true, []string{"visible range changed", "calculated multiplier", "updating multiplier"}},
		{"debug off", false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, hook := test.NewNullLogger()
			s := DefaultSettings(49)
			s.Debug = tt.debug
			st, err := New(s, WithLogger(logger), WithSymbol("ES"))
			require.NoError(t, err)

			h := newFakeHost(bars, 10, 59, 0.25)
			vp := NewViewport()
			_, err = st.Call(h, &vp)
			require.NoError(t, err)

			var got []string
			for _, e := range hook.AllEntries() {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.want, got)
			if tt.debug {
				last := hook.LastEntry()
				assert.Equal(t, logrus.InfoLevel, last.Level)
				assert.Equal(t, 1, last.Data["old"])
				assert.Equal(t, 8, last.Data["new"])
				assert.Equal(t, "ES", last.Data["symbol"])
			}
		})
	}
}

func TestPhaseAndOutcomeStrings(t *testing.T) {
	assert.Equal(t, "configuring", PhaseConfiguring.String())
	assert.Equal(t, "active", PhaseActive.String())
	assert.Equal(t, "shutting_down", PhaseShuttingDown.String())
	assert.Equal(t, "published", OutcomePublished.String())
	assert.Equal(t, "unchanged", OutcomeUnchanged.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
