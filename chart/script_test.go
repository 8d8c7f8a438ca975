package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadScript(t *testing.T) {
	script := `time,event,arg1,arg2,arg3,arg4,arg5
# study added with the whole chart in view
2026-03-02T14:30:00Z,,,
2026-03-02T14:30:05Z,VIEW,0,9
,tick
2026-03-02T14:31:00Z,BAR,110,112.5,109.75,112,1500
2026-03-02T14:31:05Z,active,false
2026-03-02T14:31:10Z,ACTIVE,1
2026-03-02T14:31:15Z,TICKSIZE,0.5
2026-03-02T14:31:20Z,DEFAULTS
2026-03-02T14:31:25Z,FINAL
`
	events, err := ReadScript(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, events, 9)

	assert.Equal(t, KindTick, events[0].Kind)
	assert.Equal(t, 2026, events[0].Time.Year())

	assert.Equal(t, KindView, events[1].Kind)
	assert.Equal(t, 0, events[1].First)
	assert.Equal(t, 9, events[1].Last)

	assert.Equal(t, KindTick, events[2].Kind)
	assert.True(t, events[2].Time.IsZero())

	assert.Equal(t, KindBar, events[3].Kind)
	assert.Equal(t, 112.5, events[3].Bar.High)
	assert.Equal(t, 109.75, events[3].Bar.Low)
	assert.Equal(t, 1500.0, events[3].Bar.Volume)
	assert.Equal(t, events[3].Time, events[3].Bar.Time)

	assert.Equal(t, KindActive, events[4].Kind)
	assert.False(t, events[4].Active)
	assert.True(t, events[5].Active)

	assert.Equal(t, 0.5, events[6].TickSize)
	assert.Equal(t, KindDefaults, events[7].Kind)
	assert.Equal(t, KindFinal, events[8].Kind)
}

func TestReadScriptNegativeView(t *testing.T) {
	events, err := ReadScript(strings.NewReader("2026-03-02T14:30:00Z,VIEW,-3,5\n"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, -3, events[0].First)
	assert.Equal(t, 5, events[0].Last)
}

func TestReadScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		errMsg string
	}{
		{"bad time", "yesterday,VIEW,0,9", "row 1: bad time"},
		{"view missing last", "2026-03-02T14:30:00Z,VIEW,0", "VIEW: need"},
		{"view bad first", "2026-03-02T14:30:00Z,VIEW,a,9", "VIEW: bad first"},
		{"active missing flag", "2026-03-02T14:30:00Z,ACTIVE", "ACTIVE: need"},
		{"active bad flag", "2026-03-02T14:30:00Z,ACTIVE,maybe", "ACTIVE: bad flag"},
		{"bar short", "2026-03-02T14:30:00Z,BAR,1,2,3", "BAR: need"},
		{"bar bad value", "2026-03-02T14:30:00Z,BAR,1,x,1,1", "BAR: bad value"},
		{"bar inverted", "2026-03-02T14:30:00Z,BAR,1,1,2,1", "BAR: high 1 below low 2"},
		{"tick size missing", "2026-03-02T14:30:00Z,TICKSIZE", "TICKSIZE: need"},
		{"unknown event", "2026-03-02T14:30:00Z,ZOOM,2", `unknown event "ZOOM"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadScript(strings.NewReader(tt.row + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.csv")
	require.NoError(t, os.WriteFile(path, []byte("time,event,arg1,arg2\n,VIEW,1,2\n"), 0644))

	events, err := LoadScript(path)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 2, events[0].Last)

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
