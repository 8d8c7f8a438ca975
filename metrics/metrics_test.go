package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/vapstudy/export"
	"github.com/rustyeddy/vapstudy/vap"
)

func TestObserveCall(t *testing.T) {
	m := New()

	m.ObserveCall("ES", vap.Result{
		Outcome:     vap.OutcomePublished,
		Range:       vap.PriceRange{Bars: 50},
		Publication: vap.Publication{Old: 1, New: 8, Changed: true},
	}, nil)
	m.ObserveCall("ES", vap.Result{Outcome: vap.OutcomeUnchanged}, nil)
	m.ObserveCall("ES", vap.Result{Outcome: vap.OutcomeUnchanged}, nil)
	m.ObserveCall("ES", vap.Result{}, errors.New("bad tick"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("ES", "published")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Calls.WithLabelValues("ES", "unchanged")))
	assert.Equal(t, 8.0, testutil.ToFloat64(m.Multiplier.WithLabelValues("ES")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Errors.WithLabelValues("ES")))
}

func TestObserveExport(t *testing.T) {
	m := New()

	m.ObserveExport("ES", export.Report{
		Written: []export.Line{{Value: "1", Label: "dV", Color: "Cyan"}},
		Missing: []string{"ovnH", "ovnL"},
	})
	m.ObserveExport("ES", export.Report{Gated: true})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExportLines.WithLabelValues("ES", "written")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.ExportLines.WithLabelValues("ES", "missing")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ExportLines.WithLabelValues("ES", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExportGated.WithLabelValues("ES")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveCall("CL", vap.Result{Outcome: vap.OutcomeInactive}, nil)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `vap_study_calls_total{outcome="inactive",symbol="CL"} 1`), body)
}
