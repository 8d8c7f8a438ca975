// Package metrics exposes Prometheus counters for the study and exporter.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/vapstudy/export"
	"github.com/rustyeddy/vapstudy/vap"
)

// Metrics holds all Prometheus metrics for a study host.
type Metrics struct {
	Calls       *prometheus.CounterVec // labels: symbol, outcome
	Multiplier  *prometheus.GaugeVec   // labels: symbol
	ScanBars    prometheus.Histogram   // bars read per recompute
	Errors      *prometheus.CounterVec // labels: symbol
	ExportLines *prometheus.CounterVec // labels: symbol, result
	ExportGated *prometheus.CounterVec // labels: symbol
	Registry    *prometheus.Registry
}

// New registers all metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vap_study_calls_total",
			Help: "Study calls by outcome",
		}, []string{"symbol", "outcome"}),
		Multiplier: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "vap_multiplier",
			Help: "Volume-at-price multiplier active on the chart",
		}, []string{"symbol"}),
		ScanBars: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "vap_scan_bars",
			Help:    "Bars read per recompute",
			Buckets: prometheus.ExponentialBuckets(8, 2, 10),
		}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vap_study_errors_total",
			Help: "Study calls that returned an error",
		}, []string{"symbol"}),
		ExportLines: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vap_export_lines_total",
			Help: "Export lines by result (written, missing, failed)",
		}, []string{"symbol", "result"}),
		ExportGated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vap_export_gated_total",
			Help: "Export passes skipped by the interval gate",
		}, []string{"symbol"}),
		Registry: prometheus.NewRegistry(),
	}

	m.Registry.MustRegister(
		m.Calls,
		m.Multiplier,
		m.ScanBars,
		m.Errors,
		m.ExportLines,
		m.ExportGated,
	)
	return m
}

// ObserveCall records one study call.
func (m *Metrics) ObserveCall(symbol string, res vap.Result, err error) {
	if err != nil {
		m.Errors.WithLabelValues(symbol).Inc()
		return
	}
	m.Calls.WithLabelValues(symbol, res.Outcome.String()).Inc()
	switch res.Outcome {
	case vap.OutcomeRecomputed, vap.OutcomePublished:
		m.ScanBars.Observe(float64(res.Range.Bars))
		m.Multiplier.WithLabelValues(symbol).Set(float64(res.Publication.New))
	}
}

// ObserveExport records one export pass.
func (m *Metrics) ObserveExport(symbol string, rep export.Report) {
	if rep.Gated {
		m.ExportGated.WithLabelValues(symbol).Inc()
		return
	}
	m.ExportLines.WithLabelValues(symbol, "written").Add(float64(len(rep.Written)))
	m.ExportLines.WithLabelValues(symbol, "missing").Add(float64(len(rep.Missing)))
	m.ExportLines.WithLabelValues(symbol, "failed").Add(float64(len(rep.Failed)))
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string, log logrus.FieldLogger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", addr).Info("metrics server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
