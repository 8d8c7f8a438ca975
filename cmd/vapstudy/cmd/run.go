package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/vapstudy/chart"
	"github.com/rustyeddy/vapstudy/config"
	"github.com/rustyeddy/vapstudy/export"
	"github.com/rustyeddy/vapstudy/indicators"
	"github.com/rustyeddy/vapstudy/logger"
	"github.com/rustyeddy/vapstudy/market"
	"github.com/rustyeddy/vapstudy/metrics"
	"github.com/rustyeddy/vapstudy/vap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay a chart session through the study",
	Long: `Load bars into a simulated chart and replay a session script against the
multiplier study. Each script row changes the chart (VIEW, ACTIVE, BAR,
TICKSIZE, DEFAULTS, FINAL or a plain TICK) and then calls the study once.

With export enabled in the config, every live call also writes the study
values to the symbol's export file. Values come from the --values table, or
are computed from the bars (session VWAP and bands, overnight range,
equilibrium levels) when no table is given.

Script format:
  time,event,arg1,arg2,arg3,arg4,arg5
  2026-03-02T14:30:00Z,VIEW,0,120

Example:
  vapstudy run -c vapstudy.yaml --bars es_1m.csv --script pan_zoom.csv`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var (
	runBarsPath   string
	runScriptPath string
	runValuesPath string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runBarsPath, "bars", "", "bar CSV: time,open,high,low,close[,volume] (required)")
	runCmd.Flags().StringVar(&runScriptPath, "script", "", "session script CSV (required)")
	runCmd.Flags().StringVar(&runValuesPath, "values", "", "study value table CSV for export (default: computed from bars)")
	runCmd.MarkFlagRequired("bars")
	runCmd.MarkFlagRequired("script")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close(log)

	tick, err := cfg.TickSize()
	if err != nil {
		return err
	}
	bars, err := market.LoadBarsCSV(runBarsPath, cfg.Chart.Symbol)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}
	events, err := chart.LoadScript(runScriptPath)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}

	sess, closeAll, err := newSession(ctx, cfg, bars, tick, log)
	if err != nil {
		return err
	}
	defer closeAll()

	log.WithFields(logrus.Fields{
		"symbol":  cfg.Chart.Symbol,
		"session": sess.ID,
		"bars":    bars.Len(),
		"events":  len(events),
		"mode":    cfg.Study.Mode().String(),
	}).Info("replaying session")

	sum, err := sess.Replay(ctx, events)
	printSummary(cmd, cfg, sum)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	return nil
}

// newSession builds the chart, study and their side effects from cfg. The
// returned func releases the store, journal and metrics server.
func newSession(ctx context.Context, cfg *config.Config, bars *market.BarSet, tick float64, log logrus.FieldLogger) (*chart.Session, func(), error) {
	study, err := vap.New(cfg.Study, vap.WithLogger(log), vap.WithSymbol(cfg.Chart.Symbol))
	if err != nil {
		return nil, nil, err
	}
	store, err := cfg.OpenState()
	if err != nil {
		return nil, nil, fmt.Errorf("open state: %w", err)
	}
	j, err := cfg.OpenJournal()
	if err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("open journal: %w", err)
	}

	sess := chart.NewSession(cfg.ChartID(), chart.New(bars, tick), study)
	sess.Store = store
	sess.Journal = j
	sess.Log = log

	if cfg.Export.Enabled {
		tbl, err := exportValues(cfg, runValuesPath, bars)
		if err != nil {
			store.Close()
			j.Close()
			return nil, nil, err
		}
		ex, err := newExporter(cfg, tbl, tick, log)
		if err != nil {
			store.Close()
			j.Close()
			return nil, nil, err
		}
		sess.Exporter = ex
	}

	metricsCtx, cancel := context.WithCancel(ctx)
	if cfg.Metrics.Addr != "" {
		m := metrics.New()
		sess.Metrics = m
		go func() {
			if err := m.Serve(metricsCtx, cfg.Metrics.Addr, log); err != nil {
				log.WithError(err).Error("metrics server failed")
			}
		}()
	}

	closeAll := func() {
		cancel()
		if err := j.Close(); err != nil {
			log.WithError(err).Warn("close journal")
		}
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("close state store")
		}
	}
	return sess, closeAll, nil
}

// exportValues loads the value table at path, or computes the session
// studies from bars when no table is given.
func exportValues(cfg *config.Config, path string, bars *market.BarSet) (*export.Table, error) {
	if path != "" {
		tbl, err := export.LoadTable(path)
		if err != nil {
			return nil, fmt.Errorf("load values: %w", err)
		}
		return tbl, nil
	}
	if bars == nil {
		return nil, fmt.Errorf("need --values or --bars to export")
	}
	cal, err := cfg.Export.Calendar()
	if err != nil {
		return nil, err
	}
	return indicators.Compute(bars.Bars, indicators.Options{Calendar: cal, Bands: cfg.Export.Bands}), nil
}

func newExporter(cfg *config.Config, tbl *export.Table, tick float64, log logrus.FieldLogger) (*export.Exporter, error) {
	interval, err := cfg.Export.ParseInterval()
	if err != nil {
		return nil, err
	}

	app := export.NewFileAppender(cfg.Export.Dir)
	if cfg.Export.Prefix != "" {
		app.Prefix = cfg.Export.Prefix
	}
	ex := export.New(cfg.Chart.Symbol, tbl, app, log)
	ex.TickSize = tick
	ex.Format = cfg.ValueFormat()
	ex.Interval = interval
	if len(cfg.Export.Series) > 0 {
		ex.Series = cfg.Export.Series
	}
	return ex, nil
}

func printSummary(cmd *cobra.Command, cfg *config.Config, sum chart.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nSession summary (%s):\n", cfg.Chart.Symbol)
	fmt.Fprintf(out, "  Calls:      %d\n", sum.Calls)
	for _, o := range []vap.Outcome{
		vap.OutcomeConfigured,
		vap.OutcomePublished,
		vap.OutcomeRecomputed,
		vap.OutcomeUnchanged,
		vap.OutcomeEmpty,
		vap.OutcomeInactive,
		vap.OutcomeShutdown,
	} {
		if n := sum.Outcomes[o]; n > 0 {
			fmt.Fprintf(out, "    %-11s %d\n", o.String()+":", n)
		}
	}
	fmt.Fprintf(out, "  Errors:     %d\n", sum.Errors)
	fmt.Fprintf(out, "  Changes:    %d\n", sum.Changes)
	fmt.Fprintf(out, "  Multiplier: %d\n", sum.Multiplier)
	fmt.Fprintf(out, "  Viewport:   %s\n", sum.Viewport)
	if cfg.Export.Enabled {
		fmt.Fprintf(out, "  Exported:   %d lines\n", sum.Exported)
	}
}
