package cmd

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/vapstudy/logger"
	"github.com/rustyeddy/vapstudy/market"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write one export pass from a study value table",
	Long: `Append the configured series at one bar to the symbol's export file.

Values come from a study value table, a CSV whose header row holds the series
labels and whose rows are bars in index order, or are computed from a bar CSV
using the session in export.session.

Examples:
  vapstudy export --values es_values.csv
  vapstudy export --bars es_1m.csv --index 120 --dir /tmp/exports`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportBarsPath   string
	exportValuesPath string
	exportIndex      int
	exportDir        string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportValuesPath, "values", "", "study value table CSV")
	exportCmd.Flags().StringVar(&exportBarsPath, "bars", "", "bar CSV to compute the series from when no --values table is given")
	exportCmd.Flags().IntVar(&exportIndex, "index", -1, "bar index to export, -1 for the last row")
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "override export.dir")
	exportCmd.MarkFlagsOneRequired("values", "bars")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return err
	}
	if exportDir != "" {
		cfg.Export.Dir = exportDir
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

	var bars *market.BarSet
	if exportBarsPath != "" {
		bars, err = market.LoadBarsCSV(exportBarsPath, cfg.Chart.Symbol)
		if err != nil {
			return fmt.Errorf("load bars: %w", err)
		}
	}
	tbl, err := exportValues(cfg, exportValuesPath, bars)
	if err != nil {
		return err
	}
	ex, err := newExporter(cfg, tbl, tick, log)
	if err != nil {
		return err
	}
	// a single pass is never gated
	ex.Interval = 0

	index := exportIndex
	if index < 0 {
		index = tbl.Rows() - 1
	}
	rep := ex.Run(time.Now(), index)

	log.WithFields(logrus.Fields{
		"symbol":  cfg.Chart.Symbol,
		"index":   index,
		"written": len(rep.Written),
		"missing": len(rep.Missing),
		"failed":  len(rep.Failed),
	}).Info("export pass complete")

	out := cmd.OutOrStdout()
	for _, l := range rep.Written {
		fmt.Fprintln(out, l.String())
	}
	if len(rep.Failed) > 0 {
		return fmt.Errorf("export failed for %v", rep.Failed)
	}
	return nil
}
