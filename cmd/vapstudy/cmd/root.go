package cmd

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/vapstudy/config"
	"github.com/rustyeddy/vapstudy/logger"
)

var rootCmd = &cobra.Command{
	Use:   "vapstudy",
	Short: "Volume-at-price multiplier study and indicator export",
	Long: `vapstudy runs the adaptive volume-at-price multiplier study against a
simulated chart and exports study values to per-symbol text files.

It provides tools for:
  - Replaying recorded chart sessions (pan, zoom, live bars) through the study
  - Writing color-tagged export lines for downstream tools
  - Inspecting and resetting persisted viewport state
  - Querying the journal of multiplier changes

Settings come from a YAML or JSON config file, overlaid with VAP_*
environment variables.`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	logLevel string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON); defaults apply when empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level")
}

// loadConfig reads the config file (or defaults), then environment
// overrides, then command line overrides, and validates the result.
func loadConfig(ctx context.Context) (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if err := config.ApplyEnv(ctx, cfg); err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log, nil
}
