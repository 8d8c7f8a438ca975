package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/vapstudy/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Generate or validate configuration files",
	Long: `Manage configuration files for the study host.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  vapstudy config init -o vapstudy.yaml
  vapstudy config validate vapstudy.yaml`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default configuration file",
	Long: `Create a new configuration file with default settings.

Example:
  vapstudy config init -o vapstudy.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a configuration file",
	Long: `Check that a configuration file loads and validates, with VAP_*
environment overrides applied. Without an argument the --config file is
checked.

Example:
  vapstudy config validate vapstudy.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigValidate,
}

var configInitOutput string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)

	configInitCmd.Flags().StringVarP(&configInitOutput, "output", "o", "vapstudy.yaml", "output config file path")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if err := cfg.SaveToFile(configInitOutput); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Created default configuration: %s\n", configInitOutput)
	fmt.Fprintln(out, "\nEdit the file and run with:")
	fmt.Fprintf(out, "  vapstudy run -c %s --bars bars.csv --script session.csv\n", configInitOutput)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		cfgFile = args[0]
	}
	if cfgFile == "" {
		return fmt.Errorf("no config file given")
	}
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	tick, _ := cfg.TickSize()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Configuration valid: %s\n", cfgFile)
	fmt.Fprintf(out, "  Chart: %s (tick %g)\n", cfg.Chart.Symbol, tick)
	fmt.Fprintf(out, "  Study: %s, target %d levels, lookback %d\n",
		cfg.Study.Mode(), cfg.Study.TargetLevels, cfg.Study.LookbackBars)
	fmt.Fprintf(out, "  Export: enabled=%t dir=%s interval=%s\n", cfg.Export.Enabled, cfg.Export.Dir, cfg.Export.Interval)
	fmt.Fprintf(out, "  Journal: %s\n", cfg.Journal.Type)
	fmt.Fprintf(out, "  State: %s\n", cfg.State.Type)
	return nil
}
