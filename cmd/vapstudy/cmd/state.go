package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/vapstudy/state"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset the persisted viewport",
	Long: `The study keeps the last viewport it computed a multiplier for, so a
restarted host does not recompute for a chart that has not moved. The store
is selected by state.type in the config (memory, sqlite or redis).

Subcommands:
  show   - Print the persisted viewport
  reset  - Forget the persisted viewport; the next call recomputes

Examples:
  vapstudy state show -c vapstudy.yaml
  vapstudy state reset -c vapstudy.yaml --chart desk2`,
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted viewport",
	Args:  cobra.NoArgs,
	RunE:  runStateShow,
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the persisted viewport",
	Args:  cobra.NoArgs,
	RunE:  runStateReset,
}

var stateChart string

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateResetCmd)

	stateCmd.PersistentFlags().StringVar(&stateChart, "chart", "", "chart id (default chart.id, then the symbol)")
}

func openStateKey(cmd *cobra.Command) (state.Store, string, error) {
	cfg, err := loadConfig(cmd.Context())
	if err != nil {
		return nil, "", err
	}
	store, err := cfg.OpenState()
	if err != nil {
		return nil, "", fmt.Errorf("open state: %w", err)
	}
	chartID := stateChart
	if chartID == "" {
		chartID = cfg.ChartID()
	}
	return store, state.Key(chartID, cfg.Chart.Symbol), nil
}

func runStateShow(cmd *cobra.Command, args []string) error {
	store, key, err := openStateKey(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	vp, err := state.LoadOrNew(cmd.Context(), store, key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}

	out := cmd.OutOrStdout()
	if !vp.Observed() {
		fmt.Fprintf(out, "%s: never observed\n", key)
		return nil
	}
	fmt.Fprintf(out, "%s: %s (%d bars)\n", key, vp, vp.Span()+1)
	return nil
}

func runStateReset(cmd *cobra.Command, args []string) error {
	store, key, err := openStateKey(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Reset(cmd.Context(), key); err != nil {
		return fmt.Errorf("reset %s: %w", key, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Reset %s\n", key)
	return nil
}
