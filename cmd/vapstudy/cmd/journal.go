package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/vapstudy/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query the multiplier change journal",
	Long: `Query multiplier changes recorded in a SQLite journal.

Subcommands:
  list  - List recorded changes, oldest first

Examples:
  vapstudy journal list --db vapstudy.sqlite
  vapstudy journal list --db vapstudy.sqlite --symbol ES`,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded multiplier changes",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var (
	journalDBPath string
	journalSymbol string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalListCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./vapstudy.sqlite", "path to SQLite journal DB")
	journalListCmd.Flags().StringVar(&journalSymbol, "symbol", "", "only changes for this symbol")
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	changes, err := j.ListChanges(cmd.Context(), journalSymbol)
	if err != nil {
		return fmt.Errorf("list changes: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(changes) == 0 {
		fmt.Fprintln(out, "No changes recorded")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSYMBOL\tVIEW\tMODE\tBARS\tOLD\tNEW")
	for _, c := range changes {
		fmt.Fprintf(w, "%s\t%s\t[%d,%d]\t%s\t%d\t%d\t%d\n",
			c.Time.UTC().Format(time.RFC3339), c.Symbol, c.First, c.Last, c.Mode, c.Bars, c.Old, c.New)
	}
	return w.Flush()
}
