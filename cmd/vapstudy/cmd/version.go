package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "1.0.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  `Display the current version of the vapstudy CLI.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "vapstudy version %s\n", version)
		fmt.Fprintln(out, "Adaptive volume-at-price multiplier study")
		fmt.Fprintln(out, "https://github.com/rustyeddy/vapstudy")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
