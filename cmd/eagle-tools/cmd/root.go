package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "eagle-tools",
	Short: "Tools for inspecting PCB files created by EAGLE CAD",
	Long: `eagle-tools reads EAGLE CAD documents (libraries and schematics) and
answers questions about their contents.

Examples:
  eagle-tools list passives.lbr            # List a library's contents
  eagle-tools parts amplifier.sch          # Table of parts in a schematic
  eagle-tools extract amplifier.sch -o lib # Re-extract embedded libraries`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
