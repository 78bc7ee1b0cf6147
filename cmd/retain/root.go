package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retain",
		Short: "Retain - benchmark dialect retention across language models",
		Long: `Retain is a command-line tool for measuring how well language models
preserve socio-linguistic markers when paraphrasing, explaining, or
continuing text written in a specific variety (AAVE, Spanglish,
British English, Standard English).

It queries one or more vendors, scores each response for marker
retention, and aggregates the results into per-model and per-variety
summaries.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newRunCommand())
	cmd.AddCommand(newScoreCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newStimuliCommand())
	cmd.AddCommand(newKeysCommand())
	cmd.AddCommand(newCheckCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
