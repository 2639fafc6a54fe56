// Package main provides the entry point for the hibp-bloom CLI tool.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/as3richa/hibp-bloom/cmd/hibp-bloom/commands"
	"github.com/as3richa/hibp-bloom/pkg/version"
)

var verbose bool

var logLevel = new(slog.LevelVar)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	rootCmd := &cobra.Command{
		Use:   "hibp-bloom",
		Short: "Bloom filters for breached-password corpora",
		Long: `hibp-bloom builds and queries Bloom filters over large corpora of
short byte strings, such as the Have-I-Been-Pwned SHA-1 password hashes.

Filters are created once, persisted to an architecture-neutral file, and
then queried or extended by the other commands.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				logLevel.Set(slog.LevelDebug)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(commands.NewCreateCommand())
	rootCmd.AddCommand(commands.NewCreateFalseposCommand())
	rootCmd.AddCommand(commands.NewCreateMaxmemCommand())
	rootCmd.AddCommand(commands.NewInsertCommand())
	rootCmd.AddCommand(commands.NewInsertSHACommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewQuerySHACommand())
	rootCmd.AddCommand(commands.NewFalseposCommand())
	rootCmd.AddCommand(commands.NewSHACommand())
	rootCmd.AddCommand(commands.NewInfoCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintln(os.Stdout, version.String())
		},
	}
}
