// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "repo-analyzer <url>",
	Short: "A CLI tool to summarize the activity of a GitHub repository.",
	Long: `repo-analyzer fetches the commits, pull requests and issues of a GitHub
repository and prints the top contributors by commit count, plus the number of
open, closed and stale pull requests and issues within an optional date range.

Credentials are read from the GITHUB_LOGIN and GITHUB_TOKEN environment variables
(or from a dotenv file, see --env-file).`,
	Args:          cobra.ExactArgs(1),
	RunE:          runStats,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

// newLogger writes human readable logs to w. Only warnings and errors are shown
// unless verbose is set.
func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
