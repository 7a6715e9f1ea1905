// Package main is the entry point for the pwsboard CLI.
//
// PWSBoard can be run either as a library (SDK) or as a standalone binary
// with an optional YAML configuration. This CLI provides the standalone
// binary approach.
//
// Usage:
//
//	pwsboard serve                    # Start the dashboard with defaults
//	pwsboard serve -c config.yaml     # Start the dashboard from a config file
//	pwsboard validate -c config.yaml  # Validate configuration
//	pwsboard inspect                  # Print per-year summary statistics
//	pwsboard version                  # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "pwsboard",
	Short: "Dashboard of state populations served by public water systems",
	Long: `PWSBoard is a dashboard of U.S. state populations served by public
water systems, 2016-2023.

It downloads the dataset once at startup and serves a choropleth map for a
selected year and a line chart comparing states over time.

Quick start:
  1. Run: pwsboard serve
  2. Open http://localhost:8051 in your browser

Example config:
  title: Water Systems
  port: 8051
  source: https://example.com/pws.csv
  fetch_timeout: 30s`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this pwsboard binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "pwsboard %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
