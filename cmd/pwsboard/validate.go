package main

import (
	"fmt"

	"github.com/jpalmerr/pwsboard/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a config file without starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a PWSBoard configuration file without starting the server.

This command parses the YAML, expands environment variables, and validates
all fields. The dataset itself is not downloaded; use inspect for that.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  pwsboard validate -c config.yaml
  pwsboard validate --config /etc/pwsboard/config.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	title := cfg.Title
	if title == "" {
		title = "(default)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config is valid!\n")
	fmt.Fprintf(out, "  Title:         %s\n", title)
	fmt.Fprintf(out, "  Port:          %d\n", cfg.Port)
	fmt.Fprintf(out, "  Source:        %s\n", cfg.Source)
	fmt.Fprintf(out, "  Fetch timeout: %s\n", cfg.FetchTimeout.Duration())

	return nil
}
