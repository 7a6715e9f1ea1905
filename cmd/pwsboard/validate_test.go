package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with args and returns captured stdout and
// any error. Flag state from earlier runs is reset first.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, c := range rootCmd.Commands() {
		resetFlags(c)
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestRunValidate_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
title: Water Systems
port: 9090
source: https://data.example.com/pws.csv
fetch_timeout: 45s
`)

	output, err := execute(t, "validate", "-c", configPath)
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}

	expectedPhrases := []string{
		"Config is valid!",
		"Title:         Water Systems",
		"Port:          9090",
		"Source:        https://data.example.com/pws.csv",
		"Fetch timeout: 45s",
	}

	for _, phrase := range expectedPhrases {
		if !strings.Contains(output, phrase) {
			t.Errorf("output missing %q\nGot: %s", phrase, output)
		}
	}
}

func TestRunValidate_DefaultsShown(t *testing.T) {
	configPath := writeConfig(t, "# empty\n")

	output, err := execute(t, "validate", "-c", configPath)
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}

	for _, phrase := range []string{"Title:         (default)", "Port:          8051", "Fetch timeout: 30s"} {
		if !strings.Contains(output, phrase) {
			t.Errorf("output missing %q\nGot: %s", phrase, output)
		}
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	configPath := writeConfig(t, "source: ftp://example.com/pws.csv\n")

	_, err := execute(t, "validate", "-c", configPath)
	if err == nil {
		t.Fatal("validate command expected error for invalid config, got nil")
	}

	if !strings.Contains(err.Error(), "scheme must be http, https or file") {
		t.Errorf("error should mention the scheme, got: %v", err)
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	_, err := execute(t, "validate", "-c", "/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("validate command expected error for missing file, got nil")
	}

	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("error should mention 'failed to read', got: %v", err)
	}
}

func TestVersion(t *testing.T) {
	output, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version command error = %v", err)
	}
	if !strings.HasPrefix(output, "pwsboard dev") {
		t.Errorf("output = %q, want prefix %q", output, "pwsboard dev")
	}
}
