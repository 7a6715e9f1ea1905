// Package config provides YAML configuration parsing for PWSBoard.
//
// This package enables running PWSBoard as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
// Every field is optional; an empty file reproduces the built-in defaults.
//
// Example configuration:
//
//	title: Water Systems
//	port: 8051
//	source: ${PWS_SOURCE:-https://example.com/pws.csv}
//	fetch_timeout: 30s
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/pwsboard"
)

const (
	// minFetchTimeout keeps a typo like "30ms" from failing every startup.
	minFetchTimeout = 1 * time.Second

	maxFetchTimeout = 10 * time.Minute
)

// Config is the root configuration structure for PWSBoard.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the dashboard title. Empty selects the built-in page title.
	Title string `yaml:"title"`

	// Port is the HTTP server port. Defaults to 8051.
	Port int `yaml:"port"`

	// Source is the wide CSV location: an http(s) URL, a file:// URL or a
	// local path. Supports environment variable substitution:
	// ${VAR} or ${VAR:-default}. Defaults to [pwsboard.DefaultSource].
	Source string `yaml:"source"`

	// FetchTimeout bounds the startup download.
	// Accepts duration strings like "10s", "1m". Defaults to 30s.
	FetchTimeout Duration `yaml:"fetch_timeout"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Port:         pwsboard.DefaultPort,
		Source:       pwsboard.DefaultSource,
		FetchTimeout: Duration(pwsboard.DefaultFetchTimeout),
	}
}

// Load reads and parses a YAML configuration file.
//
// Environment variables in the file are expanded before parsing.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in Source. Defaults are applied for
// Port (8051), Source and FetchTimeout (30s).
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	def := Default()
	if cfg.Port == 0 {
		cfg.Port = def.Port
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = def.FetchTimeout
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}
	if cfg.Source == "" {
		cfg.Source = def.Source
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables and validates the config.
func (c *Config) expandAndValidate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	timeout := c.FetchTimeout.Duration()
	if timeout < minFetchTimeout {
		return fmt.Errorf("fetch_timeout must be at least %s, got %s", minFetchTimeout, timeout)
	}
	if timeout > maxFetchTimeout {
		return fmt.Errorf("fetch_timeout must not exceed %s, got %s", maxFetchTimeout, timeout)
	}

	expanded, err := expandEnvVars(c.Source)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	c.Source = strings.TrimSpace(expanded)

	return validateSource(c.Source)
}

// validateSource accepts an empty source (the default applies), http, https
// and file URLs, and plain paths.
func validateSource(source string) error {
	if source == "" {
		return nil
	}

	u, err := url.Parse(source)
	if err != nil {
		return fmt.Errorf("invalid source: %w", err)
	}

	// single letter schemes are Windows drive letters
	if len(u.Scheme) <= 1 {
		return nil
	}

	switch u.Scheme {
	case "http", "https":
		if u.Host == "" {
			return errors.New("source url must have a host")
		}
	case "file":
	default:
		return fmt.Errorf("source scheme must be http, https or file, got %q", u.Scheme)
	}
	return nil
}
