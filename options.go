package pwsboard

import (
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// pbConfig holds mutable state during PWSBoard construction.
type pbConfig struct {
	title        string
	source       string
	port         int
	fetchTimeout time.Duration
	logger       *slog.Logger
	csv          []byte
}

// Option is a function that configures a [PWSBoard] instance during construction.
//
// Options return an error if validation fails.
//
// Built-in options: [WithSource], [WithData], [WithPort], [WithFetchTimeout],
// [WithLogger], [WithTitle].
type Option func(*pbConfig) error

// WithSource sets where the wide CSV is loaded from: an http or https URL,
// a file:// URL or a local path. Defaults to [DefaultSource].
//
// Example:
//
//	pb, err := pwsboard.New(
//	    pwsboard.WithSource("./data/pws.csv"),
//	)
//
// Returns an error if the location is empty or uses another URL scheme.
func WithSource(location string) Option {
	return func(cfg *pbConfig) error {
		location = strings.TrimSpace(location)
		if location == "" {
			return errors.New("source cannot be empty")
		}
		if u, err := url.Parse(location); err == nil && len(u.Scheme) > 1 {
			switch strings.ToLower(u.Scheme) {
			case "http", "https", "file":
			default:
				return errors.New("source scheme must be http, https or file")
			}
		}
		cfg.source = location
		return nil
	}
}

// WithData supplies the wide CSV directly instead of downloading it. The data
// is parsed by [New], so a malformed file fails construction.
func WithData(csv []byte) Option {
	return func(cfg *pbConfig) error {
		if len(csv) == 0 {
			return errors.New("data cannot be empty")
		}
		cfg.csv = append([]byte(nil), csv...)
		return nil
	}
}

// WithPort sets the HTTP port for the dashboard server.
//
// The dashboard will be available at http://localhost:<port>.
// Defaults to 8051 if not specified.
//
// Returns an error if the port is outside the valid range (1-65535).
func WithPort(port int) Option {
	return func(cfg *pbConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithFetchTimeout bounds the startup download. Defaults to 30 seconds.
//
// Returns an error if the duration is zero or negative.
func WithFetchTimeout(d time.Duration) Option {
	return func(cfg *pbConfig) error {
		if d <= 0 {
			return errors.New("fetch timeout must be positive")
		}
		cfg.fetchTimeout = d
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the PWSBoard instance.
//
// If not specified, [slog.Default] is used.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	pb, err := pwsboard.New(
//	    pwsboard.WithLogger(logger),
//	)
//
// Returns an error if the logger is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *pbConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithTitle sets the page title displayed in the browser tab and header.
//
// If not specified, defaults to
// "State Populations on Public Water Systems (2016-2023)".
func WithTitle(title string) Option {
	return func(cfg *pbConfig) error {
		cfg.title = title
		return nil
	}
}
