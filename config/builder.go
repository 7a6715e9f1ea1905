package config

import (
	"github.com/jpalmerr/pwsboard"
)

// BuildOptions converts parsed configuration into SDK options.
//
// The title option is omitted when empty so the SDK default applies.
func BuildOptions(cfg *Config) []pwsboard.Option {
	opts := []pwsboard.Option{
		pwsboard.WithPort(cfg.Port),
		pwsboard.WithFetchTimeout(cfg.FetchTimeout.Duration()),
	}

	if cfg.Source != "" {
		opts = append(opts, pwsboard.WithSource(cfg.Source))
	}
	if cfg.Title != "" {
		opts = append(opts, pwsboard.WithTitle(cfg.Title))
	}

	return opts
}
