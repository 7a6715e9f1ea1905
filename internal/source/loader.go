package source

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jpalmerr/pwsboard/internal/dataset"
)

// Loader fetches and reshapes the dataset.
type Loader struct {
	client  *Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewLoader creates a [Loader]. A nil client gets a default [Client] and a
// nil logger falls back to slog.Default().
func NewLoader(client *Client, timeout time.Duration, logger *slog.Logger) *Loader {
	if client == nil {
		client = NewClient(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{client: client, timeout: timeout, logger: logger}
}

// Load reads location and returns the long-format dataset.
//
// Any failure (transport, status, CSV shape, missing columns, non-numeric
// values) is returned; callers should treat it as fatal.
func (l *Loader) Load(ctx context.Context, location string) (*dataset.Dataset, error) {
	start := time.Now()

	raw, err := l.read(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset from %s: %w", location, err)
	}

	wide, err := dataset.ParseWide(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset from %s: %w", location, err)
	}

	ds := dataset.New(wide)
	l.logger.Info("dataset loaded",
		"source", location,
		"dataset_id", ds.ID(),
		"states", len(ds.States()),
		"years", len(ds.Years()),
		"records", ds.Len(),
		"bytes", len(raw),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return ds, nil
}

func (l *Loader) read(ctx context.Context, location string) ([]byte, error) {
	if IsRemote(location) {
		return l.client.Fetch(ctx, location, l.timeout)
	}

	path := location
	if strings.HasPrefix(location, "file://") {
		u, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("invalid file url: %w", err)
		}
		path = u.Path
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > l.client.maxBodySize {
		return nil, fmt.Errorf("file exceeds %d bytes", l.client.maxBodySize)
	}
	return data, nil
}

// IsRemote reports whether location is an http or https URL.
func IsRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
