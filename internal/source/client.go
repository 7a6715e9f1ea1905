package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultMaxBodySize caps how much of a response is read (32 MiB).
const DefaultMaxBodySize = 32 << 20

const (
	defaultMaxIdleConns    = 4
	defaultIdleConnTimeout = 30 * time.Second
)

// Client is an HTTP client for downloading the dataset file.
//
// Timeouts are applied per call via context rather than globally on the
// underlying http.Client, so callers can pick one per load.
type Client struct {
	httpClient  *http.Client
	maxBodySize int64
}

// NewClient creates a [Client] that reads at most maxBodySize bytes per
// response. A non-positive size selects [DefaultMaxBodySize].
func NewClient(maxBodySize int64) *Client {
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				MaxIdleConns:    defaultMaxIdleConns,
				IdleConnTimeout: defaultIdleConnTimeout,
			},
		},
		maxBodySize: maxBodySize,
	}
}

// Fetch downloads url with a GET request bounded by timeout.
//
// Redirects are followed. A non-2xx status or a body larger than the
// configured limit is an error.
func (c *Client) Fetch(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	// read one byte past the limit to detect truncation
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > c.maxBodySize {
		return nil, fmt.Errorf("response body exceeds %d bytes", c.maxBodySize)
	}

	return body, nil
}

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
