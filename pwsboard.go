package pwsboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jpalmerr/pwsboard/dashboard"
	"github.com/jpalmerr/pwsboard/internal/dataset"
	"github.com/jpalmerr/pwsboard/internal/server"
	"github.com/jpalmerr/pwsboard/internal/source"
)

const (
	// DefaultSource is the public water system population dataset, 2016-2023.
	DefaultSource = "https://github.com/rmejia41/open_datasets/raw/main/PWS_2016_2023_updated.csv"

	// DefaultPort is the dashboard's HTTP port.
	DefaultPort = 8051

	// DefaultFetchTimeout bounds the startup download.
	DefaultFetchTimeout = 30 * time.Second
)

// PWSBoard loads the population dataset and serves the dashboard.
//
// It is created using [New] with functional options and started with
// [PWSBoard.Start]. The typical lifecycle is:
//
//	pb, err := pwsboard.New(pwsboard.WithPort(8051))
//	if err != nil {
//	    slog.Error("failed to create pwsboard", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	if err := pb.Start(ctx); err != nil { // blocks until ctx is cancelled
//	    slog.Error("pwsboard failed", "error", err)
//	    os.Exit(1)
//	}
type PWSBoard struct {
	title        string
	source       string
	port         int
	fetchTimeout time.Duration
	logger       *slog.Logger
	data         *dataset.Dataset
}

// New creates a new [PWSBoard] instance with the given options.
//
// Defaults:
//   - Source: [DefaultSource]
//   - Port: 8051
//   - Fetch timeout: 30 seconds
//
// Returns an error if any option is invalid.
func New(opts ...Option) (*PWSBoard, error) {
	cfg := &pbConfig{
		source:       DefaultSource,
		port:         DefaultPort,
		fetchTimeout: DefaultFetchTimeout,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.port < 1 || cfg.port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535, got %d", cfg.port)
	}

	var data *dataset.Dataset
	if cfg.csv != nil {
		wide, err := dataset.ParseWide(bytes.NewReader(cfg.csv))
		if err != nil {
			return nil, fmt.Errorf("invalid dataset: %w", err)
		}
		data = dataset.New(wide)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &PWSBoard{
		title:        cfg.title,
		source:       cfg.source,
		port:         cfg.port,
		fetchTimeout: cfg.fetchTimeout,
		logger:       logger,
		data:         data,
	}, nil
}

// Start loads the dataset and serves the dashboard.
//
// Start is a blocking call that runs until the provided context is cancelled:
//
//   - The dataset is fetched and reshaped first; failure returns an error
//     and no listener is opened
//   - The HTTP server then starts on the configured port
//   - The dashboard is available at http://localhost:<port>
//
// Returns nil on graceful shutdown.
func (pb *PWSBoard) Start(ctx context.Context) error {
	pb.logger.Info("pwsboard starting", "source", pb.sourceName(), "port", pb.port)

	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	ds, err := pb.Load(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil
		}
		return err
	}

	httpServer := server.NewServer(ds, pb.port, dashboard.Assets, pb.title, pb.logger)
	if err := httpServer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	pb.logger.Info("dashboard available", "url", fmt.Sprintf("http://localhost:%d", pb.port))

	<-ctx.Done()
	pb.logger.Info("pwsboard stopped")
	return nil
}

// Load returns the dataset, downloading it from the configured source unless
// it was supplied with [WithData]. Each call without preloaded data fetches
// again; [PWSBoard.Start] calls it exactly once.
func (pb *PWSBoard) Load(ctx context.Context) (*dataset.Dataset, error) {
	if pb.data != nil {
		return pb.data, nil
	}

	client := source.NewClient(0)
	defer client.Close()

	return source.NewLoader(client, pb.fetchTimeout, pb.logger).Load(ctx, pb.source)
}

// Port returns the configured HTTP port for the dashboard server.
func (pb *PWSBoard) Port() int {
	return pb.port
}

// Source returns the configured dataset location.
func (pb *PWSBoard) Source() string {
	return pb.source
}

// FetchTimeout returns the timeout applied to the startup download.
func (pb *PWSBoard) FetchTimeout() time.Duration {
	return pb.fetchTimeout
}

func (pb *PWSBoard) sourceName() string {
	if pb.data != nil {
		return "inline"
	}
	return pb.source
}
