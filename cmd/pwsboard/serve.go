package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/pwsboard"
	"github.com/jpalmerr/pwsboard/config"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a JSON logger for CLI use.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// serveCmd starts the PWSBoard dashboard server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	Long: `Start the PWSBoard dashboard server.

The server will:
  - Load configuration from the given YAML file, or use the defaults
  - Download and reshape the population dataset
  - Serve the dashboard UI on the configured port

A failed download stops startup with a non-zero exit code. The server runs
until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  pwsboard serve
  pwsboard serve -c config.yaml
  pwsboard serve --source ./pws.csv --port 9090`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("config", "c", "", "path to config file")
	serveCmd.Flags().String("source", "", "dataset URL or path (overrides config)")
	serveCmd.Flags().IntP("port", "p", 0, "HTTP port (overrides config)")
}

// loadConfig reads the file named by --config, or returns the defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile == "" {
		return config.Default(), nil
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("source") {
		cfg.Source, _ = cmd.Flags().GetString("source")
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}

	logger.Info("starting server",
		"port", cfg.Port,
		"source", cfg.Source,
		"fetch_timeout", cfg.FetchTimeout.Duration().String(),
	)

	opts := append(config.BuildOptions(cfg), pwsboard.WithLogger(logger))
	pb, err := pwsboard.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create PWSBoard: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start server - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- pb.Start(ctx)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
