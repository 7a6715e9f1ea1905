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
)

func main() {
	// start mock data server (see mock_server.go)
	go StartMockDataServer(":9999")
	time.Sleep(100 * time.Millisecond)

	pb, err := pwsboard.New(
		pwsboard.WithSource("http://localhost:9999/pws.csv"),
		pwsboard.WithFetchTimeout(5*time.Second),
		pwsboard.WithTitle("PWSBoard Demo"),
		pwsboard.WithPort(8051),
	)
	if err != nil {
		slog.Error("failed to create pwsboard", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  PWSBoard Demo")
	fmt.Println()
	fmt.Println("  Open http://localhost:8051 in your browser")
	fmt.Println("  Data: 10 synthetic states, 2016-2023 (mock server on :9999)")
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := pb.Start(ctx); err != nil {
		slog.Error("pwsboard failed", "error", err)
		os.Exit(1)
	}
}
