package pwsboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func csvServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, testCSV)
	}))
	t.Cleanup(ts.Close)
	return ts
}

// runStart starts pb in a goroutine and returns its result channel.
func runStart(ctx context.Context, pb *PWSBoard) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- pb.Start(ctx)
	}()
	return done
}

// waitHTTP polls url until it answers or the deadline passes.
func waitHTTP(t *testing.T, url string) *http.Response {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			return resp
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("server at %s did not come up", url)
	return nil
}

// TestStart_BlocksUntilContextCancelled verifies that Start blocks until the
// provided context is cancelled.
func TestStart_BlocksUntilContextCancelled(t *testing.T) {
	ts := csvServer(t)

	// use a high port to avoid conflicts
	pb, err := New(
		WithSource(ts.URL),
		WithPort(19001),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := runStart(ctx, pb)

	resp := waitHTTP(t, "http://localhost:19001/healthz")
	resp.Body.Close()

	// verify Start is still blocking (channel should be empty)
	select {
	case err := <-done:
		t.Fatalf("Start() returned early with error: %v", err)
	default:
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after context cancellation")
	}
}

// TestStart_ReturnsImmediatelyIfContextAlreadyCancelled verifies that Start
// returns immediately if the context is already cancelled.
func TestStart_ReturnsImmediatelyIfContextAlreadyCancelled(t *testing.T) {
	var fetched atomic.Bool
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetched.Store(true)
		_, _ = io.WriteString(w, testCSV)
	}))
	defer ts.Close()

	pb, err := New(
		WithSource(ts.URL),
		WithPort(19002),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	select {
	case err := <-runStart(ctx, pb):
		if err != nil {
			t.Errorf("Start() returned error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Start() did not return immediately for cancelled context")
	}

	if fetched.Load() {
		t.Error("Start() fetched the dataset for a cancelled context")
	}
}

// TestStart_LoadFailure verifies that a failed download aborts Start before
// the listener opens.
func TestStart_LoadFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer ts.Close()

	pb, err := New(
		WithSource(ts.URL),
		WithPort(19003),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	select {
	case err := <-runStart(context.Background(), pb):
		if err == nil {
			t.Fatal("Start() expected error for failed download, got nil")
		}
		if !strings.Contains(err.Error(), "failed to load dataset") {
			t.Errorf("Start() error = %v, want error containing 'failed to load dataset'", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after failed download")
	}

	if _, err := http.Get("http://localhost:19003/healthz"); err == nil {
		t.Error("server is listening after failed load")
	}
}

// TestStart_ParseFailure verifies that an unparseable dataset aborts Start.
func TestStart_ParseFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "State,Two Letter State,Total\nAlabama,AL,1\n")
	}))
	defer ts.Close()

	pb, err := New(WithSource(ts.URL), WithPort(19004), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = pb.Start(context.Background())
	if err == nil {
		t.Fatal("Start() expected error for invalid dataset, got nil")
	}
	if !strings.Contains(err.Error(), "failed to parse dataset") {
		t.Errorf("Start() error = %v, want error containing 'failed to parse dataset'", err)
	}
}

// TestStart_ServesDashboard exercises the full stack: download, reshape and
// the JSON API over a real listener.
func TestStart_ServesDashboard(t *testing.T) {
	ts := csvServer(t)

	var logs bytes.Buffer
	pb, err := New(
		WithSource(ts.URL),
		WithPort(19005),
		WithTitle("Test Board"),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := runStart(ctx, pb)
	defer func() {
		cancel()
		<-done
	}()

	base := fmt.Sprintf("http://localhost:%d", pb.Port())

	resp := waitHTTP(t, base+"/api/meta")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var meta struct {
		Records     int      `json:"records"`
		DefaultYear int      `json:"default_year"`
		States      []string `json:"states"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	if meta.Records != 4 {
		t.Errorf("records = %d, want 4", meta.Records)
	}
	if meta.DefaultYear != 2016 {
		t.Errorf("default_year = %d, want 2016", meta.DefaultYear)
	}

	page, err := http.Get(base + "/")
	if err != nil {
		t.Fatalf("GET / error = %v", err)
	}
	body, _ := io.ReadAll(page.Body)
	page.Body.Close()
	if !strings.Contains(string(body), "Test Board") {
		t.Error("dashboard page missing configured title")
	}

	if !strings.Contains(logs.String(), "dataset loaded") {
		t.Error("expected 'dataset loaded' log entry")
	}
}

// TestStart_WithData skips the download entirely.
func TestStart_WithData(t *testing.T) {
	pb, err := New(
		WithData([]byte(testCSV)),
		WithSource("http://127.0.0.1:1/unreachable.csv"),
		WithPort(19006),
		WithLogger(quietLogger()),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := runStart(ctx, pb)

	resp := waitHTTP(t, "http://localhost:19006/healthz")
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after context cancellation")
	}
}

// TestStart_PortInUse verifies that a bound port surfaces as an error.
func TestStart_PortInUse(t *testing.T) {
	blocker, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("net.Listen() error = %v", err)
	}
	defer blocker.Close()
	port := blocker.Addr().(*net.TCPAddr).Port

	pb, err := New(WithData([]byte(testCSV)), WithPort(port), WithLogger(quietLogger()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = pb.Start(context.Background())
	if err == nil {
		t.Fatal("Start() expected error for port in use, got nil")
	}
	if !strings.Contains(err.Error(), "failed to start HTTP server") {
		t.Errorf("Start() error = %v, want error containing 'failed to start HTTP server'", err)
	}
}
