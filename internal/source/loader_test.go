package source

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jpalmerr/pwsboard/internal/dataset"
)

const toyCSV = `State,Two Letter State,2016,2017
NY,NY,19000000,19100000
CA,CA,38000000,38500000
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoader_LoadHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(toyCSV))
	}))
	defer server.Close()

	loader := NewLoader(nil, 5*time.Second, testLogger())
	ds, err := loader.Load(context.Background(), server.URL+"/pws.csv")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if ds.Len() != 4 {
		t.Errorf("Len() = %d, want 4", ds.Len())
	}
	if got := ds.Years(); len(got) != 2 || got[0] != 2016 || got[1] != 2017 {
		t.Errorf("Years() = %v, want [2016 2017]", got)
	}
}

func TestLoader_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pws.csv")
	if err := os.WriteFile(path, []byte(toyCSV), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	loader := NewLoader(nil, 0, testLogger())

	for _, location := range []string{path, "file://" + path} {
		ds, err := loader.Load(context.Background(), location)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", location, err)
		}
		if got := ds.States(); len(got) != 2 || got[0] != "CA" {
			t.Errorf("Load(%q) States() = %v, want [CA NY]", location, got)
		}
	}
}

func TestLoader_LoadErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing-column.csv":
			_, _ = w.Write([]byte("Name,2016\nOhio,1\n"))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	loader := NewLoader(nil, 5*time.Second, testLogger())

	_, err := loader.Load(context.Background(), server.URL+"/broken")
	if err == nil || !strings.Contains(err.Error(), "failed to load dataset") {
		t.Errorf("Load() error = %v, want load failure", err)
	}

	_, err = loader.Load(context.Background(), server.URL+"/missing-column.csv")
	if !errors.Is(err, dataset.ErrMissingColumn) {
		t.Errorf("Load() error = %v, want ErrMissingColumn", err)
	}

	_, err = loader.Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil || !strings.Contains(err.Error(), "failed to read file") {
		t.Errorf("Load() error = %v, want read failure", err)
	}
}

func TestIsRemote(t *testing.T) {
	tests := []struct {
		location string
		want     bool
	}{
		{"https://github.com/x.csv", true},
		{"HTTP://example.com/x.csv", true},
		{"file:///tmp/x.csv", false},
		{"/tmp/x.csv", false},
		{"data/x.csv", false},
	}
	for _, tt := range tests {
		if got := IsRemote(tt.location); got != tt.want {
			t.Errorf("IsRemote(%q) = %v, want %v", tt.location, got, tt.want)
		}
	}
}
