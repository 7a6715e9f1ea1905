package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const inspectCSV = `State,Two Letter State,2017,2016
Alabama,AL,"1,200",1000
Alaska,AK,,500
California,CA,30000,29000
`

func TestRunInspect_FromURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, inspectCSV)
	}))
	defer ts.Close()

	output, err := execute(t, "inspect", "--source", ts.URL)
	if err != nil {
		t.Fatalf("inspect command error = %v", err)
	}

	expectedPhrases := []string{
		"6 records, 3 states, 2 years",
		"2016",
		"2017",
		"30,000",
		"31,200",
	}
	for _, phrase := range expectedPhrases {
		if !strings.Contains(output, phrase) {
			t.Errorf("output missing %q\nGot: %s", phrase, output)
		}
	}

	// years are listed in ascending order
	if strings.Index(output, "│ 2016") > strings.Index(output, "│ 2017") {
		t.Errorf("years out of order\nGot: %s", output)
	}
}

func TestRunInspect_FromConfig(t *testing.T) {
	dataPath := filepath.Join(t.TempDir(), "pws.csv")
	if err := os.WriteFile(dataPath, []byte(inspectCSV), 0o644); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}
	configPath := writeConfig(t, "source: "+dataPath+"\n")

	output, err := execute(t, "inspect", "-c", configPath)
	if err != nil {
		t.Fatalf("inspect command error = %v", err)
	}
	if !strings.Contains(output, "6 records") {
		t.Errorf("output missing record count\nGot: %s", output)
	}
}

func TestRunInspect_LoadError(t *testing.T) {
	_, err := execute(t, "inspect", "--source", filepath.Join(t.TempDir(), "missing.csv"))
	if err == nil {
		t.Fatal("inspect command expected error for missing file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to load dataset") {
		t.Errorf("error should mention 'failed to load dataset', got: %v", err)
	}
}
