package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/pomo/internal/history"
)

func TestExportRunsByExtension(t *testing.T) {
	dir := t.TempDir()
	runs := []history.Run{
		{ID: 1, WorkDuration: 1500, TargetSessions: 4, Status: "completed", StartedAt: time.Now().UTC()},
	}

	jsonPath := filepath.Join(dir, "runs.json")
	if err := exportRuns(runs, jsonPath); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(jsonPath); err != nil {
		t.Fatal(err)
	}

	csvPath := filepath.Join(dir, "runs.csv")
	if err := exportRuns(runs, csvPath); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(csvPath); err != nil {
		t.Fatal(err)
	}
}

func TestExportRunsUnknownExtension(t *testing.T) {
	err := exportRuns(nil, filepath.Join(t.TempDir(), "runs.xml"))
	if err == nil {
		t.Fatal("expected an error for unknown extension")
	}
	if !strings.Contains(err.Error(), ".xml") {
		t.Fatalf("error should name the extension: %v", err)
	}
}
