// Package export writes run history to JSON or CSV files.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomo/internal/history"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Runs       []jsonRun `json:"runs"`
}

type jsonRun struct {
	ID                int64  `json:"id"`
	Status            string `json:"status"`
	StartedAt         string `json:"started_at"`
	FinishedAt        string `json:"finished_at,omitempty"`
	WorkDurationSec   int    `json:"work_duration_seconds"`
	ShortBreakSec     int    `json:"short_break_seconds"`
	LongBreakSec      int    `json:"long_break_seconds"`
	LongBreakEvery    int    `json:"long_break_every"`
	TargetSessions    int    `json:"target_sessions"`
	CompletedSessions int    `json:"completed_sessions"`
	ShortBreaks       int    `json:"short_breaks"`
	LongBreaks        int    `json:"long_breaks"`
}

func ToJSON(runs []history.Run, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(runs),
	}

	for _, r := range runs {
		finished := ""
		if r.FinishedAt != nil {
			finished = r.FinishedAt.Local().Format(time.RFC3339)
		}

		export.Runs = append(export.Runs, jsonRun{
			ID:                r.ID,
			Status:            r.Status,
			StartedAt:         r.StartedAt.Local().Format(time.RFC3339),
			FinishedAt:        finished,
			WorkDurationSec:   r.WorkDuration,
			ShortBreakSec:     r.ShortBreak,
			LongBreakSec:      r.LongBreak,
			LongBreakEvery:    r.LongBreakEvery,
			TargetSessions:    r.TargetSessions,
			CompletedSessions: r.CompletedSessions,
			ShortBreaks:       r.ShortBreaks,
			LongBreaks:        r.LongBreaks,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
