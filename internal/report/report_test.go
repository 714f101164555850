package report

import (
	"strings"
	"testing"
	"time"

	"github.com/sadopc/pomo/internal/history"
	"github.com/sadopc/pomo/internal/state"
)

func TestStatusEmptyState(t *testing.T) {
	out := Status(state.New())

	for _, want := range []string{
		"Total pomodoros: 0",
		"Short breaks:    0",
		"Long breaks:     0",
		"not yet recorded",
		"No configuration recorded.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in status output:\n%s", want, out)
		}
	}
}

func TestStatusWithConfig(t *testing.T) {
	last := "2026-08-25T09:30:00Z"
	st := &state.State{
		TotalPomodoros:   12,
		TotalShortBreaks: 8,
		TotalLongBreaks:  2,
		LastSession:      &last,
		Config: state.Config{
			state.KeyWorkDuration:   1500,
			state.KeyShortBreak:     300,
			state.KeyLongBreak:      900,
			state.KeyLongBreakEvery: 4,
		},
	}

	out := Status(st)
	for _, want := range []string{
		"Total pomodoros: 12",
		"2026-08-25T09:30:00Z",
		"Work: 25 min",
		"Short break: 5 min",
		"Long break: 15 min",
		"Long break every: 4",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in status output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "No configuration recorded.") {
		t.Errorf("unexpected missing-config marker:\n%s", out)
	}
}

func TestHistoryEmpty(t *testing.T) {
	out := History(nil, nil, 14, 80)
	if !strings.Contains(out, "No runs recorded.") {
		t.Fatalf("missing empty marker:\n%s", out)
	}
	if !strings.Contains(out, "Pomodoros per day (last 14 days):") {
		t.Fatalf("missing chart title:\n%s", out)
	}
}

func TestHistoryWithRuns(t *testing.T) {
	started := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	runs := []history.Run{
		{
			ID:                1,
			WorkDuration:      1500,
			ShortBreak:        300,
			LongBreak:         900,
			LongBreakEvery:    4,
			TargetSessions:    4,
			CompletedSessions: 4,
			ShortBreaks:       3,
			LongBreaks:        0,
			Status:            "completed",
			StartedAt:         started,
		},
		{
			ID:                2,
			WorkDuration:      1500,
			TargetSessions:    4,
			CompletedSessions: 1,
			ShortBreaks:       1,
			Status:            "cancelled",
			StartedAt:         started.Add(4 * time.Hour),
		},
	}
	daily := []history.DailyCount{
		{Date: time.Now().UTC().Format("2006-01-02"), Completed: 5},
	}

	out := History(daily, runs, 7, 80)
	for _, want := range []string{"Recent runs:", "completed", "cancelled", "4/4", "1/4"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in history output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "No runs recorded.") {
		t.Errorf("unexpected empty marker:\n%s", out)
	}
}

func TestHistoryNarrowWidth(t *testing.T) {
	// Must not panic or collapse below the minimum chart width.
	out := History(nil, nil, 7, 10)
	if out == "" {
		t.Fatal("expected output")
	}
}
