package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomo/internal/history"
)

func ToCSV(runs []history.Run, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	header := []string{
		"ID", "Status", "Started", "Finished",
		"Work (s)", "Short break (s)", "Long break (s)", "Long break every",
		"Target", "Completed", "Short breaks", "Long breaks",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range runs {
		finished := ""
		if r.FinishedAt != nil {
			finished = r.FinishedAt.Local().Format(time.RFC3339)
		}

		row := []string{
			fmt.Sprintf("%d", r.ID),
			r.Status,
			r.StartedAt.Local().Format(time.RFC3339),
			finished,
			fmt.Sprintf("%d", r.WorkDuration),
			fmt.Sprintf("%d", r.ShortBreak),
			fmt.Sprintf("%d", r.LongBreak),
			fmt.Sprintf("%d", r.LongBreakEvery),
			fmt.Sprintf("%d", r.TargetSessions),
			fmt.Sprintf("%d", r.CompletedSessions),
			fmt.Sprintf("%d", r.ShortBreaks),
			fmt.Sprintf("%d", r.LongBreaks),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
