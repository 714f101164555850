package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/sadopc/pomo/internal/cycle"
	"github.com/sadopc/pomo/internal/export"
	"github.com/sadopc/pomo/internal/history"
	"github.com/sadopc/pomo/internal/report"
	"github.com/sadopc/pomo/internal/state"
	"github.com/sadopc/pomo/internal/timer"
)

const historyWidth = 80

var CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Start struct {
		Work           int  `help:"Work duration in minutes" default:"25"`
		ShortBreak     int  `help:"Short break duration in minutes" default:"5"`
		LongBreak      int  `help:"Long break duration in minutes" default:"15"`
		LongBreakEvery int  `help:"Take a long break after every N pomodoros" default:"4"`
		Sessions       int  `help:"Total number of pomodoros to run" default:"4"`
		AutoContinue   bool `help:"Skip the confirmation prompt between intervals"`
	} `cmd:"" help:"Start a Pomodoro cycle"`

	Status struct{} `cmd:"" help:"Show saved statistics"`

	Reset struct {
		History bool `help:"Also clear the run history"`
	} `cmd:"" help:"Delete the saved state file"`

	History struct {
		Days   int    `help:"Days to include in the daily chart" default:"14"`
		Limit  int    `help:"Number of recent runs to list" default:"10"`
		Export string `help:"Export runs to a .json or .csv file instead of printing" type:"path"`
	} `cmd:"" help:"Show recent runs and daily totals"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("pomo"),
		kong.Description("Pomodoro timer with persistent statistics"),
	)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	statePath, err := state.DefaultPath()
	if err != nil {
		slog.Error("Failed to resolve state file path", "error", err)
		os.Exit(1)
	}

	switch kctx.Command() {
	case "start":
		if err := runStart(statePath); err != nil {
			slog.Error("Start failed", "error", err)
			os.Exit(1)
		}
	case "status":
		if err := runStatus(statePath); err != nil {
			slog.Error("Status failed", "error", err)
			os.Exit(1)
		}
	case "reset":
		if err := runReset(statePath, CLI.Reset.History); err != nil {
			slog.Error("Reset failed", "error", err)
			os.Exit(1)
		}
	case "history":
		if err := runHistory(); err != nil {
			slog.Error("History failed", "error", err)
			os.Exit(1)
		}
	}
}

func runStart(statePath string) error {
	opts := cycle.Options{
		WorkDuration:       time.Duration(CLI.Start.Work) * time.Minute,
		ShortBreakDuration: time.Duration(CLI.Start.ShortBreak) * time.Minute,
		LongBreakDuration:  time.Duration(CLI.Start.LongBreak) * time.Minute,
		LongBreakEvery:     CLI.Start.LongBreakEvery,
		Sessions:           CLI.Start.Sessions,
		AutoContinue:       CLI.Start.AutoContinue,
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	st, origin, err := state.Load(statePath)
	if err != nil {
		return err
	}
	slog.Debug("State loaded", "origin", origin.String(), "path", statePath)

	st.Config = state.Config{
		state.KeyWorkDuration:   int(opts.WorkDuration.Seconds()),
		state.KeyShortBreak:     int(opts.ShortBreakDuration.Seconds()),
		state.KeyLongBreak:      int(opts.LongBreakDuration.Seconds()),
		state.KeyLongBreakEvery: opts.LongBreakEvery,
	}
	if err := state.Save(statePath, st); err != nil {
		return err
	}

	// Run history is best-effort: the timer still works when the database
	// cannot be opened, it just records nothing.
	var recorder cycle.Recorder
	if store, err := openHistory(); err != nil {
		slog.Warn("Run history unavailable", "error", err)
	} else {
		defer store.Close()
		recorder = history.NewRecorder(store,
			int(opts.WorkDuration.Seconds()),
			int(opts.ShortBreakDuration.Seconds()),
			int(opts.LongBreakDuration.Seconds()),
			opts.LongBreakEvery,
			opts.Sessions,
		)
	}

	fmt.Printf("Starting: %d min work, %d min short break, %d min long break (after every %d pomodoros), %d sessions.\n",
		CLI.Start.Work, CLI.Start.ShortBreak, CLI.Start.LongBreak, CLI.Start.LongBreakEvery, CLI.Start.Sessions)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctrl := &cycle.Controller{
		Intervals: &timer.Countdown{Out: os.Stdout},
		Confirm:   cycle.NewStdinConfirmer(os.Stdin, os.Stdout),
		Persist:   func(s *state.State) error { return state.Save(statePath, s) },
		Recorder:  recorder,
		Out:       os.Stdout,
	}
	res, err := ctrl.Run(ctx, opts, st)
	if err != nil {
		return err
	}
	slog.Debug("Cycle finished", "outcome", res.Outcome.String(), "completed", res.Completed)
	return nil
}

func runStatus(statePath string) error {
	st, origin, err := state.Load(statePath)
	if err != nil {
		return err
	}
	slog.Debug("State loaded", "origin", origin.String(), "path", statePath)

	fmt.Print(report.Status(st))
	return nil
}

func runReset(statePath string, clearHistory bool) error {
	existed, err := state.Delete(statePath)
	if err != nil {
		return err
	}
	if existed {
		fmt.Println("Saved state file deleted.")
	} else {
		fmt.Println("No state file to delete.")
	}

	if clearHistory {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Clear(); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
	}
	return nil
}

func runHistory() error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.RecentRuns(CLI.History.Limit)
	if err != nil {
		return err
	}

	if CLI.History.Export != "" {
		if err := exportRuns(runs, CLI.History.Export); err != nil {
			return err
		}
		fmt.Printf("Exported %d runs to %s\n", len(runs), CLI.History.Export)
		return nil
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := today.AddDate(0, 0, 1-CLI.History.Days)
	to := today.AddDate(0, 0, 1)

	daily, err := store.DailyPomodoros(from, to)
	if err != nil {
		return err
	}

	fmt.Print(report.History(daily, runs, CLI.History.Days, historyWidth))
	return nil
}

func openHistory() (*history.Store, error) {
	dbPath, err := history.DefaultDBPath()
	if err != nil {
		return nil, err
	}
	return history.New(dbPath)
}

func exportRuns(runs []history.Run, path string) error {
	switch filepath.Ext(path) {
	case ".json":
		return export.ToJSON(runs, path)
	case ".csv":
		return export.ToCSV(runs, path)
	}
	return fmt.Errorf("unsupported export format %q (use .json or .csv)", filepath.Ext(path))
}
