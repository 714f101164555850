// Package cycle drives the alternation of work and break intervals and owns
// the bookkeeping around them.
package cycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sadopc/pomo/internal/state"
	"github.com/sadopc/pomo/internal/timer"
)

// Options configures a single run of the controller.
type Options struct {
	WorkDuration       time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	LongBreakEvery     int
	Sessions           int
	AutoContinue       bool
}

// Validate rejects values the loop cannot run with. The cadence check is the
// important one: a non-positive LongBreakEvery would otherwise reach the
// modulo in break selection.
func (o Options) Validate() error {
	if o.WorkDuration <= 0 {
		return fmt.Errorf("work duration must be positive, got %v", o.WorkDuration)
	}
	if o.ShortBreakDuration <= 0 {
		return fmt.Errorf("short break duration must be positive, got %v", o.ShortBreakDuration)
	}
	if o.LongBreakDuration <= 0 {
		return fmt.Errorf("long break duration must be positive, got %v", o.LongBreakDuration)
	}
	if o.LongBreakEvery < 1 {
		return fmt.Errorf("long break cadence must be at least 1, got %d", o.LongBreakEvery)
	}
	if o.Sessions < 1 {
		return fmt.Errorf("session count must be at least 1, got %d", o.Sessions)
	}
	return nil
}

// Outcome is the terminal state of a run.
type Outcome int

const (
	// OutcomeDone means every requested work interval completed.
	OutcomeDone Outcome = iota
	// OutcomeCancelled means the user quit at a confirmation prompt.
	OutcomeCancelled
	// OutcomeInterrupted means the run context was cancelled mid-countdown.
	OutcomeInterrupted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeInterrupted:
		return "interrupted"
	}
	return "unknown"
}

// Result reports how a run ended and how many work intervals completed.
type Result struct {
	Outcome   Outcome
	Completed int
}

// Run statuses handed to the Recorder.
const (
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusInterrupted = "interrupted"
)

// IntervalRunner runs one countdown. Satisfied by *timer.Countdown.
type IntervalRunner interface {
	Run(ctx context.Context, d time.Duration, label string) error
}

// Recorder receives best-effort history notifications. Implementations must
// not fail the run; errors stay inside the recorder.
type Recorder interface {
	RunStarted()
	WorkCompleted()
	BreakTaken(long bool)
	Finished(status string)
}

// Controller walks the work/break sequence, persisting state after every
// completed interval. Persist failures abort the run; everything else is a
// deliberate, user-visible way of stopping.
type Controller struct {
	Intervals IntervalRunner
	Confirm   Confirmer
	Persist   func(*state.State) error
	Recorder  Recorder
	Out       io.Writer

	// now stamps last_session; overridable in tests.
	now func() time.Time
}

func (c *Controller) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Controller) timestamp() string {
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	return now().UTC().Format(time.RFC3339)
}

// Run executes opts.Sessions work intervals against st. The final work
// interval is not followed by a break. Context cancellation at any countdown
// ends the run with OutcomeInterrupted after reporting progress; the caller
// decides the process exit.
func (c *Controller) Run(ctx context.Context, opts Options, st *state.State) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	if c.Recorder != nil {
		c.Recorder.RunStarted()
	}

	completed := 0
	for index := 1; index <= opts.Sessions; index++ {
		err := c.Intervals.Run(ctx, opts.WorkDuration, fmt.Sprintf("Pomodoro %d", index))
		if err != nil {
			return c.interrupted(completed, err)
		}

		completed++
		st.TotalPomodoros++
		ts := c.timestamp()
		st.LastSession = &ts
		if err := c.Persist(st); err != nil {
			return Result{}, fmt.Errorf("persist state after pomodoro %d: %w", index, err)
		}
		if c.Recorder != nil {
			c.Recorder.WorkCompleted()
		}

		if index == opts.Sessions {
			fmt.Fprintln(c.out(), "All Pomodoro sessions completed!")
			if c.Recorder != nil {
				c.Recorder.Finished(StatusCompleted)
			}
			return Result{Outcome: OutcomeDone, Completed: completed}, nil
		}

		long := index%opts.LongBreakEvery == 0
		label, breakDuration := "Short break", opts.ShortBreakDuration
		if long {
			label, breakDuration = "Long break", opts.LongBreakDuration
			st.TotalLongBreaks++
		} else {
			st.TotalShortBreaks++
		}
		if err := c.Persist(st); err != nil {
			return Result{}, fmt.Errorf("persist state before %s: %w", label, err)
		}
		if c.Recorder != nil {
			c.Recorder.BreakTaken(long)
		}

		if err := c.Intervals.Run(ctx, breakDuration, label); err != nil {
			return c.interrupted(completed, err)
		}

		if !opts.AutoContinue {
			proceed, err := c.Confirm.Confirm("Press Enter for the next Pomodoro (q to quit): ")
			if err != nil || !proceed {
				fmt.Fprintln(c.out(), "Session ended.")
				if c.Recorder != nil {
					c.Recorder.Finished(StatusCancelled)
				}
				return Result{Outcome: OutcomeCancelled, Completed: completed}, nil
			}
		}
	}

	// Unreachable: the final index always returns above.
	return Result{Outcome: OutcomeDone, Completed: completed}, nil
}

func (c *Controller) interrupted(completed int, err error) (Result, error) {
	if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		return Result{}, err
	}
	fmt.Fprintf(c.out(), "Session ended. Pomodoros completed so far: %d\n", completed)
	if c.Recorder != nil {
		c.Recorder.Finished(StatusInterrupted)
	}
	return Result{Outcome: OutcomeInterrupted, Completed: completed}, nil
}

// compile-time check that the real countdown satisfies the interface.
var _ IntervalRunner = (*timer.Countdown)(nil)
