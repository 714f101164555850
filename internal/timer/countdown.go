// Package timer implements the blocking console countdown used for work and
// break intervals.
package timer

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C63FF"))
	doneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2ECC71"))
)

// FormatDuration renders a duration as MM:SS. Both fields are zero-padded to
// two digits; minutes grow past two digits without an hour rollover, so
// 3661s renders as "61:01".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// Countdown writes a per-second countdown to Out, overwriting a single line
// until the duration elapses. It has no state of its own; each Run is
// anchored to the wall clock at entry so a slow terminal cannot stretch the
// interval.
type Countdown struct {
	Out io.Writer
	// Interval is the redraw period. Zero means one second; tests shrink it.
	Interval time.Duration
}

// Run blocks until d has elapsed or ctx is cancelled. Cancellation prints a
// notice and returns ctx.Err() so the caller decides what the interruption
// means.
func (c *Countdown) Run(ctx context.Context, d time.Duration, label string) error {
	out := c.Out
	if out == nil {
		out = os.Stdout
	}
	interval := c.Interval
	if interval <= 0 {
		interval = time.Second
	}

	fmt.Fprintf(out, "\n%s started! %s\n", labelStyle.Render(label), FormatDuration(d))

	start := time.Now()
	remaining := d
	for remaining > 0 {
		fmt.Fprintf(out, "\rTime remaining: %s", FormatDuration(remaining))
		select {
		case <-ctx.Done():
			fmt.Fprintf(out, "\nCancelled.\n")
			return ctx.Err()
		case <-time.After(interval):
		}
		// Recompute from the anchor rather than decrementing so drift in
		// the sleep does not accumulate.
		remaining = d - time.Since(start)
		if remaining < 0 {
			remaining = 0
		}
	}

	fmt.Fprintf(out, "\r%s          \n", doneStyle.Render("Time's up!"))
	return nil
}
