// Package report renders the status and history views for the terminal.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"

	"github.com/sadopc/pomo/internal/history"
	"github.com/sadopc/pomo/internal/state"
	"github.com/sadopc/pomo/internal/timer"
)

// Status renders the cumulative counters and last-used configuration.
func Status(st *state.State) string {
	var b strings.Builder

	fmt.Fprintln(&b, titleStyle.Render("Saved statistics:"))
	fmt.Fprintf(&b, "  Total pomodoros: %d\n", st.TotalPomodoros)
	fmt.Fprintf(&b, "  Short breaks:    %d\n", st.TotalShortBreaks)
	fmt.Fprintf(&b, "  Long breaks:     %d\n", st.TotalLongBreaks)

	last := mutedStyle.Render("not yet recorded")
	if st.LastSession != nil {
		last = *st.LastSession
	}
	fmt.Fprintf(&b, "  Last session:    %s\n", last)

	if len(st.Config) == 0 {
		fmt.Fprintf(&b, "  %s\n", mutedStyle.Render("No configuration recorded."))
		return b.String()
	}

	fmt.Fprintln(&b, "  Last used settings:")
	fmt.Fprintf(&b, "    Work: %d min, Short break: %d min, Long break: %d min, Long break every: %d\n",
		st.Config[state.KeyWorkDuration]/60,
		st.Config[state.KeyShortBreak]/60,
		st.Config[state.KeyLongBreak]/60,
		st.Config[state.KeyLongBreakEvery],
	)
	return b.String()
}

// History renders a bar chart of completed pomodoros per day over the last
// `days` days followed by a table of the most recent runs.
func History(daily []history.DailyCount, runs []history.Run, days, width int) string {
	var b strings.Builder

	fmt.Fprintln(&b, titleStyle.Render(fmt.Sprintf("Pomodoros per day (last %d days):", days)))
	fmt.Fprintln(&b, renderChart(daily, days, width))
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, titleStyle.Render("Recent runs:"))
	fmt.Fprint(&b, renderRunsTable(runs, width))
	return b.String()
}

func renderChart(daily []history.DailyCount, days, width int) string {
	chartWidth := width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}

	chart := barchart.New(chartWidth, 10)

	byDate := make(map[string]int, len(daily))
	for _, d := range daily {
		byDate[d.Date] = d.Completed
	}

	today := time.Now().UTC()
	start := today.AddDate(0, 0, 1-days)
	var bars []barchart.BarData
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		count := byDate[d.Format("2006-01-02")]
		style := barStyle
		if count == 0 {
			style = emptyBarStyle
		}
		bars = append(bars, barchart.BarData{
			Label: d.Format("02"),
			Values: []barchart.BarValue{
				{Name: "pomodoros", Value: float64(count), Style: style},
			},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

func renderRunsTable(runs []history.Run, width int) string {
	if len(runs) == 0 {
		return mutedStyle.Render("  No runs recorded.") + "\n"
	}

	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-17s %-12s %9s %12s %7s", "Started", "Status", "Done", "Breaks S/L", "Work")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", minInt(width-6, 60))))

	for _, r := range runs {
		rows = append(rows, fmt.Sprintf("  %-17s %-12s %5d/%-3d %8d/%-3d %7s",
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			statusLabel(r.Status),
			r.CompletedSessions, r.TargetSessions,
			r.ShortBreaks, r.LongBreaks,
			timer.FormatDuration(time.Duration(r.WorkDuration*r.CompletedSessions)*time.Second),
		))
	}
	return strings.Join(rows, "\n") + "\n"
}

func statusLabel(status string) string {
	switch status {
	case "completed":
		return successStyle.Render(status)
	case "cancelled":
		return warningStyle.Render(status)
	case "interrupted":
		return errorStyle.Render(status)
	}
	return status
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
