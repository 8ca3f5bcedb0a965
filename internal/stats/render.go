package stats

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/tuimer/internal/model"
)

const (
	terminalWidthBackup = 80
	minSparkDays        = 7
	maxSparkDays        = 30
	sparkLabelWidth     = 20
)

// RenderPlain writes a summary, a daily focus sparkline and a run table.
// width sizes the sparkline; zero means the terminal width.
func RenderPlain(w io.Writer, runs []model.Run, now time.Time, width int) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	if width <= 0 {
		width = TerminalWidth()
	}
	s := Summarize(runs, now)
	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d (%d completed, %.0f%%)", s.Runs, s.Completed, s.CompletionRate*100),
		fmt.Sprintf("Focus: %s", FormatDuration(s.Focus)),
		fmt.Sprintf("Avg completed: %s", FormatDuration(s.AvgCompleted)),
		fmt.Sprintf("Longest: %s", FormatDuration(s.Longest)),
		fmt.Sprintf("Streak: %d day(s)", s.Streak),
		"",
	}
	days := SparkDays(width)
	lines = append(lines,
		fmt.Sprintf("Focus, last %d days", days),
		"["+Sparkline(FocusMinutes(DailyTotals(runs, days, now)))+"]",
		"",
	)
	lines = append(lines, formatTable(runColumns(), RunRows(runs, now.Location()))...)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RunRows formats runs for tables, newest first.
func RunRows(runs []model.Run, loc *time.Location) [][]string {
	rows := make([][]string, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		status := "abandoned"
		if r.Completed {
			status = "completed"
		}
		rows = append(rows, []string{
			r.EndedAt.In(loc).Format("2006-01-02 15:04"),
			FormatDuration(r.Planned),
			FormatDuration(r.Elapsed),
			status,
		})
	}
	return rows
}

// RunColumnTitles returns the headers matching RunRows.
func RunColumnTitles() []string {
	cols := runColumns()
	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.title
	}
	return titles
}

func runColumns() []column {
	return []column{
		{title: "Ended"},
		{title: "Planned", right: true},
		{title: "Focused", right: true},
		{title: "Status"},
	}
}

// SparkDays picks how many days of history fit in width.
func SparkDays(width int) int {
	days := width - sparkLabelWidth
	if days < minSparkDays {
		return minSparkDays
	}
	if days > maxSparkDays {
		return maxSparkDays
	}
	return days
}

// TerminalWidth returns the stdout width or a fallback when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
