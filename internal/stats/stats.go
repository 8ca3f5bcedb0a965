// Package stats contains run history calculations and reporting.
package stats

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/tuimer/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a set of runs.
type Summary struct {
	Runs           int
	Completed      int
	CompletionRate float64
	Focus          time.Duration
	AvgCompleted   time.Duration
	Longest        time.Duration
	Streak         int
}

// Summarize computes totals and the current daily streak relative to now.
func Summarize(runs []model.Run, now time.Time) Summary {
	s := Summary{Runs: len(runs)}
	var completedSum time.Duration
	for _, r := range runs {
		s.Focus += r.Elapsed
		if !r.Completed {
			continue
		}
		s.Completed++
		completedSum += r.Elapsed
		if r.Elapsed > s.Longest {
			s.Longest = r.Elapsed
		}
	}
	if s.Runs > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.Runs)
	}
	if s.Completed > 0 {
		s.AvgCompleted = completedSum / time.Duration(s.Completed)
	}
	s.Streak = Streak(runs, now)
	return s
}

// Streak counts consecutive days with at least one completed run, ending
// today or, when today has none yet, yesterday.
func Streak(runs []model.Run, now time.Time) int {
	days := map[time.Time]struct{}{}
	for _, r := range runs {
		if r.Completed {
			days[startOfDay(r.EndedAt.In(now.Location()))] = struct{}{}
		}
	}
	day := startOfDay(now)
	if _, ok := days[day]; !ok {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for {
		if _, ok := days[day]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// DailyTotals groups runs into the last n local calendar days ending at now,
// oldest first. Days without runs are included with zero totals.
func DailyTotals(runs []model.Run, n int, now time.Time) []model.DayTotal {
	if n <= 0 {
		return nil
	}
	today := startOfDay(now)
	first := today.AddDate(0, 0, -(n - 1))
	out := make([]model.DayTotal, n)
	for i := range out {
		out[i].Day = first.AddDate(0, 0, i)
	}
	for _, r := range runs {
		day := startOfDay(r.EndedAt.In(now.Location()))
		if day.Before(first) || day.After(today) {
			continue
		}
		idx := daysBetween(first, day)
		if idx < 0 || idx >= n {
			continue
		}
		out[idx].Runs++
		out[idx].Focus += r.Elapsed
		if r.Completed {
			out[idx].Completed++
		}
	}
	return out
}

// FocusMinutes extracts focused minutes per day for plotting.
func FocusMinutes(days []model.DayTotal) []float64 {
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = d.Focus.Minutes()
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// FormatDuration renders d compactly, e.g. "1h05m", "25m" or "40s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := int64(d / time.Hour)
	m := int64((d % time.Hour) / time.Minute)
	sec := int64((d % time.Minute) / time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm", h, m)
	case m > 0 && sec > 0:
		return fmt.Sprintf("%dm%02ds", m, sec)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", sec)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	// Round to absorb DST shifts of an hour.
	return int(math.Round(to.Sub(from).Hours() / 24))
}
