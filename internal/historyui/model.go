// Package historyui provides the Bubble Tea run history browser.
package historyui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuimer/internal/model"
	"github.com/verte-zerg/tuimer/internal/stats"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	sparkStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#5CCB6B"))
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// Source lists recorded runs. *store.Store satisfies it.
type Source interface {
	ListRuns(ctx context.Context, cfg model.HistoryConfig) ([]model.Run, error)
}

// Model implements the Bubble Tea history UI.
type Model struct {
	source Source
	cfg    model.HistoryConfig
	now    func() time.Time

	runs    []model.Run
	summary stats.Summary
	errMsg  string

	table table.Model

	width  int
	height int
}

// NewModel constructs a history UI reading from source.
func NewModel(source Source, cfg model.HistoryConfig) *Model {
	m := &Model{
		source: source,
		cfg:    cfg,
		now:    time.Now,
		table: table.New(
			table.WithColumns(runColumns(80)),
			table.WithFocused(true),
			table.WithHeight(10),
		),
	}
	m.table.SetStyles(tableStyles())
	m.reload()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.reload()
			m.updateLayout()
			return m, nil
		case "g", "home":
			m.table.GotoTop()
			return m, nil
		case "G", "end":
			m.table.GotoBottom()
			return m, nil
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.layoutWidth()
	parts := []string{titleStyle.Render("tuimer history"), m.renderFilterSummary(width), ""}
	switch {
	case m.errMsg != "":
		parts = append(parts, errorStyle.Render(m.errMsg))
	case len(m.runs) == 0:
		parts = append(parts, "No runs found.")
	default:
		parts = append(parts,
			m.renderSummaryCards(width),
			"",
			m.renderSparkline(width),
			"",
			tableMutedStyle.Render(m.table.View()),
		)
	}
	parts = append(parts, "", headerStyle.Render("Scroll: up/down  Reload: r  Quit: q"))
	out := strings.Join(parts, "\n")
	if m.width == 0 || m.height == 0 {
		return out
	}
	return fitLines(out, m.width, m.height)
}

func (m *Model) reload() {
	runs, err := m.source.ListRuns(context.Background(), m.cfg)
	if err != nil {
		m.errMsg = fmt.Sprintf("failed to load runs: %v", err)
		m.runs = nil
		m.table.SetRows(nil)
		return
	}
	m.errMsg = ""
	m.runs = runs
	now := m.now()
	m.summary = stats.Summarize(runs, now)
	rows := stats.RunRows(runs, now.Location())
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row(r)
	}
	m.table.SetRows(tableRows)
	m.table.GotoTop()
}

func (m *Model) layoutWidth() int {
	if m.width <= 0 {
		return 80
	}
	return m.width
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.table.SetColumns(runColumns(m.width))
	m.table.SetWidth(m.width)
	used := lipgloss.Height(m.renderSummaryCards(m.width)) + 9
	m.table.SetHeight(maxInt(3, m.height-used))
}

func (m *Model) renderFilterSummary(width int) string {
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Filters: since=%s  last=%s", since, last)
	if m.cfg.CompletedOnly {
		summary += "  completed only"
	}
	return headerStyle.Render(truncateLine(summary, width))
}

func (m *Model) renderSummaryCards(width int) string {
	s := m.summary
	cards := []string{
		metricCard("Runs", strconv.Itoa(s.Runs)),
		metricCard("Completed", fmt.Sprintf("%d (%.0f%%)", s.Completed, s.CompletionRate*100)),
		metricCard("Focus", stats.FormatDuration(s.Focus)),
		metricCard("Avg Run", stats.FormatDuration(s.AvgCompleted)),
		metricCard("Longest", stats.FormatDuration(s.Longest)),
		metricCard("Streak", fmt.Sprintf("%d d", s.Streak)),
	}
	if width < 60 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func (m *Model) renderSparkline(width int) string {
	days := stats.SparkDays(width)
	line := stats.Sparkline(stats.FocusMinutes(stats.DailyTotals(m.runs, days, m.now())))
	return headerStyle.Render(fmt.Sprintf("Focus, last %d days ", days)) + sparkStyle.Render("["+line+"]")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func runColumns(width int) []table.Column {
	titles := stats.RunColumnTitles()
	widths := []int{16, 8, 8, 10}
	if extra := width - 48; extra > 0 {
		widths[0] += minInt(extra, 8)
	}
	cols := make([]table.Column, len(titles))
	for i, title := range titles {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
