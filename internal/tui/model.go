// Package tui provides the Bubble Tea countdown interface.
package tui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/tuimer/internal/alert"
	"github.com/verte-zerg/tuimer/internal/model"
	"github.com/verte-zerg/tuimer/internal/preset"
	"github.com/verte-zerg/tuimer/internal/stats"
	"github.com/verte-zerg/tuimer/internal/timer"
)

const (
	pollInterval = 100 * time.Millisecond
	flashHalf    = 500 * time.Millisecond
	bannerText   = "Time's up! Take a break! 🎉"
)

// Recorder persists runs. *store.Store satisfies it.
type Recorder interface {
	InsertRun(ctx context.Context, run model.Run) (int64, error)
	ListRuns(ctx context.Context, cfg model.HistoryConfig) ([]model.Run, error)
}

type tickMsg time.Time

// Model implements the Bubble Tea countdown UI.
type Model struct {
	config   model.Config
	timer    *timer.Timer
	player   *alert.Player
	recorder Recorder
	clock    timer.Clock

	presets  []preset.Preset
	selected int
	current  preset.Preset

	keys keyMap
	help help.Model

	input     textinput.Model
	inputMode bool
	inputErr  string

	width  int
	height int

	complete   bool
	flash      bool
	flashOn    bool
	flashSince time.Time

	runID        string
	runStartedAt time.Time

	todayDone  int
	todayFocus time.Duration
	errMsg     string
}

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	clockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Padding(1, 4).Border(lipgloss.RoundedBorder(), true).BorderForeground(lipgloss.Color("#4A4A4A"))
	presetStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	bannerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0F2E14")).Background(lipgloss.Color("#5CCB6B")).Bold(true).Padding(0, 2)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	flashColor   = lipgloss.Color("#FF4B4B")
	runningColor = lipgloss.Color("#5CCB6B")
)

// NewModel constructs the countdown UI around tm and player. A nil recorder
// disables run history.
func NewModel(cfg model.Config, tm *timer.Timer, player *alert.Player, recorder Recorder) *Model {
	m := &Model{
		config:   cfg,
		timer:    tm,
		player:   player,
		recorder: recorder,
		clock:    timer.SystemClock,
		presets:  preset.Defaults(),
		keys:     newKeyMap(),
		help:     help.New(),
		input:    newMinutesInput(),
	}
	tm.SetOnComplete(m.handleComplete)
	m.current = m.initialPreset()
	m.timer.SetDuration(m.current.Duration)
	m.loadFooterStats()
	return m
}

func newMinutesInput() textinput.Model {
	input := textinput.New()
	input.Prompt = fmt.Sprintf("Minutes (%d-%d): ", preset.MinCustomMinutes, preset.MaxCustomMinutes)
	input.Placeholder = strconv.Itoa(preset.DefaultCustomMinutes)
	input.CharLimit = 3
	input.Width = 5
	return input
}

func (m *Model) initialPreset() preset.Preset {
	if m.config.CustomMinutes > 0 {
		if p, err := preset.Custom(m.config.CustomMinutes); err == nil {
			m.selected = -1
			return p
		}
	}
	key := m.config.PresetKey
	if key == "" {
		key = preset.DefaultKey
	}
	for i, p := range m.presets {
		if p.Key == key {
			m.selected = i
			return p
		}
	}
	m.selected = 0
	return m.presets[0]
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		m.timer.Update()
		m.updateFlash()
		return m, tick()
	case tea.KeyMsg:
		if m.inputMode {
			return m.updateInput(msg)
		}
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.keys.sync(m.timer.Running())
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.toggle()
	case key.Matches(msg, m.keys.Reset):
		m.reset()
	case key.Matches(msg, m.keys.Next):
		m.cyclePreset(1)
	case key.Matches(msg, m.keys.Prev):
		m.cyclePreset(-1)
	case key.Matches(msg, m.keys.Custom):
		return m.startInput()
	case key.Matches(msg, m.keys.Silence):
		m.player.Stop()
		m.flash = false
		m.flashOn = false
	}
	m.keys.sync(m.timer.Running())
	return m, nil
}

func (m *Model) toggle() {
	if m.timer.Running() {
		m.timer.Pause()
		return
	}
	if m.timer.Remaining() <= 0 {
		return
	}
	if m.runStartedAt.IsZero() {
		m.runID = uuid.NewString()
		m.runStartedAt = m.clock.Now()
	}
	m.complete = false
	m.timer.Start()
}

func (m *Model) reset() {
	m.abandonRun()
	m.timer.Reset()
	m.player.Stop()
	m.clearCompletion()
}

func (m *Model) cyclePreset(delta int) {
	if m.timer.Running() {
		return
	}
	count := len(m.presets)
	next := m.selected + delta
	if m.selected < 0 {
		next = 0
		if delta < 0 {
			next = count - 1
		}
	}
	next = (next%count + count) % count
	m.selected = next
	m.applyPreset(m.presets[next])
}

func (m *Model) applyPreset(p preset.Preset) {
	m.abandonRun()
	m.current = p
	m.timer.SetDuration(p.Duration)
	m.player.Stop()
	m.clearCompletion()
}

func (m *Model) clearCompletion() {
	m.complete = false
	m.flash = false
	m.flashOn = false
}

func (m *Model) startInput() (tea.Model, tea.Cmd) {
	if m.timer.Running() {
		return m, nil
	}
	m.inputMode = true
	m.inputErr = ""
	value := ""
	if m.config.CustomMinutes > 0 {
		value = strconv.Itoa(m.config.CustomMinutes)
	}
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.shutdown()
		return m, tea.Quit
	case tea.KeyEsc:
		m.inputMode = false
		m.inputErr = ""
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		p, err := parseMinutes(m.input.Value())
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.inputMode = false
		m.inputErr = ""
		m.input.Blur()
		m.selected = -1
		m.config.CustomMinutes = int(p.Duration / time.Minute)
		m.applyPreset(p)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func parseMinutes(value string) (preset.Preset, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = strconv.Itoa(preset.DefaultCustomMinutes)
	}
	minutes, err := strconv.Atoi(value)
	if err != nil {
		return preset.Preset{}, fmt.Errorf("minutes must be a whole number")
	}
	return preset.Custom(minutes)
}

// handleComplete runs inside timer.Update on the completion crossing.
func (m *Model) handleComplete() {
	m.complete = true
	m.flash = true
	m.flashOn = true
	m.flashSince = m.clock.Now()
	m.player.PlayAsync(m.config.AlertDuration)
	m.recordRun(true)
}

func (m *Model) updateFlash() {
	if !m.flash {
		return
	}
	phase := m.clock.Now().Sub(m.flashSince) / flashHalf
	m.flashOn = phase%2 == 0
}

func (m *Model) shutdown() {
	m.timer.Pause()
	m.abandonRun()
	m.player.Stop()
}

// abandonRun records a started run that is discarded before completing.
func (m *Model) abandonRun() {
	if m.runStartedAt.IsZero() {
		return
	}
	if m.timer.Elapsed() <= 0 {
		m.clearRun()
		return
	}
	m.recordRun(false)
}

func (m *Model) recordRun(completed bool) {
	if m.runStartedAt.IsZero() {
		return
	}
	run := model.Run{
		ID:        m.runID,
		StartedAt: m.runStartedAt,
		EndedAt:   m.clock.Now(),
		Planned:   m.timer.Duration(),
		Elapsed:   m.timer.Elapsed(),
		Completed: completed,
	}
	m.clearRun()
	if completed {
		m.todayDone++
		m.todayFocus += run.Elapsed
	}
	if m.recorder == nil {
		return
	}
	if _, err := m.recorder.InsertRun(context.Background(), run); err != nil {
		log.Printf("failed to save run: %v", err)
		m.errMsg = "failed to save run"
	}
}

func (m *Model) clearRun() {
	m.runID = ""
	m.runStartedAt = time.Time{}
}

func (m *Model) loadFooterStats() {
	if m.recorder == nil {
		return
	}
	now := m.clock.Now()
	y, mo, d := now.Date()
	since := time.Date(y, mo, d, 0, 0, 0, 0, now.Location())
	runs, err := m.recorder.ListRuns(context.Background(), model.HistoryConfig{Since: &since, CompletedOnly: true})
	if err != nil {
		log.Printf("failed to load run history: %v", err)
		return
	}
	m.todayDone = len(runs)
	m.todayFocus = 0
	for _, r := range runs {
		m.todayFocus += r.Elapsed
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderContent()
	if m.width == 0 || m.height == 0 {
		return content
	}
	if m.flash && m.flashOn {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content,
			lipgloss.WithWhitespaceBackground(flashColor))
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderContent() string {
	countdown := clockStyle
	if m.timer.Running() {
		countdown = countdown.BorderForeground(runningColor)
	}
	lines := []string{
		titleStyle.Render("tuimer"),
		m.renderPresets(),
		countdown.Render(timer.FormatTime(m.timer.Remaining())),
		statusStyle.Render(m.renderStatus()),
	}
	if m.complete {
		lines = append(lines, "", bannerStyle.Render(bannerText))
	}
	if m.inputMode {
		lines = append(lines, "", m.input.View())
		if m.inputErr != "" {
			lines = append(lines, errorStyle.Render(m.inputErr))
		}
	}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	m.keys.sync(m.timer.Running())
	lines = append(lines, "", m.help.View(m.keys), m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m *Model) renderPresets() string {
	if m.selected < 0 {
		return presetStyle.Render("‹ " + m.current.Name + " ›")
	}
	parts := make([]string, 0, len(m.presets))
	for i, p := range m.presets {
		if i == m.selected {
			parts = append(parts, "["+p.Name+"]")
			continue
		}
		parts = append(parts, p.Name)
	}
	return presetStyle.Render(strings.Join(parts, "  "))
}

func (m *Model) renderStatus() string {
	status := "Status: " + m.timer.State().String()
	if m.player.IsPlaying() {
		status += "  ♪ alert"
	}
	return status
}

func (m *Model) renderFooter() string {
	footer := fmt.Sprintf("Today %d done · %s focus", m.todayDone, stats.FormatDuration(m.todayFocus))
	return footerStyle.Render(footer)
}
