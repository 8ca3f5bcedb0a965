// Package main provides the CLI entrypoint for tuimer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuimer/internal/alert"
	"github.com/verte-zerg/tuimer/internal/config"
	"github.com/verte-zerg/tuimer/internal/historyui"
	"github.com/verte-zerg/tuimer/internal/model"
	"github.com/verte-zerg/tuimer/internal/preset"
	"github.com/verte-zerg/tuimer/internal/stats"
	"github.com/verte-zerg/tuimer/internal/store"
	"github.com/verte-zerg/tuimer/internal/timer"
	"github.com/verte-zerg/tuimer/internal/tui"
)

const (
	defaultAlertSeconds = 10.0
	maxAlertSeconds     = 600.0
	defaultBeepSeconds  = 3.0
)

var (
	timerPreset       string
	timerMinutes      int
	timerAlertSeconds float64
	timerAlertBackend string
	timerNoHistory    bool

	historySince     string
	historyLast      int
	historyCompleted bool
	historyPlain     bool

	exportFormat string

	beepSeconds float64
	beepBackend string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuimer",
		Short:         "TUI countdown timer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTimerCmd,
	}

	rootCmd.Flags().StringVar(&timerPreset, "preset", preset.DefaultKey, "preset key ("+strings.Join(preset.Keys(), ", ")+")")
	rootCmd.Flags().IntVar(&timerMinutes, "minutes", 0, fmt.Sprintf("custom duration in minutes (%d-%d), overrides --preset", preset.MinCustomMinutes, preset.MaxCustomMinutes))
	rootCmd.Flags().Float64Var(&timerAlertSeconds, "alert-seconds", defaultAlertSeconds, "how long the completion alert plays")
	rootCmd.Flags().StringVar(&timerAlertBackend, "alert-backend", alert.BackendAuto, "alert backend ("+strings.Join(alert.Backends(), ", ")+")")
	rootCmd.Flags().BoolVar(&timerNoHistory, "no-history", false, "do not record runs")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPresetsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newBeepCmd())

	return rootCmd
}

func runTimerCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg, err := resolveTimerConfig(cmd, fileCfg)
	if err != nil {
		return err
	}

	logPath := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := tea.LogToFile(logPath, "tuimer")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}()

	var recorder tui.Recorder
	if cfg.History {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
		recorder = st
	}

	pulser, err := alert.NewPulser(cfg.AlertBackend, os.Stdout)
	if err != nil {
		return err
	}
	player := alert.NewPlayer(pulser)
	defer func() {
		player.Stop()
		player.Wait()
	}()

	tm := timer.New()
	m := tui.NewModel(cfg, tm, player, recorder)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveTimerConfig layers flags over the config file and validates the result.
func resolveTimerConfig(cmd *cobra.Command, fileCfg config.FileConfig) (model.Config, error) {
	applyStringConfig(cmd, "preset", &timerPreset, fileCfg.Timer.Preset)
	applyIntConfig(cmd, "minutes", &timerMinutes, fileCfg.Timer.Minutes)
	applyFloatConfig(cmd, "alert-seconds", &timerAlertSeconds, fileCfg.Alert.Seconds)
	applyStringConfig(cmd, "alert-backend", &timerAlertBackend, fileCfg.Alert.Backend)
	history := !timerNoHistory
	if fileCfg.History.Enabled != nil && !cmd.Flags().Changed("no-history") {
		history = *fileCfg.History.Enabled
	}

	cfg := model.Config{
		PresetKey:     timerPreset,
		CustomMinutes: timerMinutes,
		AlertDuration: time.Duration(timerAlertSeconds * float64(time.Second)),
		AlertBackend:  strings.ToLower(strings.TrimSpace(timerAlertBackend)),
		History:       history,
	}
	if err := validateConfig(&cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// validateConfig checks cfg and normalizes the preset key.
func validateConfig(cfg *model.Config) error {
	if cfg.CustomMinutes != 0 {
		if _, err := preset.Custom(cfg.CustomMinutes); err != nil {
			return fmt.Errorf("invalid --minutes: %w", err)
		}
	}
	p, err := preset.Lookup(cfg.PresetKey)
	if err != nil {
		return fmt.Errorf("invalid --preset: %w", err)
	}
	cfg.PresetKey = p.Key
	if cfg.AlertDuration < 0 || cfg.AlertDuration > time.Duration(maxAlertSeconds*float64(time.Second)) {
		return fmt.Errorf("--alert-seconds must be between 0 and %.0f", maxAlertSeconds)
	}
	if !validBackend(cfg.AlertBackend) {
		return fmt.Errorf("--alert-backend must be one of: %s", strings.Join(alert.Backends(), ", "))
	}
	return nil
}

func validBackend(name string) bool {
	for _, b := range alert.Backends() {
		if name == b {
			return true
		}
	}
	return false
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless path already exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List timer presets",
		Args:  cobra.NoArgs,
		RunE:  runPresetsCmd,
	}
}

func runPresetsCmd(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, p := range preset.Defaults() {
		if _, err := fmt.Fprintf(out, "%-4s %s\n", p.Key, p.Name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	_, err := fmt.Fprintf(out, "custom: --minutes %d-%d (default %d)\n", preset.MinCustomMinutes, preset.MaxCustomMinutes, preset.DefaultCustomMinutes)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show run history",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	addHistoryFilterFlags(cmd)
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print a plain-text report instead of the TUI")
	return cmd
}

func addHistoryFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N runs")
	cmd.Flags().BoolVar(&historyCompleted, "completed", false, "only completed runs")
}

func historyConfigFromFlags() (model.HistoryConfig, error) {
	if historyLast < 0 {
		return model.HistoryConfig{}, fmt.Errorf("--last must be >= 0")
	}
	cfg := model.HistoryConfig{Last: historyLast, CompletedOnly: historyCompleted}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return model.HistoryConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := historyConfigFromFlags()
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if historyPlain {
		runs, err := st.ListRuns(context.Background(), cfg)
		if err != nil {
			return fmt.Errorf("failed to load runs: %w", err)
		}
		return stats.RenderPlain(cmd.OutOrStdout(), runs, time.Now(), 0)
	}

	program := tea.NewProgram(historyui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func newBeepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "beep",
		Short: "Play the completion alert to test the backend",
		Args:  cobra.NoArgs,
		RunE:  runBeepCmd,
	}
	cmd.Flags().Float64Var(&beepSeconds, "seconds", defaultBeepSeconds, "how long to play")
	cmd.Flags().StringVar(&beepBackend, "backend", "", "alert backend (default from config, else auto)")
	return cmd
}

func runBeepCmd(cmd *cobra.Command, _ []string) error {
	if beepSeconds <= 0 || beepSeconds > maxAlertSeconds {
		return fmt.Errorf("--seconds must be between 0 and %.0f", maxAlertSeconds)
	}
	backend := beepBackend
	if !cmd.Flags().Changed("backend") {
		fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if fileCfg.Alert.Backend != nil {
			backend = *fileCfg.Alert.Backend
		}
	}
	pulser, err := alert.NewPulser(backend, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()
	logErrf("Playing alert for %.1fs (ctrl+c to stop)\n", beepSeconds)
	alert.NewPlayer(pulser).Play(ctx, time.Duration(beepSeconds*float64(time.Second)))
	return nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuimer configuration
# Uncomment a value to enable it. CLI flags override config values.

[timer]
# preset = %q            # One of: %s
# minutes = %d            # Custom minutes (%d-%d), overrides preset

[alert]
# seconds = %.0f           # How long the completion alert plays
# backend = %q         # One of: %s

[history]
# enabled = true          # Record runs for the history command
`,
		preset.DefaultKey,
		strings.Join(preset.Keys(), ", "),
		preset.DefaultCustomMinutes,
		preset.MinCustomMinutes,
		preset.MaxCustomMinutes,
		defaultAlertSeconds,
		alert.BackendAuto,
		strings.Join(alert.Backends(), ", "),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
