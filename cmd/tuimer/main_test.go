package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/tuimer/internal/config"
	"github.com/verte-zerg/tuimer/internal/model"
)

func ptr[T any](v T) *T { return &v }

func resolve(t *testing.T, fileCfg config.FileConfig, args ...string) (model.Config, error) {
	t.Helper()
	cmd := newRootCmd()
	require.NoError(t, cmd.ParseFlags(args))
	return resolveTimerConfig(cmd, fileCfg)
}

func TestResolveTimerConfigDefaults(t *testing.T) {
	cfg, err := resolve(t, config.FileConfig{})
	require.NoError(t, err)
	require.Equal(t, "5m", cfg.PresetKey)
	require.Zero(t, cfg.CustomMinutes)
	require.Equal(t, 10*time.Second, cfg.AlertDuration)
	require.Equal(t, "auto", cfg.AlertBackend)
	require.True(t, cfg.History)
}

func TestResolveTimerConfigFromFile(t *testing.T) {
	fileCfg := config.FileConfig{
		Timer:   config.TimerConfig{Preset: ptr("15 Minutes"), Minutes: ptr(30)},
		Alert:   config.AlertConfig{Seconds: ptr(2.5), Backend: ptr("Bell")},
		History: config.HistoryConfig{Enabled: ptr(false)},
	}
	cfg, err := resolve(t, fileCfg)
	require.NoError(t, err)
	require.Equal(t, "15m", cfg.PresetKey)
	require.Equal(t, 30, cfg.CustomMinutes)
	require.Equal(t, 2500*time.Millisecond, cfg.AlertDuration)
	require.Equal(t, "bell", cfg.AlertBackend)
	require.False(t, cfg.History)
}

func TestFlagsOverrideFile(t *testing.T) {
	fileCfg := config.FileConfig{
		Timer:   config.TimerConfig{Preset: ptr("15m")},
		Alert:   config.AlertConfig{Backend: ptr("bell")},
		History: config.HistoryConfig{Enabled: ptr(true)},
	}
	cfg, err := resolve(t, fileCfg, "--preset", "45m", "--alert-backend", "none", "--no-history")
	require.NoError(t, err)
	require.Equal(t, "45m", cfg.PresetKey)
	require.Equal(t, "none", cfg.AlertBackend)
	require.False(t, cfg.History)
}

func TestResolveTimerConfigRejectsInvalid(t *testing.T) {
	for _, args := range [][]string{
		{"--minutes", "121"},
		{"--minutes", "-1"},
		{"--preset", "25m"},
		{"--alert-backend", "trumpet"},
		{"--alert-seconds", "-1"},
	} {
		_, err := resolve(t, config.FileConfig{}, args...)
		require.Error(t, err, "args %v", args)
	}
}

func TestWriteExport(t *testing.T) {
	end := time.Date(2024, 6, 10, 9, 25, 0, 0, time.UTC)
	runs := []model.Run{{
		ID:        "run-1",
		StartedAt: end.Add(-25 * time.Minute),
		EndedAt:   end,
		Planned:   25 * time.Minute,
		Elapsed:   25 * time.Minute,
		Completed: true,
	}}

	var buf bytes.Buffer
	require.NoError(t, writeExport(&buf, "json", runs))
	var decoded []exportRun
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	require.Equal(t, "run-1", decoded[0].ID)
	require.Equal(t, 1500.0, decoded[0].PlannedSeconds)
	require.True(t, decoded[0].EndedAt.Equal(end))

	buf.Reset()
	require.NoError(t, writeExport(&buf, "YAML", runs))
	require.Contains(t, buf.String(), "id: run-1")
	var raw []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &raw))
	require.Equal(t, true, raw[0]["completed"])

	require.Error(t, writeExport(&buf, "csv", runs))
}

func TestEnsureConfigFileWritesTemplateOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuimer", "config.toml")
	require.NoError(t, ensureConfigFile(path))

	// The template is all comments and must load cleanly.
	_, err := config.LoadConfig(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("[timer]\nminutes = 7\n"), 0o644))
	require.NoError(t, ensureConfigFile(path))
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 7, *cfg.Timer.Minutes)
}

func TestPresetsCmdListsPresets(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"presets"})
	require.NoError(t, cmd.Execute())
	require.Contains(t, out.String(), "5m   5 minutes")
	require.Contains(t, out.String(), "45m  45 minutes")
	require.Contains(t, out.String(), "--minutes 1-120")
}
