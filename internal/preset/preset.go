// Package preset provides the named countdown durations.
package preset

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Custom duration bounds, in minutes.
const (
	MinCustomMinutes     = 1
	MaxCustomMinutes     = 120
	DefaultCustomMinutes = 25
)

// ErrMinutesOutOfRange reports a custom duration outside the accepted bounds.
var ErrMinutesOutOfRange = errors.New("minutes out of range")

// ErrUnknownPreset reports a preset key or name that does not exist.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named countdown duration.
type Preset struct {
	Key      string
	Name     string
	Duration time.Duration
}

// DefaultKey is the preset used when nothing is configured.
const DefaultKey = "5m"

var defaults = []Preset{
	{Key: "5m", Name: "5 minutes", Duration: 300 * time.Second},
	{Key: "15m", Name: "15 minutes", Duration: 900 * time.Second},
	{Key: "30m", Name: "30 minutes", Duration: 1800 * time.Second},
	{Key: "45m", Name: "45 minutes", Duration: 2700 * time.Second},
}

// Defaults returns a copy of the built-in presets in display order.
func Defaults() []Preset {
	return append([]Preset(nil), defaults...)
}

// Lookup finds a preset by key ("15m") or name ("15 minutes"), case-insensitively.
func Lookup(keyOrName string) (Preset, error) {
	needle := strings.ToLower(strings.TrimSpace(keyOrName))
	for _, p := range defaults {
		if needle == p.Key || needle == strings.ToLower(p.Name) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownPreset, keyOrName, strings.Join(Keys(), ", "))
}

// Keys returns the preset keys in display order.
func Keys() []string {
	keys := make([]string, len(defaults))
	for i, p := range defaults {
		keys[i] = p.Key
	}
	return keys
}

// Custom converts a minute count into a preset.
func Custom(minutes int) (Preset, error) {
	if minutes < MinCustomMinutes || minutes > MaxCustomMinutes {
		return Preset{}, fmt.Errorf("%w: %d (must be %d-%d)", ErrMinutesOutOfRange, minutes, MinCustomMinutes, MaxCustomMinutes)
	}
	return Preset{
		Key:      "custom",
		Name:     fmt.Sprintf("Custom (%d min)", minutes),
		Duration: time.Duration(minutes) * time.Minute,
	}, nil
}
