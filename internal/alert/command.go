package alert

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

type beepCommand struct {
	name string
	args []string
}

// commandPulser shells out to a platform tone player.
type commandPulser struct {
	path string
	args []string
}

func newCommandPulser() (Pulser, error) {
	for _, c := range platformCommands(runtime.GOOS) {
		path, err := exec.LookPath(c.name)
		if err != nil {
			continue
		}
		return &commandPulser{path: path, args: c.args}, nil
	}
	return nil, fmt.Errorf("%w: no tone player found on PATH", ErrUnavailable)
}

func (c *commandPulser) Pulse(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.path, c.args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", filepath.Base(c.path), err)
	}
	return nil
}

// platformCommands lists tone players in preference order. Each plays a
// 1 kHz tone for half a second or the closest the platform offers.
func platformCommands(goos string) []beepCommand {
	switch goos {
	case "windows":
		return []beepCommand{
			{name: "powershell", args: []string{"-NoProfile", "-NonInteractive", "-Command", "[console]::beep(1000,500)"}},
		}
	case "darwin":
		return []beepCommand{
			{name: "afplay", args: []string{"/System/Library/Sounds/Ping.aiff"}},
			{name: "play", args: []string{"-nq", "synth", "0.5", "sine", "1000"}},
		}
	default:
		return []beepCommand{
			{name: "play", args: []string{"-nq", "-t", "alsa", "synth", "0.5", "sine", "1000"}},
			{name: "beep", args: []string{"-f", "1000", "-l", "500"}},
		}
	}
}
