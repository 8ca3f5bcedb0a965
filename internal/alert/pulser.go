package alert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
)

// Backend names accepted by NewPulser.
const (
	BackendAuto    = "auto"
	BackendSpeaker = "speaker"
	BackendCommand = "command"
	BackendBell    = "bell"
	BackendNone    = "none"
)

// Pulser errors.
var (
	ErrUnknownBackend = errors.New("unknown alert backend")
	ErrUnavailable    = errors.New("alert backend unavailable")
)

// Pulser emits one discrete audible signal.
type Pulser interface {
	Pulse(ctx context.Context) error
}

// PulserFunc adapts a function to the Pulser interface.
type PulserFunc func(ctx context.Context) error

// Pulse calls f(ctx).
func (f PulserFunc) Pulse(ctx context.Context) error {
	return f(ctx)
}

// Backends lists the accepted backend names.
func Backends() []string {
	return []string{BackendAuto, BackendSpeaker, BackendCommand, BackendBell, BackendNone}
}

// NewPulser builds the pulse backend named by backend. The bell backend
// writes to w. The auto backend picks the first available of speaker,
// command and bell.
func NewPulser(backend string, w io.Writer) (Pulser, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendAuto:
		return autoPulser(w), nil
	case BackendSpeaker:
		return newSpeakerPulser()
	case BackendCommand:
		return newCommandPulser()
	case BackendBell:
		return NewBellPulser(w), nil
	case BackendNone:
		return nopPulser{}, nil
	default:
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownBackend, backend, strings.Join(Backends(), ", "))
	}
}

func autoPulser(w io.Writer) Pulser {
	p, err := newSpeakerPulser()
	if err == nil {
		return p
	}
	log.Printf("alert: speaker backend skipped: %v", err)
	if p, err = newCommandPulser(); err == nil {
		return p
	}
	log.Printf("alert: command backend skipped: %v", err)
	return NewBellPulser(w)
}

// BellPulser writes the terminal bell character.
type BellPulser struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBellPulser returns a Pulser ringing the terminal bell on w.
func NewBellPulser(w io.Writer) *BellPulser {
	if w == nil {
		w = io.Discard
	}
	return &BellPulser{w: w}
}

// Pulse writes a single BEL.
func (b *BellPulser) Pulse(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.w, "\a"); err != nil {
		return fmt.Errorf("failed to ring bell: %w", err)
	}
	return nil
}

type nopPulser struct{}

func (nopPulser) Pulse(context.Context) error { return nil }
