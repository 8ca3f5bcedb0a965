// Package alert plays time-boxed audible alerts on background goroutines.
package alert

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultInterval is the pause between two pulses.
const DefaultInterval = 500 * time.Millisecond

// DefaultDuration is how long a completion alert plays.
const DefaultDuration = 10 * time.Second

// Player emits pulses in a loop until a deadline or until stopped.
//
// All loops share one cancellation flag, so a single Stop halts every loop
// that is currently running.
type Player struct {
	pulser   Pulser
	interval time.Duration

	cancel atomic.Bool
	active atomic.Int32
	wg     sync.WaitGroup
}

// Option configures a Player.
type Option func(*Player)

// WithInterval overrides the pause between pulses.
func WithInterval(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.interval = d
		}
	}
}

// NewPlayer returns an idle Player emitting pulses through p.
// A nil pulser plays silently.
func NewPlayer(p Pulser, opts ...Option) *Player {
	if p == nil {
		p = nopPulser{}
	}
	player := &Player{
		pulser:   p,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(player)
	}
	return player
}

// Play runs the pulse loop on the calling goroutine for up to d.
// It returns when d has elapsed, Stop is called, or ctx is done.
func (p *Player) Play(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	p.begin()
	p.loop(ctx, d)
}

// PlayAsync starts the pulse loop on a new goroutine and returns immediately.
// IsPlaying reports true as soon as PlayAsync returns.
func (p *Player) PlayAsync(d time.Duration) {
	if d <= 0 {
		return
	}
	p.begin()
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.loop(context.Background(), d)
	}()
}

// Stop asks every running loop to exit after its current pulse.
// It never blocks and is safe to call when nothing is playing.
func (p *Player) Stop() {
	p.cancel.Store(true)
}

// Wait blocks until all loops started by PlayAsync have exited.
func (p *Player) Wait() {
	p.wg.Wait()
}

// IsPlaying reports whether any pulse loop is running.
func (p *Player) IsPlaying() bool {
	return p.active.Load() > 0
}

func (p *Player) begin() {
	p.cancel.Store(false)
	p.active.Add(1)
}

func (p *Player) loop(ctx context.Context, d time.Duration) {
	defer p.active.Add(-1)

	start := time.Now()
	reported := false
	for !p.cancel.Load() && ctx.Err() == nil && time.Since(start) < d {
		if err := p.pulser.Pulse(ctx); err != nil && !reported {
			// Audio is best-effort; one line per loop is enough.
			log.Printf("alert: pulse failed: %v", err)
			reported = true
		}
		if !sleepContext(ctx, p.interval) {
			return
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
