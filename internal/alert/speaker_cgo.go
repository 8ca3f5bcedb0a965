//go:build cgo && !nospeaker

package alert

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

// speaker.Init may only run once per process.
func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(toneSampleRate, toneSampleRate.N(time.Second/10))
	})
	return speakerErr
}

type speakerPulser struct{}

func newSpeakerPulser() (Pulser, error) {
	if err := initSpeaker(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return speakerPulser{}, nil
}

func (speakerPulser) Pulse(ctx context.Context) error {
	done := make(chan struct{})
	speaker.Play(beep.Seq(pulseTone(), beep.Callback(func() {
		close(done)
	})))
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		speaker.Clear()
		return ctx.Err()
	}
}
