package alert

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

const (
	toneSampleRate = beep.SampleRate(44100)
	toneFrequency  = 1000.0
	toneLength     = 500 * time.Millisecond
	toneVolume     = 0.3
)

// sineTone returns an endless sine wave streamer at freq Hz.
func sineTone(sr beep.SampleRate, freq, volume float64) beep.Streamer {
	step := 2 * math.Pi * freq / float64(sr)
	var pos int
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := math.Sin(float64(pos)*step) * volume
			samples[i][0] = v
			samples[i][1] = v
			pos++
		}
		return len(samples), true
	})
}

// pulseTone is one alert pulse: a fixed-length 1 kHz tone.
func pulseTone() beep.Streamer {
	return beep.Take(toneSampleRate.N(toneLength), sineTone(toneSampleRate, toneFrequency, toneVolume))
}
