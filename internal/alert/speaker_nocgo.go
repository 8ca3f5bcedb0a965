//go:build !cgo || nospeaker

package alert

import "fmt"

func newSpeakerPulser() (Pulser, error) {
	return nil, fmt.Errorf("%w: speaker output needs a cgo build without the nospeaker tag", ErrUnavailable)
}
