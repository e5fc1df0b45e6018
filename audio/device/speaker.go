// Package device connects the engine to the sound card. It is kept apart from
// package audio so tests never open an output device.
package device

import (
	"time"

	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"

	"go-padloop/audio"
)

// DefaultLatency is the speaker buffer length
const DefaultLatency = 50 * time.Millisecond

// Open initializes the speaker at the engine's rate and starts streaming it
func Open(e *audio.Engine, latency time.Duration) error {
	if latency <= 0 {
		latency = DefaultLatency
	}
	sr := e.Format().SampleRate
	if err := speaker.Init(sr, sr.N(latency)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	speaker.Play(e)
	return nil
}

// Close stops the speaker
func Close() {
	speaker.Close()
}
