package audio

import (
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
)

// MaxVoices caps simultaneous one-shots; extra triggers are dropped
const MaxVoices = 32

// MasterVolume is log2 of the output gain (-1 halves the amplitude)
const MasterVolume = -1

// Engine sums triggered samples into one stereo stream and feeds the recorder.
// It is a beep.Streamer; audio/device hands it to the speaker.
type Engine struct {
	format beep.Format
	bank   []*beep.Buffer
	rec    *Recorder

	mu     sync.Mutex // speaker goroutine streams while the UI adds voices
	mixer  *beep.Mixer
	master *effects.Volume
}

// NewEngine creates an engine playing from bank and recording to recordPath
func NewEngine(format beep.Format, bank []*beep.Buffer, recordPath string) *Engine {
	mixer := &beep.Mixer{}
	return &Engine{
		format: format,
		bank:   bank,
		rec:    NewRecorder(recordPath, format),
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2, Volume: MasterVolume},
	}
}

func (e *Engine) Format() beep.Format {
	return e.format
}

// Recorder returns the capture tap on the mixed output
func (e *Engine) Recorder() *Recorder {
	return e.rec
}

// Loaded reports whether slot has a sample
func (e *Engine) Loaded(slot int) bool {
	return slot >= 0 && slot < len(e.bank) && e.bank[slot] != nil
}

// Play starts a one-shot of slot. Empty or out-of-range slots are a silent no-op.
func (e *Engine) Play(slot int) {
	if !e.Loaded(slot) {
		return
	}
	buf := e.bank[slot]

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mixer.Len() >= MaxVoices {
		return
	}
	e.mixer.Add(buf.Streamer(0, buf.Len()))
}

// Voices is the number of one-shots still sounding
func (e *Engine) Voices() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mixer.Len()
}

// Stream implements beep.Streamer. It never ends; silence when nothing plays.
func (e *Engine) Stream(samples [][2]float64) (n int, ok bool) {
	e.mu.Lock()
	n, _ = e.master.Stream(samples)
	e.mu.Unlock()

	e.rec.capture(samples[:n])
	return n, true
}

// Err implements beep.Streamer
func (e *Engine) Err() error {
	return nil
}
