package sequencer

import (
	"errors"
	"time"
)

// NumPads is the number of pads created at startup
const NumPads = 4

// Sample index space used by sequences. Entries past the loaded bank are silent.
const (
	NumSamples     = 8
	MaxSequenceLen = 8
)

var ErrEmptySequence = errors.New("sequence must have at least one step")

// Pad is one step-sequencer voice looping through its sequence
type Pad struct {
	Sound    int   // sample slot this pad was created for
	Sequence []int // sample indices, 1-8 entries
	Playing  bool
	Synced   bool
	Cursor   int // next step to play, always < len(Sequence)

	nextDue time.Time // zero when stopped
}

// NewPad creates a stopped pad whose sequence is just its own sound
func NewPad(sound int) *Pad {
	return &Pad{
		Sound:    sound,
		Sequence: []int{sound},
	}
}

// StepInterval is 60000/tempo ms for synced pads and half that for unsynced ones
func StepInterval(tempo int, synced bool) time.Duration {
	d := time.Minute / time.Duration(ClampTempo(tempo))
	if !synced {
		d /= 2
	}
	return d
}

// Start plays the step under the cursor right away and schedules the next one.
// Returns false if the pad was already playing.
func (p *Pad) Start(now time.Time, tempo int) (sample int, started bool) {
	if p.Playing {
		return 0, false
	}
	p.Playing = true
	p.nextDue = now
	return p.Step(now, tempo), true
}

// Stop drops the pad's pending step. The cursor is kept so a restart resumes.
func (p *Pad) Stop() {
	p.Playing = false
	p.nextDue = time.Time{}
}

// Toggle stops a playing pad or starts a stopped one
func (p *Pad) Toggle(now time.Time, tempo int) (sample int, played bool) {
	if p.Playing {
		p.Stop()
		return 0, false
	}
	return p.Start(now, tempo)
}

// SetSync only sets the flag; the new interval applies from the next step
func (p *Pad) SetSync(synced bool) {
	p.Synced = synced
}

// Due reports whether a playing pad's next step time has been reached
func (p *Pad) Due(now time.Time) bool {
	return p.Playing && !now.Before(p.nextDue)
}

// NextDue returns when the next step fires (zero if stopped)
func (p *Pad) NextDue() time.Time {
	return p.nextDue
}

// Step plays the current step, advances the cursor and reschedules using the
// tempo and sync flag as they are right now.
func (p *Pad) Step(now time.Time, tempo int) int {
	sample := p.Sequence[p.Cursor]
	p.Cursor = (p.Cursor + 1) % len(p.Sequence)

	interval := StepInterval(tempo, p.Synced)
	next := p.nextDue.Add(interval)
	if !next.After(now) {
		// fell more than a step behind; don't burst to catch up
		next = now.Add(interval)
	}
	p.nextDue = next
	return sample
}

// SetSequence replaces the steps, wrapping entries into the sample space
func (p *Pad) SetSequence(seq []int) error {
	if len(seq) == 0 {
		return ErrEmptySequence
	}
	if len(seq) > MaxSequenceLen {
		seq = seq[:MaxSequenceLen]
	}
	steps := make([]int, len(seq))
	for i, s := range seq {
		steps[i] = wrapSample(s)
	}
	p.Sequence = steps
	if p.Cursor >= len(steps) {
		p.Cursor %= len(steps)
	}
	return nil
}

// reset puts the pad back to how NewPad left it
func (p *Pad) reset() {
	p.Stop()
	p.Sequence = []int{p.Sound}
	p.Cursor = 0
	p.Synced = false
}

func wrapSample(s int) int {
	s %= NumSamples
	if s < 0 {
		s += NumSamples
	}
	return s
}
