package sequencer

import (
	"errors"
	"time"
)

var ErrBadPad = errors.New("pad index out of range")

// State is the single source of truth for the pads, tempo, sync and
// autonomous mode. It is not safe for concurrent use; Manager serializes access.
type State struct {
	Pads      [NumPads]*Pad
	Transport *Transport
	Sync      *SyncController
	Director  *Director

	startTempo   int
	rng          Rand
	randomizedAt time.Time
}

// NewState creates the four pads, pad i sounding sample i
func NewState(tempo int, rng Rand) *State {
	s := &State{
		Transport:  NewTransport(tempo),
		Sync:       &SyncController{},
		Director:   &Director{},
		startTempo: ClampTempo(tempo),
		rng:        rng,
	}
	for i := 0; i < NumPads; i++ {
		s.Pads[i] = NewPad(i)
	}
	return s
}

func (s *State) pad(i int) (*Pad, error) {
	if i < 0 || i >= NumPads {
		return nil, ErrBadPad
	}
	return s.Pads[i], nil
}

// TogglePad stops or starts pad i. Starting returns the sample played right away.
func (s *State) TogglePad(i int, now time.Time) (sample int, played bool, err error) {
	p, err := s.pad(i)
	if err != nil {
		return 0, false, err
	}
	sample, played = p.Toggle(now, s.Transport.Tempo())
	return sample, played, nil
}

// SetPadSync sets one pad's sync flag without touching the global flag
func (s *State) SetPadSync(i int, synced bool) error {
	p, err := s.pad(i)
	if err != nil {
		return err
	}
	p.SetSync(synced)
	return nil
}

// ToggleGlobalSync flips the global flag onto every pad
func (s *State) ToggleGlobalSync() bool {
	return s.Sync.Toggle(s.Pads[:])
}

// Randomize regenerates every sequence unless autonomous mode owns the pads
func (s *State) Randomize(now time.Time) bool {
	if s.Director.Active() {
		return false
	}
	s.randomize(now)
	return true
}

func (s *State) randomize(now time.Time) {
	Randomize(s.Pads[:], s.rng)
	s.randomizedAt = now
}

// RandomizedAt is when sequences were last regenerated (for the UI pulse)
func (s *State) RandomizedAt() time.Time {
	return s.randomizedAt
}

// EnableAutonomous switches the director on and runs its first tick now
func (s *State) EnableAutonomous(now time.Time) []int {
	if !s.Director.Enable(now) {
		return nil
	}
	return s.Director.Tick(s, now)
}

func (s *State) DisableAutonomous() {
	s.Director.Disable()
}

// Advance steps every due pad once, then ticks the director if it is due.
// Returns the samples triggered, in firing order.
func (s *State) Advance(now time.Time) []int {
	var triggered []int
	for _, p := range s.Pads {
		if p.Due(now) {
			triggered = append(triggered, p.Step(now, s.Transport.Tempo()))
		}
	}
	if s.Director.Due(now) {
		triggered = append(triggered, s.Director.Tick(s, now)...)
	}
	return triggered
}

// Reset stops everything and restores the startup pads and tempo
func (s *State) Reset() {
	s.Director.Disable()
	for _, p := range s.Pads {
		p.reset()
	}
	s.Sync.synced = false
	s.Transport.SetTempo(s.startTempo)
}
