package sequencer

import "time"

// Autonomous mode odds and timing
const (
	TempoNudgeChance = 0.2
	SyncToggleChance = 0.1
	RandomizeChance  = 0.05
	MaxTempoNudge    = 10 // nudge is drawn from [-MaxTempoNudge, MaxTempoNudge]

	MinDirectorDelay = 200 * time.Millisecond
	MaxDirectorDelay = 1000 * time.Millisecond
)

// DirectorState is Idle or Active
type DirectorState int

const (
	DirectorIdle DirectorState = iota
	DirectorActive
)

func (s DirectorState) String() string {
	if s == DirectorActive {
		return "active"
	}
	return "idle"
}

// Director plays the pads on its own when Active
type Director struct {
	state   DirectorState
	nextDue time.Time
}

// Enable switches to Active and makes a tick due immediately.
// Returns false if it was already Active.
func (d *Director) Enable(now time.Time) bool {
	if d.state == DirectorActive {
		return false
	}
	d.state = DirectorActive
	d.nextDue = now
	return true
}

// Disable switches to Idle and drops the pending tick
func (d *Director) Disable() {
	d.state = DirectorIdle
	d.nextDue = time.Time{}
}

func (d *Director) State() DirectorState {
	return d.state
}

func (d *Director) Active() bool {
	return d.state == DirectorActive
}

// Due reports whether an Active director's next tick time has been reached
func (d *Director) Due(now time.Time) bool {
	return d.state == DirectorActive && !now.Before(d.nextDue)
}

func (d *Director) NextDue() time.Time {
	return d.nextDue
}

// Tick runs one autonomous step against s and schedules the next one.
// Random draws happen in a fixed order: pad, nudge roll, [nudge], sync roll,
// randomize roll, [sequences], delay.
func (d *Director) Tick(s *State, now time.Time) []int {
	if d.state != DirectorActive {
		return nil
	}
	var triggered []int

	pad := s.Pads[s.rng.Intn(NumPads)]
	if sample, played := pad.Toggle(now, s.Transport.Tempo()); played {
		triggered = append(triggered, sample)
	}

	if s.rng.Float64() < TempoNudgeChance {
		s.Transport.Nudge(s.rng.Intn(2*MaxTempoNudge+1) - MaxTempoNudge)
	}

	if s.rng.Float64() < SyncToggleChance {
		s.Sync.Toggle(s.Pads[:])
	}

	if s.rng.Float64() < RandomizeChance {
		s.randomize(now)
	}

	span := int((MaxDirectorDelay - MinDirectorDelay) / time.Millisecond)
	d.nextDue = now.Add(MinDirectorDelay + time.Duration(s.rng.Intn(span+1))*time.Millisecond)
	return triggered
}
