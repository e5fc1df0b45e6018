package sequencer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-padloop/debug"
)

// Player receives every triggered sample index (audio engine, MIDI out)
type Player interface {
	Play(sample int)
}

// DefaultResolution is the scheduler clock period
const DefaultResolution = 2 * time.Millisecond

// Manager owns the State, runs the scheduler clock and routes input to it
type Manager struct {
	state    *State
	recorder *RecordingController
	players  []Player

	now        func() time.Time
	resolution time.Duration
	status     string

	mu    sync.Mutex // guards state and status
	recMu sync.Mutex // guards recorder; held across file writes

	// Notify TUI of updates
	UpdateChan chan struct{}
}

// Snapshot is a copy of the state for rendering
type Snapshot struct {
	Pads         [NumPads]PadView
	Tempo        int
	GlobalSync   bool
	Autonomous   bool
	Recording    bool
	RandomizedAt time.Time
	Status       string
}

// PadView is a copy of one pad
type PadView struct {
	Sound    int
	Sequence []int
	Cursor   int
	Playing  bool
	Synced   bool
}

// NewManager creates a manager with fresh pads at the given tempo
func NewManager(tempo int, rng Rand) *Manager {
	return &Manager{
		state:      NewState(tempo, rng),
		recorder:   NewRecordingController(nil),
		now:        time.Now,
		resolution: DefaultResolution,
		UpdateChan: make(chan struct{}, 1),
	}
}

// AddPlayer registers an output for triggered samples
func (m *Manager) AddPlayer(p Player) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = append(m.players, p)
}

// SetRecorder wires the capture backend for the record toggle
func (m *Manager) SetRecorder(r Recorder) {
	m.recMu.Lock()
	defer m.recMu.Unlock()
	m.recorder = NewRecordingController(r)
}

// SetClock replaces time.Now (tests)
func (m *Manager) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// SetResolution sets the scheduler clock period
func (m *Manager) SetResolution(d time.Duration) {
	if d <= 0 {
		d = DefaultResolution
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolution = d
}

// Run drives the scheduler clock until ctx is done (blocking - run in goroutine)
func (m *Manager) Run(ctx context.Context) {
	m.mu.Lock()
	res := m.resolution
	m.mu.Unlock()

	ticker := time.NewTicker(res)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Advance()
		}
	}
}

// Advance fires whatever is due at the current clock time
func (m *Manager) Advance() {
	m.mu.Lock()
	triggered := m.state.Advance(m.now())
	players := m.players
	m.mu.Unlock()

	if len(triggered) == 0 {
		return
	}
	debug.LogEvery(100, "clock", "triggered %v", triggered)
	play(players, triggered)
	m.notifyUpdate()
}

// Dispatch applies one input action
func (m *Manager) Dispatch(a Action) error {
	if a.Kind == ActionToggleRecording {
		err := m.toggleRecording()
		m.notifyUpdate()
		return err
	}

	m.mu.Lock()
	triggered, err := m.apply(a, m.now())
	players := m.players
	if err != nil {
		m.status = err.Error()
	}
	m.mu.Unlock()

	if err != nil {
		debug.Log("action", "%s failed: %v", a.Kind, err)
	}
	play(players, triggered)
	m.notifyUpdate()
	return err
}

// apply mutates state for a; caller holds mu
func (m *Manager) apply(a Action, now time.Time) ([]int, error) {
	s := m.state
	switch a.Kind {
	case ActionNone:
		return nil, nil

	case ActionTogglePad:
		sample, played, err := s.TogglePad(a.Pad, now)
		if err != nil || !played {
			return nil, err
		}
		return []int{sample}, nil

	case ActionTrigger:
		return []int{a.Sample}, nil

	case ActionTempoUp:
		s.Transport.Nudge(TempoStep)
	case ActionTempoDown:
		s.Transport.Nudge(-TempoStep)
	case ActionSetTempo:
		s.Transport.SetTempo(a.Tempo)

	case ActionToggleSync:
		s.ToggleGlobalSync()
	case ActionSetPadSync:
		return nil, s.SetPadSync(a.Pad, a.Synced)

	case ActionRandomize:
		if !s.Randomize(now) {
			m.status = "randomize is off while autonomous mode runs"
			return nil, nil
		}
		m.status = "sequences randomized"

	case ActionToggleAutonomous:
		if s.Director.Active() {
			s.DisableAutonomous()
			m.status = "autonomous mode off"
			return nil, nil
		}
		m.status = "autonomous mode on"
		return s.EnableAutonomous(now), nil

	case ActionReset:
		s.Reset()
		m.status = "reset"

	default:
		return nil, fmt.Errorf("unknown action %s", a.Kind)
	}
	return nil, nil
}

func (m *Manager) toggleRecording() error {
	m.recMu.Lock()
	path, err := m.recorder.Toggle()
	recording := m.recorder.Recording()
	m.recMu.Unlock()

	var status string
	switch {
	case err != nil:
		status = "recording: " + err.Error()
		debug.Log("record", "toggle failed: %v", err)
	case recording:
		status = "recording..."
	default:
		status = "saved " + path
		debug.Log("record", "wrote %s", path)
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
	return err
}

// Tempo returns the current BPM
func (m *Manager) Tempo() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Transport.Tempo()
}

// Snapshot copies the current state for the UI
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	s := m.state
	snap := Snapshot{
		Tempo:        s.Transport.Tempo(),
		GlobalSync:   s.Sync.Synced(),
		Autonomous:   s.Director.Active(),
		RandomizedAt: s.RandomizedAt(),
		Status:       m.status,
	}
	for i, p := range s.Pads {
		snap.Pads[i] = PadView{
			Sound:    p.Sound,
			Sequence: append([]int(nil), p.Sequence...),
			Cursor:   p.Cursor,
			Playing:  p.Playing,
			Synced:   p.Synced,
		}
	}
	m.mu.Unlock()

	m.recMu.Lock()
	snap.Recording = m.recorder.Recording()
	m.recMu.Unlock()
	return snap
}

// notifyUpdate pokes the TUI without blocking
func (m *Manager) notifyUpdate() {
	select {
	case m.UpdateChan <- struct{}{}:
	default:
	}
}

func play(players []Player, samples []int) {
	for _, s := range samples {
		for _, p := range players {
			p.Play(s)
		}
	}
}
