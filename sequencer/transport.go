package sequencer

// Tempo bounds in BPM
const (
	MinTempo     = 30
	MaxTempo     = 300
	DefaultTempo = 120
	TempoStep    = 10 // up/down controls
)

// Transport holds the global tempo. Consumers read it lazily at each step.
type Transport struct {
	tempo int
}

// NewTransport creates a transport at the given (clamped) tempo
func NewTransport(bpm int) *Transport {
	return &Transport{tempo: ClampTempo(bpm)}
}

// ClampTempo bounds bpm to [MinTempo, MaxTempo]
func ClampTempo(bpm int) int {
	if bpm < MinTempo {
		return MinTempo
	}
	if bpm > MaxTempo {
		return MaxTempo
	}
	return bpm
}

// SetTempo stores the clamped tempo and returns it
func (t *Transport) SetTempo(bpm int) int {
	t.tempo = ClampTempo(bpm)
	return t.tempo
}

// Nudge shifts the tempo by delta BPM
func (t *Transport) Nudge(delta int) int {
	return t.SetTempo(t.tempo + delta)
}

func (t *Transport) Tempo() int {
	return t.tempo
}
