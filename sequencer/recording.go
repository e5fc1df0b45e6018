package sequencer

import "errors"

var ErrNoRecorder = errors.New("recording unavailable: audio output disabled")

// Recorder captures the mixed output. Stop flushes it to a file and returns the path.
type Recorder interface {
	Start() error
	Stop() (string, error)
}

// RecordingState is Idle or Recording
type RecordingState int

const (
	RecordingIdle RecordingState = iota
	RecordingActive
)

func (s RecordingState) String() string {
	if s == RecordingActive {
		return "recording"
	}
	return "idle"
}

// RecordingController is the two-state record toggle in front of a Recorder
type RecordingController struct {
	rec   Recorder
	state RecordingState
}

func NewRecordingController(rec Recorder) *RecordingController {
	return &RecordingController{rec: rec}
}

// Toggle starts or stops capture. On stop it returns the written file.
// A failed start stays Idle; a failed stop still ends up Idle.
func (c *RecordingController) Toggle() (path string, err error) {
	if c.rec == nil {
		return "", ErrNoRecorder
	}
	switch c.state {
	case RecordingIdle:
		if err := c.rec.Start(); err != nil {
			return "", err
		}
		c.state = RecordingActive
		return "", nil
	default:
		c.state = RecordingIdle
		return c.rec.Stop()
	}
}

func (c *RecordingController) State() RecordingState {
	return c.state
}

func (c *RecordingController) Recording() bool {
	return c.state == RecordingActive
}
