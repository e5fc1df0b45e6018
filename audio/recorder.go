package audio

import (
	"os"
	"sync"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

var (
	ErrAlreadyRecording = errors.New("already recording")
	ErrNotRecording     = errors.New("not recording")
)

// Recorder captures every frame the engine streams between Start and Stop,
// then writes them to one WAV file. The path is fixed for the session.
type Recorder struct {
	path   string
	format beep.Format

	mu     sync.Mutex
	active bool
	frames [][2]float64
}

func NewRecorder(path string, format beep.Format) *Recorder {
	return &Recorder{path: path, format: format}
}

func (r *Recorder) Path() string {
	return r.path
}

// Start begins a new capture, dropping anything left from before
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active {
		return ErrAlreadyRecording
	}
	r.active = true
	r.frames = r.frames[:0]
	return nil
}

// Stop ends the capture and writes the WAV file, returning its path
func (r *Recorder) Stop() (string, error) {
	r.mu.Lock()
	if !r.active {
		r.mu.Unlock()
		return "", ErrNotRecording
	}
	r.active = false
	frames := r.frames
	r.frames = nil
	r.mu.Unlock()

	if err := r.write(frames); err != nil {
		return "", err
	}
	return r.path, nil
}

func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// Frames is the number of frames captured so far
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

func (r *Recorder) capture(samples [][2]float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.active {
		return
	}
	r.frames = append(r.frames, samples...)
}

func (r *Recorder) write(frames [][2]float64) error {
	f, err := os.Create(r.path)
	if err != nil {
		return errors.Wrap(err, "create recording")
	}

	pos := 0
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= len(frames) {
			return 0, false
		}
		n := copy(samples, frames[pos:])
		pos += n
		return n, true
	})

	if err := wav.Encode(f, src, r.format); err != nil {
		f.Close()
		return errors.Wrap(err, "encode recording")
	}
	return errors.Wrap(f.Close(), "close recording")
}
