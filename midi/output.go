package midi

import (
	"fmt"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-padloop/debug"
)

// NoteLength is how long a mirrored trigger holds its note
const NoteLength = 100 * time.Millisecond

// Output mirrors sample triggers to a MIDI port as drum notes
type Output struct {
	mu      sync.Mutex
	send    func(gomidi.Message) error
	close   func() error
	channel uint8
	kit     DrumKit
}

// NewOutput wraps a send function. Channel is 0-based.
func NewOutput(send func(gomidi.Message) error, channel uint8, kit DrumKit) *Output {
	return &Output{send: send, channel: channel & 0x0F, kit: kit}
}

// OpenOutput opens the first output port whose name contains portName
func OpenOutput(portName string, channel uint8, kit DrumKit) (*Output, error) {
	for _, out := range gomidi.GetOutPorts() {
		if !MatchPort(out.String(), portName) {
			continue
		}
		send, err := gomidi.SendTo(out)
		if err != nil {
			return nil, fmt.Errorf("open output %s: %w", out.String(), err)
		}
		o := NewOutput(send, channel, kit)
		o.close = out.Close
		debug.Log("midi", "output %s kit=%s ch=%d", out.String(), kit.Name, channel+1)
		return o, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrPortNotFound, portName)
}

// Kit returns the active note mapping
func (o *Output) Kit() DrumKit {
	return o.kit
}

// Play sends the slot's note now and its note-off after NoteLength
func (o *Output) Play(slot int) {
	note, ok := o.kit.Note(slot)
	if !ok {
		return
	}
	o.write(gomidi.NoteOn(o.channel, note, DefaultVelocity))
	time.AfterFunc(NoteLength, func() {
		o.write(gomidi.NoteOff(o.channel, note))
	})
}

func (o *Output) write(msg gomidi.Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.send == nil {
		return
	}
	if err := o.send(msg); err != nil {
		debug.Log("midi", "send %s: %v", msg, err)
	}
}

// Close stops sending and releases the port
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.send = nil
	if o.close != nil {
		return o.close()
	}
	return nil
}
