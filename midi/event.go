package midi

import "errors"

// Velocity used for mirrored triggers
const DefaultVelocity uint8 = 100

var ErrPortNotFound = errors.New("midi port not found")

// NoteEvent is sent when a note is played on a keyboard
type NoteEvent struct {
	Note     uint8
	Velocity uint8
	Channel  uint8
}
