package midi

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func TestKits(t *testing.T) {
	gm := GetKit("gm")
	note, ok := gm.Note(0)
	assert.True(t, ok)
	assert.Equal(t, uint8(36), note)

	note, _ = GetKit("rd8").Note(1)
	assert.Equal(t, uint8(40), note)

	_, ok = gm.Note(KitSlots)
	assert.False(t, ok)
	_, ok = gm.Note(-1)
	assert.False(t, ok)

	slot, ok := gm.Slot(42)
	assert.True(t, ok)
	assert.Equal(t, 2, slot)
	_, ok = gm.Slot(0)
	assert.False(t, ok)

	assert.Equal(t, gm, GetKit("tr-909"), "unknown kits fall back to gm")
	assert.Equal(t, []string{"gm", "rd8"}, KitNames())
}

type sentNote struct {
	on       bool
	channel  uint8
	note     uint8
	velocity uint8
}

type fakeSender struct {
	mu   sync.Mutex
	msgs []sentNote
	err  error
}

func (f *fakeSender) send(msg gomidi.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ch, key, vel uint8
	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		f.msgs = append(f.msgs, sentNote{on: true, channel: ch, note: key, velocity: vel})
	case msg.GetNoteOff(&ch, &key, &vel):
		f.msgs = append(f.msgs, sentNote{channel: ch, note: key})
	}
	return f.err
}

func (f *fakeSender) sent() []sentNote {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentNote(nil), f.msgs...)
}

func TestOutputPlaySendsNoteOnThenOff(t *testing.T) {
	fs := &fakeSender{}
	out := NewOutput(fs.send, 9, GetKit("gm"))

	out.Play(1)
	got := fs.sent()
	require.Len(t, got, 1)
	assert.Equal(t, sentNote{on: true, channel: 9, note: 38, velocity: DefaultVelocity}, got[0])

	assert.Eventually(t, func() bool { return len(fs.sent()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, sentNote{channel: 9, note: 38}, fs.sent()[1])
}

func TestOutputIgnoresUnmappedSlots(t *testing.T) {
	fs := &fakeSender{}
	out := NewOutput(fs.send, 0, GetKit("gm"))
	out.Play(-1)
	out.Play(KitSlots)
	assert.Empty(t, fs.sent())
}

func TestOutputSendErrorsAreSwallowed(t *testing.T) {
	fs := &fakeSender{err: errors.New("unplugged")}
	out := NewOutput(fs.send, 0, GetKit("gm"))
	assert.NotPanics(t, func() { out.Play(0) })
}

func TestOutputClosedDropsNoteOff(t *testing.T) {
	fs := &fakeSender{}
	out := NewOutput(fs.send, 0, GetKit("gm"))
	out.Play(0)
	require.NoError(t, out.Close())
	time.Sleep(NoteLength + 50*time.Millisecond)
	assert.Len(t, fs.sent(), 1)
}

func TestMatchPort(t *testing.T) {
	assert.True(t, MatchPort("Arturia BeatStep MIDI 1", "beatstep"))
	assert.True(t, MatchPort("anything", ""))
	assert.False(t, MatchPort("IAC Driver Bus 1", "beatstep"))
}

func TestKeyboardForwardsNoteOns(t *testing.T) {
	kb := newKeyboard("test")
	kb.handle(gomidi.NoteOn(2, 36, 90))
	kb.handle(gomidi.NoteOn(2, 38, 0)) // running-status note off
	kb.handle(gomidi.NoteOff(2, 36))

	ev := <-kb.NoteEvents()
	assert.Equal(t, NoteEvent{Note: 36, Velocity: 90, Channel: 2}, ev)
	assert.Empty(t, kb.NoteEvents())

	require.NoError(t, kb.Close())
	require.NoError(t, kb.Close())
	assert.NotPanics(t, func() { kb.handle(gomidi.NoteOn(0, 36, 100)) })
}

type fakeController struct {
	id     string
	closed bool
}

func (f *fakeController) ID() string                   { return f.id }
func (f *fakeController) NoteEvents() <-chan NoteEvent { return nil }
func (f *fakeController) Close() error                 { f.closed = true; return nil }

func TestDeviceManagerHotPlug(t *testing.T) {
	ports := []string{"BeatStep MIDI 1", "IAC Bus"}
	opened := map[string]*fakeController{}
	dm := NewDeviceManager("beatstep")
	dm.list = func() []string { return ports }
	dm.open = func(name string) (Controller, error) {
		c := &fakeController{id: name}
		opened[name] = c
		return c, nil
	}

	dm.scan()
	ev := <-dm.Events()
	assert.Equal(t, DeviceConnected, ev.Type)
	assert.Equal(t, "BeatStep MIDI 1", ev.ID)
	assert.Len(t, dm.Controllers(), 1)
	assert.NotContains(t, opened, "IAC Bus")

	dm.scan()
	assert.Empty(t, dm.Events(), "known devices are not reopened")

	ports = nil
	dm.scan()
	ev = <-dm.Events()
	assert.Equal(t, DeviceDisconnected, ev.Type)
	assert.True(t, opened["BeatStep MIDI 1"].closed)
	assert.Empty(t, dm.Controllers())
}

func TestDeviceManagerSkipsFailedOpen(t *testing.T) {
	dm := NewDeviceManager("")
	dm.list = func() []string { return []string{"broken"} }
	dm.open = func(string) (Controller, error) { return nil, ErrPortNotFound }
	dm.scan()
	assert.Empty(t, dm.Events())
	assert.Empty(t, dm.Controllers())
}
