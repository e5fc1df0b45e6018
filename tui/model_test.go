package tui

import (
	"math/rand"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-padloop/midi"
	"go-padloop/sequencer"
	"go-padloop/theme"
)

func newTestModel() Model {
	mgr := sequencer.NewManager(sequencer.DefaultTempo, rand.New(rand.NewSource(1)))
	return NewModel(mgr, nil, theme.Default(), midi.GetKit("gm"))
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyAction(t *testing.T) {
	cases := map[string]sequencer.Action{
		"1":     sequencer.Trigger(0),
		"4":     sequencer.Trigger(3),
		"f2":    sequencer.TogglePad(1),
		"up":    sequencer.Simple(sequencer.ActionTempoUp),
		"+":     sequencer.Simple(sequencer.ActionTempoUp),
		"down":  sequencer.Simple(sequencer.ActionTempoDown),
		"-":     sequencer.Simple(sequencer.ActionTempoDown),
		"s":     sequencer.Simple(sequencer.ActionToggleSync),
		"space": sequencer.Simple(sequencer.ActionToggleSync),
		"r":     sequencer.Simple(sequencer.ActionRandomize),
		"a":     sequencer.Simple(sequencer.ActionToggleAutonomous),
		"R":     sequencer.Simple(sequencer.ActionToggleRecording),
		"x":     sequencer.Simple(sequencer.ActionReset),
	}
	for key, want := range cases {
		got, ok := KeyAction(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	for _, key := range []string{"5", "f5", "z", "q"} {
		_, ok := KeyAction(key)
		assert.False(t, ok, key)
	}
}

func TestUpdateKeysDispatch(t *testing.T) {
	m := newTestModel()

	m.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, m.Manager.Snapshot().Pads[0].Playing)

	m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 130, m.Manager.Tempo())

	m.Update(runes("x"))
	snap := m.Manager.Snapshot()
	assert.False(t, snap.Pads[0].Playing)
	assert.Equal(t, sequencer.DefaultTempo, snap.Tempo)
}

func TestUpdateQuit(t *testing.T) {
	m := newTestModel()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestMouseClicksPadsAndButtons(t *testing.T) {
	m := newTestModel()
	m.View()
	require.Len(t, m.bounds.pads, sequencer.NumPads)
	require.Len(t, m.bounds.buttons, len(buttons))

	pad := m.bounds.pads[2]
	m.Update(tea.MouseMsg{X: pad.X + 1, Y: pad.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, m.Manager.Snapshot().Pads[2].Playing)

	// Release and right clicks are ignored
	m.Update(tea.MouseMsg{X: pad.X + 1, Y: pad.Y + 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: pad.X + 1, Y: pad.Y + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.True(t, m.Manager.Snapshot().Pads[2].Playing)

	before := m.Manager.Snapshot().GlobalSync
	sync := m.bounds.buttons[0]
	m.Update(tea.MouseMsg{X: sync.X, Y: sync.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.NotEqual(t, before, m.Manager.Snapshot().GlobalSync)

	plus := m.bounds.buttons[len(buttons)-1]
	m.Update(tea.MouseMsg{X: plus.X, Y: plus.Y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 130, m.Manager.Tempo())

	// Outside everything
	m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func TestRandomizeFlash(t *testing.T) {
	m := newTestModel()
	m.Update(runes("r"))
	at := m.Manager.Snapshot().RandomizedAt
	require.False(t, at.IsZero())

	m.now = func() time.Time { return at.Add(100 * time.Millisecond) }
	assert.Contains(t, m.View(), "sequences randomized")

	_, cmd := m.Update(frameMsg(at))
	assert.NotNil(t, cmd, "frames keep ticking")
}

type chanController struct {
	ch chan midi.NoteEvent
}

func (c *chanController) ID() string                        { return "test" }
func (c *chanController) NoteEvents() <-chan midi.NoteEvent { return c.ch }
func (c *chanController) Close() error                      { close(c.ch); return nil }

func TestForwardNotesTriggersKitSlots(t *testing.T) {
	m := newTestModel()
	player := &countingPlayer{}
	m.Manager.AddPlayer(player)

	c := &chanController{ch: make(chan midi.NoteEvent, 4)}
	c.ch <- midi.NoteEvent{Note: 38, Velocity: 100} // snare
	c.ch <- midi.NoteEvent{Note: 99, Velocity: 100} // not in kit
	c.Close()

	forwardNotes(m.Manager, m.Kit, c)
	assert.Equal(t, []int{1}, player.played)
}

func TestDeviceEventsTrackInputs(t *testing.T) {
	m := newTestModel()
	c := &chanController{ch: make(chan midi.NoteEvent)}
	m.DeviceMgr = midi.NewDeviceManager("")

	m.Update(DeviceEventMsg{Type: midi.DeviceConnected, Controller: c, ID: "pads"})
	assert.Contains(t, m.View(), "midi-in:1")

	m.Update(DeviceEventMsg{Type: midi.DeviceDisconnected, ID: "pads"})
	assert.NotContains(t, m.View(), "midi-in")
	c.Close()
}

type countingPlayer struct {
	played []int
}

func (p *countingPlayer) Play(sample int) {
	p.played = append(p.played, sample)
}
