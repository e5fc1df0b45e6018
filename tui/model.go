package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go-padloop/debug"
	"go-padloop/midi"
	"go-padloop/sequencer"
	"go-padloop/theme"
	"go-padloop/widgets"
)

// RandomizeFlash is how long the RANDOMIZE button stays lit
const RandomizeFlash = 300 * time.Millisecond

// frameRate redraws between manager updates (director changes, flashes)
const frameRate = 50 * time.Millisecond

// layoutBounds holds cached layout info from the last View
type layoutBounds struct {
	pads    []widgets.Box
	buttons []widgets.Box
}

type Model struct {
	Manager   *sequencer.Manager
	DeviceMgr *midi.DeviceManager // nil without MIDI input
	Theme     *theme.Theme
	Kit       midi.DrumKit
	quitting  bool
	bounds    *layoutBounds
	inputs    map[string]bool
	now       func() time.Time
}

type UpdateMsg struct{}

type DeviceEventMsg midi.DeviceEvent

type frameMsg time.Time

func NewModel(manager *sequencer.Manager, deviceMgr *midi.DeviceManager, th *theme.Theme, kit midi.DrumKit) Model {
	return Model{
		Manager:   manager,
		DeviceMgr: deviceMgr,
		Theme:     th,
		Kit:       kit,
		bounds:    &layoutBounds{},
		inputs:    make(map[string]bool),
		now:       time.Now,
	}
}

func ListenForUpdates(manager *sequencer.Manager) tea.Cmd {
	return func() tea.Msg {
		<-manager.UpdateChan
		return UpdateMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func frame() tea.Cmd {
	return tea.Tick(frameRate, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Manager), frame()}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if a, ok := KeyAction(key); ok {
			m.Manager.Dispatch(a)
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if a, ok := m.hitTest(msg.X, msg.Y); ok {
			m.Manager.Dispatch(a)
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Manager)

	case frameMsg:
		return m, frame()

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		switch event.Type {
		case midi.DeviceConnected:
			m.inputs[event.ID] = true
			go forwardNotes(m.Manager, m.Kit, event.Controller)
		case midi.DeviceDisconnected:
			delete(m.inputs, event.ID)
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

// forwardNotes turns kit notes into one-shot triggers until the controller closes
func forwardNotes(manager *sequencer.Manager, kit midi.DrumKit, c midi.Controller) {
	for ev := range c.NoteEvents() {
		slot, ok := kit.Slot(ev.Note)
		if !ok {
			debug.Log("midi", "%s: note %d not in kit", c.ID(), ev.Note)
			continue
		}
		manager.Dispatch(sequencer.Trigger(slot))
	}
}

func (m Model) hitTest(x, y int) (sequencer.Action, bool) {
	if i := widgets.HitTest(m.bounds.pads, x, y); i >= 0 {
		return sequencer.TogglePad(i), true
	}
	if i := widgets.HitTest(m.bounds.buttons, x, y); i >= 0 {
		return buttons[i].action, true
	}
	return sequencer.Action{}, false
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Manager.Snapshot()

	// Styles
	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Active()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	statusStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	header := headerStyle.Render(fmt.Sprintf("go-padloop  %3dbpm  sync:%s  auto:%s%s%s",
		snap.Tempo, onOff(snap.GlobalSync), onOff(snap.Autonomous), m.recLabel(snap), m.inputLabel()))

	// Pads
	pads := make([]string, sequencer.NumPads)
	for i, pv := range snap.Pads {
		pads[i] = widgets.RenderPad(m.Theme, i, pv)
	}
	padRow, padBoxes := widgets.Row(pads, 1)

	// Buttons
	flash := !snap.RandomizedAt.IsZero() && m.now().Sub(snap.RandomizedAt) < RandomizeFlash
	lit := []bool{snap.GlobalSync, flash, snap.Autonomous, snap.Recording, false, false, false}
	btns := make([]string, len(buttons))
	for i, b := range buttons {
		btns[i] = widgets.RenderButton(m.Theme, b.label, lit[i])
	}
	buttonRow, buttonBoxes := widgets.Row(btns, 1)

	help := dimStyle.Render(widgets.RenderKeyLine(keyHelp))

	// Compute layout bounds: blank line, header, blank line, pads, blank line, buttons
	padTop := 1 + lipgloss.Height(header) + 1
	buttonTop := padTop + lipgloss.Height(padRow) + 1
	m.bounds.pads = widgets.Offset(padBoxes, 0, padTop)
	m.bounds.buttons = widgets.Offset(buttonBoxes, 0, buttonTop)

	// Build output
	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(padRow)
	out.WriteString("\n\n")
	out.WriteString(buttonRow)
	out.WriteString("\n\n")
	out.WriteString(help)

	if snap.Status != "" {
		out.WriteString("\n")
		out.WriteString(statusStyle.Render(snap.Status))
	}

	return out.String()
}

func (m Model) recLabel(snap sequencer.Snapshot) string {
	if !snap.Recording {
		return ""
	}
	return "  " + lipgloss.NewStyle().Foreground(m.Theme.Warning()).Render("● REC")
}

func (m Model) inputLabel() string {
	if len(m.inputs) == 0 {
		return ""
	}
	return fmt.Sprintf("  midi-in:%d", len(m.inputs))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
