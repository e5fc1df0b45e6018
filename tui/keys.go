package tui

import (
	"go-padloop/sequencer"
	"go-padloop/widgets"
)

// KeyAction maps a key to the action it triggers
func KeyAction(key string) (sequencer.Action, bool) {
	switch key {
	case "1", "2", "3", "4":
		return sequencer.Trigger(int(key[0] - '1')), true
	case "f1", "f2", "f3", "f4":
		return sequencer.TogglePad(int(key[1] - '1')), true
	case "up", "+", "=":
		return sequencer.Simple(sequencer.ActionTempoUp), true
	case "down", "-", "_":
		return sequencer.Simple(sequencer.ActionTempoDown), true
	case " ", "space", "s":
		return sequencer.Simple(sequencer.ActionToggleSync), true
	case "r":
		return sequencer.Simple(sequencer.ActionRandomize), true
	case "a":
		return sequencer.Simple(sequencer.ActionToggleAutonomous), true
	case "R":
		return sequencer.Simple(sequencer.ActionToggleRecording), true
	case "x":
		return sequencer.Simple(sequencer.ActionReset), true
	}
	return sequencer.Action{}, false
}

// button is a clickable control under the pads
type button struct {
	label  string
	action sequencer.Action
}

var buttons = []button{
	{"SYNC", sequencer.Simple(sequencer.ActionToggleSync)},
	{"RANDOMIZE", sequencer.Simple(sequencer.ActionRandomize)},
	{"AUTO", sequencer.Simple(sequencer.ActionToggleAutonomous)},
	{"RECORD", sequencer.Simple(sequencer.ActionToggleRecording)},
	{"RESET", sequencer.Simple(sequencer.ActionReset)},
	{"-", sequencer.Simple(sequencer.ActionTempoDown)},
	{"+", sequencer.Simple(sequencer.ActionTempoUp)},
}

var keyHelp = []widgets.KeyBinding{
	{Key: "F1-4/click", Desc: "pads"},
	{Key: "1-4", Desc: "one-shot"},
	{Key: "+/-", Desc: "tempo"},
	{Key: "space", Desc: "sync"},
	{Key: "r", Desc: "randomize"},
	{Key: "a", Desc: "auto"},
	{Key: "R", Desc: "record"},
	{Key: "x", Desc: "reset"},
	{Key: "q", Desc: "quit"},
}
