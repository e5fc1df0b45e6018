package sequencer

import "fmt"

// ActionKind enumerates every input the app reacts to
type ActionKind int

const (
	ActionNone             ActionKind = iota
	ActionTogglePad                   // Pad
	ActionTrigger                     // Sample, one-shot outside the sequencer
	ActionTempoUp                     // +TempoStep
	ActionTempoDown                   // -TempoStep
	ActionSetTempo                    // Tempo
	ActionToggleSync                  // global
	ActionSetPadSync                  // Pad, Synced
	ActionRandomize                   // inert while autonomous
	ActionToggleAutonomous
	ActionToggleRecording
	ActionReset                       // stop all, restore startup pads and tempo
)

var actionNames = map[ActionKind]string{
	ActionNone:             "none",
	ActionTogglePad:        "toggle-pad",
	ActionTrigger:          "trigger",
	ActionTempoUp:          "tempo-up",
	ActionTempoDown:        "tempo-down",
	ActionSetTempo:         "set-tempo",
	ActionToggleSync:       "toggle-sync",
	ActionSetPadSync:       "set-pad-sync",
	ActionRandomize:        "randomize",
	ActionToggleAutonomous: "toggle-autonomous",
	ActionToggleRecording:  "toggle-recording",
	ActionReset:            "reset",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(k))
}

// Action is one user (or MIDI) input. Only the fields its Kind names are read.
type Action struct {
	Kind   ActionKind
	Pad    int
	Sample int
	Tempo  int
	Synced bool
}

// Convenience constructors used by the TUI and MIDI input

func TogglePad(pad int) Action { return Action{Kind: ActionTogglePad, Pad: pad} }
func Trigger(sample int) Action { return Action{Kind: ActionTrigger, Sample: sample} }
func SetTempo(bpm int) Action { return Action{Kind: ActionSetTempo, Tempo: bpm} }
func Simple(kind ActionKind) Action { return Action{Kind: kind} }

func SetPadSync(pad int, synced bool) Action {
	return Action{Kind: ActionSetPadSync, Pad: pad, Synced: synced}
}
