package midi

import (
	"fmt"
	"sort"
)

// KitSlots matches the sample index space
const KitSlots = 8

// DrumKit maps the 8 sample slots to MIDI notes
type DrumKit struct {
	Name  string
	Notes [KitSlots]uint8
}

// Slot names for reference
// 0: Kick
// 1: Snare
// 2: Closed HH
// 3: Clap
// 4: Open HH
// 5: Low Tom
// 6: High Tom
// 7: Crash

// Kits contains all available drum kit mappings
var Kits = map[string]DrumKit{
	"gm": {
		Name: "General MIDI",
		Notes: [KitSlots]uint8{
			36, // Kick
			38, // Snare
			42, // Closed HH
			39, // Clap
			46, // Open HH
			41, // Low Tom
			45, // High Tom
			49, // Crash
		},
	},
	"rd8": {
		Name: "Behringer RD-8",
		Notes: [KitSlots]uint8{
			36, // Kick (BD)
			40, // Snare (SD) - RD-8 uses 40, not 38
			42, // Closed HH (CH)
			39, // Clap (CP)
			46, // Open HH (OH)
			45, // Low Tom (LT)
			50, // High Tom (HT)
			49, // Crash (CY)
		},
	},
}

// DefaultKit is used when no kit is configured
const DefaultKit = "gm"

// GetKit returns the named kit, falling back to DefaultKit
func GetKit(name string) DrumKit {
	if kit, ok := Kits[name]; ok {
		return kit
	}
	return Kits[DefaultKit]
}

// KitNames lists the available kits, sorted
func KitNames() []string {
	names := make([]string, 0, len(Kits))
	for name := range Kits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Note returns the note for slot
func (k DrumKit) Note(slot int) (uint8, bool) {
	if slot < 0 || slot >= KitSlots {
		return 0, false
	}
	return k.Notes[slot], true
}

// Slot is the reverse lookup of Note (first match)
func (k DrumKit) Slot(note uint8) (int, bool) {
	for i, n := range k.Notes {
		if n == note {
			return i, true
		}
	}
	return 0, false
}

func (k DrumKit) String() string {
	return fmt.Sprintf("%s %v", k.Name, k.Notes)
}
