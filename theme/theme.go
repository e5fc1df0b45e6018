package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
	Alert   RGB // unsynced pads, errors
}

type Symbols struct {
	Playing  rune // ■ pad running
	Stopped  rune // □ pad idle
	Synced   rune // ● on the beat
	Unsynced rune // ○ double time

	// Sequence strip
	StepEmpty    rune // · unused step
	StepPlayhead rune // ▶ last played
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Alert:   RGB{0xff, 0x00, 0x00},
		Symbols: Symbols{
			Playing:  '■',
			Stopped:  '□',
			Synced:   '●',
			Unsynced: '○',

			StepEmpty:    '·',
			StepPlayhead: '▶',
		},
	}
}

// Default uses the built-in palette
func Default() *Theme {
	return New(DefaultPalette())
}

// Load reads a .gpl palette, or the built-in one when path is empty
func Load(path string) (*Theme, error) {
	if path == "" {
		return Default(), nil
	}
	p, err := LoadGPL(path)
	if err != nil {
		return nil, err
	}
	return New(p), nil
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // black
	RoleSurface = 0.2 // button fill
	RoleStopped = 0.3 // idle pad
	RoleMuted   = 0.5 // borders, help
	RoleFG      = 0.8 // text
	RoleActive  = 1.0 // playing pad, hacker green
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) Surface() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSurface))
}

func (t *Theme) Stopped() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleStopped))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Alert)
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
