package widgets

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-padloop/sequencer"
	"go-padloop/theme"
)

// PadWidth is the inner width of a pad box
const PadWidth = 19

// RenderPad draws one pad: number, run state, sync state and its sequence
// with the last played step highlighted
func RenderPad(th *theme.Theme, index int, pv sequencer.PadView) string {
	border := th.Stopped()
	run := th.Symbols.Stopped
	if pv.Playing {
		border = th.Active()
		run = th.Symbols.Playing
	}

	syncStyle := lipgloss.NewStyle().Foreground(th.Active())
	syncMark, syncLabel := th.Symbols.Synced, "sync"
	if !pv.Synced {
		syncStyle = syncStyle.Foreground(th.Warning())
		syncMark, syncLabel = th.Symbols.Unsynced, "2x"
	}

	fg := lipgloss.NewStyle().Foreground(th.FG())
	title := fg.Bold(true).Render(fmt.Sprintf("PAD %d %c", index+1, run))
	sync := syncStyle.Render(fmt.Sprintf("%c %s", syncMark, syncLabel))
	gap := max(1, PadWidth-lipgloss.Width(title)-lipgloss.Width(sync))
	top := title + strings.Repeat(" ", gap) + sync

	sound := lipgloss.NewStyle().Foreground(th.Muted()).Render(fmt.Sprintf("sample %d", pv.Sound+1))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(PadWidth)

	return box.Render(lipgloss.JoinVertical(lipgloss.Left, top, sound, renderSequence(th, pv)))
}

// LastPlayed is the index of the step most recently played, -1 when idle
func LastPlayed(pv sequencer.PadView) int {
	if !pv.Playing || len(pv.Sequence) == 0 {
		return -1
	}
	return (pv.Cursor - 1 + len(pv.Sequence)) % len(pv.Sequence)
}

func renderSequence(th *theme.Theme, pv sequencer.PadView) string {
	cur := LastPlayed(pv)
	normal := lipgloss.NewStyle().Foreground(th.FG())
	hit := lipgloss.NewStyle().Foreground(th.BG()).Background(th.Active()).Bold(true)

	cells := make([]string, 0, sequencer.MaxSequenceLen)
	for i := 0; i < sequencer.MaxSequenceLen; i++ {
		switch {
		case i >= len(pv.Sequence):
			cells = append(cells, lipgloss.NewStyle().Foreground(th.Muted()).Render(string(th.Symbols.StepEmpty)))
		case i == cur:
			cells = append(cells, hit.Render(strconv.Itoa(pv.Sequence[i]+1)))
		default:
			cells = append(cells, normal.Render(strconv.Itoa(pv.Sequence[i]+1)))
		}
	}
	return strings.Join(cells, " ")
}

// RenderButton draws a bordered label; lit buttons use the active color
func RenderButton(th *theme.Theme, label string, lit bool) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(th.Muted()).
		Foreground(th.FG()).
		Padding(0, 1)
	if lit {
		style = style.
			BorderForeground(th.Active()).
			Foreground(th.BG()).
			Background(th.Active()).
			Bold(true)
	}
	return style.Render(label)
}
