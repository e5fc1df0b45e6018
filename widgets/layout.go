package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Box is a clickable screen region in cells
type Box struct {
	X, Y, W, H int
}

func (b Box) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Row joins blocks left to right, top aligned, with gap spaces between them.
// The returned boxes are relative to the row's top-left cell.
func Row(blocks []string, gap int) (string, []Box) {
	boxes := make([]Box, len(blocks))
	parts := make([]string, 0, 2*len(blocks))
	x := 0
	for i, b := range blocks {
		if i > 0 && gap > 0 {
			parts = append(parts, strings.Repeat(" ", gap))
			x += gap
		}
		w, h := lipgloss.Width(b), lipgloss.Height(b)
		boxes[i] = Box{X: x, Y: 0, W: w, H: h}
		parts = append(parts, b)
		x += w
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...), boxes
}

// Offset moves boxes by dx, dy
func Offset(boxes []Box, dx, dy int) []Box {
	out := make([]Box, len(boxes))
	for i, b := range boxes {
		out[i] = Box{X: b.X + dx, Y: b.Y + dy, W: b.W, H: b.H}
	}
	return out
}

// HitTest returns the index of the first box containing x, y, or -1
func HitTest(boxes []Box, x, y int) int {
	for i, b := range boxes {
		if b.Contains(x, y) {
			return i
		}
	}
	return -1
}
