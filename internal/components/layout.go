package components

import (
	"github.com/charmbracelet/lipgloss"
)

type Layout struct {
	width  int
	height int
}

func NewLayout(width, height int) *Layout {
	return &Layout{
		width:  width,
		height: height,
	}
}

func (l *Layout) SetSize(width, height int) {
	l.width = width
	l.height = height
}

// BodyHeight returns the lines left for the node table
func (l *Layout) BodyHeight() int {
	return max(l.height-ReservedLines, 3)
}

// Render stacks header, body and status line. A non-empty overlay replaces
// the body, centered on the screen.
func (l *Layout) Render(header, body, overlay, message string) string {
	if overlay != "" {
		body = lipgloss.Place(l.width, l.BodyHeight(), lipgloss.Center, lipgloss.Center, overlay)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, message)
}
