package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/nodedash/internal/types"
)

// RenderMessage renders a status line message styled by its type.
// Long messages are truncated to fit the terminal width.
func RenderMessage(text string, msgType types.MessageType, theme *Theme, spinnerView string, width int) string {
	if text == "" {
		return ""
	}

	// prefix (2) + margin (5)
	maxMessageLength := width - 7
	if maxMessageLength < 20 {
		maxMessageLength = 20
	}
	if runes := []rune(text); len(runes) > maxMessageLength {
		text = string(runes[:maxMessageLength-1]) + "…"
	}

	var messageColor lipgloss.AdaptiveColor
	prefix := "⏺ "

	switch msgType {
	case types.MessageTypeSuccess:
		messageColor = theme.MessageSuccess
	case types.MessageTypeError:
		messageColor = theme.MessageError
	case types.MessageTypeLoading:
		messageColor = theme.MessageLoading
		if spinnerView != "" {
			prefix = spinnerView + " "
		}
	default:
		messageColor = theme.MessageInfo
	}

	return lipgloss.NewStyle().Foreground(messageColor).Render(prefix + text)
}

// HealthStyle returns the table style used for a node health label
func (t *Theme) HealthStyle(status string) lipgloss.Style {
	switch status {
	case "Running":
		return t.Table.StatusRunning
	case "Failed":
		return t.Table.StatusError
	default:
		return t.Table.StatusWarning
	}
}
