package messages

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renato0307/nodedash/internal/types"
)

// ErrorCmd returns a tea.Cmd that produces an error status message.
//
// Example:
//
//	if err != nil {
//	    return messages.ErrorCmd("Delete failed: %v", err)
//	}
func ErrorCmd(format string, args ...any) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return types.ErrorStatusMsg(msg)
	}
}

// SuccessCmd returns a tea.Cmd that produces a success status message.
func SuccessCmd(format string, args ...any) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return types.SuccessMsg(msg)
	}
}

// InfoCmd returns a tea.Cmd that produces an info status message.
func InfoCmd(format string, args ...any) tea.Cmd {
	msg := fmt.Sprintf(format, args...)
	return func() tea.Msg {
		return types.InfoMsg(msg)
	}
}

// WrapError wraps an error with additional context using fmt.Errorf.
// Preserves the error chain for errors.As / errors.Is.
//
// Example:
//
//	if err != nil {
//	    return messages.WrapError(err, "failed to delete node %s", name)
//	}
func WrapError(err error, format string, args ...any) error {
	context := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", context, err)
}

// StatusNotifier delivers user notifications through the status line
type StatusNotifier struct{}

// NewStatusNotifier creates a notifier that emits success status messages
func NewStatusNotifier() *StatusNotifier {
	return &StatusNotifier{}
}

// Success returns a command showing message as a success notification
func (StatusNotifier) Success(message string) tea.Cmd {
	return func() tea.Msg {
		return types.SuccessMsg(message)
	}
}
