package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renato0307/nodedash/internal/types"
	"github.com/renato0307/nodedash/internal/ui"
)

// UserMessage is the status line. Every message gets an id so a delayed
// clear only removes the message it was scheduled for.
type UserMessage struct {
	message     string
	messageType types.MessageType
	id          int
	width       int
	theme       *ui.Theme
	spinner     spinner.Model
}

func NewUserMessage(theme *ui.Theme) *UserMessage {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"✽", "✻", "✶", "·", "✢"},
		FPS:    time.Second / 6,
	}
	s.Style = lipgloss.NewStyle()

	return &UserMessage{
		theme:   theme,
		spinner: s,
	}
}

// Show replaces the current message. Success and error messages return a
// command that clears them after StatusMessageDuration; loading messages
// return the spinner tick.
func (um *UserMessage) Show(msg types.StatusMsg) tea.Cmd {
	um.id++
	um.message = msg.Message
	um.messageType = msg.Type

	switch msg.Type {
	case types.MessageTypeLoading:
		return um.spinner.Tick
	case types.MessageTypeSuccess, types.MessageTypeError:
		id := um.id
		return tea.Tick(StatusMessageDuration, func(time.Time) tea.Msg {
			return types.ClearStatusMsg{MessageID: id}
		})
	}
	return nil
}

// Clear removes the message if it is still the one identified by id
func (um *UserMessage) Clear(id int) {
	if id != um.id {
		return
	}
	um.message = ""
	um.messageType = types.MessageTypeInfo
}

// ClearLoading removes a loading message; other messages stay
func (um *UserMessage) ClearLoading() {
	if um.IsLoading() {
		um.Clear(um.id)
	}
}

func (um *UserMessage) Message() (string, types.MessageType) {
	return um.message, um.messageType
}

func (um *UserMessage) IsLoading() bool {
	return um.message != "" && um.messageType == types.MessageTypeLoading
}

func (um *UserMessage) SetWidth(width int) {
	um.width = width
}

// Update advances the spinner while a loading message is shown
func (um *UserMessage) Update(msg tea.Msg) (*UserMessage, tea.Cmd) {
	if !um.IsLoading() {
		return um, nil
	}
	var cmd tea.Cmd
	um.spinner, cmd = um.spinner.Update(msg)
	return um, cmd
}

func (um *UserMessage) View() string {
	if um.message == "" {
		// keep the line reserved
		return lipgloss.NewStyle().Width(um.width).Render("")
	}

	var spinnerView string
	if um.messageType == types.MessageTypeLoading {
		spinnerView = um.spinner.View()
	}
	return ui.RenderMessage(um.message, um.messageType, um.theme, spinnerView, um.width)
}
