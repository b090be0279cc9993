package modals

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/renato0307/nodedash/internal/keyboard"
	"github.com/renato0307/nodedash/internal/ui"
)

// DialogConfig is the content of a confirmation dialog
type DialogConfig struct {
	Title        string
	Message      string
	ConfirmLabel string
}

// ShowDialogMsg asks the app to open a confirmation dialog
type ShowDialogMsg struct {
	Token  string
	Config DialogConfig
}

// DialogClosedMsg reports the answer for the dialog opened with Token
type DialogClosedMsg struct {
	Token     string
	Confirmed bool
}

// Dialogs opens confirmation dialogs. Each dialog gets a fresh token so the
// opener can match the answer to its request.
type Dialogs struct{}

// NewDialogs creates a dialog opener
func NewDialogs() *Dialogs {
	return &Dialogs{}
}

// Open returns the dialog token and the command that shows it
func (Dialogs) Open(cfg DialogConfig) (string, tea.Cmd) {
	token := uuid.NewString()
	return token, func() tea.Msg {
		return ShowDialogMsg{Token: token, Config: cfg}
	}
}

// Confirm is a yes/no modal
type Confirm struct {
	token  string
	config DialogConfig
	theme  *ui.Theme
	keys   *keyboard.Keys
	closed bool
}

// NewConfirm creates the modal for msg
func NewConfirm(msg ShowDialogMsg, theme *ui.Theme, keys *keyboard.Keys) *Confirm {
	return &Confirm{
		token:  msg.Token,
		config: msg.Config,
		theme:  theme,
		keys:   keys,
	}
}

// Token returns the token of the dialog request
func (m *Confirm) Token() string {
	return m.token
}

func (m *Confirm) Init() tea.Cmd {
	return nil
}

// Update answers the dialog once. Keys after the answer are ignored.
func (m *Confirm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || m.closed {
		return m, nil
	}

	switch k := key.String(); {
	case keyboard.Matches(k, m.keys.Confirm, m.keys.ConfirmAlt):
		return m, m.close(true)
	case keyboard.Matches(k, m.keys.Decline, m.keys.DeclineAlt):
		return m, m.close(false)
	}
	return m, nil
}

func (m *Confirm) close(confirmed bool) tea.Cmd {
	m.closed = true
	token := m.token
	return func() tea.Msg {
		return DialogClosedMsg{Token: token, Confirmed: confirmed}
	}
}

func (m *Confirm) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary).Render(m.config.Title)
	confirmLabel := m.config.ConfirmLabel
	if confirmLabel == "" {
		confirmLabel = "Confirm"
	}

	confirm := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Error).
		Render("[" + m.keys.Confirm + "] " + confirmLabel)
	cancel := lipgloss.NewStyle().Foreground(m.theme.Muted).
		Render("[" + m.keys.Decline + "] Cancel")

	body := strings.Join([]string{
		title,
		"",
		lipgloss.NewStyle().Width(50).Render(m.config.Message),
		"",
		confirm + "   " + cancel,
	}, "\n")

	return m.theme.Dialog.Render(body)
}

// CenteredView renders the modal in the middle of a termWidth x termHeight area
func (m *Confirm) CenteredView(termWidth, termHeight int) string {
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, m.View())
}
