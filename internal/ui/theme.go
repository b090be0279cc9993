package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme and styles for the console
type Theme struct {
	Name string

	// Core colors
	Primary    lipgloss.AdaptiveColor
	Secondary  lipgloss.AdaptiveColor
	Accent     lipgloss.AdaptiveColor
	Foreground lipgloss.AdaptiveColor
	Muted      lipgloss.AdaptiveColor
	Error      lipgloss.AdaptiveColor
	Success    lipgloss.AdaptiveColor
	Warning    lipgloss.AdaptiveColor
	Border     lipgloss.AdaptiveColor

	// Status line colors
	MessageSuccess lipgloss.AdaptiveColor
	MessageError   lipgloss.AdaptiveColor
	MessageInfo    lipgloss.AdaptiveColor
	MessageLoading lipgloss.AdaptiveColor

	// Component styles
	Table     TableStyles
	Header    lipgloss.Style
	Detail    lipgloss.Style // expanded row body
	Label     lipgloss.Style // labels inside the expanded row
	Dialog    lipgloss.Style
	StatusBar lipgloss.Style
}

// TableStyles defines styles for table components
type TableStyles struct {
	Header        lipgloss.Style
	Cell          lipgloss.Style
	SelectedRow   lipgloss.Style
	StatusRunning lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
}

// ToTableStyles converts Theme.Table to bubbles table.Styles
func (t *Theme) ToTableStyles() table.Styles {
	return table.Styles{
		Header:   t.Table.Header,
		Cell:     t.Table.Cell,
		Selected: t.Table.SelectedRow,
	}
}

type palette struct {
	primary, secondary, accent   lipgloss.AdaptiveColor
	foreground, muted, border    lipgloss.AdaptiveColor
	errorColor, success, warning lipgloss.AdaptiveColor
	selectedFg, selectedBg       string
}

func newTheme(name string, p palette) *Theme {
	t := &Theme{
		Name:       name,
		Primary:    p.primary,
		Secondary:  p.secondary,
		Accent:     p.accent,
		Foreground: p.foreground,
		Muted:      p.muted,
		Error:      p.errorColor,
		Success:    p.success,
		Warning:    p.warning,
		Border:     p.border,

		MessageSuccess: p.success,
		MessageError:   p.errorColor,
		MessageInfo:    p.secondary,
		MessageLoading: p.accent,
	}

	t.Table.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Foreground(t.Primary).
		Bold(true).
		PaddingLeft(1).
		PaddingRight(1)

	t.Table.Cell = lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)

	t.Table.SelectedRow = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.selectedFg)).
		Background(lipgloss.Color(p.selectedBg)).
		Bold(false)

	t.Table.StatusRunning = lipgloss.NewStyle().Foreground(t.Success)
	t.Table.StatusError = lipgloss.NewStyle().Foreground(t.Error)
	t.Table.StatusWarning = lipgloss.NewStyle().Foreground(t.Warning)

	t.Header = lipgloss.NewStyle().
		Foreground(t.Primary).
		Bold(true)

	t.Detail = lipgloss.NewStyle().
		Foreground(t.Foreground).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(t.Border).
		PaddingLeft(2).
		MarginLeft(2)

	t.Label = lipgloss.NewStyle().
		Foreground(t.Muted).
		Width(14)

	t.Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(t.Muted)

	return t
}

// ThemeCharm returns the default Charm theme
func ThemeCharm() *Theme {
	return newTheme("charm", palette{
		primary:    lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"},
		secondary:  lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"},
		accent:     lipgloss.AdaptiveColor{Light: "#F780E2", Dark: "#F780E2"},
		foreground: lipgloss.AdaptiveColor{Light: "235", Dark: "252"},
		muted:      lipgloss.AdaptiveColor{Light: "243", Dark: "243"},
		border:     lipgloss.AdaptiveColor{Light: "240", Dark: "240"},
		errorColor: lipgloss.AdaptiveColor{Light: "#FF4672", Dark: "#ED567A"},
		success:    lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#02BF87"},
		warning:    lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFAA00"},
		selectedFg: "229",
		selectedBg: "57",
	})
}

// ThemeDracula returns a Dracula-inspired theme
func ThemeDracula() *Theme {
	return newTheme("dracula", palette{
		primary:    lipgloss.AdaptiveColor{Light: "#bd93f9", Dark: "#bd93f9"},
		secondary:  lipgloss.AdaptiveColor{Light: "#8be9fd", Dark: "#8be9fd"},
		accent:     lipgloss.AdaptiveColor{Light: "#ff79c6", Dark: "#ff79c6"},
		foreground: lipgloss.AdaptiveColor{Light: "#282a36", Dark: "#f8f8f2"},
		muted:      lipgloss.AdaptiveColor{Light: "#6272a4", Dark: "#6272a4"},
		border:     lipgloss.AdaptiveColor{Light: "#44475a", Dark: "#44475a"},
		errorColor: lipgloss.AdaptiveColor{Light: "#ff5555", Dark: "#ff5555"},
		success:    lipgloss.AdaptiveColor{Light: "#50fa7b", Dark: "#50fa7b"},
		warning:    lipgloss.AdaptiveColor{Light: "#f1fa8c", Dark: "#f1fa8c"},
		selectedFg: "#282a36",
		selectedBg: "#bd93f9",
	})
}

// ThemeNord returns a Nord theme: cool blues and grays
func ThemeNord() *Theme {
	return newTheme("nord", palette{
		primary:    lipgloss.AdaptiveColor{Light: "#5e81ac", Dark: "#88c0d0"},
		secondary:  lipgloss.AdaptiveColor{Light: "#81a1c1", Dark: "#81a1c1"},
		accent:     lipgloss.AdaptiveColor{Light: "#b48ead", Dark: "#b48ead"},
		foreground: lipgloss.AdaptiveColor{Light: "#2e3440", Dark: "#eceff4"},
		muted:      lipgloss.AdaptiveColor{Light: "#4c566a", Dark: "#4c566a"},
		border:     lipgloss.AdaptiveColor{Light: "#d8dee9", Dark: "#3b4252"},
		errorColor: lipgloss.AdaptiveColor{Light: "#bf616a", Dark: "#bf616a"},
		success:    lipgloss.AdaptiveColor{Light: "#a3be8c", Dark: "#a3be8c"},
		warning:    lipgloss.AdaptiveColor{Light: "#ebcb8b", Dark: "#ebcb8b"},
		selectedFg: "#2e3440",
		selectedBg: "#88c0d0",
	})
}

// ThemeSolarized returns a Solarized theme
func ThemeSolarized() *Theme {
	return newTheme("solarized", palette{
		primary:    lipgloss.AdaptiveColor{Light: "#268bd2", Dark: "#268bd2"},
		secondary:  lipgloss.AdaptiveColor{Light: "#2aa198", Dark: "#2aa198"},
		accent:     lipgloss.AdaptiveColor{Light: "#d33682", Dark: "#d33682"},
		foreground: lipgloss.AdaptiveColor{Light: "#657b83", Dark: "#839496"},
		muted:      lipgloss.AdaptiveColor{Light: "#93a1a1", Dark: "#586e75"},
		border:     lipgloss.AdaptiveColor{Light: "#eee8d5", Dark: "#073642"},
		errorColor: lipgloss.AdaptiveColor{Light: "#dc322f", Dark: "#dc322f"},
		success:    lipgloss.AdaptiveColor{Light: "#859900", Dark: "#859900"},
		warning:    lipgloss.AdaptiveColor{Light: "#b58900", Dark: "#b58900"},
		selectedFg: "#fdf6e3",
		selectedBg: "#268bd2",
	})
}

// GetTheme returns a theme by name, defaulting to Charm
func GetTheme(name string) *Theme {
	switch name {
	case "dracula":
		return ThemeDracula()
	case "nord":
		return ThemeNord()
	case "solarized":
		return ThemeSolarized()
	default:
		return ThemeCharm()
	}
}

// AvailableThemes returns a list of available theme names
func AvailableThemes() []string {
	return []string{"charm", "dracula", "nord", "solarized"}
}
