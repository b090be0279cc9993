package keyboard

// Keys holds all keyboard shortcut configurations for nodedash
type Keys struct {
	// Node operations
	Delete    string // Delete node (with confirmation)
	DeleteAlt string // Alternate delete binding
	Toggle    string // Expand/collapse the selected row
	Copy      string // Copy the node id

	// Sorting
	SortField     string // Cycle sort field
	SortDirection string // Cycle sort direction

	// Navigation
	Up       string // Move selection up
	Down     string // Move selection down
	PrevPage string // Previous page
	NextPage string // Next page

	// Dialog
	Confirm    string
	ConfirmAlt string
	Decline    string
	DeclineAlt string

	// Global
	Quit    string // Quit application
	QuitAlt string
	Refresh string // Refresh data
}

// Default returns the default keyboard configuration
func Default() *Keys {
	return &Keys{
		Delete:    "x",
		DeleteAlt: "ctrl+x",
		Toggle:    "enter",
		Copy:      "c",

		SortField:     "s",
		SortDirection: "S",

		Up:       "k",
		Down:     "j",
		PrevPage: "[",
		NextPage: "]",

		Confirm:    "y",
		ConfirmAlt: "enter",
		Decline:    "n",
		DeclineAlt: "esc",

		Quit:    "ctrl+c",
		QuitAlt: "q",
		Refresh: "ctrl+r",
	}
}

// GetKeys returns the current keyboard configuration
func GetKeys() *Keys {
	return Default()
}

// Matches reports whether key is one of the given bindings. Empty bindings
// never match.
func Matches(key string, bindings ...string) bool {
	for _, b := range bindings {
		if b != "" && key == b {
			return true
		}
	}
	return false
}
