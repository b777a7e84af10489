package screen

import (
	tea "charm.land/bubbletea/v2"

	"versequest/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatsChangedMsg tells the app shell the header numbers moved:
// typically after a session ends and the streak or quota changed.
type StatsChangedMsg struct {
	Streak       int
	SessionsLeft int
}
