// Package screen defines the contract between the browser's router and
// the screens it stacks.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/factforge/internal/ui/layout"
)

// Screen is one page of the browser.
type Screen interface {
	Init() tea.Cmd

	// Update handles messages and returns the updated screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area (header and footer excluded).
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// InputCapturer is implemented by screens that are currently taking text
// input, so global keys like Esc reach the screen instead of the router.
type InputCapturer interface {
	CapturingInput() bool
}
