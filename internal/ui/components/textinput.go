package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/factforge/internal/ui/theme"
)

// TextInput wraps bubbles/textinput as a one-line filter prompt.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a blurred input with the given prompt.
func NewTextInput(prompt, placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti}
}

// Focus starts accepting keystrokes.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur stops accepting keystrokes but keeps the value.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input is taking keystrokes.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Reset clears the value.
func (t *TextInput) Reset() {
	t.Model.Reset()
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t TextInput) View() string {
	if !t.Focused() && t.Value() == "" {
		return theme.Hint.Render("Press / to filter")
	}
	return t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}
