// Package app hosts the Bubble Tea program behind `factforge browse`.
package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/factforge/internal/router"
	"github.com/abhisek/factforge/internal/screen"
	"github.com/abhisek/factforge/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// NewAppModel wraps root in a router. status is shown on the right of the
// header for the whole session.
func NewAppModel(root screen.Screen, status string) AppModel {
	return AppModel{
		router: router.New(root),
		status: status,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the program with root as the first screen and blocks until
// the user quits.
func Run(root screen.Screen, status string) error {
	_, err := tea.NewProgram(NewAppModel(root, status)).Run()
	return err
}
