package home

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/screens/conditions"
	"github.com/abhisek/mindcheck/internal/screens/form"
	"github.com/abhisek/mindcheck/internal/screens/history"
	"github.com/abhisek/mindcheck/internal/ui/components"
	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// Deps are the collaborators reachable from the home menu. A nil History
// disables the history entry.
type Deps struct {
	Assessor form.Assessor
	History  history.Reader
	Advice   *advice.Table
}

// HomeScreen is the main menu.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Start assessment", Action: func() tea.Cmd {
			return push(form.New(deps.Assessor))
		}},
		{Label: "History", Disabled: deps.History == nil, Action: func() tea.Cmd {
			return push(history.New(deps.History))
		}},
		{Label: "Conditions", Action: func() tea.Cmd {
			return push(conditions.New(deps.Advice))
		}},
		{Label: "Exit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	heading := theme.Title.Render("How are you doing today?")
	sub := theme.Subtitle.Render("Ten quick questions about sleep, study and school life.")

	content := lipgloss.JoinVertical(lipgloss.Left,
		heading,
		sub,
		"",
		h.menu.View(),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(content))
}

func (h *HomeScreen) Title() string {
	return "Home"
}
