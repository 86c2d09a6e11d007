package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/mindcheck/internal/assessor"
	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/screens/history"
	"github.com/abhisek/mindcheck/internal/screens/home"
	"github.com/abhisek/mindcheck/internal/screens/welcome"
	"github.com/abhisek/mindcheck/internal/store"
	"github.com/abhisek/mindcheck/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router     *router.Router
	strategy   string
	contentSet string
	width      int
	height     int
}

// newAppModel creates an AppModel that opens on the splash screen.
func newAppModel(svc *assessor.Service, repo store.EventRepo) AppModel {
	deps := home.Deps{
		Assessor: svc,
		Advice:   svc.Advice(),
	}
	if repo != nil {
		deps.History = history.Reader(repo)
	}

	splash := welcome.New(func() screen.Screen { return home.New(deps) })
	return AppModel{
		router:     router.New(splash),
		strategy:   svc.StrategyName(),
		contentSet: svc.Advice().Name(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

var quitHint = layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}

// hints picks the footer for the active screen.
func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), quitHint)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quitHint}
	}
	return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}, quitHint}
}

// render draws the full frame as a string.
func (m AppModel) render() string {
	switch {
	case m.width == 0 || m.height == 0:
		return ""
	case layout.IsTooSmall(m.width, m.height):
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	var title string
	if active != nil {
		title = active.Title()
	}
	header := layout.RenderHeader(title, m.strategy, m.contentSet, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.router.View(m.width, bodyHeight), footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(svc *assessor.Service, repo store.EventRepo, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	log.Debug("starting form shell",
		zap.String("strategy", svc.StrategyName()),
		zap.String("content_set", svc.Advice().Name()))

	p := tea.NewProgram(newAppModel(svc, repo))
	if _, err := p.Run(); err != nil {
		log.Error("form shell exited", zap.Error(err))
		return err
	}
	return nil
}
