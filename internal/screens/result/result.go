package result

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/ui/layout"
	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// ResultScreen shows the outcome of an assessment.
type ResultScreen struct {
	res *assessment.Result
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen for res.
func New(res *assessment.Result) *ResultScreen {
	return &ResultScreen{res: res}
}

func (r *ResultScreen) Init() tea.Cmd {
	return nil
}

func (r *ResultScreen) Title() string {
	return "Result"
}

func (r *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Done"},
		{Key: "Esc", Description: "Back"},
	}
}

func (r *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return r, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return r, nil
}

func (r *ResultScreen) View(width, height int) string {
	cw := width - 8
	if cw > 72 {
		cw = 72
	}

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder

	b.WriteString(label.Render("Predicted Mental Health Condition"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(conditionColor(r.res.Condition)).Bold(true).Render(string(r.res.Condition)))
	b.WriteString("\n\n")

	b.WriteString(label.Render("Expert Recommendation"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(cw).Render(r.res.Recommendation))
	b.WriteString("\n")

	if r.res.Note != "" {
		b.WriteString("\n")
		b.WriteString(label.Render("A note for you"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Italic(true).Width(cw).Render(r.res.Note))
		b.WriteString("\n")
	}

	meta := "strategy: " + r.res.Strategy
	if r.res.MatchedRule != "" {
		meta += fmt.Sprintf("   rule: %s", r.res.MatchedRule)
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(meta))

	card := theme.Card.Width(cw + 4).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func conditionColor(c assessment.Condition) color.Color {
	if c == assessment.ConditionNormal {
		return theme.Success
	}
	return theme.Accent
}
