package conditions

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/router"
	"github.com/abhisek/mindcheck/internal/screen"
	"github.com/abhisek/mindcheck/internal/ui/layout"
	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// ConditionsScreen browses the labels and the recommendation the active
// content set gives for each.
type ConditionsScreen struct {
	table    *advice.Table
	labels   []assessment.Condition
	selected int
}

var _ screen.Screen = (*ConditionsScreen)(nil)
var _ screen.KeyHintProvider = (*ConditionsScreen)(nil)

// New creates a ConditionsScreen over table.
func New(table *advice.Table) *ConditionsScreen {
	return &ConditionsScreen{
		table:  table,
		labels: assessment.AllConditions(),
	}
}

func (c *ConditionsScreen) Init() tea.Cmd {
	return nil
}

func (c *ConditionsScreen) Title() string {
	return "Conditions · " + c.table.Name()
}

func (c *ConditionsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "Esc", Description: "Back"},
	}
}

func (c *ConditionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if c.selected > 0 {
			c.selected--
		}
	case "down", "j":
		if c.selected < len(c.labels)-1 {
			c.selected++
		}
	case "esc":
		return c, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return c, nil
}

func (c *ConditionsScreen) View(width, height int) string {
	listWidth := 24
	detailWidth := width - listWidth - 8
	if detailWidth < 20 {
		detailWidth = 20
	}

	var list strings.Builder
	for i, label := range c.labels {
		if i == c.selected {
			list.WriteString(theme.Selected.Render("▸ " + string(label)))
		} else {
			list.WriteString(theme.Unselected.Render("  " + string(label)))
		}
		list.WriteString("\n")
	}

	current := c.labels[c.selected]
	detail := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(string(current)) +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.Text).Width(detailWidth).Render(c.table.Recommend(current))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(listWidth).Render(list.String()),
		theme.Card.Width(detailWidth+6).Render(detail),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+body)
}
