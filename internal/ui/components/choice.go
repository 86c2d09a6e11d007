package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// Choice is a single-answer selector. Options are numbered from zero so the
// digit keys pick an option directly.
type Choice struct {
	Question  string
	Options   []string
	Selected  int
	Submitted bool
}

// NewChoice creates a choice selector with the first option highlighted.
func NewChoice(question string, options []string) Choice {
	return Choice{
		Question: question,
		Options:  options,
	}
}

// Init returns nil.
func (c Choice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	if c.Submitted {
		return c, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter":
		c.Submitted = true
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			idx := int(key[0] - '0')
			if idx < len(c.Options) {
				c.Selected = idx
			}
		}
	}

	return c, nil
}

// View renders the question and its options.
func (c Choice) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Question) + "\n\n"

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i, opt)

		switch {
		case i == c.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case c.Submitted:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}

	return s
}

// Value returns the chosen option index, or -1 before submission.
func (c Choice) Value() int {
	if !c.Submitted {
		return -1
	}
	return c.Selected
}
