package components

import (
	"fmt"
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// NumberInput is a focused text field that accepts digits only and parses
// to an integer within [Min, Max].
type NumberInput struct {
	Min, Max int

	field   textinput.Model
	invalid bool
}

func NewNumberInput(lo, hi int) NumberInput {
	f := textinput.New()
	f.Placeholder = fmt.Sprintf("%d-%d", lo, hi)
	f.CharLimit = len(strconv.Itoa(hi))
	f.Focus()
	return NumberInput{Min: lo, Max: hi, field: f}
}

func (n NumberInput) Init() tea.Cmd {
	return n.field.Focus()
}

// Update forwards editing keys to the field and drops printable non-digits.
func (n NumberInput) Update(msg tea.Msg) (NumberInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		if s := k.String(); len(s) == 1 && (s[0] < '0' || s[0] > '9') {
			return n, nil
		}
		n.invalid = false
	}
	var cmd tea.Cmd
	n.field, cmd = n.field.Update(msg)
	return n, cmd
}

// Parse returns the entered number. An empty or out-of-range entry marks
// the field invalid until the next edit.
func (n *NumberInput) Parse() (int, error) {
	v, err := strconv.Atoi(n.field.Value())
	if err != nil || v < n.Min || v > n.Max {
		n.invalid = true
		return 0, fmt.Errorf("want a number between %d and %d", n.Min, n.Max)
	}
	return v, nil
}

func (n NumberInput) Value() string {
	return n.field.Value()
}

func (n NumberInput) View() string {
	v := n.field.View()
	if n.invalid {
		v += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
	}
	return v
}
