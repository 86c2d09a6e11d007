package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// StepBar renders "label  ████░░░░  done/total" in width columns.
func StepBar(label string, done, total, width int) string {
	done = min(max(done, 0), total)
	count := fmt.Sprintf("  %d/%d", done, total)

	head := ""
	if label != "" {
		head = lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}
	barWidth := max(width-lipgloss.Width(head)-len(count), 4)

	filled := 0
	if total > 0 {
		filled = barWidth * done / total
	}
	return head +
		lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(count)
}
