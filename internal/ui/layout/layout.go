// Package layout draws the frame shared by every screen: a header bar, the
// screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

// Smallest terminal the questionnaire renders in without wrapping.
const (
	MinWidth  = 72
	MinHeight = 20
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Terminal too small\n\nneed %dx%d, have %dx%d", MinWidth, MinHeight, width, height))
}

func bar(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader shows the app name, the screen title centred, and the active
// strategy and content set on the right.
func RenderHeader(title, strategy, contentSet string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  MindCheck")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	meta := lipgloss.NewStyle().Foreground(theme.Accent).Render(strategy) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(" · ") +
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(contentSet)

	// Border and padding take four columns.
	inner := max(width-4, 0)
	bw, mw, rw := lipgloss.Width(brand), lipgloss.Width(mid), lipgloss.Width(meta)
	gapL := max((inner-mw)/2-bw, 1)
	gapR := max(inner-bw-gapL-mw-rw, 1)

	return bar(width, brand+strings.Repeat(" ", gapL)+mid+strings.Repeat(" ", gapR)+meta)
}

// RenderFooter lists key hints left to right.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description))
	}
	return bar(width, b.String())
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height remains.
func RenderFrame(header, body, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body = lipgloss.NewStyle().Width(width).Height(rest).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
