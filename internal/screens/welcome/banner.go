package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mindcheck/internal/ui/theme"
)

const bannerArt = `
 ███╗   ███╗██╗███╗   ██╗██████╗  ██████╗██╗  ██╗███████╗ ██████╗██╗  ██╗
 ████╗ ████║██║████╗  ██║██╔══██╗██╔════╝██║  ██║██╔════╝██╔════╝██║ ██╔╝
 ██╔████╔██║██║██╔██╗ ██║██║  ██║██║     ███████║█████╗  ██║     █████╔╝
 ██║╚██╔╝██║██║██║╚██╗██║██║  ██║██║     ██╔══██║██╔══╝  ██║     ██╔═██╗
 ██║ ╚═╝ ██║██║██║ ╚████║██████╔╝╚██████╗██║  ██║███████╗╚██████╗██║  ██╗
 ╚═╝     ╚═╝╚═╝╚═╝  ╚═══╝╚═════╝  ╚═════╝╚═╝  ╚═╝╚══════╝ ╚═════╝╚═╝  ╚═╝`

const bannerCompact = "M I N D C H E C K"

// bannerMinWidth is the narrowest terminal that fits the block-letter art.
const bannerMinWidth = 76

// RenderBanner returns the banner styled in the primary color, falling back
// to spaced capitals on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
