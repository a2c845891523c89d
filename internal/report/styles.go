package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var bannerColor = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}

// Styles holds the lipgloss styles of the text reporter. When styling is
// disabled every method returns its input unchanged.
type Styles struct {
	enabled bool
	banner  lipgloss.Style
}

// NewStyles creates styles bound to w. Styling is enabled only for
// FormatTerminal.
func NewStyles(w io.Writer, format Format) Styles {
	if format != FormatTerminal {
		return Styles{}
	}

	r := lipgloss.NewRenderer(w)
	return Styles{
		enabled: true,
		banner:  r.NewStyle().Foreground(bannerColor).Bold(true),
	}
}

// Banner styles a step banner.
func (s Styles) Banner(text string) string {
	if !s.enabled {
		return text
	}
	return s.banner.Render(text)
}
