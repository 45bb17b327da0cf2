// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text surface
	LabelColor           lipgloss.TerminalColor = lipgloss.NoColor{} // terminal default foreground
	FilledBackgroundColor                       = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	// Muted text (hints, footers)
	TextMutedColor = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#696969"}

	// Scrollbar: thumb only, no track fill
	ScrollbarThumbColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#8C8C8C"}

	// Selection highlight
	SelectionBackgroundColor = lipgloss.AdaptiveColor{Light: "#ADD6FF", Dark: "#264F78"}

	// Overlay colors
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#3A3A3A", Dark: "#C9C9C9"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}

	// Status line
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#C98A00", Dark: "#FECA57"}

	// Toast borders
	ToastSuccessColor = lipgloss.AdaptiveColor{Light: "#2E9E5B", Dark: "#73F59F"}
	ToastErrorColor   = StatusErrorColor
	ToastInfoColor    = lipgloss.AdaptiveColor{Light: "#3C7DD9", Dark: "#54A0FF"}
)

var (
	SelectionStyle    lipgloss.Style
	ScrollThumbStyle  lipgloss.Style
	FooterStyle       lipgloss.Style
	OverlayTitleStyle lipgloss.Style
	OverlayBoxStyle   lipgloss.Style
	ErrorStyle        lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	SelectionStyle = lipgloss.NewStyle().Background(SelectionBackgroundColor)
	ScrollThumbStyle = lipgloss.NewStyle().Foreground(ScrollbarThumbColor)
	FooterStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	OverlayTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(OverlayTitleColor).PaddingLeft(1)
	OverlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(OverlayBorderColor)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
}
