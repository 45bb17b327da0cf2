package mdview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/markview/internal/markdown"
	"github.com/zjrosen/markview/internal/ui/styles"
)

// Alignment is the horizontal placement of each wrapped row.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
	// AlignJustified renders as left: cells cannot be stretched.
	AlignJustified
)

func (a Alignment) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	case AlignJustified:
		return "justified"
	default:
		return "left"
	}
}

// ParseAlignment parses a config value. The empty string is left.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left", "natural":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	case "justified", "justify":
		return AlignJustified, nil
	default:
		return AlignLeft, fmt.Errorf("unknown alignment %q", s)
	}
}

// offset is the leading space for a row of width w in a column of width col.
func (a Alignment) offset(w, col int) int {
	switch a {
	case AlignCenter:
		return max((col-w)/2, 0)
	case AlignRight:
		return max(col-w, 0)
	default:
		return 0
	}
}

// surfacePadding is the text surface's built-in left padding, in cells.
const surfacePadding = 1

// inset shifts text against the surface padding: Plain pulls it flush to
// the edge, Filled pushes it one cell into the background.
func inset(mode markdown.ColorMode) int {
	if mode == markdown.Filled {
		return 1
	}
	return -1
}

// leftMargin is the column text starts at inside the surface. It is taken
// out of the inner padding so geometry does not depend on the mode.
func leftMargin(mode markdown.ColorMode, innerPadding int) int {
	return max(0, min(surfacePadding+inset(mode), innerPadding))
}

// fillStyle paints surface cells that carry no text.
func fillStyle(mode markdown.ColorMode) lipgloss.Style {
	if mode == markdown.Filled {
		return lipgloss.NewStyle().Background(styles.FilledBackgroundColor)
	}
	return lipgloss.NewStyle()
}

// runStyle maps run metadata to terminal attributes. Weight renders as bold;
// any size above body renders bold too, and level 1 is underlined.
func runStyle(r markdown.Run, mode markdown.ColorMode) lipgloss.Style {
	s := fillStyle(mode)
	if r.Color != nil {
		s = s.Foreground(r.Color)
	}
	if r.Weight == markdown.WeightBold || r.Size > markdown.BodyFontSize {
		s = s.Bold(true)
	}
	if r.Kind == markdown.KindHeading1 {
		s = s.Underline(true)
	}
	return s
}

// SetTextColor recolors every run of the current document, code included,
// without re-parsing. A nil color is ignored. The override lasts until the
// next background mode change.
func (m *Model) SetTextColor(c lipgloss.TerminalColor) {
	if c == nil {
		return
	}
	m.colorOverride = c
	m.replaceDocument(m.doc.WithColor(c))
}

// SetBackgroundMode switches between Plain and Filled. The document takes
// the mode's palette back, code keeping its gray, and inset and fill follow
// on the next layout pass. Markdown is not re-parsed.
func (m *Model) SetBackgroundMode(mode markdown.ColorMode) {
	if mode == m.mode {
		return
	}
	m.mode = mode
	m.colorOverride = nil
	m.replaceDocument(m.translator.Recolor(m.doc, mode))
}

// Mode returns the active color mode.
func (m *Model) Mode() markdown.ColorMode {
	return m.mode
}
