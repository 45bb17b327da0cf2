package markdown

import "github.com/charmbracelet/lipgloss"

// Kind identifies which palette entry styled a run.
type Kind int

const (
	KindBody Kind = iota
	KindHeading1
	KindHeading2
	KindHeading3
	KindCode
)

func (k Kind) String() string {
	switch k {
	case KindHeading1:
		return "h1"
	case KindHeading2:
		return "h2"
	case KindHeading3:
		return "h3"
	case KindCode:
		return "code"
	default:
		return "body"
	}
}

// Weight is the font weight of a run.
type Weight int

const (
	WeightRegular Weight = iota
	WeightBold
)

func (w Weight) String() string {
	if w == WeightBold {
		return "bold"
	}
	return "regular"
}

// Palette constants.
const (
	BodyFontSize    = 14.0
	MonospaceFamily = "monospace"
)

// Fixed colors. Filled mode draws black text on a white background; inline
// code is always gray.
var (
	FilledTextColor lipgloss.TerminalColor = lipgloss.Color("#000000")
	CodeColor       lipgloss.TerminalColor = lipgloss.Color("#808080")
)

// RunStyle is the font and color applied to one palette entry.
// A nil Color means "use the base foreground color".
type RunStyle struct {
	Size   float64
	Weight Weight
	Family string
	Color  lipgloss.TerminalColor
}

// StyleTable is the fixed palette handed to a Styler.
type StyleTable struct {
	Body     RunStyle
	Heading1 RunStyle
	Heading2 RunStyle
	Heading3 RunStyle
	Code     RunStyle
}

// DefaultStyleTable returns the palette: h1 20 bold, h2 18 bold, h3 16 bold,
// inline code monospace gray, everything else body.
func DefaultStyleTable() StyleTable {
	return StyleTable{
		Body:     RunStyle{Size: BodyFontSize, Weight: WeightRegular},
		Heading1: RunStyle{Size: 20, Weight: WeightBold},
		Heading2: RunStyle{Size: 18, Weight: WeightBold},
		Heading3: RunStyle{Size: 16, Weight: WeightBold},
		Code:     RunStyle{Size: BodyFontSize, Weight: WeightRegular, Family: MonospaceFamily, Color: CodeColor},
	}
}

// For returns the style of kind.
func (t StyleTable) For(kind Kind) RunStyle {
	switch kind {
	case KindHeading1:
		return t.Heading1
	case KindHeading2:
		return t.Heading2
	case KindHeading3:
		return t.Heading3
	case KindCode:
		return t.Code
	default:
		return t.Body
	}
}

// WithBaseColor fills every entry without its own color with base.
func (t StyleTable) WithBaseColor(base lipgloss.TerminalColor) StyleTable {
	fill := func(s RunStyle) RunStyle {
		if s.Color == nil {
			s.Color = base
		}
		return s
	}
	t.Body = fill(t.Body)
	t.Heading1 = fill(t.Heading1)
	t.Heading2 = fill(t.Heading2)
	t.Heading3 = fill(t.Heading3)
	t.Code = fill(t.Code)
	return t
}

// headingKind maps a Markdown heading level to a palette entry. Levels
// beyond three are styled as body text.
func headingKind(level int) Kind {
	switch level {
	case 1:
		return KindHeading1
	case 2:
		return KindHeading2
	case 3:
		return KindHeading3
	default:
		return KindBody
	}
}
