package markdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Run is a contiguous span of text with one font size, weight and color.
type Run struct {
	Text     string
	Kind     Kind
	Size     float64
	Weight   Weight
	Family   string
	Color    lipgloss.TerminalColor
	Newlines int // line breaks emitted before this run

	// Text may itself hold line breaks: consecutive lines in one style share
	// a run.
}

func (r Run) sameStyle(o Run) bool {
	return r.Kind == o.Kind && r.Size == o.Size && r.Weight == o.Weight &&
		r.Family == o.Family && r.Color == o.Color
}

// Document is an immutable sequence of styled runs.
type Document struct {
	runs []Run
}

// NewDocument copies runs into a Document.
func NewDocument(runs []Run) Document {
	if len(runs) == 0 {
		return Document{}
	}
	return Document{runs: append([]Run(nil), runs...)}
}

// Runs returns a copy of the runs.
func (d Document) Runs() []Run {
	return append([]Run(nil), d.runs...)
}

// Len returns the number of runs.
func (d Document) Len() int {
	return len(d.runs)
}

// Text returns the visible text: run text joined by their line breaks.
func (d Document) Text() string {
	var b strings.Builder
	for _, r := range d.runs {
		b.WriteString(strings.Repeat("\n", r.Newlines))
		b.WriteString(r.Text)
	}
	return b.String()
}

// Lines groups runs by visual line, splitting runs at their line breaks.
// Blank lines are empty slices.
func (d Document) Lines() [][]Run {
	if len(d.runs) == 0 {
		return nil
	}
	lines := [][]Run{nil}
	for _, r := range d.runs {
		for i := 0; i < r.Newlines; i++ {
			lines = append(lines, nil)
		}
		for i, part := range strings.Split(r.Text, "\n") {
			if i > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			piece := r
			piece.Text = part
			if i > 0 {
				piece.Newlines = 1
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], piece)
		}
	}
	return lines
}

// PlainLines returns the visible text split into lines.
func (d Document) PlainLines() []string {
	if len(d.runs) == 0 {
		return nil
	}
	return strings.Split(d.Text(), "\n")
}

// WithColor returns a copy with every run, code included, in color. Text is
// untouched.
func (d Document) WithColor(color lipgloss.TerminalColor) Document {
	if color == nil || len(d.runs) == 0 {
		return d
	}
	runs := d.Runs()
	for i := range runs {
		runs[i].Color = color
	}
	return Document{runs: runs}
}

// Restyle returns a copy whose run colors come from table by kind, so code
// goes back to its own color.
func (d Document) Restyle(table StyleTable) Document {
	if len(d.runs) == 0 {
		return d
	}
	runs := d.Runs()
	for i := range runs {
		runs[i].Color = table.For(runs[i].Kind).Color
	}
	return Document{runs: runs}
}
