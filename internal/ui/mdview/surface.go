package mdview

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/padding"

	"github.com/zjrosen/markview/internal/layout"
	"github.com/zjrosen/markview/internal/markdown"
)

// surface is the rendered text surface: TextWidth cells wide and exactly
// TextHeight rows tall when the measurer is char-wrap.
type surface struct {
	styled []string
	plain  []string
}

func (s surface) String() string {
	return strings.Join(s.styled, "\n")
}

// renderSurface word-wraps doc across the surface width left of the inset
// and lays each row out with the alignment and the background fill. Content
// is measured narrower, at the state's wrap width, so word wrapping almost
// always fits the measured rows; a line that still needs more rows than its
// measurement is broken by character instead. Rows are padded to
// TextHeight and never clipped.
func renderSurface(doc markdown.Document, st layout.State, mode markdown.ColorMode, align Alignment, p layout.Params) surface {
	var out surface
	if st.TextWidth == 0 {
		for range st.TextHeight {
			out.styled = append(out.styled, "")
			out.plain = append(out.plain, "")
		}
		return out
	}

	left := min(leftMargin(mode, p.InnerPadding), st.TextWidth-1)
	wrap := st.TextWidth - left
	fill := fillStyle(mode)

	for _, line := range doc.Lines() {
		rows := wrapLine(line, wrap, ansiWordWrap)
		if budget := layout.CharWrapRows(lineText(line), st.WrapWidth); len(rows) > budget {
			rows = wrapLine(line, wrap, ansiCharWrap)
		}
		for _, row := range rows {
			w := runewidth.StringWidth(row.plain)
			lead := left + align.offset(w, wrap)
			styled := row.render(mode)
			if mode == markdown.Filled {
				styled = fill.Render(strings.Repeat(" ", lead)) + styled +
					fill.Render(strings.Repeat(" ", max(st.TextWidth-lead-w, 0)))
			} else {
				styled = padding.String(indent.String(styled, uint(lead)), uint(st.TextWidth))
			}
			out.styled = append(out.styled, styled)
			out.plain = append(out.plain, strings.Repeat(" ", lead)+row.plain)
		}
	}

	blank := fill.Render(strings.Repeat(" ", st.TextWidth))
	for len(out.styled) < st.TextHeight {
		out.styled = append(out.styled, blank)
		out.plain = append(out.plain, "")
	}
	return out
}

// wrapFunc breaks plain text into rows of at most width cells.
type wrapFunc func(s string, width int) string

func ansiWordWrap(s string, width int) string { return ansi.Wrap(s, width, "") }

func ansiCharWrap(s string, width int) string { return ansi.Hardwrap(s, width, true) }

func lineText(line []markdown.Run) string {
	var b strings.Builder
	for _, r := range line {
		b.WriteString(r.Text)
	}
	return b.String()
}

// segment is a piece of one run on one row.
type segment struct {
	idx  int
	run  markdown.Run
	text string
}

type row struct {
	plain    string
	segments []segment
}

func (r row) render(mode markdown.ColorMode) string {
	var b strings.Builder
	for _, seg := range r.segments {
		b.WriteString(runStyle(seg.run, mode).Render(seg.text))
	}
	return b.String()
}

// wrapLine wraps the plain text of one line and maps the wrapped rows back
// onto the runs they came from. Wrapping only inserts breaks or drops
// whitespace, so walking both strings in step recovers each rune's run.
func wrapLine(line []markdown.Run, width int, wrap wrapFunc) []row {
	if len(line) == 0 {
		return []row{{}}
	}

	var src []rune
	var owner []int
	for i, r := range line {
		for _, c := range r.Text {
			src = append(src, c)
			owner = append(owner, i)
		}
	}

	wrapped := wrap(string(src), width)
	rows := make([]row, 0, strings.Count(wrapped, "\n")+1)
	p := 0
	for _, text := range strings.Split(wrapped, "\n") {
		var cur row
		cur.plain = text
		for _, c := range text {
			for p < len(src) && src[p] != c {
				p++
			}
			if p == len(src) {
				break
			}
			cur.appendRune(owner[p], line[owner[p]], c)
			p++
		}
		rows = append(rows, cur)
	}
	return rows
}

func (r *row) appendRune(idx int, run markdown.Run, c rune) {
	if n := len(r.segments); n > 0 && r.segments[n-1].idx == idx {
		r.segments[n-1].text += string(c)
		return
	}
	r.segments = append(r.segments, segment{idx: idx, run: run, text: string(c)})
}
