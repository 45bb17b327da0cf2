// Package selection provides the scroll container for the text view: a
// viewport with drag-to-select, clipboard copy and an auto-hiding scrollbar.
package selection

import (
	"strings"

	"github.com/rivo/uniseg"
)

// sliceByDisplayCols extracts the clusters overlapping [startCol, endCol).
// Wide clusters that straddle a boundary are included.
func sliceByDisplayCols(s string, startCol, endCol int) string {
	if startCol >= endCol || s == "" {
		return ""
	}

	var b strings.Builder
	col := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		end := col + uniseg.StringWidth(cluster)
		if col < endCol && end > startCol {
			b.WriteString(cluster)
		}
		col = end
		if col >= endCol {
			break
		}
		s, state = rest, newState
	}
	return b.String()
}

// sliceFromDisplayCol returns s from display column startCol to the end.
func sliceFromDisplayCol(s string, startCol int) string {
	if startCol <= 0 {
		return s
	}
	col := 0
	state := -1
	for len(s) > 0 {
		if col >= startCol {
			return s
		}
		cluster, rest, _, newState := uniseg.StepString(s, state)
		col += uniseg.StringWidth(cluster)
		s, state = rest, newState
	}
	return ""
}

// sliceToDisplayCol returns the prefix of s that fits in endCol columns.
func sliceToDisplayCol(s string, endCol int) string {
	if endCol <= 0 || s == "" {
		return ""
	}

	var b strings.Builder
	col := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		w := uniseg.StringWidth(cluster)
		if col+w > endCol {
			break
		}
		b.WriteString(cluster)
		col += w
		s, state = rest, newState
	}
	return b.String()
}

// Point is a position in content: a line index and a display column.
type Point struct {
	Line int
	Col  int
}

// Before reports whether p sorts before q.
func (p Point) Before(q Point) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Col < q.Col)
}

// TextSelection tracks a drag selection over plain text lines.
type TextSelection struct {
	selecting  bool
	start      Point
	end        Point
	plainLines []string
	dirty      bool
}

// New creates an empty TextSelection.
func New() *TextSelection {
	return &TextSelection{}
}

// Start begins a selection at pos.
func (s *TextSelection) Start(pos Point) {
	s.selecting = true
	s.start = pos
	s.end = pos
	s.dirty = true
}

// Update moves the selection end during a drag. Returns true if it changed.
func (s *TextSelection) Update(pos Point) bool {
	if !s.selecting || pos == s.end {
		return false
	}
	s.end = pos
	s.dirty = true
	return true
}

// Finalize ends the drag and returns the selected text.
func (s *TextSelection) Finalize() string {
	s.selecting = false
	return s.SelectedText()
}

// SelectAll selects every line.
func (s *TextSelection) SelectAll() {
	s.selecting = false
	s.start = Point{}
	if n := len(s.plainLines); n > 0 {
		s.end = Point{Line: n - 1, Col: uniseg.StringWidth(s.plainLines[n-1])}
	} else {
		s.end = Point{}
	}
	s.dirty = true
}

// IsSelecting reports whether a drag is in progress.
func (s *TextSelection) IsSelecting() bool {
	return s.selecting
}

// HasSelection reports whether the selection is non-empty.
func (s *TextSelection) HasSelection() bool {
	return s.start != s.end
}

// Clear drops the selection.
func (s *TextSelection) Clear() {
	s.start = Point{}
	s.end = Point{}
	s.selecting = false
	s.dirty = true
}

// SetPlainLines replaces the text that selections are taken from.
func (s *TextSelection) SetPlainLines(lines []string) {
	s.plainLines = lines
}

// PlainLines returns the current plain text lines.
func (s *TextSelection) PlainLines() []string {
	return s.plainLines
}

// Dirty reports whether the selection changed since ClearDirty.
func (s *TextSelection) Dirty() bool {
	return s.dirty
}

// ClearDirty resets the dirty flag.
func (s *TextSelection) ClearDirty() {
	s.dirty = false
}

// Normalized returns the endpoints in document order.
func (s *TextSelection) Normalized() (start, end Point) {
	start, end = s.start, s.end
	if end.Before(start) {
		start, end = end, start
	}
	return start, end
}

// SelectedText extracts the selection. Columns are display columns.
func (s *TextSelection) SelectedText() string {
	if !s.HasSelection() || len(s.plainLines) == 0 {
		return ""
	}

	start, end := s.Normalized()
	if start.Line >= len(s.plainLines) {
		return ""
	}
	if end.Line >= len(s.plainLines) {
		end.Line = len(s.plainLines) - 1
		end.Col = uniseg.StringWidth(s.plainLines[end.Line])
	}

	if start.Line == end.Line {
		return sliceByDisplayCols(s.plainLines[start.Line], start.Col, end.Col)
	}

	var b strings.Builder
	b.WriteString(sliceFromDisplayCol(s.plainLines[start.Line], start.Col))
	b.WriteString("\n")
	for i := start.Line + 1; i < end.Line; i++ {
		b.WriteString(s.plainLines[i])
		b.WriteString("\n")
	}
	b.WriteString(sliceToDisplayCol(s.plainLines[end.Line], end.Col))
	return b.String()
}

// Bounds returns the normalized endpoints, or nil, nil when nothing is
// selected and no drag is in progress.
func (s *TextSelection) Bounds() (*Point, *Point) {
	if !s.HasSelection() && !s.selecting {
		return nil, nil
	}
	start, end := s.Normalized()
	return &start, &end
}

// LineSpan returns the selected column range on line, and false when the
// line is outside the selection.
func (s *TextSelection) LineSpan(line int) (startCol, endCol int, ok bool) {
	if !s.HasSelection() || line < 0 || line >= len(s.plainLines) {
		return 0, 0, false
	}
	start, end := s.Normalized()
	if line < start.Line || line > end.Line {
		return 0, 0, false
	}
	width := uniseg.StringWidth(s.plainLines[line])
	startCol, endCol = 0, width
	if line == start.Line {
		startCol = start.Col
	}
	if line == end.Line {
		endCol = min(end.Col, width)
	}
	if startCol >= endCol {
		return 0, 0, false
	}
	return startCol, endCol, true
}
