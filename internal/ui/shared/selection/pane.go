package selection

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/markview/internal/ui/styles"
)

// Clipboard is the interface for copy operations.
type Clipboard interface {
	Copy(text string) error
}

// ToastFunc builds a notification command for copy results.
type ToastFunc func(message string, isError bool) tea.Cmd

// PaneConfig configures a Pane.
type PaneConfig struct {
	// Clipboard for copy operations. If nil, selection works but copy is disabled.
	Clipboard Clipboard

	// MakeToast reports copy results. If nil, copies are silent.
	MakeToast ToastFunc

	// ContentStartX and ContentStartY offset content inside the pane.
	ContentStartX int
	ContentStartY int
}

// Pane is the scroll container. It clips content to its height, scrolls
// vertically, draws a scrollbar in its last column when content overflows
// and supports drag-to-select with copy on release.
type Pane struct {
	viewport  viewport.Model
	selection *TextSelection
	clipboard Clipboard
	makeToast ToastFunc

	width  int
	styled []string

	screenXOffset int
	screenYOffset int
	contentStartX int
	contentStartY int

	dirty bool
}

// NewPane creates an empty zero-sized Pane.
func NewPane(cfg PaneConfig) *Pane {
	return &Pane{
		viewport:      viewport.New(0, 0),
		selection:     New(),
		clipboard:     cfg.Clipboard,
		makeToast:     cfg.MakeToast,
		contentStartX: cfg.ContentStartX,
		contentStartY: cfg.ContentStartY,
		dirty:         true,
	}
}

// SetSize sets the outer size. One column is reserved for the scrollbar.
func (p *Pane) SetSize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	p.width = width
	p.viewport.Width = max(width-1, 0)
	p.viewport.Height = height
	p.clampOffset()
}

// SetScreenOffset sets the pane's position on screen for mouse mapping.
func (p *Pane) SetScreenOffset(x, y int) {
	p.screenXOffset = x
	p.screenYOffset = y
}

// SetContent replaces the displayed lines. plainLines carry the same
// geometry as styled and are used for selection; when nil they are derived
// by stripping styled. Any selection is cleared.
func (p *Pane) SetContent(styled string, plainLines []string) {
	p.styled = strings.Split(styled, "\n")
	if styled == "" {
		p.styled = nil
	}
	if plainLines == nil {
		plainLines = make([]string, len(p.styled))
		for i, line := range p.styled {
			plainLines[i] = strings.TrimRight(ansi.Strip(line), " ")
		}
	}
	p.selection.SetPlainLines(plainLines)
	p.selection.Clear()
	p.refresh()
}

// refresh pushes styled lines, with the selection highlighted, to the viewport.
func (p *Pane) refresh() {
	lines := make([]string, len(p.styled))
	plain := p.selection.PlainLines()
	for i, line := range p.styled {
		if start, end, ok := p.selection.LineSpan(i); ok && i < len(plain) {
			line = highlight(plain[i], start, end)
		}
		lines[i] = line
	}
	p.viewport.SetContent(strings.Join(lines, "\n"))
	p.clampOffset()
	p.dirty = true
}

func highlight(plain string, startCol, endCol int) string {
	return sliceToDisplayCol(plain, startCol) +
		styles.SelectionStyle.Render(sliceByDisplayCols(plain, startCol, endCol)) +
		sliceFromDisplayCol(plain, endCol)
}

func (p *Pane) clampOffset() {
	maxOffset := max(p.TotalLines()-p.viewport.Height, 0)
	if p.viewport.YOffset > maxOffset {
		p.viewport.SetYOffset(maxOffset)
	}
}

func (p *Pane) isWithinBounds(x, y int) bool {
	if x < p.screenXOffset || x >= p.screenXOffset+p.viewport.Width {
		return false
	}
	return y >= p.screenYOffset && y < p.screenYOffset+p.viewport.Height
}

// HandleMouse processes wheel scrolling and drag selection. The returned
// command, if any, reports the copy result.
func (p *Pane) HandleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		p.ScrollUp(1)
		return nil

	case msg.Button == tea.MouseButtonWheelDown:
		p.ScrollDown(1)
		return nil

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if !p.isWithinBounds(msg.X, msg.Y) {
			return nil
		}
		p.selection.Start(p.screenToContent(msg.X, msg.Y))
		p.refresh()
		return nil

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionMotion && p.selection.IsSelecting():
		if p.selection.Update(p.screenToContent(msg.X, msg.Y)) {
			p.refresh()
		}
		return nil

	case msg.Action == tea.MouseActionRelease && p.selection.IsSelecting():
		text := p.selection.Finalize()
		p.selection.Clear()
		p.refresh()
		if text == "" {
			return nil
		}
		return p.copy(text, "Copied selection")
	}
	return nil
}

// CopyText copies text through the pane's clipboard.
func (p *Pane) CopyText(text, success string) tea.Cmd {
	if text == "" {
		return nil
	}
	return p.copy(text, success)
}

func (p *Pane) copy(text, success string) tea.Cmd {
	if p.clipboard == nil {
		return nil
	}
	if err := p.clipboard.Copy(text); err != nil {
		if p.makeToast != nil {
			return p.makeToast("Failed to copy: "+err.Error(), true)
		}
		return nil
	}
	if p.makeToast != nil {
		return p.makeToast(success, false)
	}
	return nil
}

// screenToContent maps screen coordinates to a clamped content position.
func (p *Pane) screenToContent(screenX, screenY int) Point {
	relY := max(screenY-p.screenYOffset-p.contentStartY, 0)
	relX := max(screenX-p.screenXOffset-p.contentStartX, 0)

	plain := p.selection.PlainLines()
	if len(plain) == 0 {
		return Point{}
	}
	line := min(relY+p.viewport.YOffset, len(plain)-1)
	col := min(relX, uniseg.StringWidth(plain[line]))
	return Point{Line: line, Col: col}
}

// SelectionBounds returns the current selection, or nil, nil.
func (p *Pane) SelectionBounds() (*Point, *Point) {
	return p.selection.Bounds()
}

// View renders the visible rows with the scrollbar column. A zero-height
// pane renders nothing.
func (p *Pane) View() string {
	if p.viewport.Height == 0 || p.width == 0 {
		return ""
	}
	body := p.viewport.View()
	bar := RenderScrollbar(ScrollbarConfig{
		TotalLines:     p.TotalLines(),
		ViewportHeight: p.viewport.Height,
		ScrollOffset:   p.viewport.YOffset,
	})
	if bar == "" {
		bar = strings.TrimSuffix(strings.Repeat(" \n", p.viewport.Height), "\n")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, body, bar)
}

// ScrollbarVisible reports whether content overflows the pane.
func (p *Pane) ScrollbarVisible() bool {
	return p.viewport.Height > 0 && p.TotalLines() > p.viewport.Height
}

// Dirty reports whether the pane needs re-rendering.
func (p *Pane) Dirty() bool {
	return p.dirty
}

// ClearDirty resets the dirty flag.
func (p *Pane) ClearDirty() {
	p.dirty = false
}

func (p *Pane) ScrollUp(n int)   { p.viewport.ScrollUp(n) }
func (p *Pane) ScrollDown(n int) { p.viewport.ScrollDown(n) }
func (p *Pane) GotoTop()         { p.viewport.GotoTop() }
func (p *Pane) GotoBottom()      { p.viewport.GotoBottom() }

// AtBottom reports whether the last line is visible.
func (p *Pane) AtBottom() bool {
	return p.viewport.AtBottom()
}

// YOffset returns the index of the first visible line.
func (p *Pane) YOffset() int {
	return p.viewport.YOffset
}

// TotalLines returns the number of content lines.
func (p *Pane) TotalLines() int {
	return len(p.styled)
}

// Width returns the outer width including the scrollbar column.
func (p *Pane) Width() int {
	return p.width
}

// Height returns the visible height.
func (p *Pane) Height() int {
	return p.viewport.Height
}
