package mdview

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/markview/internal/keys"
)

// Init returns no command; the widget has no startup work.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles resize, scrolling and selection. A tea.WindowSizeMsg
// records the parent width and recomputes layout in one step.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetContainerWidth(msg.Width)
		m.RecomputeLayout()
		return m, nil

	case tea.MouseMsg:
		return m, m.pane.HandleMouse(msg)

	case tea.KeyMsg:
		m.handleKey(msg)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	page := max(m.pane.Height(), 1)
	switch {
	case key.Matches(msg, keys.View.Up):
		m.pane.ScrollUp(1)
	case key.Matches(msg, keys.View.Down):
		m.pane.ScrollDown(1)
	case key.Matches(msg, keys.View.PageUp):
		m.pane.ScrollUp(page)
	case key.Matches(msg, keys.View.PageDown):
		m.pane.ScrollDown(page)
	case key.Matches(msg, keys.View.HalfPageUp):
		m.pane.ScrollUp(max(page/2, 1))
	case key.Matches(msg, keys.View.HalfPageDown):
		m.pane.ScrollDown(max(page/2, 1))
	case key.Matches(msg, keys.View.Top):
		m.pane.GotoTop()
	case key.Matches(msg, keys.View.Bottom):
		m.pane.GotoBottom()
	}
}

// View renders the scroll container. It is empty until the first layout pass.
func (m *Model) View() string {
	if !m.memoValid {
		return ""
	}
	return m.pane.View()
}

// YOffset returns the first visible surface row.
func (m *Model) YOffset() int {
	return m.pane.YOffset()
}

// ScrollbarVisible reports whether the content overflows the scroll container.
func (m *Model) ScrollbarVisible() bool {
	return m.pane.ScrollbarVisible()
}

// ScrollPercent is how far the view is scrolled, from 0 to 100. Content that
// fits reports 100.
func (m *Model) ScrollPercent() int {
	maxOffset := m.pane.TotalLines() - m.pane.Height()
	if maxOffset <= 0 {
		return 100
	}
	return min(m.pane.YOffset()*100/maxOffset, 100)
}
