// Package toaster shows short-lived notifications over the view, such as the
// result of a copy.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/markview/internal/ui/overlay"
	"github.com/zjrosen/markview/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up.
const DefaultDuration = 2 * time.Second

// Style picks the toast border color and glyph.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
)

// ShowMsg asks the host to display a toast.
type ShowMsg struct {
	Message string
	Style   Style
}

// DismissMsg hides the toast with the matching sequence number.
type DismissMsg struct {
	seq int
}

// Model is the toast state. The zero value is hidden.
type Model struct {
	message string
	style   Style
	seq     int
}

// New returns a hidden toaster.
func New() Model {
	return Model{}
}

// Notify returns a command that emits a ShowMsg. Its signature matches the
// copy callback of the text view.
func Notify(message string, isError bool) tea.Cmd {
	style := StyleSuccess
	if isError {
		style = StyleError
	}
	return func() tea.Msg {
		return ShowMsg{Message: message, Style: style}
	}
}

// Show displays message and schedules its dismissal after d. A later Show
// outlives the dismissal scheduled by an earlier one.
func (m Model) Show(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.style = style
	m.seq++
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}

// Update handles ShowMsg and DismissMsg.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ShowMsg:
		return m.Show(msg.Message, msg.Style, DefaultDuration)
	case DismissMsg:
		if msg.seq == m.seq {
			m.message = ""
		}
	}
	return m, nil
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.message != ""
}

// Message returns the current toast text.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if !m.Visible() {
		return ""
	}
	box := lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	switch m.style {
	case StyleError:
		return box.BorderForeground(styles.ToastErrorColor).Render("✗ " + m.message)
	case StyleInfo:
		return box.BorderForeground(styles.ToastInfoColor).Render("i " + m.message)
	default:
		return box.BorderForeground(styles.ToastSuccessColor).Render("✓ " + m.message)
	}
}

// Overlay draws the toast near the bottom of bg.
func (m Model) Overlay(bg string, width, height int) string {
	if !m.Visible() {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    width,
		Height:   height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}
