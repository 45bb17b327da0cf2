// Package help renders the key reference overlay.
package help

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/markview/internal/keys"
	"github.com/zjrosen/markview/internal/ui/overlay"
	"github.com/zjrosen/markview/internal/ui/styles"
)

const maxBoxWidth = 64

// noMarginStyle strips glamour's document margins so the box border hugs the text.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Render turns the key reference into styled terminal text wrapped at width.
// style is a glamour style name; empty selects "dark". A fixed style avoids
// the terminal background query WithAutoStyle would send.
func Render(width int, style string) (string, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("help renderer: %w", err)
	}
	out, err := r.Render(keys.HelpMarkdown())
	if err != nil {
		return "", fmt.Errorf("render help: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

// Model is the help overlay. The zero value is hidden.
type Model struct {
	style   string
	visible bool
	width   int
	height  int

	body      string
	bodyWidth int
	err       error
}

// New returns a hidden overlay using the glamour style name.
func New(style string) Model {
	return Model{style: style}
}

// SetSize records the screen size.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	if m.visible {
		m = m.prepare()
	}
	return m
}

// Toggle shows or hides the overlay.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m = m.prepare()
	}
	return m
}

// Hide dismisses the overlay.
func (m Model) Hide() Model {
	m.visible = false
	return m
}

// Visible reports whether the overlay is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Err returns the last render error, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) boxWidth() int {
	return max(min(m.width-4, maxBoxWidth), 10)
}

// prepare renders the body for the current width. Rendering is skipped while
// the width is unchanged.
func (m Model) prepare() Model {
	w := m.boxWidth() - 2
	if m.body != "" && m.bodyWidth == w {
		return m
	}
	body, err := Render(w, m.style)
	if err != nil {
		m.err = err
		body = styles.ErrorStyle.Render(err.Error())
	} else {
		m.err = nil
	}
	m.body = body
	m.bodyWidth = w
	return m
}

// View renders the boxed key reference, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	m = m.prepare()
	title := styles.OverlayTitleStyle.Render("Help")
	return styles.OverlayBoxStyle.
		Width(m.boxWidth() - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, "", m.body))
}

// Overlay centers the help box over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{Width: m.width, Height: m.height}, m.View(), bg)
}
