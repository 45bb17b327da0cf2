package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ListsBindings(t *testing.T) {
	out, err := Render(60, "notty")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Keys")
	assert.Contains(t, plain, "Scrolling")
	assert.Contains(t, plain, "copy document")
	assert.Contains(t, plain, "toggle background")
}

func TestRender_UnknownStyle(t *testing.T) {
	_, err := Render(60, "no-such-style")
	require.Error(t, err)
}

func TestModel_HiddenByDefault(t *testing.T) {
	m := New("notty").SetSize(80, 40)

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
	assert.Equal(t, "bg", m.Overlay("bg"))
}

func TestModel_Toggle(t *testing.T) {
	m := New("notty").SetSize(80, 40).Toggle()
	require.True(t, m.Visible())

	view := m.View()
	assert.Contains(t, ansi.Strip(view), "Help")
	assert.LessOrEqual(t, lipgloss.Width(view), maxBoxWidth)
	require.NoError(t, m.Err())

	m = m.Toggle()
	assert.False(t, m.Visible())
}

func TestModel_OverlayKeepsScreenSize(t *testing.T) {
	m := New("notty").SetSize(70, 60).Toggle()
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 70)+"\n", 60), "\n")

	out := m.Overlay(bg)

	rows := strings.Split(out, "\n")
	require.Len(t, rows, 60)
	assert.Contains(t, ansi.Strip(out), "copy document")
}

func TestModel_RenderErrorShownInBox(t *testing.T) {
	m := New("no-such-style").SetSize(80, 40).Toggle()

	view := m.View()

	require.Error(t, m.Err())
	assert.Contains(t, ansi.Strip(view), "help renderer")
}

func TestModel_BodyCachedPerWidth(t *testing.T) {
	m := New("notty").SetSize(80, 40).Toggle()
	_ = m.View()
	first := m.body

	_ = m.View()
	assert.Equal(t, first, m.body)

	m = m.SetSize(40, 40)
	_ = m.View()
	assert.Equal(t, 34, m.bodyWidth)
}
