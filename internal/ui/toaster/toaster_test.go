package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Hidden(t *testing.T) {
	m := New()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m, cmd := New().Show("Copied document", StyleSuccess, time.Millisecond)

	require.NotNil(t, cmd)
	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "✓ Copied document")
}

func TestDismiss_MatchingSequence(t *testing.T) {
	m, cmd := New().Show("hello", StyleSuccess, time.Millisecond)

	m, _ = m.Update(cmd())

	assert.False(t, m.Visible())
}

func TestDismiss_StaleSequenceIgnored(t *testing.T) {
	m, first := New().Show("first", StyleSuccess, time.Millisecond)
	m, _ = m.Show("second", StyleInfo, time.Millisecond)

	m, _ = m.Update(first())

	assert.True(t, m.Visible())
	assert.Equal(t, "second", m.Message())
}

func TestNotify(t *testing.T) {
	msg := Notify("Copy failed: boom", true)()

	show, ok := msg.(ShowMsg)
	require.True(t, ok)
	assert.Equal(t, StyleError, show.Style)

	m, cmd := New().Update(show)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "✗ Copy failed: boom")
}

func TestView_Styles(t *testing.T) {
	tests := []struct {
		style Style
		glyph string
	}{
		{StyleSuccess, "✓"},
		{StyleError, "✗"},
		{StyleInfo, "i "},
	}
	for _, tt := range tests {
		m, _ := New().Show("msg", tt.style, time.Second)
		assert.Contains(t, m.View(), tt.glyph)
	}
}

func TestOverlay(t *testing.T) {
	bg := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 30)+"\n", 6), "\n")

	hidden := New().Overlay(bg, 30, 6)
	assert.Equal(t, bg, hidden)

	m, _ := New().Show("done", StyleSuccess, time.Second)
	rows := strings.Split(m.Overlay(bg, 30, 6), "\n")
	require.Len(t, rows, 6)
	assert.Contains(t, rows[3], "done", "box sits one row above the bottom")
	assert.Equal(t, strings.Repeat(".", 30), rows[5])
}
