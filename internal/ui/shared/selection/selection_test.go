package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New()
	require.NotNil(t, s)
	assert.False(t, s.IsSelecting())
	assert.False(t, s.HasSelection())
}

func TestSelection_StartAndUpdate(t *testing.T) {
	s := New()

	s.Start(Point{Line: 0, Col: 5})
	assert.True(t, s.IsSelecting())
	assert.False(t, s.HasSelection())

	assert.True(t, s.Update(Point{Line: 0, Col: 10}))
	assert.True(t, s.HasSelection())
	assert.False(t, s.Update(Point{Line: 0, Col: 10}), "same position is not a change")
}

func TestSelection_UpdateWithoutStart(t *testing.T) {
	s := New()
	assert.False(t, s.Update(Point{Line: 1, Col: 1}))
	assert.False(t, s.HasSelection())
}

func TestSelection_Finalize(t *testing.T) {
	s := New()
	s.SetPlainLines([]string{"Hello World"})

	s.Start(Point{Line: 0, Col: 0})
	s.Update(Point{Line: 0, Col: 5})

	assert.Equal(t, "Hello", s.Finalize())
	assert.False(t, s.IsSelecting())
}

func TestSelection_MultiLine(t *testing.T) {
	s := New()
	s.SetPlainLines([]string{"First line", "Second line", "Third line"})

	s.Start(Point{Line: 0, Col: 6})
	s.Update(Point{Line: 2, Col: 5})

	assert.Equal(t, "line\nSecond line\nThird", s.SelectedText())
}

func TestSelection_BackwardsDragNormalizes(t *testing.T) {
	s := New()
	s.SetPlainLines([]string{"abcdef"})

	s.Start(Point{Line: 0, Col: 4})
	s.Update(Point{Line: 0, Col: 1})

	start, end := s.Normalized()
	assert.Equal(t, Point{Line: 0, Col: 1}, start)
	assert.Equal(t, Point{Line: 0, Col: 4}, end)
	assert.Equal(t, "bcd", s.SelectedText())
}

func TestSelection_WideCharacters(t *testing.T) {
	s := New()
	s.SetPlainLines([]string{"日本語テキスト"})

	// Columns 2..6 cover the second and third runes.
	s.Start(Point{Line: 0, Col: 2})
	s.Update(Point{Line: 0, Col: 6})

	assert.Equal(t, "本語", s.SelectedText())
}

func TestSelection_EndPastContentClamps(t *testing.T) {
	s := New()
	s.SetPlainLines([]string{"one", "two"})

	s.Start(Point{Line: 0, Col: 1})
	s.Update(Point{Line: 9, Col: 0})

	assert.Equal(t, "ne\ntwo", s.SelectedText())
}

func TestSelection_SelectAll(t *testing.T) {
	s := New()
	s.SetPlainLines([]string{"# Title", "", "body"})

	s.SelectAll()

	assert.Equal(t, "# Title\n\nbody", s.SelectedText())
	assert.False(t, s.IsSelecting())
}

func TestSelection_Clear(t *testing.T) {
	s := New()
	s.SetPlainLines([]string{"abc"})
	s.Start(Point{})
	s.Update(Point{Col: 2})
	s.ClearDirty()

	s.Clear()

	assert.False(t, s.HasSelection())
	assert.True(t, s.Dirty())
	start, end := s.Bounds()
	assert.Nil(t, start)
	assert.Nil(t, end)
}

func TestSelection_LineSpan(t *testing.T) {
	s := New()
	s.SetPlainLines([]string{"alpha", "beta", "gamma"})
	s.Start(Point{Line: 0, Col: 2})
	s.Update(Point{Line: 2, Col: 3})

	start, end, ok := s.LineSpan(0)
	require.True(t, ok)
	assert.Equal(t, 2, start)
	assert.Equal(t, 5, end)

	start, end, ok = s.LineSpan(1)
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 4, end)

	start, end, ok = s.LineSpan(2)
	require.True(t, ok)
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	_, _, ok = s.LineSpan(3)
	assert.False(t, ok)
}

func TestSliceHelpers(t *testing.T) {
	assert.Equal(t, "cd", sliceByDisplayCols("abcdef", 2, 4))
	assert.Equal(t, "", sliceByDisplayCols("abcdef", 4, 4))
	assert.Equal(t, "def", sliceFromDisplayCol("abcdef", 3))
	assert.Equal(t, "", sliceFromDisplayCol("abc", 5))
	assert.Equal(t, "ab", sliceToDisplayCol("abcdef", 2))
	assert.Equal(t, "日", sliceToDisplayCol("日本", 3), "wide rune does not fit in the last column")
}
