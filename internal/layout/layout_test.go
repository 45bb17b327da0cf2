package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/markview/internal/cachemanager"
	"github.com/zjrosen/markview/internal/markdown"
)

func plainDoc(text string) markdown.Document {
	return markdown.NewDocument([]markdown.Run{{Text: text, Kind: markdown.KindBody}})
}

// ===========================================================================
// Resolve
// ===========================================================================

func TestResolve_TextWidthAt300(t *testing.T) {
	st := Resolve(40, 300, 300, DefaultParams())

	require.Equal(t, 288, st.TextWidth, "300 - 12")
	require.Equal(t, 282, st.WrapWidth, "288 - 6")
	require.Equal(t, 40, st.ScrollHeight)
	require.False(t, st.Scrollable())
}

func TestResolve_TallContentIsCapped(t *testing.T) {
	st := Resolve(500, 300, 300, DefaultParams())

	require.Equal(t, 300, st.ScrollHeight, "scroll container capped at max height")
	require.Equal(t, 500, st.TextHeight, "text surface keeps full height")
	require.True(t, st.Scrollable())
}

func TestResolve_NarrowContainerFloorsAtZero(t *testing.T) {
	st := Resolve(3, 5, 300, DefaultParams())

	require.Equal(t, 0, st.TextWidth)
	require.Equal(t, 0, st.WrapWidth)
}

func TestResolve_ZeroMaxHeightCollapsesScroll(t *testing.T) {
	st := Resolve(42, 80, 0, DefaultParams())

	require.Equal(t, 0, st.ScrollHeight)
	require.Equal(t, 42, st.TextHeight)
	require.True(t, st.Scrollable())
}

func TestResolve_NegativeInputsClamp(t *testing.T) {
	st := Resolve(-3, -10, -1, DefaultParams())

	require.Equal(t, State{}, st)
}

func TestProperty_ScrollHeightIsMin(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		intrinsic := rapid.IntRange(0, 5000).Draw(rt, "intrinsic")
		maxHeight := rapid.IntRange(0, 5000).Draw(rt, "maxHeight")
		width := rapid.IntRange(0, 500).Draw(rt, "width")

		st := Resolve(intrinsic, width, maxHeight, DefaultParams())

		require.Equal(rt, min(intrinsic, maxHeight), st.ScrollHeight)
		require.Equal(rt, intrinsic, st.TextHeight)
	})
}

func TestProperty_TextWidthNeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		width := rapid.IntRange(-50, 1000).Draw(rt, "width")
		p := Params{
			WidthPadding: rapid.IntRange(0, 40).Draw(rt, "widthPadding"),
			InnerPadding: rapid.IntRange(0, 20).Draw(rt, "innerPadding"),
		}

		st := Resolve(1, width, 10, p)

		require.Equal(rt, max(max(width, 0)-p.WidthPadding, 0), st.TextWidth)
		require.GreaterOrEqual(rt, st.TextWidth, 0)
		require.GreaterOrEqual(rt, st.WrapWidth, 0)
		require.LessOrEqual(rt, st.WrapWidth, st.TextWidth)
	})
}

// ===========================================================================
// Compute + measurement
// ===========================================================================

func TestCompute_MeasuresAtWrapWidth(t *testing.T) {
	// 30 cells at wrap width 10 (container 28 - 12 - 6) => 3 rows.
	doc := plainDoc("abcdefghijklmnopqrstuvwxyz0123")

	st := Compute(doc, CharWrapMeasurer{}, 28, 300, DefaultParams())

	require.Equal(t, 10, st.WrapWidth)
	require.Equal(t, 3, st.IntrinsicTextHeight)
	require.Equal(t, 3, st.ScrollHeight)
}

func TestCompute_Idempotent(t *testing.T) {
	doc := markdown.NewTranslator().Translate("# Title\nBody text that wraps a little", markdown.Plain)

	a := Compute(doc, CharWrapMeasurer{}, 40, 5, DefaultParams())
	b := Compute(doc, CharWrapMeasurer{}, 40, 5, DefaultParams())
	require.Equal(t, a, b)
}

func TestCharWrapMeasurer(t *testing.T) {
	m := CharWrapMeasurer{}

	require.Equal(t, 0, m.Measure(markdown.Document{}, 10), "empty document has no rows")
	require.Equal(t, 1, m.Measure(plainDoc("short"), 10))
	require.Equal(t, 1, m.Measure(plainDoc("0123456789"), 10), "exact fit")
	require.Equal(t, 2, m.Measure(plainDoc("0123456789a"), 10))
	require.Equal(t, 5, m.Measure(plainDoc("abcde"), 0), "zero width measures as one column")
}

func TestCharWrapMeasurer_BreaksInsideWords(t *testing.T) {
	// Word wrap would need three rows ("aa", "bbbb", "cc"); char wrap fills rows.
	require.Equal(t, 2, CharWrapMeasurer{}.Measure(plainDoc("aa bbbb cc"), 5))
}

func TestCharWrapMeasurer_CountsBlankLines(t *testing.T) {
	doc := markdown.NewTranslator().Translate("one\n\ntwo", markdown.Plain)
	require.Equal(t, 3, CharWrapMeasurer{}.Measure(doc, 20))
}

func TestCharWrapMeasurer_WideRunes(t *testing.T) {
	// Each CJK rune is two cells wide.
	require.Equal(t, 2, CharWrapMeasurer{}.Measure(plainDoc("日本語"), 4))
}

type countingMeasurer struct{ calls int }

func (c *countingMeasurer) Measure(doc markdown.Document, width int) int {
	c.calls++
	return CharWrapMeasurer{}.Measure(doc, width)
}

func TestCachedMeasurer_MemoizesByContentAndWidth(t *testing.T) {
	inner := &countingMeasurer{}
	cache := cachemanager.NewInMemoryCacheManager[int]("measure", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	m := NewCachedMeasurer(inner, cache)

	doc := plainDoc("hello world")
	require.Equal(t, 2, m.Measure(doc, 6))
	require.Equal(t, 2, m.Measure(doc, 6))
	require.Equal(t, 1, inner.calls)

	require.Equal(t, 1, m.Measure(doc, 20))
	require.Equal(t, 2, inner.calls, "different width is a different key")

	require.Equal(t, 1, m.Measure(plainDoc("other"), 20))
	require.Equal(t, 3, inner.calls, "different content is a different key")
}

// ===========================================================================
// Constraints
// ===========================================================================

func TestConstraintSet_ReplaceDeactivatesPrevious(t *testing.T) {
	s := NewConstraintSet()

	first, prev := s.Replace(ScrollHeight, 10)
	require.Nil(t, prev)
	require.True(t, first.Active())

	second, prev := s.Replace(ScrollHeight, 20)
	require.Same(t, first, prev)
	require.False(t, first.Active(), "old constraint deactivated")
	require.True(t, second.Active())

	v, ok := s.Value(ScrollHeight)
	require.True(t, ok)
	require.Equal(t, 20, v)
}

func TestConstraintSet_OnePerAttribute(t *testing.T) {
	s := NewConstraintSet()
	for i := 0; i < 5; i++ {
		s.Replace(ScrollHeight, i)
		s.Replace(TextWidth, i*2)
		s.Replace(TextHeight, i*3)
	}

	require.Equal(t, 3, s.ActiveCount())
	require.Equal(t, 15, s.Replacements())

	_, ok := NewConstraintSet().Value(TextWidth)
	require.False(t, ok)
}

func TestAttributeString(t *testing.T) {
	require.Equal(t, "scroll_height", ScrollHeight.String())
	require.Equal(t, "text_width", TextWidth.String())
	require.Equal(t, "text_height", TextHeight.String())
	require.Equal(t, "unknown", Attribute(9).String())
}

func TestCharWrapRows(t *testing.T) {
	require.Equal(t, 1, CharWrapRows("", 5))
	require.Equal(t, 2, CharWrapRows("aa bbbb cc", 5))
	require.Equal(t, 3, CharWrapRows("abc", 0), "zero width counts as one column")
}
