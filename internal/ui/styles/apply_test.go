package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func resetTheme(t *testing.T) {
	label, thumb, sel := LabelColor, ScrollbarThumbColor, SelectionBackgroundColor
	t.Cleanup(func() {
		LabelColor, ScrollbarThumbColor, SelectionBackgroundColor = label, thumb, sel
		rebuildStyles()
	})
}

func TestIsValidHexColor(t *testing.T) {
	valid := []string{"#FFF", "#ffffff", "#10B981"}
	invalid := []string{"", "FFF", "#FFFF", "#GGGGGG", "red"}

	for _, c := range valid {
		require.True(t, IsValidHexColor(c), c)
	}
	for _, c := range invalid {
		require.False(t, IsValidHexColor(c), c)
	}
}

func TestApplyTheme_Overrides(t *testing.T) {
	resetTheme(t)

	err := ApplyTheme(ThemeConfig{LabelColor: "#112233", SelectionColor: "#445566"})
	require.NoError(t, err)

	require.Equal(t, lipgloss.Color("#112233"), LabelColor)
	require.Equal(t, lipgloss.AdaptiveColor{Light: "#445566", Dark: "#445566"}, SelectionBackgroundColor)
	require.Equal(t, lipgloss.AdaptiveColor{Light: "#445566", Dark: "#445566"}, SelectionStyle.GetBackground())
}

func TestApplyTheme_InvalidLeavesColorsUntouched(t *testing.T) {
	resetTheme(t)
	before := LabelColor

	err := ApplyTheme(ThemeConfig{LabelColor: "#123456", ScrollbarColor: "grey"})
	require.ErrorContains(t, err, "scrollbar_color")
	require.Equal(t, before, LabelColor)
}

func TestApplyTheme_EmptyKeepsDefaults(t *testing.T) {
	resetTheme(t)

	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, lipgloss.NoColor{}, LabelColor)
}
