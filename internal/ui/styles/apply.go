package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
// Empty fields keep the built-in colors.
type ThemeConfig struct {
	LabelColor     string
	ScrollbarColor string
	SelectionColor string
}

// ApplyTheme overrides colors and rebuilds the derived styles. On error no
// color is changed.
func ApplyTheme(cfg ThemeConfig) error {
	for name, value := range map[string]string{
		"label_color":     cfg.LabelColor,
		"scrollbar_color": cfg.ScrollbarColor,
		"selection_color": cfg.SelectionColor,
	} {
		if value != "" && !IsValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", name, value)
		}
	}

	if cfg.LabelColor != "" {
		LabelColor = lipgloss.Color(cfg.LabelColor)
	}
	if cfg.ScrollbarColor != "" {
		ScrollbarThumbColor = lipgloss.AdaptiveColor{Light: cfg.ScrollbarColor, Dark: cfg.ScrollbarColor}
	}
	if cfg.SelectionColor != "" {
		SelectionBackgroundColor = lipgloss.AdaptiveColor{Light: cfg.SelectionColor, Dark: cfg.SelectionColor}
	}
	rebuildStyles()
	return nil
}

// IsValidHexColor accepts #RGB and #RRGGBB.
func IsValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
