package selection

import (
	"strings"

	"github.com/zjrosen/markview/internal/ui/styles"
)

const scrollbarThumbChar = "▐"

// ScrollbarConfig describes the content and viewport a scrollbar tracks.
type ScrollbarConfig struct {
	TotalLines     int
	ViewportHeight int
	ScrollOffset   int
	ThumbChar      string
}

// thumbBounds returns the first row and height of the thumb.
// height = max(1, vh*vh/total); start is proportional to the scroll offset.
func thumbBounds(cfg ScrollbarConfig) (start, height int) {
	if cfg.TotalLines <= 0 || cfg.ViewportHeight <= 0 {
		return 0, 0
	}
	if cfg.TotalLines <= cfg.ViewportHeight {
		return 0, cfg.ViewportHeight
	}

	height = max(1, cfg.ViewportHeight*cfg.ViewportHeight/cfg.TotalLines)
	maxOffset := cfg.TotalLines - cfg.ViewportHeight
	track := cfg.ViewportHeight - height
	if track <= 0 {
		return 0, height
	}

	offset := max(0, min(cfg.ScrollOffset, maxOffset))
	start = track * offset / maxOffset
	return max(0, min(start, cfg.ViewportHeight-height)), height
}

// RenderScrollbar renders a one-column scrollbar, ViewportHeight rows tall.
// The track is left blank. Returns "" when the content fits, so the bar
// hides itself.
func RenderScrollbar(cfg ScrollbarConfig) string {
	if cfg.ViewportHeight <= 0 || cfg.TotalLines <= cfg.ViewportHeight {
		return ""
	}

	thumb := cfg.ThumbChar
	if thumb == "" {
		thumb = scrollbarThumbChar
	}
	start, height := thumbBounds(cfg)

	rows := make([]string, cfg.ViewportHeight)
	for row := range rows {
		if row >= start && row < start+height {
			rows[row] = styles.ScrollThumbStyle.Render(thumb)
		} else {
			rows[row] = " "
		}
	}
	return strings.Join(rows, "\n")
}
