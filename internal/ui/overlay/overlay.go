// Package overlay draws one block of text on top of another without
// clearing the screen underneath.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position anchors the foreground block.
type Position int

const (
	// Center places the block in the middle of the screen.
	Center Position = iota
	// Bottom centers the block horizontally, PadY rows above the last row.
	Bottom
)

// Config describes the screen the block is placed on.
type Config struct {
	Width    int
	Height   int
	Position Position
	PadY     int
}

// Place splices fg into bg. Both may carry ANSI styling. bg is padded with
// blank rows to cfg.Height; rows of fg past the bottom edge are dropped.
func Place(cfg Config, fg, bg string) string {
	fgRows := strings.Split(fg, "\n")
	bgRows := strings.Split(bg, "\n")
	for len(bgRows) < cfg.Height {
		bgRows = append(bgRows, strings.Repeat(" ", cfg.Width))
	}

	x, y := origin(cfg, lipgloss.Width(fg), len(fgRows))
	for i, row := range fgRows {
		if y+i >= len(bgRows) {
			break
		}
		bgRows[y+i] = splice(bgRows[y+i], row, x)
	}
	return strings.Join(bgRows, "\n")
}

// splice replaces the cells of line starting at column x with fg.
func splice(line, fg string, x int) string {
	left := ansi.Truncate(line, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(line) {
		right = ansi.TruncateLeft(line, end, "")
	}
	return left + fg + right
}

func origin(cfg Config, w, h int) (x, y int) {
	x = (cfg.Width - w) / 2
	switch cfg.Position {
	case Bottom:
		y = cfg.Height - h - cfg.PadY
	default:
		y = (cfg.Height - h) / 2
	}
	return max(x, 0), max(y, 0)
}
