// Package layout sizes a markdown text view: it reconciles the container
// width, the wrapped height of the content and a maximum visible height into
// the scroll container and text surface dimensions.
package layout

import "github.com/zjrosen/markview/internal/markdown"

// Default paddings, in cells.
const (
	DefaultWidthPadding  = 12 // container width minus text surface width
	DefaultInnerPadding  = 6  // text surface width minus wrap width
	DefaultMaxViewHeight = 300
)

// Params are the fixed horizontal paddings.
type Params struct {
	WidthPadding int
	InnerPadding int
}

// DefaultParams returns the default paddings.
func DefaultParams() Params {
	return Params{WidthPadding: DefaultWidthPadding, InnerPadding: DefaultInnerPadding}
}

// State is one resolved layout. Every field is derived from the inputs; a
// State can be discarded and recomputed at any time.
type State struct {
	ContainerWidth      int
	MaxViewHeight       int
	IntrinsicTextHeight int

	ScrollHeight int // min(IntrinsicTextHeight, MaxViewHeight)
	TextWidth    int // max(ContainerWidth-WidthPadding, 0)
	TextHeight   int // IntrinsicTextHeight
	WrapWidth    int // max(TextWidth-InnerPadding, 0)
}

// Scrollable reports whether content is taller than the scroll container.
func (s State) Scrollable() bool {
	return s.IntrinsicTextHeight > s.ScrollHeight
}

// TextWidthFor is the text surface width for a container width.
func TextWidthFor(containerWidth int, p Params) int {
	return max(containerWidth-p.WidthPadding, 0)
}

// WrapWidthFor is the width content is wrapped and measured at.
func WrapWidthFor(containerWidth int, p Params) int {
	return max(TextWidthFor(containerWidth, p)-p.InnerPadding, 0)
}

// Resolve derives the scroll and text dimensions from a measured height.
// Negative inputs are clamped to zero.
func Resolve(intrinsic, containerWidth, maxViewHeight int, p Params) State {
	intrinsic = max(intrinsic, 0)
	containerWidth = max(containerWidth, 0)
	maxViewHeight = max(maxViewHeight, 0)

	return State{
		ContainerWidth:      containerWidth,
		MaxViewHeight:       maxViewHeight,
		IntrinsicTextHeight: intrinsic,
		ScrollHeight:        min(intrinsic, maxViewHeight),
		TextWidth:           TextWidthFor(containerWidth, p),
		TextHeight:          intrinsic,
		WrapWidth:           WrapWidthFor(containerWidth, p),
	}
}

// Compute measures doc at the wrap width and resolves the layout.
func Compute(doc markdown.Document, m Measurer, containerWidth, maxViewHeight int, p Params) State {
	intrinsic := m.Measure(doc, WrapWidthFor(max(containerWidth, 0), p))
	return Resolve(intrinsic, containerWidth, maxViewHeight, p)
}
