// Package mdview is the Markdown text view widget. It owns the translated
// document, the container width policy, the maximum visible height and the
// color mode, and sizes its scroll container and text surface on demand.
//
// Setters only record state. Nothing is measured or rendered until the host
// calls RecomputeLayout, directly or by forwarding a tea.WindowSizeMsg.
package mdview

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/markview/internal/cachemanager"
	"github.com/zjrosen/markview/internal/layout"
	"github.com/zjrosen/markview/internal/localize"
	"github.com/zjrosen/markview/internal/log"
	"github.com/zjrosen/markview/internal/markdown"
	"github.com/zjrosen/markview/internal/ui/shared/selection"
)

// Options configures a Model.
type Options struct {
	// Text is the Markdown source.
	Text string

	// DrawsBackground selects Filled mode; otherwise Plain.
	DrawsBackground bool

	// MaxViewHeight caps the scroll container. Zero selects
	// layout.DefaultMaxViewHeight; use SetMaxViewHeight(0) to collapse it.
	MaxViewHeight int

	Alignment Alignment

	// ContainerWidth fixes the width. Zero means auto: the width comes from
	// the parent on every layout pass.
	ContainerWidth int

	// WidthPadding and InnerPadding override the layout paddings when > 0.
	WidthPadding int
	InnerPadding int

	// LabelColor is the Plain-mode text color. Defaults to the terminal's.
	LabelColor lipgloss.TerminalColor

	Localizer localize.Localizer
	Clipboard selection.Clipboard
	MakeToast selection.ToastFunc
	Measurer  layout.Measurer
	Tracer    trace.Tracer
}

// Model is the text view widget.
type Model struct {
	id         string
	translator *markdown.Translator
	localizer  localize.Localizer
	measurer   layout.Measurer
	tracer     trace.Tracer
	params     layout.Params
	alignment  Alignment

	text          string
	doc           markdown.Document
	revision      uint64
	hasContent    bool
	mode          markdown.ColorMode
	colorOverride lipgloss.TerminalColor

	explicitWidth int
	parentWidth   int
	maxHeight     int

	constraints *layout.ConstraintSet
	state       layout.State
	memo        memoKey
	memoValid   bool
	pending     bool

	pane *selection.Pane
}

// memoKey is every input a layout pass depends on.
type memoKey struct {
	revision  uint64
	width     int
	maxHeight int
	mode      markdown.ColorMode
}

var sharedMeasurer = sync.OnceValue(func() layout.Measurer {
	cache := cachemanager.NewInMemoryCacheManager[int]("measure",
		cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	return layout.NewCachedMeasurer(layout.CharWrapMeasurer{}, cache)
})

// New creates a widget and translates opts.Text. An empty Text leaves the
// widget without content until SetContent or SetText. Layout is pending
// until RecomputeLayout.
func New(opts Options) *Model {
	params := layout.DefaultParams()
	if opts.WidthPadding > 0 {
		params.WidthPadding = opts.WidthPadding
	}
	if opts.InnerPadding > 0 {
		params.InnerPadding = opts.InnerPadding
	}
	maxHeight := opts.MaxViewHeight
	if maxHeight <= 0 {
		maxHeight = layout.DefaultMaxViewHeight
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("mdview")
	}
	localizer := opts.Localizer
	if localizer == nil {
		localizer = localize.English()
	}
	measurer := opts.Measurer
	if measurer == nil {
		measurer = sharedMeasurer()
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = selection.SystemClipboard{}
	}

	m := &Model{
		id: uuid.NewString(),
		translator: markdown.NewTranslator(
			markdown.WithLabelColor(opts.LabelColor),
			markdown.WithTracer(tracer),
		),
		localizer:     localizer,
		measurer:      measurer,
		tracer:        tracer,
		params:        params,
		alignment:     opts.Alignment,
		explicitWidth: max(opts.ContainerWidth, 0),
		maxHeight:     maxHeight,
		mode:          markdown.ModeFor(opts.DrawsBackground),
		constraints:   layout.NewConstraintSet(),
		pane:          selection.NewPane(selection.PaneConfig{Clipboard: clip, MakeToast: opts.MakeToast}),
	}
	if opts.Text != "" {
		m.SetContent(opts.Text, m.mode)
	}
	return m
}

// ID identifies the widget in log lines and spans.
func (m *Model) ID() string {
	return m.id
}

// SetContent translates text in mode and replaces the document.
func (m *Model) SetContent(text string, mode markdown.ColorMode) {
	m.mode = mode
	m.colorOverride = nil
	m.setText(text)
}

// SetText re-translates text in the current mode, keeping any color override.
func (m *Model) SetText(text string) {
	m.setText(text)
}

func (m *Model) setText(text string) {
	m.text = text
	doc := m.translator.Translate(text, m.mode)
	if m.colorOverride != nil {
		doc = doc.WithColor(m.colorOverride)
	}
	m.hasContent = true
	m.replaceDocument(doc)
	log.Debug(log.CatRender, "content set", "id", m.id, "bytes", len(text), "runs", doc.Len(), "mode", m.mode)
}

func (m *Model) replaceDocument(doc markdown.Document) {
	m.doc = doc
	m.revision++
	m.pending = true
}

// SetContainerWidth records the parent's width. An explicit ContainerWidth
// option takes precedence.
func (m *Model) SetContainerWidth(w int) {
	w = max(w, 0)
	if w != m.parentWidth {
		m.parentWidth = w
		m.pending = true
	}
}

// SetMaxViewHeight sets the scroll container cap. Negative values clamp to 0.
func (m *Model) SetMaxViewHeight(h int) {
	h = max(h, 0)
	if h != m.maxHeight {
		m.maxHeight = h
		m.pending = true
	}
}

// SetScreenOffset positions the widget on screen for mouse selection.
func (m *Model) SetScreenOffset(x, y int) {
	m.pane.SetScreenOffset(x, y)
}

// ContainerWidth is the width the next layout pass will use.
func (m *Model) ContainerWidth() int {
	if m.explicitWidth > 0 {
		return m.explicitWidth
	}
	return m.parentWidth
}

// MaxViewHeight returns the scroll container cap.
func (m *Model) MaxViewHeight() int {
	return m.maxHeight
}

// RecomputeLayout measures the document, resolves the layout and applies it
// to the scroll container and text surface. It returns false, and does
// nothing, if content was never set. Repeating a call with unchanged inputs
// returns the previous State without touching the constraints.
func (m *Model) RecomputeLayout() (layout.State, bool) {
	if !m.hasContent {
		log.Debug(log.CatLayout, "recompute skipped: no content", "id", m.id)
		return layout.State{}, false
	}

	key := memoKey{revision: m.revision, width: m.ContainerWidth(), maxHeight: m.maxHeight, mode: m.mode}
	if m.memoValid && key == m.memo {
		m.pending = false
		return m.state, true
	}

	_, span := m.tracer.Start(context.Background(), "layout.recompute",
		trace.WithAttributes(
			attribute.String("widget.id", m.id),
			attribute.Int("layout.container_width", key.width),
			attribute.Int("layout.max_height", key.maxHeight),
		))
	defer span.End()

	st := layout.Compute(m.doc, m.measurer, key.width, key.maxHeight, m.params)
	m.apply(st)

	m.state = st
	m.memo = key
	m.memoValid = true
	m.pending = false

	span.SetAttributes(
		attribute.Int("layout.intrinsic_height", st.IntrinsicTextHeight),
		attribute.Int("layout.scroll_height", st.ScrollHeight),
	)
	log.Debug(log.CatLayout, "recomputed",
		"id", m.id,
		"width", st.ContainerWidth,
		"text_width", st.TextWidth,
		"intrinsic", st.IntrinsicTextHeight,
		"scroll_height", st.ScrollHeight)
	return st, true
}

// apply replaces the three size constraints and sizes the scroll container
// and text surface from them.
func (m *Model) apply(st layout.State) {
	m.constraints.Replace(layout.ScrollHeight, st.ScrollHeight)
	m.constraints.Replace(layout.TextWidth, st.TextWidth)
	m.constraints.Replace(layout.TextHeight, st.TextHeight)

	scrollHeight, _ := m.constraints.Value(layout.ScrollHeight)
	m.pane.SetSize(st.ContainerWidth, scrollHeight)

	surf := renderSurface(m.doc, st, m.mode, m.alignment, m.params)
	m.pane.SetContent(surf.String(), surf.plain)
}

// Layout returns the last computed State and whether one exists.
func (m *Model) Layout() (layout.State, bool) {
	return m.state, m.memoValid
}

// Pending reports whether a setter has run since the last layout pass.
func (m *Model) Pending() bool {
	return m.pending
}

// Constraints exposes the live size constraints.
func (m *Model) Constraints() *layout.ConstraintSet {
	return m.constraints
}

// Document returns the current translated document.
func (m *Model) Document() markdown.Document {
	return m.doc
}

// Text returns the current Markdown source.
func (m *Model) Text() string {
	return m.text
}

// AccessibilityLabel is the localized label for assistive technology.
func (m *Model) AccessibilityLabel() string {
	return m.localizer.Lookup(localize.KeyMarkdownTextView)
}

// CopyAll copies the document's visible text.
func (m *Model) CopyAll() tea.Cmd {
	return m.pane.CopyText(m.doc.Text(), "Copied document")
}

// UnmarshalJSON always panics: a Model must be built with New.
func (m *Model) UnmarshalJSON([]byte) error {
	panic("mdview: Model cannot be decoded; construct it with New")
}

// UnmarshalText always panics: a Model must be built with New.
func (m *Model) UnmarshalText([]byte) error {
	panic("mdview: Model cannot be decoded; construct it with New")
}
