// Package markdown translates Markdown text into styled runs using a fixed
// palette: three heading levels, inline code, and body text.
package markdown

import (
	"context"

	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ColorMode selects how the text surface is painted.
type ColorMode int

const (
	// Plain draws no background and uses the label color.
	Plain ColorMode = iota
	// Filled draws black text on a white background.
	Filled
)

func (m ColorMode) String() string {
	if m == Filled {
		return "filled"
	}
	return "plain"
}

// ModeFor maps the drawsBackground option to a ColorMode.
func ModeFor(drawsBackground bool) ColorMode {
	if drawsBackground {
		return Filled
	}
	return Plain
}

// Translator converts Markdown into a Document.
type Translator struct {
	styler     Styler
	table      StyleTable
	labelColor lipgloss.TerminalColor
	tracer     trace.Tracer
}

// Option configures a Translator.
type Option func(*Translator)

// WithStyler replaces the goldmark-backed Markdown service.
func WithStyler(s Styler) Option {
	return func(t *Translator) {
		if s != nil {
			t.styler = s
		}
	}
}

// WithLabelColor sets the base foreground color used in Plain mode.
// Defaults to the terminal's own foreground.
func WithLabelColor(c lipgloss.TerminalColor) Option {
	return func(t *Translator) {
		if c != nil {
			t.labelColor = c
		}
	}
}

// WithTracer records a span per translation.
func WithTracer(tr trace.Tracer) Option {
	return func(t *Translator) {
		if tr != nil {
			t.tracer = tr
		}
	}
}

// NewTranslator creates a Translator with the default palette.
func NewTranslator(opts ...Option) *Translator {
	t := &Translator{
		styler:     NewGoldmarkStyler(),
		table:      DefaultStyleTable(),
		labelColor: lipgloss.NoColor{},
		tracer:     noop.NewTracerProvider().Tracer("markdown"),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// BaseColor is the foreground of non-code runs for mode.
func (t *Translator) BaseColor(mode ColorMode) lipgloss.TerminalColor {
	if mode == Filled {
		return FilledTextColor
	}
	return t.labelColor
}

// Recolor switches doc to mode's palette without re-parsing.
func (t *Translator) Recolor(doc Document, mode ColorMode) Document {
	return doc.Restyle(t.table.WithBaseColor(t.BaseColor(mode)))
}

// Translate styles text for mode. It never fails.
func (t *Translator) Translate(text string, mode ColorMode) Document {
	_, span := t.tracer.Start(context.Background(), "markdown.translate",
		trace.WithAttributes(
			attribute.Int("markdown.bytes", len(text)),
			attribute.String("markdown.mode", mode.String()),
		))
	defer span.End()

	runs := t.styler.Style(text, t.table.WithBaseColor(t.BaseColor(mode)))
	span.SetAttributes(attribute.Int("markdown.runs", len(runs)))
	return NewDocument(runs)
}
