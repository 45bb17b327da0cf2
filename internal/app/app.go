// Package app contains the root application model: one Markdown text view
// with help, toast and debug log overlays.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/markview/internal/flags"
	"github.com/zjrosen/markview/internal/keys"
	"github.com/zjrosen/markview/internal/log"
	"github.com/zjrosen/markview/internal/markdown"
	"github.com/zjrosen/markview/internal/pubsub"
	"github.com/zjrosen/markview/internal/ui/help"
	"github.com/zjrosen/markview/internal/ui/mdview"
	"github.com/zjrosen/markview/internal/ui/shared/logoverlay"
	"github.com/zjrosen/markview/internal/ui/styles"
	"github.com/zjrosen/markview/internal/ui/toaster"
	"github.com/zjrosen/markview/internal/watcher"
)

// docZone marks the text view for mouse hit-testing.
const docZone = "markview-doc"

// Config wires the application.
type Config struct {
	// Source names the document in the footer, e.g. a file path or "stdin".
	Source string

	// View configures the text view. View.Text is the initial document.
	View mdview.Options

	// WatchPath enables live reload of a file when non-empty.
	WatchPath string
	Debounce  time.Duration

	HelpStyle string
	Debug     bool
	Flags     *flags.Registry
}

// Model is the root application state.
type Model struct {
	view       *mdview.Model
	help       help.Model
	toaster    toaster.Model
	logOverlay logoverlay.Model

	source    string
	flags     *flags.Registry
	maxHeight int

	width  int
	height int

	debugMode   bool
	logCancel   context.CancelFunc
	logListener *log.LogListener

	watcherHandle   *watcher.Watcher
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.Change]
	watchErr        error
}

// New creates the application. A watcher that fails to start is logged and
// reported with a toast; the document still displays.
func New(cfg Config) Model {
	opts := cfg.View
	if opts.MakeToast == nil {
		opts.MakeToast = toaster.Notify
	}
	view := mdview.New(opts)

	m := Model{
		view:       view,
		help:       help.New(cfg.HelpStyle),
		toaster:    toaster.New(),
		logOverlay: logoverlay.New(),
		source:     cfg.Source,
		flags:      cfg.Flags,
		maxHeight:  view.MaxViewHeight(),
		debugMode:  cfg.Debug,
	}

	if cfg.Debug {
		ctx, cancel := context.WithCancel(context.Background())
		if l := log.NewListener(ctx); l != nil {
			m.logListener = l
			m.logCancel = cancel
		} else {
			cancel()
		}
	}

	if cfg.WatchPath != "" {
		m.startWatcher(cfg.WatchPath, cfg.Debounce)
	}
	return m
}

func (m *Model) startWatcher(path string, debounce time.Duration) {
	w, err := watcher.New(watcher.Config{Path: path, Debounce: debounce})
	if err != nil {
		m.watchErr = err
		log.ErrorErr(log.CatWatcher, "watcher init failed", err, "path", path)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	listener := pubsub.NewContinuousListener(ctx, w.Broker())
	if err := w.Start(); err != nil {
		cancel()
		_ = w.Stop()
		m.watchErr = err
		log.ErrorErr(log.CatWatcher, "watcher start failed", err, "path", path)
		return
	}
	m.watcherHandle = w
	m.watcherCancel = cancel
	m.watcherListener = listener
}

// Init starts the watcher and log listeners.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	if m.watchErr != nil {
		cmds = append(cmds, toaster.Notify(fmt.Sprintf("Live reload unavailable: %v", m.watchErr), true))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}
		if m.help.Visible() {
			return m, nil
		}
		if z := zone.Get(docZone); z != nil && !z.IsZero() {
			m.view.SetScreenOffset(z.StartX, z.StartY)
		}
		_, cmd := m.view.Update(msg)
		return m, cmd

	case toaster.ShowMsg, toaster.DismissMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Update(msg)
		return m, cmd

	case log.LogEvent:
		m.logOverlay.Append(msg.Payload)
		if m.logListener == nil {
			return m, nil
		}
		return m, m.logListener.Listen()

	case watcher.Event:
		return m.handleFileEvent(msg)
	}
	return m, nil
}

// resize caps the view at the rows left after the footer, then lays it out.
func (m Model) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help = m.help.SetSize(msg.Width, msg.Height)
	m.logOverlay.SetSize(msg.Width, msg.Height)

	m.view.SetMaxViewHeight(min(m.maxHeight, max(msg.Height-m.footerHeight(), 0)))
	m.view.Update(msg)
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.debugMode && key.Matches(msg, keys.App.Logs) {
		m.logOverlay.Toggle()
		return m, nil
	}
	if m.logOverlay.Visible() {
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, keys.App.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.App.Help):
		m.help = m.help.Toggle()
		return m, nil
	case key.Matches(msg, keys.App.Escape):
		m.help = m.help.Hide()
		return m, nil
	}
	if m.help.Visible() {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.App.ToggleBackground):
		mode := markdown.Filled
		if m.view.Mode() == markdown.Filled {
			mode = markdown.Plain
		}
		m.view.SetBackgroundMode(mode)
		m.view.RecomputeLayout()
		log.Debug(log.CatUI, "background toggled", "mode", mode)
		return m, nil
	case key.Matches(msg, keys.App.Yank):
		return m, m.view.CopyAll()
	}

	_, cmd := m.view.Update(msg)
	return m, cmd
}

func (m Model) handleFileEvent(ev watcher.Event) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	switch ev.Type {
	case pubsub.UpdatedEvent:
		delta := watcher.LineDelta(m.view.Text(), ev.Payload.Contents)
		if delta.Empty() {
			log.Debug(log.CatWatcher, "reload skipped: contents unchanged", "source", m.source)
			break
		}
		m.view.SetText(ev.Payload.Contents)
		m.view.RecomputeLayout()
		log.Info(log.CatWatcher, "reloaded", "source", m.source,
			"bytes", len(ev.Payload.Contents), "added", delta.Added, "removed", delta.Removed)
		if m.flags.Enabled(flags.FlagReloadToast) {
			msg := fmt.Sprintf("Reloaded %s (+%d −%d)", filepath.Base(m.source), delta.Added, delta.Removed)
			cmds = append(cmds, toaster.Notify(msg, false))
		}
	case pubsub.DeletedEvent:
		cmds = append(cmds, toaster.Notify(filepath.Base(m.source)+" was removed", true))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) footerHeight() int {
	if m.flags.Enabled(flags.FlagStatusFooter) {
		return 1
	}
	return 0
}

// footer shows the source, scroll position and the short key help.
func (m Model) footer() string {
	var hints []string
	for _, b := range keys.App.ShortHelp() {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	left := fmt.Sprintf("%s  %d%%", m.source, m.view.ScrollPercent())
	right := strings.Join(hints, "  ")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return styles.FooterStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// View implements tea.Model.
func (m Model) View() string {
	body := zone.Mark(docZone, m.view.View())
	if m.footerHeight() > 0 {
		rows := lipgloss.Height(body)
		if body == "" {
			rows = 0
		}
		pad := max(m.height-m.footerHeight()-rows, 0)
		body += strings.Repeat("\n", pad) + "\n" + m.footer()
	}

	if m.toaster.Visible() {
		body = m.toaster.Overlay(body, m.width, m.height)
	}
	if m.help.Visible() {
		body = m.help.Overlay(body)
	}
	if m.debugMode && m.logOverlay.Visible() {
		body = m.logOverlay.Overlay(body)
	}
	return zone.Scan(body)
}

// Document exposes the text view.
func (m Model) Document() *mdview.Model {
	return m.view
}

// Close releases the watcher and log listener.
func (m *Model) Close() error {
	if m.logCancel != nil {
		m.logCancel()
	}
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return fmt.Errorf("stopping watcher: %w", err)
		}
	}
	return nil
}
