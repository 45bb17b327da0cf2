// Package keys contains keybinding definitions.
package keys

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// ViewKeyMap scrolls the text view.
type ViewKeyMap struct {
	Up           key.Binding
	Down         key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	Top          key.Binding
	Bottom       key.Binding
}

// AppKeyMap holds the application-level bindings.
type AppKeyMap struct {
	Yank             key.Binding
	ToggleBackground key.Binding
	Help             key.Binding
	Escape           key.Binding
	Quit             key.Binding

	// Logs toggles the log overlay. Only bound when debug logging is on.
	Logs key.Binding
}

// View is the default text view keymap.
var View = ViewKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", " ", "f"),
		key.WithHelp("pgdn/space", "page down"),
	),
	HalfPageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "u"),
		key.WithHelp("ctrl+u", "half page up"),
	),
	HalfPageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "d"),
		key.WithHelp("ctrl+d", "half page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g/home", "go to top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G/end", "go to bottom"),
	),
}

// App is the default application keymap.
var App = AppKeyMap{
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy document"),
	),
	ToggleBackground: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "toggle background"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close overlay"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "debug log"),
	),
}

// ShortHelp returns keybindings for the footer.
func (k AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns all bindings grouped for the help overlay.
func FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{View.Up, View.Down, View.PageUp, View.PageDown, View.HalfPageUp, View.HalfPageDown, View.Top, View.Bottom},
		{App.Yank, App.ToggleBackground, App.Help, App.Escape, App.Quit},
	}
}

// HelpMarkdown renders FullHelp as Markdown tables, one per group.
func HelpMarkdown() string {
	titles := []string{"Scrolling", "General"}
	var b strings.Builder
	b.WriteString("# Keys\n")
	for i, group := range FullHelp() {
		fmt.Fprintf(&b, "\n## %s\n\n| Key | Action |\n|-----|--------|\n", titles[i])
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	return b.String()
}
