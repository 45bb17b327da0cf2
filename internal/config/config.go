// Package config provides configuration types, defaults and validation for markview.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/markview/internal/log"
	"github.com/zjrosen/markview/internal/tracing"
	"github.com/zjrosen/markview/internal/ui/styles"
)

// Config holds all configuration options for markview.
type Config struct {
	View    ViewConfig      `mapstructure:"view"`
	Theme   ThemeConfig     `mapstructure:"theme"`
	UI      UIConfig        `mapstructure:"ui"`
	Watch   WatchConfig     `mapstructure:"watch"`
	Log     LogConfig       `mapstructure:"log"`
	Cache   CacheConfig     `mapstructure:"cache"`
	Tracing tracing.Config  `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// ViewConfig holds the text view geometry and color mode.
type ViewConfig struct {
	MaxHeight       int    `mapstructure:"max_height"`       // scroll container cap in rows (default 300)
	DrawsBackground bool   `mapstructure:"draws_background"` // start in filled mode
	Alignment       string `mapstructure:"alignment"`        // left, center, right, justified
	ContainerWidth  int    `mapstructure:"container_width"`  // 0 follows the terminal width
	WidthPadding    int    `mapstructure:"width_padding"`
	InnerPadding    int    `mapstructure:"inner_padding"`
}

// ThemeConfig holds color overrides. Values are hex colors; empty keeps the
// built-in color.
type ThemeConfig struct {
	LabelColor     string `mapstructure:"label_color"`
	ScrollbarColor string `mapstructure:"scrollbar_color"`
	SelectionColor string `mapstructure:"selection_color"`
}

// Styles converts the theme for styles.ApplyTheme.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{
		LabelColor:     t.LabelColor,
		ScrollbarColor: t.ScrollbarColor,
		SelectionColor: t.SelectionColor,
	}
}

// UIConfig holds application chrome options.
type UIConfig struct {
	HelpStyle string `mapstructure:"help_style"` // glamour style for the help overlay: dark, light, notty
	Locale    string `mapstructure:"locale"`     // accessibility label language; empty reads LANG
	Mouse     bool   `mapstructure:"mouse"`      // mouse wheel and drag selection
}

// WatchConfig controls live reload of the viewed file.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// LogConfig controls the debug log.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"` // debug, info, warn, error
}

// CacheConfig tunes the measurement cache.
type CacheConfig struct {
	Expiration      time.Duration `mapstructure:"expiration"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		View: ViewConfig{
			MaxHeight:    300,
			Alignment:    "left",
			WidthPadding: 12,
			InnerPadding: 6,
		},
		UI: UIConfig{
			HelpStyle: "dark",
			Mouse:     true,
		},
		Watch: WatchConfig{
			Enabled:  false,
			Debounce: 200 * time.Millisecond,
		},
		Log: LogConfig{
			Path:  "debug.log",
			Level: "debug",
		},
		Cache: CacheConfig{
			Expiration:      10 * time.Minute,
			CleanupInterval: 30 * time.Minute,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// DefaultTracesFilePath returns ~/.config/markview/traces/traces.jsonl, or
// "" when the home directory is unknown.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "markview", "traces", "traces.jsonl")
}

// Validate checks every section and returns the first error.
func Validate(c Config) error {
	for _, check := range []func(Config) error{
		func(c Config) error { return ValidateView(c.View) },
		func(c Config) error { return ValidateTheme(c.Theme) },
		func(c Config) error { return ValidateUI(c.UI) },
		func(c Config) error { return ValidateWatch(c.Watch) },
		func(c Config) error { return ValidateTracing(c.Tracing) },
	} {
		if err := check(c); err != nil {
			return err
		}
	}
	return nil
}

// ValidateView checks view geometry.
func ValidateView(v ViewConfig) error {
	if v.MaxHeight < 0 {
		return fmt.Errorf("view.max_height must be >= 0, got %d", v.MaxHeight)
	}
	if v.ContainerWidth < 0 {
		return fmt.Errorf("view.container_width must be >= 0, got %d", v.ContainerWidth)
	}
	if v.WidthPadding < 0 || v.InnerPadding < 0 {
		return fmt.Errorf("view paddings must be >= 0, got width_padding=%d inner_padding=%d",
			v.WidthPadding, v.InnerPadding)
	}
	switch strings.ToLower(v.Alignment) {
	case "", "left", "center", "right", "justified":
	default:
		return fmt.Errorf("view.alignment must be \"left\", \"center\", \"right\", or \"justified\", got %q", v.Alignment)
	}
	return nil
}

// ValidateTheme checks that every color is a hex color.
func ValidateTheme(t ThemeConfig) error {
	for name, value := range map[string]string{
		"label_color":     t.LabelColor,
		"scrollbar_color": t.ScrollbarColor,
		"selection_color": t.SelectionColor,
	} {
		if value != "" && !styles.IsValidHexColor(value) {
			return fmt.Errorf("theme.%s must be a hex color like #RRGGBB, got %q", name, value)
		}
	}
	return nil
}

// ValidateUI checks the help style name.
func ValidateUI(u UIConfig) error {
	switch u.HelpStyle {
	case "", "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
		return nil
	default:
		return fmt.Errorf("ui.help_style must be a glamour style name, got %q", u.HelpStyle)
	}
}

// ValidateWatch checks live reload settings.
func ValidateWatch(w WatchConfig) error {
	if w.Debounce < 0 {
		return fmt.Errorf("watch.debounce must be >= 0, got %s", w.Debounce)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", t.SampleRate)
	}
	switch t.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", t.Exporter)
	}
	if t.Enabled && t.Exporter == "otlp" && t.OTLPEndpoint == "" {
		return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
	}
	return nil
}

// ResolveTracing fills in the runtime default for the trace file.
func (c Config) ResolveTracing() tracing.Config {
	t := c.Tracing
	if t.Exporter == "file" && t.FilePath == "" {
		t.FilePath = DefaultTracesFilePath()
	}
	return t
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# markview configuration

# Text view geometry
view:
  max_height: 300          # scroll container cap in rows; 0 collapses the view
  draws_background: false  # start with a filled background (toggle with b)
  alignment: left          # left, center, right, or justified (renders as left)
  container_width: 0       # 0 follows the terminal width
  width_padding: 12        # columns reserved around the text
  inner_padding: 6         # columns reserved inside the text surface

# Color overrides (hex)
theme:
  # label_color: "#C0C0C0"
  # scrollbar_color: "#8C8C8C"
  # selection_color: "#264F78"

ui:
  help_style: dark   # glamour style for the help overlay: dark, light, notty
  # locale: de       # accessibility label language (default: $LANG)
  mouse: true        # mouse wheel scrolling and drag-to-copy

# Live reload of the viewed file
watch:
  enabled: false
  debounce: 200ms

# Debug log, written only with --debug or MARKVIEW_DEBUG=1
log:
  path: debug.log
  level: debug

# Measurement cache
cache:
  expiration: 10m
  cleanup_interval: 30m

# Distributed tracing
# tracing:
#   enabled: false
#   exporter: file                 # none, file, stdout, otlp
#   file_path: ~/.config/markview/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0

# Feature flags
# flags:
#   status-footer: true   # file name and scroll position under the view
#   reload-toast: true    # toast when the watched file reloads
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
