package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/markview/internal/tracing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.Equal(t, 300, cfg.View.MaxHeight)
	require.Equal(t, 12, cfg.View.WidthPadding)
	require.Equal(t, 6, cfg.View.InnerPadding)
	require.Equal(t, "left", cfg.View.Alignment)
	require.False(t, cfg.View.DrawsBackground)
	require.Equal(t, "dark", cfg.UI.HelpStyle)
	require.True(t, cfg.UI.Mouse)
	require.Equal(t, 200*time.Millisecond, cfg.Watch.Debounce)
	require.False(t, cfg.Tracing.Enabled)
	require.NoError(t, Validate(cfg))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative max height", func(c *Config) { c.View.MaxHeight = -1 }, "view.max_height"},
		{"negative width", func(c *Config) { c.View.ContainerWidth = -5 }, "view.container_width"},
		{"negative padding", func(c *Config) { c.View.InnerPadding = -1 }, "paddings"},
		{"bad alignment", func(c *Config) { c.View.Alignment = "diagonal" }, "view.alignment"},
		{"bad color", func(c *Config) { c.Theme.LabelColor = "red" }, "theme.label_color"},
		{"bad help style", func(c *Config) { c.UI.HelpStyle = "neon" }, "ui.help_style"},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, "watch.debounce"},
		{"sample rate", func(c *Config) { c.Tracing.SampleRate = 1.5 }, "sample_rate"},
		{"exporter", func(c *Config) { c.Tracing.Exporter = "kafka" }, "tracing.exporter"},
		{"otlp endpoint", func(c *Config) {
			c.Tracing.Enabled = true
			c.Tracing.Exporter = "otlp"
			c.Tracing.OTLPEndpoint = ""
		}, "otlp_endpoint"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_AcceptsAlignments(t *testing.T) {
	for _, a := range []string{"", "left", "Center", "right", "justified"} {
		require.NoError(t, ValidateView(ViewConfig{Alignment: a}), a)
	}
}

func TestThemeStyles(t *testing.T) {
	th := ThemeConfig{LabelColor: "#C0C0C0", SelectionColor: "#264F78"}

	s := th.Styles()

	require.Equal(t, "#C0C0C0", s.LabelColor)
	require.Equal(t, "#264F78", s.SelectionColor)
	require.Empty(t, s.ScrollbarColor)
}

func TestResolveTracing(t *testing.T) {
	cfg := Defaults()
	cfg.Tracing.Exporter = "file"

	got := cfg.ResolveTracing()
	if home, err := os.UserHomeDir(); err == nil {
		require.Equal(t, filepath.Join(home, ".config", "markview", "traces", "traces.jsonl"), got.FilePath)
	}

	cfg.Tracing.FilePath = "/tmp/t.jsonl"
	require.Equal(t, "/tmp/t.jsonl", cfg.ResolveTracing().FilePath)

	cfg.Tracing = tracing.Config{Exporter: "stdout"}
	require.Empty(t, cfg.ResolveTracing().FilePath)
}

func TestDefaultConfigTemplate_RoundTripsThroughViper(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(DefaultConfigTemplate())))

	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))

	want := Defaults()
	require.Equal(t, want.View, cfg.View)
	require.Equal(t, want.Watch, cfg.Watch)
	require.Equal(t, want.Cache, cfg.Cache)
	require.Equal(t, want.Log, cfg.Log)
	require.Equal(t, want.UI, cfg.UI)
	require.NoError(t, Validate(cfg))
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, DefaultConfigTemplate(), string(data))
}

func TestWriteDefaultConfig_UnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))

	err := WriteDefaultConfig(filepath.Join(blocker, "config.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "creating config directory")
}
