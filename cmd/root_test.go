package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/markview/internal/config"
	"github.com/zjrosen/markview/internal/localize"
	"github.com/zjrosen/markview/internal/ui/mdview"
)

// sandbox points HOME and the working directory at fresh temp dirs.
func sandbox(t *testing.T) (home, wd string) {
	t.Helper()
	home = t.TempDir()
	wd = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(wd)
	return home, wd
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	_, wd := sandbox(t)

	cfg, path, err := loadConfig(viper.New(), "", wd)

	require.NoError(t, err)
	require.Empty(t, path)
	require.Equal(t, config.Defaults().View, cfg.View)
	require.Equal(t, config.Defaults().Watch, cfg.Watch)
}

func TestLoadConfig_LocalFile(t *testing.T) {
	_, wd := sandbox(t)
	path := filepath.Join(wd, ".markview", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("view:\n  max_height: 40\n  alignment: center\nflags:\n  status-footer: true\n"), 0o600))

	cfg, got, err := loadConfig(viper.New(), "", wd)

	require.NoError(t, err)
	require.Equal(t, path, got)
	require.Equal(t, 40, cfg.View.MaxHeight)
	require.Equal(t, "center", cfg.View.Alignment)
	require.Equal(t, 12, cfg.View.WidthPadding, "unset keys keep defaults")
	require.True(t, cfg.Flags["status-footer"])
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	_, wd := sandbox(t)
	t.Setenv("MARKVIEW_VIEW_MAX_HEIGHT", "42")
	t.Setenv("MARKVIEW_WATCH_ENABLED", "true")

	cfg, _, err := loadConfig(viper.New(), "", wd)

	require.NoError(t, err)
	require.Equal(t, 42, cfg.View.MaxHeight)
	require.True(t, cfg.Watch.Enabled)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, wd := sandbox(t)
	path := filepath.Join(wd, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme:\n  label_color: red\n"), 0o600))

	_, _, err := loadConfig(viper.New(), path, wd)

	require.ErrorContains(t, err, "invalid configuration")
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, wd := sandbox(t)

	_, _, err := loadConfig(viper.New(), filepath.Join(wd, "nope.yaml"), wd)

	require.ErrorContains(t, err, "reading config")
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Doc"), 0o600))

	src, err := readSource([]string{path}, strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, "doc.md", src.name)
	require.Equal(t, path, src.path)
	require.Equal(t, "# Doc", src.text)

	src, err = readSource([]string{"-"}, strings.NewReader("# Piped"))
	require.NoError(t, err)
	require.Equal(t, "stdin", src.name)
	require.Empty(t, src.path)
	require.Equal(t, "# Piped", src.text)

	_, err = readSource([]string{filepath.Join(dir, "missing.md")}, nil)
	require.ErrorContains(t, err, "reading")
}

func TestViewOptions(t *testing.T) {
	cfg := config.Defaults()
	cfg.View.Alignment = "right"
	cfg.View.MaxHeight = 7
	cfg.UI.Locale = "de"

	opts, err := viewOptions(cfg, "# Hi")

	require.NoError(t, err)
	require.Equal(t, "# Hi", opts.Text)
	require.Equal(t, 7, opts.MaxViewHeight)
	require.Equal(t, "right", opts.Alignment.String())
	require.NotNil(t, opts.Measurer)
	catalog, ok := opts.Localizer.(*localize.Catalog)
	require.True(t, ok)
	require.Equal(t, "de", catalog.Tag().String())

	cfg.View.Alignment = "diagonal"
	_, err = viewOptions(cfg, "")
	require.Error(t, err)
}

func TestRenderOnce(t *testing.T) {
	out, err := renderOnce(mdview.Options{Text: "# Title\n\nBody text", ContainerWidth: 40})
	require.NoError(t, err)
	plain := ansi.Strip(out)
	require.Contains(t, plain, "Title")
	require.Contains(t, plain, "Body text")

	out, err = renderOnce(mdview.Options{Text: "", ContainerWidth: 40})
	require.NoError(t, err)
	require.Empty(t, out, "no content renders nothing")

	_, err = renderOnce(mdview.Options{Text: "x"})
	require.ErrorContains(t, err, "--width")
}

func TestRenderOnce_PrintsEveryWord(t *testing.T) {
	out, err := renderOnce(mdview.Options{Text: "aaa bbbbbb cc", ContainerWidth: 26, MaxViewHeight: renderAllRows})

	require.NoError(t, err)
	plain := ansi.Strip(out)
	require.Contains(t, plain, "aaa bbbbbb cc")
	require.NotContains(t, plain, "▐", "no scrollbar when everything fits")
}

func TestRenderCommand_File(t *testing.T) {
	_, wd := sandbox(t)
	path := filepath.Join(wd, "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Heading\n\nSome `code` here."), 0o600))

	out, err := run(t, "", "render", "--plain", "--width", "40", path)

	require.NoError(t, err)
	require.Contains(t, out, "Heading")
	require.Contains(t, out, "Some code here.")
	require.NotContains(t, out, "\x1b[")
}

func TestRenderCommand_Stdin(t *testing.T) {
	sandbox(t)

	out, err := run(t, "piped *text*", "render", "--plain", "-")

	require.NoError(t, err)
	require.Contains(t, out, "piped text")
}

func TestRenderCommand_MaxHeightLimitsRows(t *testing.T) {
	sandbox(t)
	doc := strings.Repeat("line\n\n", 20)

	out, err := run(t, doc, "render", "--plain", "--max-height", "5")

	require.NoError(t, err)
	require.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 5)
}

func TestRenderCommand_InvalidConfig(t *testing.T) {
	_, wd := sandbox(t)
	path := filepath.Join(wd, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view:\n  alignment: sideways\n"), 0o600))

	_, err := run(t, "x", "--config", path, "render", "-")

	require.ErrorContains(t, err, "invalid configuration")
}

func TestConfigInit(t *testing.T) {
	home, _ := sandbox(t)
	want := filepath.Join(home, ".config", "markview", "config.yaml")

	out, err := run(t, "", "config", "init")
	require.NoError(t, err)
	require.Contains(t, out, want)
	require.FileExists(t, want)

	_, err = run(t, "", "config", "init")
	require.ErrorContains(t, err, "already exists")

	_, err = run(t, "", "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_Local(t *testing.T) {
	_, wd := sandbox(t)

	_, err := run(t, "", "config", "init", "--local")

	require.NoError(t, err)
	require.FileExists(t, filepath.Join(wd, ".markview", "config.yaml"))
}

func TestConfigSetAndPath(t *testing.T) {
	home, wd := sandbox(t)

	out, err := run(t, "", "config", "path")
	require.NoError(t, err)
	require.Contains(t, out, "none")

	_, err = run(t, "", "config", "set", "view.max_height", "120")
	require.NoError(t, err)

	user := filepath.Join(home, ".config", "markview", "config.yaml")
	out, err = run(t, "", "config", "path")
	require.NoError(t, err)
	require.Equal(t, user+"\n", out)

	cfg, _, err := loadConfig(viper.New(), "", wd)
	require.NoError(t, err)
	require.Equal(t, 120, cfg.View.MaxHeight)
}
