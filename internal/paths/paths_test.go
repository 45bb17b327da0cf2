package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindConfig_Explicit(t *testing.T) {
	require.Equal(t, "/etc/mv.yaml", FindConfig("/etc/mv.yaml", t.TempDir()))
}

func TestFindConfig_LocalWins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	local := filepath.Join(dir, LocalConfig)
	require.NoError(t, os.MkdirAll(filepath.Dir(local), 0o750))
	require.NoError(t, os.WriteFile(local, nil, 0o600))

	require.Equal(t, local, FindConfig("", dir))
}

func TestFindConfig_UserFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	user := filepath.Join(home, ".config", "markview", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(user), 0o750))
	require.NoError(t, os.WriteFile(user, nil, 0o600))

	require.Equal(t, user, FindConfig("", t.TempDir()))
}

func TestFindConfig_None(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.Empty(t, FindConfig("", t.TempDir()))
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.Equal(t, filepath.Join(home, "notes.md"), ExpandHome("~/notes.md"))
	require.Equal(t, home, ExpandHome("~"))
	require.Equal(t, "/abs/x", ExpandHome("/abs/x"))
	require.Equal(t, "~user/x", ExpandHome("~user/x"))
}
