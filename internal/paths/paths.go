// Package paths resolves markview's config locations.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// LocalConfig is the project config path, relative to the working directory.
const LocalConfig = ".markview/config.yaml"

// UserConfigDir returns ~/.config/markview, or "" if the home directory is unknown.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "markview")
}

// UserConfig returns ~/.config/markview/config.yaml, or "" if the home
// directory is unknown.
func UserConfig() string {
	dir := UserConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// FindConfig returns the first existing config file: an explicit path,
// then LocalConfig under dir, then UserConfig. It returns "" when none
// exists. An explicit path is returned as-is even if missing so the caller
// reports the error.
func FindConfig(explicit, dir string) string {
	if explicit != "" {
		return ExpandHome(explicit)
	}
	local := filepath.Join(dir, LocalConfig)
	if _, err := os.Stat(local); err == nil {
		return local
	}
	if user := UserConfig(); user != "" {
		if _, err := os.Stat(user); err == nil {
			return user
		}
	}
	return ""
}

// ExpandHome replaces a leading "~" with the home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
