// Package flags holds opt-in feature switches read from the config's
// flags section. Unknown or unset flags are off.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/markview/internal/log"
)

const (
	// FlagStatusFooter shows the file name and scroll position under the view.
	FlagStatusFooter = "status-footer"

	// FlagReloadToast shows a toast each time the watched file reloads.
	FlagReloadToast = "reload-toast"
)

// Known lists every flag markview reads.
func Known() []string {
	return []string{FlagReloadToast, FlagStatusFooter}
}

// Registry holds flag state. It is read-only after New.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from the config map. Names markview does not read
// are kept but logged as a warning.
func New(flags map[string]bool) *Registry {
	r := &Registry{flags: make(map[string]bool, len(flags))}
	maps.Copy(r.flags, flags)
	for name := range r.flags {
		if !slices.Contains(Known(), name) {
			log.Warn(log.CatConfig, "unknown feature flag", "flag", name)
		}
	}
	log.Debug(log.CatConfig, "feature flags initialized", "count", len(r.flags))
	return r
}

// Enabled reports whether name is on. A nil Registry has every flag off.
func (r *Registry) Enabled(name string) bool {
	if r == nil {
		return false
	}
	return r.flags[name]
}

// All returns a copy of the configured flags.
func (r *Registry) All() map[string]bool {
	if r == nil {
		return map[string]bool{}
	}
	return maps.Clone(r.flags)
}
