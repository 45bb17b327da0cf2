package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{"flag set to true", New(map[string]bool{FlagStatusFooter: true}), FlagStatusFooter, true},
		{"flag set to false", New(map[string]bool{FlagReloadToast: false}), FlagReloadToast, false},
		{"unset flag", New(map[string]bool{FlagStatusFooter: true}), FlagReloadToast, false},
		{"nil map", New(nil), FlagStatusFooter, false},
		{"nil registry", nil, FlagStatusFooter, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_CopiesInput(t *testing.T) {
	in := map[string]bool{FlagStatusFooter: true}
	r := New(in)

	in[FlagStatusFooter] = false
	require.True(t, r.Enabled(FlagStatusFooter))

	all := r.All()
	all[FlagReloadToast] = true
	require.False(t, r.Enabled(FlagReloadToast))
}

func TestRegistry_AllNil(t *testing.T) {
	var r *Registry
	require.Empty(t, r.All())
}

func TestKnown(t *testing.T) {
	require.ElementsMatch(t, []string{"status-footer", "reload-toast"}, Known())
}
