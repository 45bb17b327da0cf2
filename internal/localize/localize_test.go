package localize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestEnglishLabel(t *testing.T) {
	require.Equal(t, "Markdown text view", English().Lookup(KeyMarkdownTextView))
}

func TestLookup_Translated(t *testing.T) {
	require.Equal(t, "Markdown-Textansicht", New(language.German).Lookup(KeyMarkdownTextView))
	require.Equal(t, "Vue de texte Markdown", New(language.French).Lookup(KeyMarkdownTextView))
}

func TestLookup_RegionalVariantMatchesBase(t *testing.T) {
	c := New(language.MustParse("de-AT"))
	require.Equal(t, "de", c.Tag().String())
	require.Equal(t, "Markdown-Textansicht", c.Lookup(KeyMarkdownTextView))
}

func TestLookup_UnsupportedLanguageFallsBackToEnglish(t *testing.T) {
	c := New(language.Japanese)
	require.Equal(t, "en", c.Tag().String())
	require.Equal(t, "Markdown text view", c.Lookup(KeyMarkdownTextView))
}

func TestLookup_UnknownKeyReturnsKey(t *testing.T) {
	require.Equal(t, "no_such_key", English().Lookup("no_such_key"))
}

func TestFromLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"de_DE.UTF-8", language.German},
		{"es_ES", language.Spanish},
		{"C", language.English},
		{"POSIX", language.English},
		{"", language.English},
		{"!!!", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			require.Equal(t, tt.want.String(), FromLocale(tt.locale).Tag().String())
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "fr_FR.UTF-8")
	require.Equal(t, "fr", FromEnv().Tag().String())

	t.Setenv("LC_ALL", "de_DE.UTF-8")
	require.Equal(t, "de", FromEnv().Tag().String())
}

func TestBuildCatalog_BuiltInTranslations(t *testing.T) {
	b, err := buildCatalog(translations)
	require.NoError(t, err)
	require.NotNil(t, b)
}

func TestMustBuild_PanicsOnError(t *testing.T) {
	require.PanicsWithValue(t, "localize: catalog de/key: bad", func() {
		mustBuild(nil, errors.New("catalog de/key: bad"))
	})
	require.NotPanics(t, func() { mustBuild(buildCatalog(translations)) })
}
