// Package localize resolves user-facing strings such as accessibility labels
// through a golang.org/x/text message catalog.
package localize

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// KeyMarkdownTextView labels the text view for assistive technology.
const KeyMarkdownTextView = "accessory_view_accessibility_markdown_textview"

// Localizer looks up a localized string by key. Unknown keys return the key.
type Localizer interface {
	Lookup(key string) string
}

var translations = map[language.Tag]map[string]string{
	language.English: {
		KeyMarkdownTextView: "Markdown text view",
	},
	language.German: {
		KeyMarkdownTextView: "Markdown-Textansicht",
	},
	language.French: {
		KeyMarkdownTextView: "Vue de texte Markdown",
	},
	language.Spanish: {
		KeyMarkdownTextView: "Vista de texto Markdown",
	},
}

// Catalog is a Localizer backed by the built-in translations.
type Catalog struct {
	tag      language.Tag
	printer  *message.Printer
	fallback *message.Printer
}

var builder = mustBuild(buildCatalog(translations))

// buildCatalog compiles every translation into a catalog.
func buildCatalog(entries map[language.Tag]map[string]string) (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range entries {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s/%s: %w", tag, key, err)
			}
		}
	}
	return b, nil
}

// mustBuild panics on a catalog that failed to compile.
func mustBuild(b *catalog.Builder, err error) *catalog.Builder {
	if err != nil {
		panic("localize: " + err.Error())
	}
	return b
}

// New returns a Catalog for the closest supported match to tag.
func New(tag language.Tag) *Catalog {
	matched, _, conf := builder.Matcher().Match(tag)
	if conf == language.No {
		matched = language.English
	}
	base, _ := matched.Base()
	resolved, err := language.Compose(base)
	if err != nil {
		resolved = language.English
	}
	return &Catalog{
		tag:      resolved,
		printer:  message.NewPrinter(resolved, message.Catalog(builder)),
		fallback: message.NewPrinter(language.English, message.Catalog(builder)),
	}
}

// English returns the English catalog.
func English() *Catalog {
	return New(language.English)
}

// FromLocale builds a Catalog from a locale string such as "de_DE.UTF-8".
// Unparseable locales resolve to English.
func FromLocale(locale string) *Catalog {
	locale, _, _ = strings.Cut(locale, ".")
	locale = strings.ReplaceAll(locale, "_", "-")
	tag, err := language.Parse(locale)
	if err != nil || locale == "" || locale == "C" || locale == "POSIX" {
		return English()
	}
	return New(tag)
}

// FromEnv resolves the locale from LC_ALL, LC_MESSAGES then LANG.
func FromEnv() *Catalog {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(name); v != "" {
			return FromLocale(v)
		}
	}
	return English()
}

// Tag returns the resolved language.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Lookup implements Localizer.
func (c *Catalog) Lookup(key string) string {
	if s := c.printer.Sprintf(key); s != key {
		return s
	}
	return c.fallback.Sprintf(key)
}
