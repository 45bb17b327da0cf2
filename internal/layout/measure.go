package layout

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/markview/internal/cachemanager"
	"github.com/zjrosen/markview/internal/log"
	"github.com/zjrosen/markview/internal/markdown"
)

// Measurer returns the number of rows doc occupies when wrapped at width.
type Measurer interface {
	Measure(doc markdown.Document, width int) int
}

// CharWrapMeasurer sizes content by breaking lines at any cell boundary, not
// at word boundaries. The text surface is still drawn word-wrapped; it pads
// to the measured height and never clips rows beyond it.
type CharWrapMeasurer struct{}

// Measure implements Measurer. A width below one cell measures as one.
func (CharWrapMeasurer) Measure(doc markdown.Document, width int) int {
	if doc.Len() == 0 {
		return 0
	}
	width = max(width, 1)

	rows := 0
	for _, line := range doc.PlainLines() {
		rows += CharWrapRows(line, width)
	}
	return rows
}

// CharWrapRows is the number of rows line fills when broken at any cell.
// A width below one cell counts as one.
func CharWrapRows(line string, width int) int {
	width = max(width, 1)
	if ansi.StringWidth(line) <= width {
		return 1
	}
	return strings.Count(ansi.Hardwrap(line, width, true), "\n") + 1
}

// CachedMeasurer memoizes another Measurer by content and width.
type CachedMeasurer struct {
	next  Measurer
	cache cachemanager.CacheManager[string, int]
}

// NewCachedMeasurer wraps next with cache.
func NewCachedMeasurer(next Measurer, cache cachemanager.CacheManager[string, int]) *CachedMeasurer {
	return &CachedMeasurer{next: next, cache: cache}
}

// Measure implements Measurer.
func (c *CachedMeasurer) Measure(doc markdown.Document, width int) int {
	ctx := context.Background()
	key := measureKey(doc, width)
	if rows, ok := c.cache.Get(ctx, key); ok {
		return rows
	}
	rows := c.next.Measure(doc, width)
	c.cache.Set(ctx, key, rows, cachemanager.DefaultExpiration)
	log.Debug(log.CatCache, "measured", "width", width, "rows", rows)
	return rows
}

func measureKey(doc markdown.Document, width int) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(doc.Text()))
	return fmt.Sprintf("%d:%x", width, h.Sum64())
}
