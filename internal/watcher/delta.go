package watcher

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Delta counts the lines a reload added and removed.
type Delta struct {
	Added   int
	Removed int
}

// Empty reports whether nothing changed.
func (d Delta) Empty() bool {
	return d.Added == 0 && d.Removed == 0
}

// LineDelta diffs two versions of a file line by line. A changed line
// counts once as removed and once as added.
func LineDelta(oldText, newText string) Delta {
	if oldText == newText {
		return Delta{}
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var d Delta
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			d.Added += countLines(diff.Text)
		case diffmatchpatch.DiffDelete:
			d.Removed += countLines(diff.Text)
		}
	}
	return d
}

func countLines(s string) int {
	n := strings.Count(s, "\n")
	if s != "" && !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
