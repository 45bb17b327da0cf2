package markdown

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Styler is the Markdown service: text in, styled runs out. Implementations
// must not fail; unparseable input is rendered literally.
type Styler interface {
	Style(source string, table StyleTable) []Run
}

// GoldmarkStyler walks a goldmark AST and flattens it to runs. Only headings
// and code have palette entries; every other node contributes its text as
// body with its markers removed.
type GoldmarkStyler struct {
	md goldmark.Markdown
}

// NewGoldmarkStyler creates a styler with strikethrough and linkify enabled.
func NewGoldmarkStyler() *GoldmarkStyler {
	return &GoldmarkStyler{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Strikethrough,
				extension.Linkify,
			),
		),
	}
}

// Style implements Styler.
func (g *GoldmarkStyler) Style(source string, table StyleTable) []Run {
	if source == "" {
		return nil
	}
	src := []byte(source)
	doc := g.md.Parser().Parse(text.NewReader(src))

	b := &runBuilder{src: src, table: table, prevEnd: -1}
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		b.block(child, 0)
	}
	return b.runs
}

// TabWidth is the tab stop interval tabs are expanded to.
const TabWidth = 4

// runBuilder accumulates runs while walking the AST.
type runBuilder struct {
	src   []byte
	table StyleTable
	runs  []Run

	pending int // line breaks owed to the next run
	prevEnd int // source offset where the previous block ended, -1 before the first
	col     int // display column the next text starts at
}

func (b *runBuilder) emit(kind Kind, s string) {
	if s == "" {
		return
	}
	if b.pending > 0 {
		b.col = 0
	}
	r := b.styled(kind, b.expandTabs(s))
	r.Newlines = b.pending
	b.pending = 0
	b.push(r)
}

func (b *runBuilder) styled(kind Kind, s string) Run {
	style := b.table.For(kind)
	return Run{
		Text:   s,
		Kind:   kind,
		Size:   style.Size,
		Weight: style.Weight,
		Family: style.Family,
		Color:  style.Color,
	}
}

// push appends r, folding it and its line breaks into the previous run when
// both share a style.
func (b *runBuilder) push(r Run) {
	if n := len(b.runs); n > 0 && b.runs[n-1].sameStyle(r) {
		b.runs[n-1].Text += strings.Repeat("\n", r.Newlines) + r.Text
		return
	}
	b.runs = append(b.runs, r)
}

// expandTabs replaces tabs with spaces up to the next tab stop and advances
// the column.
func (b *runBuilder) expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		b.col += runewidth.StringWidth(s)
		return s
	}
	var sb strings.Builder
	for _, c := range s {
		if c == '\t' {
			n := TabWidth - b.col%TabWidth
			sb.WriteString(strings.Repeat(" ", n))
			b.col += n
			continue
		}
		sb.WriteRune(c)
		b.col += runewidth.RuneWidth(c)
	}
	return sb.String()
}

// startBlock owes one line break plus one per blank source line separating
// this block from the previous one.
func (b *runBuilder) startBlock(n ast.Node) {
	start := b.firstOffset(n)
	if len(b.runs) == 0 && b.pending == 0 {
		b.prevEnd = start
		return
	}
	breaks := 1
	if b.prevEnd >= 0 && start > b.prevEnd {
		breaks += blankLines(b.src[b.prevEnd:start])
	}
	if breaks > b.pending {
		b.pending = breaks
	}
}

func (b *runBuilder) endBlock(n ast.Node) {
	if end := b.lastOffset(n); end > b.prevEnd {
		b.prevEnd = end
	}
}

func (b *runBuilder) block(n ast.Node, depth int) {
	switch node := n.(type) {
	case *ast.Heading:
		b.startBlock(node)
		b.inline(node, headingKind(node.Level))
		b.endBlock(node)

	case *ast.Paragraph, *ast.TextBlock:
		b.startBlock(node)
		b.inline(node, KindBody)
		b.endBlock(node)

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		b.startBlock(node)
		b.literalLines(node, KindCode)
		b.endBlock(node)

	case *ast.HTMLBlock:
		b.startBlock(node)
		b.literalLines(node, KindBody)
		if node.HasClosure() {
			b.pending = 1
			b.emit(KindBody, strings.TrimRight(string(node.ClosureLine.Value(b.src)), "\r\n"))
		}
		b.endBlock(node)

	case *ast.ThematicBreak:
		b.startBlock(node)
		b.emit(KindBody, "───")

	case *ast.List:
		for i, item := 0, node.FirstChild(); item != nil; i, item = i+1, item.NextSibling() {
			marker := "• "
			if node.IsOrdered() {
				marker = strconv.Itoa(node.Start+i) + ". "
			}
			b.listItem(item, marker, depth)
		}

	case *ast.Blockquote:
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			b.block(child, depth)
		}

	default:
		if n.Type() == ast.TypeInline {
			b.inlineNode(n, KindBody)
			return
		}
		if n.Lines().Len() > 0 && !n.HasChildren() {
			b.startBlock(n)
			b.literalLines(n, KindBody)
			b.endBlock(n)
			return
		}
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			b.block(child, depth)
		}
	}
}

func (b *runBuilder) listItem(item ast.Node, marker string, depth int) {
	indent := strings.Repeat("  ", depth)
	first := true
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		if _, nested := child.(*ast.List); nested {
			b.block(child, depth+1)
			continue
		}
		if first {
			first = false
			b.startBlock(child)
			b.emit(KindBody, indent+marker)
			switch child.(type) {
			case *ast.Paragraph, *ast.TextBlock:
				b.inline(child, KindBody)
				b.endBlock(child)
			default:
				b.block(child, depth)
			}
			continue
		}
		b.block(child, depth)
	}
	if first {
		// Empty item still shows its marker.
		b.startBlock(item)
		b.emit(KindBody, indent+strings.TrimRight(marker, " "))
		b.endBlock(item)
	}
}

func (b *runBuilder) literalLines(n ast.Node, kind Kind) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := strings.TrimRight(string(seg.Value(b.src)), "\r\n")
		if i > 0 {
			b.pending = 1
		}
		if line == "" {
			// Keep blank lines inside literal blocks.
			if i > 0 {
				b.pending = 0
				b.col = 0
				b.push(b.blankRun(kind))
			}
			continue
		}
		b.emit(kind, line)
	}
}

// blankRun is an empty line inside a literal block.
func (b *runBuilder) blankRun(kind Kind) Run {
	r := b.styled(kind, "")
	r.Newlines = 1
	return r
}

func (b *runBuilder) inline(parent ast.Node, kind Kind) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		b.inlineNode(child, kind)
	}
}

func (b *runBuilder) inlineNode(n ast.Node, kind Kind) {
	switch node := n.(type) {
	case *ast.Text:
		b.emit(kind, string(node.Segment.Value(b.src)))
		if node.SoftLineBreak() || node.HardLineBreak() {
			b.pending = 1
		}
	case *ast.String:
		b.emit(kind, string(node.Value))
	case *ast.CodeSpan:
		var sb strings.Builder
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			switch t := c.(type) {
			case *ast.Text:
				sb.Write(t.Segment.Value(b.src))
			case *ast.String:
				sb.Write(t.Value)
			}
		}
		b.emit(KindCode, sb.String())
	case *ast.AutoLink:
		b.emit(kind, string(node.Label(b.src)))
	case *ast.RawHTML:
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			b.emit(kind, string(seg.Value(b.src)))
		}
	default:
		b.inline(n, kind)
	}
}

// firstOffset is the source offset of the first byte n covers, or -1.
func (b *runBuilder) firstOffset(n ast.Node) int {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0).Start
	}
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Start
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if off := b.firstOffset(c); off >= 0 {
			return off
		}
	}
	return -1
}

// lastOffset is the source offset just past the last byte n covers, or -1.
func (b *runBuilder) lastOffset(n ast.Node) int {
	end := -1
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		end = n.Lines().At(n.Lines().Len() - 1).Stop
	}
	if t, ok := n.(*ast.Text); ok {
		end = t.Segment.Stop
	}
	for c := n.LastChild(); c != nil; c = c.PreviousSibling() {
		if off := b.lastOffset(c); off > end {
			end = off
			break
		}
	}
	for end > 0 && end <= len(b.src) && (b.src[end-1] == '\n' || b.src[end-1] == '\r') {
		end--
	}
	return end
}

// blankLines counts whitespace-only lines strictly inside gap.
func blankLines(gap []byte) int {
	parts := strings.Split(string(gap), "\n")
	if len(parts) <= 2 {
		return 0
	}
	n := 0
	for _, p := range parts[1 : len(parts)-1] {
		if strings.TrimSpace(p) == "" {
			n++
		}
	}
	return n
}
