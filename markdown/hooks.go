package markdown

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Characters kept when deriving a heading id: word characters, kana,
// kanji, whitespace, and hyphens. Everything else is stripped.
var (
	reHeadingStrip    = regexp.MustCompile(`[^\w\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FFF}\s-]`)
	reHeadingSpaces   = regexp.MustCompile(`\s+`)
	reHeadingHyphens  = regexp.MustCompile(`-+`)
	reHeadingTrimEnds = regexp.MustCompile(`^-|-$`)
)

// headingID derives a URL-safe anchor id from heading text.
func headingID(text string) string {
	id := strings.ToLower(text)
	id = reHeadingStrip.ReplaceAllString(id, "")
	id = reHeadingSpaces.ReplaceAllString(id, "-")
	id = reHeadingHyphens.ReplaceAllString(id, "-")
	return reHeadingTrimEnds.ReplaceAllString(id, "")
}

// renderHooks overrides goldmark's heading and fenced-code rendering.
// Level 2 and 3 headings get stable anchor ids and are recorded for the
// table of contents; fenced code is emitted escaped with a language class
// so a presentation-layer script can highlight it client side.
//
// A renderHooks instance carries per-document state, so every render
// builds a fresh goldmark engine around a fresh instance.
type renderHooks struct {
	toc     []TocItem
	seenIDs map[string]int
}

func newRenderHooks() *renderHooks {
	return &renderHooks{seenIDs: make(map[string]int)}
}

func (r *renderHooks) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
}

// assignID returns a unique id for the heading text, suffixing -<n> on
// the n-th repeat of the same base id.
func (r *renderHooks) assignID(text string) string {
	id := headingID(text)
	count := r.seenIDs[id]
	r.seenIDs[id] = count + 1
	if count > 0 {
		return id + "-" + strconv.Itoa(count)
	}
	return id
}

func (r *renderHooks) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if !entering {
		_, _ = w.WriteString("</h" + strconv.Itoa(n.Level) + ">\n")
		return ast.WalkContinue, nil
	}
	if n.Level == 2 || n.Level == 3 {
		text := plainText(n, source)
		id := r.assignID(text)
		r.toc = append(r.toc, TocItem{Level: n.Level, Text: text, ID: id})
		_, _ = fmt.Fprintf(w, `<h%d id="%s">`, n.Level, id)
	} else {
		_, _ = fmt.Fprintf(w, "<h%d>", n.Level)
	}
	return ast.WalkContinue, nil
}

func (r *renderHooks) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	lang := "text"
	if l := n.Language(source); len(l) > 0 {
		lang = string(l)
	}
	var code strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}
	_, _ = fmt.Fprintf(w, "<pre><code class=\"language-%s\">%s</code></pre>\n",
		html.EscapeString(lang), html.EscapeString(code.String()))
	return ast.WalkSkipChildren, nil
}

// plainText collects the literal text of a node's subtree, ignoring
// inline markup.
func plainText(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
		case *ast.String:
			b.Write(t.Value)
		default:
			b.WriteString(plainText(c, source))
		}
	}
	return b.String()
}
