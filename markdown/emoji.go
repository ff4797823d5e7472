package markdown

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kyokomi/emoji/v2"
)

var (
	rePreRegion  = regexp.MustCompile(`(?is)<pre[^>]*>.*?</pre>`)
	reCodeRegion = regexp.MustCompile(`(?is)<code[^>]*>.*?</code>`)
	reShortcode  = regexp.MustCompile(`:[a-zA-Z0-9_+-]+:`)
)

// ConvertEmoji replaces :shortcode: sequences with their glyphs. Rendered
// <pre> and <code> regions are extracted to indexed placeholders first
// and restored verbatim afterwards, so code samples keep their literal
// bytes. Unknown shortcodes are left as written.
func ConvertEmoji(doc string) string {
	var regions []string
	stash := func(m string) string {
		placeholder := "\x00CB" + strconv.Itoa(len(regions)) + "\x00"
		regions = append(regions, m)
		return placeholder
	}
	doc = rePreRegion.ReplaceAllStringFunc(doc, stash)
	doc = reCodeRegion.ReplaceAllStringFunc(doc, stash)

	codes := emoji.CodeMap()
	doc = reShortcode.ReplaceAllStringFunc(doc, func(m string) string {
		if glyph, ok := codes[m]; ok {
			return glyph
		}
		return m
	})

	for i, region := range regions {
		doc = strings.Replace(doc, "\x00CB"+strconv.Itoa(i)+"\x00", region, 1)
	}
	return doc
}
