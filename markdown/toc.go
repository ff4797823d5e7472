package markdown

import (
	"fmt"
	"html"
	"strings"
)

// tocMinItems is the heading count below which no table of contents is
// rendered.
const tocMinItems = 3

// BuildToc renders the collected heading stream as nested-list
// navigation HTML. Depth changes between consecutive items open or close
// one nested list level each; jumps repeat the tag the appropriate
// number of times.
func BuildToc(items []TocItem) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<nav class="toc"><details><summary>目次</summary><ul>`)
	prev := 2
	for _, item := range items {
		if item.Level > prev {
			b.WriteString(strings.Repeat("<ul>", item.Level-prev))
		} else if item.Level < prev {
			b.WriteString(strings.Repeat("</ul>", prev-item.Level))
		}
		fmt.Fprintf(&b, `<li><a href="#%s">%s</a></li>`, item.ID, html.EscapeString(item.Text))
		prev = item.Level
	}
	b.WriteString(strings.Repeat("</ul>", prev-1))
	b.WriteString("</details></nav>")
	return b.String()
}
