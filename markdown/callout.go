package markdown

import (
	"regexp"
	"strings"
)

// calloutStyle maps a callout keyword to its presentation.
type calloutStyle struct {
	Icon  string
	Label string
	Class string
}

var calloutStyles = map[string]calloutStyle{
	"NOTE":      {Icon: "ℹ️", Label: "Note", Class: "alert-note"},
	"TIP":       {Icon: "💡", Label: "Tip", Class: "alert-tip"},
	"IMPORTANT": {Icon: "📝", Label: "Important", Class: "alert-important"},
	"WARNING":   {Icon: "⚠️", Label: "Warning", Class: "alert-warning"},
	"CAUTION":   {Icon: "❗", Label: "Caution", Class: "alert-caution"},
}

// A blockquote whose sole paragraph opens with a [!KEYWORD] marker.
var reCallout = regexp.MustCompile(`(?is)<blockquote>\s*<p>\[!(NOTE|TIP|IMPORTANT|WARNING|CAUTION)\]\s*\n?(.*?)</p>\s*</blockquote>`)

// ConvertCallouts rewrites marker blockquotes into styled alert blocks.
// Blockquotes that do not match the exact shape are left untouched.
func ConvertCallouts(doc string) string {
	return reCallout.ReplaceAllStringFunc(doc, func(m string) string {
		sub := reCallout.FindStringSubmatch(m)
		style, ok := calloutStyles[strings.ToUpper(sub[1])]
		if !ok {
			return m
		}
		content := strings.TrimSpace(sub[2])
		return `<div class="github-alert ` + style.Class + `">` +
			`<div class="alert-title">` + style.Icon + ` ` + style.Label + `</div>` +
			`<div class="alert-content"><p>` + content + `</p></div>` +
			`</div>`
	})
}
