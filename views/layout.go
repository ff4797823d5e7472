// Package views holds the site's templ components, written by hand as
// templ.ComponentFunc wrappers over direct HTML writing.
package views

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// layout wraps body HTML in the shared document layout.
func layout(site Site, meta PageMeta, body func(w io.Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := site.Name
		if meta.Title != "" {
			title = meta.Title + " | " + site.Name
		}
		desc := meta.Description
		if desc == "" {
			desc = site.Description
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		image := meta.Image
		if image == "" {
			image = strings.TrimSuffix(site.URL, "/") + "/ogp/default.png"
		}

		fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s</title>
<meta name="description" content="%s">
<link rel="canonical" href="%s">
<link rel="alternate" type="application/rss+xml" title="%s" href="/feed/">
<meta property="og:title" content="%s">
<meta property="og:description" content="%s">
<meta property="og:type" content="%s">
<meta property="og:url" content="%s">
<meta property="og:image" content="%s">
<meta name="twitter:card" content="summary_large_image">
<link rel="stylesheet" href="/images/assets/site.css">
</head>
<body>
<header class="site-header"><a href="/">%s</a></header>
<main>
`,
			esc(title), esc(desc), esc(meta.URL), esc(site.Name),
			esc(meta.Title), esc(desc), esc(ogType), esc(meta.URL), esc(image),
			esc(site.Name))

		body(w)

		fmt.Fprintf(w, `</main>
<footer class="site-footer"><p>© %s</p></footer>
</body>
</html>
`, esc(site.Name))
		return nil
	})
}
