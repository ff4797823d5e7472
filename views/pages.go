package views

import (
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/ayatori/inkpost/markdown"
)

// PostList renders a paginated post listing, optionally filtered by
// category.
func PostList(site Site, posts []markdown.PostMeta, category string, page, totalPages int) templ.Component {
	title := ""
	if category != "" {
		title = "Category: " + category
	}
	meta := PageMeta{
		Title:  title,
		URL:    buildURL(site.URL),
		OGType: "website",
	}
	return layout(site, meta, func(w io.Writer) {
		fmt.Fprintf(w, `<script type="application/ld+json">%s</script>`, WebsiteJsonLD(site))
		if category != "" {
			fmt.Fprintf(w, `<h1 class="list-title">%s</h1>`, esc(category))
		}
		io.WriteString(w, `<ul class="post-list">`)
		for _, p := range posts {
			fmt.Fprintf(w, `<li class="post-list-item"><a href="%s">`, esc(postPath(p)))
			fmt.Fprintf(w, `<time datetime="%s">%s</time> <span class="post-title">%s</span></a>`,
				esc(p.Date), esc(p.Date), esc(p.Title))
			if p.Excerpt != "" {
				fmt.Fprintf(w, `<p class="post-excerpt">%s</p>`, esc(p.Excerpt))
			}
			if len(p.Categories) > 0 {
				io.WriteString(w, `<span class="post-categories">`)
				for _, cat := range p.Categories {
					fmt.Fprintf(w, `<a class="category" href="%s">%s</a>`, esc(categoryPath(cat)), esc(cat))
				}
				io.WriteString(w, `</span>`)
			}
			io.WriteString(w, `</li>`)
		}
		io.WriteString(w, `</ul>`)
		pagination(w, page, totalPages)
	})
}

// pagination writes prev/next page links. Single-page lists get nothing.
func pagination(w io.Writer, page, totalPages int) {
	if totalPages <= 1 {
		return
	}
	io.WriteString(w, `<nav class="pagination">`)
	if page > 1 {
		prev := "/"
		if page > 2 {
			prev = fmt.Sprintf("/page/%d/", page-1)
		}
		fmt.Fprintf(w, `<a class="pagination-prev" href="%s">&laquo; Newer</a>`, prev)
	}
	fmt.Fprintf(w, `<span class="pagination-current">%d / %d</span>`, page, totalPages)
	if page < totalPages {
		fmt.Fprintf(w, `<a class="pagination-next" href="/page/%d/">Older &raquo;</a>`, page+1)
	}
	io.WriteString(w, `</nav>`)
}

// PostView renders a single document with adjacent-post navigation.
// Fixed pages suppress the share block and navigation.
func PostView(site Site, post markdown.Post, next, prev *markdown.PostMeta) templ.Component {
	meta := PageMeta{
		Title:       post.Title,
		Description: post.Excerpt,
		URL:         strings.TrimSuffix(site.URL, "/") + postPath(post.PostMeta),
		OGType:      "article",
		Image:       strings.TrimSuffix(site.URL, "/") + "/ogp/" + post.Slug + ".png",
	}
	return layout(site, meta, func(w io.Writer) {
		fmt.Fprintf(w, `<script type="application/ld+json">%s</script>`, BlogPostingJsonLD(site, post.PostMeta))
		io.WriteString(w, `<article class="post">`)
		fmt.Fprintf(w, `<h1 class="post-title">%s</h1>`, esc(post.Title))
		if !post.FixedPage {
			fmt.Fprintf(w, `<p class="post-date"><time datetime="%s">%s</time></p>`, esc(post.Date), esc(post.Date))
			if len(post.Categories) > 0 {
				io.WriteString(w, `<p class="post-categories">`)
				for _, cat := range post.Categories {
					fmt.Fprintf(w, `<a class="category" href="%s">%s</a>`, esc(categoryPath(cat)), esc(cat))
				}
				io.WriteString(w, `</p>`)
			}
		}
		// Enriched pipeline output; trusted author content.
		fmt.Fprintf(w, `<div class="post-content">%s</div>`, post.Content)
		if !post.FixedPage {
			fmt.Fprintf(w, `<script type="text/plain" id="raw-markdown">%s</script>`, post.RawContent)
			io.WriteString(w, `<p class="post-copy"><button data-copy-target="raw-markdown">Copy as Markdown</button></p>`)
		}
		io.WriteString(w, `</article>`)

		if !post.FixedPage && (next != nil || prev != nil) {
			io.WriteString(w, `<nav class="adjacent-posts">`)
			if next != nil {
				fmt.Fprintf(w, `<a class="adjacent-next" href="%s">&laquo; %s</a>`, esc(postPath(*next)), esc(next.Title))
			}
			if prev != nil {
				fmt.Fprintf(w, `<a class="adjacent-prev" href="%s">%s &raquo;</a>`, esc(postPath(*prev)), esc(prev.Title))
			}
			io.WriteString(w, `</nav>`)
		}

		if strings.Contains(post.Content, "twitter-tweet") {
			io.WriteString(w, `<script async src="https://platform.twitter.com/widgets.js" charset="utf-8"></script>`)
		}
	})
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	meta := PageMeta{Title: "Not Found", URL: buildURL(site.URL)}
	return layout(site, meta, func(w io.Writer) {
		io.WriteString(w, `<h1>404 Not Found</h1><p>お探しのページは見つかりませんでした。</p><p><a href="/">トップへ戻る</a></p>`)
	})
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	meta := PageMeta{Title: "Server Error", URL: buildURL(site.URL)}
	return layout(site, meta, func(w io.Writer) {
		io.WriteString(w, `<h1>500 Server Error</h1><p>しばらくしてからもう一度お試しください。</p>`)
	})
}
