// Package markdown turns raw author-written documents (front matter +
// markdown body) into enriched, navigable HTML. Core block and inline
// parsing is delegated to goldmark; this package customizes the heading
// and fenced-code render hooks and runs an ordered sequence of
// HTML-level transforms on top: callouts, provider embeds, repository
// card enrichment, table of contents, and emoji substitution.
package markdown

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Pipeline renders documents. Every stage but the repository enrichment
// is a pure local transform; the enricher is the only stage that touches
// the network.
type Pipeline struct {
	fetcher RepoFetcher
}

// NewPipeline creates a Pipeline using fetcher for repository metadata
// lookups. A nil fetcher disables the enrichment stage.
func NewPipeline(fetcher RepoFetcher) *Pipeline {
	return &Pipeline{fetcher: fetcher}
}

// Render runs the full pipeline over one raw document and assembles the
// final Post. Stage order is fixed: front-matter split, goldmark
// conversion with render hooks, callouts, embeds, repository enrichment,
// ToC prepend, emoji substitution.
func (p *Pipeline) Render(ctx context.Context, raw string) (Post, error) {
	data, body := SplitFrontMatter(raw)

	// Heading/code hooks carry per-document state, so each render gets
	// its own goldmark engine.
	hooks := newRenderHooks()
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			ghtml.WithUnsafe(),
			renderer.WithNodeRenderers(util.Prioritized(hooks, 100)),
		),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(body), &buf); err != nil {
		return Post{}, fmt.Errorf("markdown convert: %w", err)
	}
	doc := buf.String()

	doc = ConvertCallouts(doc)
	doc = ConvertEmbeds(doc)
	doc = p.EnrichRepoLinks(ctx, doc)

	meta := metaFromData(data, body)

	if !meta.FixedPage && len(hooks.toc) >= tocMinItems {
		doc = BuildToc(hooks.toc) + doc
	}

	// Last, so shortcodes introduced by the ToC and callout stages are
	// covered too.
	doc = ConvertEmoji(doc)

	return Post{
		PostMeta:   meta,
		Content:    doc,
		RawContent: neutralizeRawContent(body),
	}, nil
}

// neutralizeRawContent defuses closing script tags so the raw body can
// later be embedded as literal, non-executing text.
func neutralizeRawContent(body string) string {
	return strings.ReplaceAll(body, "</script>", `<\/script>`)
}
