package markdown

import (
	"strings"
	"testing"
)

func TestConvertEmbedsTweetLink(t *testing.T) {
	in := `<p><a href="https://x.com/gopher/status/12345">a tweet</a></p>`
	got := ConvertEmbeds(in)
	if !strings.Contains(got, `class="twitter-tweet"`) {
		t.Errorf("not converted: %q", got)
	}
	if !strings.Contains(got, "https://twitter.com/gopher/status/12345") {
		t.Errorf("x.com not normalized to twitter.com: %q", got)
	}
	if !strings.Contains(got, `data-dnt="true"`) {
		t.Errorf("missing data-dnt: %q", got)
	}
}

func TestConvertEmbedsTweetBare(t *testing.T) {
	in := `<p>https://twitter.com/gopher/status/67890</p>`
	got := ConvertEmbeds(in)
	if !strings.Contains(got, "https://twitter.com/gopher/status/67890") ||
		!strings.Contains(got, "embed-twitter") {
		t.Errorf("bare URL not converted: %q", got)
	}
}

func TestConvertEmbedsTweetListItem(t *testing.T) {
	in := `<li><a href="https://x.com/gopher/status/12345">t</a></li>`
	got := ConvertEmbeds(in)
	if !strings.HasPrefix(got, "<li><div") {
		t.Errorf("list item wrapper lost: %q", got)
	}
	if !strings.HasSuffix(got, "</li>") {
		t.Errorf("closing li lost: %q", got)
	}
}

func TestConvertEmbedsYouTube(t *testing.T) {
	tests := []string{
		`<p><a href="https://www.youtube.com/watch?v=dQw4w9WgXcQ">video</a></p>`,
		`<p><a href="https://youtu.be/dQw4w9WgXcQ">video</a></p>`,
		`<p>https://www.youtube.com/watch?v=dQw4w9WgXcQ</p>`,
		`<p>https://youtu.be/dQw4w9WgXcQ</p>`,
	}
	for _, in := range tests {
		got := ConvertEmbeds(in)
		if !strings.Contains(got, "https://www.youtube.com/embed/dQw4w9WgXcQ") {
			t.Errorf("ConvertEmbeds(%q) = %q, want embed iframe", in, got)
		}
	}
}

func TestConvertEmbedsGist(t *testing.T) {
	in := `<p><a href="https://gist.github.com/gopher/abc123">gist</a></p>`
	got := ConvertEmbeds(in)
	if !strings.Contains(got, `<script src="https://gist.github.com/gopher/abc123.js"></script>`) {
		t.Errorf("gist not converted: %q", got)
	}
}

func TestConvertEmbedsAmazonKeepsTitle(t *testing.T) {
	in := `<p><a href="https://www.amazon.co.jp/dp/B0ABCDEFGH">Go言語の本</a></p>`
	got := ConvertEmbeds(in)
	if !strings.Contains(got, "embed-amazon") {
		t.Errorf("not converted: %q", got)
	}
	if !strings.Contains(got, `<span class="amazon-title">Go言語の本</span>`) {
		t.Errorf("title lost: %q", got)
	}
	if !strings.Contains(got, `rel="nofollow noopener"`) {
		t.Errorf("missing rel: %q", got)
	}
}

func TestConvertEmbedsAmazonShortBare(t *testing.T) {
	in := `<p>https://amzn.to/3abc</p>`
	got := ConvertEmbeds(in)
	if !strings.Contains(got, "embed-amazon") {
		t.Errorf("short link not converted: %q", got)
	}
	if !strings.Contains(got, `<span class="amazon-title">https://amzn.to/3abc</span>`) {
		t.Errorf("bare URL should become the title: %q", got)
	}
}

func TestConvertEmbedsAmazonAsia(t *testing.T) {
	in := `<p>https://amzn.asia/d/abc123</p>`
	got := ConvertEmbeds(in)
	if !strings.Contains(got, "embed-amazon") {
		t.Errorf("amzn.asia link not converted: %q", got)
	}
}

func TestConvertEmbedsUnmatchedUntouched(t *testing.T) {
	tests := []string{
		`<p><a href="https://example.com/page">a link</a></p>`,
		`<p>plain paragraph</p>`,
		`<p><a href="https://www.amazon.co.jp/help">not a product</a></p>`,
	}
	for _, in := range tests {
		if got := ConvertEmbeds(in); got != in {
			t.Errorf("ConvertEmbeds(%q) = %q, want unchanged", in, got)
		}
	}
}
