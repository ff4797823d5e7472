package views

import (
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/ayatori/inkpost/markdown"
)

func esc(s string) string {
	return html.EscapeString(s)
}

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// postPath returns the dated path for a post, e.g. /2024/01/15/hello/.
func postPath(meta markdown.PostMeta) string {
	t, err := time.Parse("2006-01-02", meta.Date)
	if err != nil {
		return "/" + meta.Slug + "/"
	}
	return fmt.Sprintf("/%04d/%02d/%02d/%s/", t.Year(), t.Month(), t.Day(), meta.Slug)
}

// categoryPath returns the listing path for a category.
func categoryPath(category string) string {
	return "/category/" + url.PathEscape(category) + "/"
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block.
func WebsiteJsonLD(site Site) string {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Name,
		"url":      buildURL(site.URL),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	if site.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block.
func BlogPostingJsonLD(site Site, meta markdown.PostMeta) string {
	postURL := strings.TrimSuffix(site.URL, "/") + postPath(meta)
	data := map[string]any{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      meta.Title,
		"description":   meta.Excerpt,
		"datePublished": meta.Date,
		"url":           postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if site.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Author,
		}
	}
	if len(meta.Categories) > 0 {
		data["keywords"] = strings.Join(meta.Categories, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
