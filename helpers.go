package inkpost

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/ayatori/inkpost/markdown"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
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

// PostPath returns the canonical dated path for a post, e.g.
// /2024/01/15/hello/. Posts with unparseable dates fall back to /<slug>/.
func PostPath(meta markdown.PostMeta) string {
	t, err := time.Parse("2006-01-02", meta.Date)
	if err != nil {
		return "/" + meta.Slug + "/"
	}
	return fmt.Sprintf("/%04d/%02d/%02d/%s/", t.Year(), t.Month(), t.Day(), meta.Slug)
}

// PostURL returns the absolute canonical URL for a post.
func PostURL(base string, meta markdown.PostMeta) string {
	return strings.TrimSuffix(base, "/") + PostPath(meta)
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("inkpost: required environment variable %s is not set", key)
	}
	return v
}
