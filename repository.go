package inkpost

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/ayatori/inkpost/markdown"
)

// Cache keys. The index holds the date-descending PostMeta list; each
// rendered document is cached under its own doc:<slug> entry. Entries
// never expire — InvalidateCache is the only removal path, so the index
// and a document entry may transiently disagree after an out-of-band
// storage edit until invalidation runs.
const (
	cacheKeyIndex     = "index"
	cacheKeyDocPrefix = "doc:"
)

// Storage namespaces searched for documents.
const (
	nsPosts = "posts/"
	nsPages = "pages/"
)

// ErrNotFound is returned when no document carries the requested slug.
// It is distinct from transient storage errors.
var ErrNotFound = errors.New("inkpost: post not found")

// Repository serves parsed documents through a cache-aside layer over
// durable object storage.
type Repository struct {
	bucket   ObjectStore
	cache    Cache
	pipeline *markdown.Pipeline
}

// NewRepository wires a Repository from its collaborators.
func NewRepository(bucket ObjectStore, cache Cache, pipeline *markdown.Pipeline) *Repository {
	return &Repository{bucket: bucket, cache: cache, pipeline: pipeline}
}

// ListPosts returns the post index, date-descending, publishable posts
// only (empty slugs are excluded). On a cache miss it enumerates the
// whole posts namespace, parses front matter only, and caches the
// result without expiry. Objects that fail to read are skipped.
func (r *Repository) ListPosts(ctx context.Context) ([]markdown.PostMeta, error) {
	if cached, err := r.cache.Get(ctx, cacheKeyIndex); err == nil && cached != nil {
		var posts []markdown.PostMeta
		if err := json.Unmarshal(cached, &posts); err == nil {
			return posts, nil
		}
	}

	keys, err := r.bucket.List(ctx, nsPosts)
	if err != nil {
		return nil, err
	}

	posts := make([]markdown.PostMeta, 0, len(keys))
	for _, key := range keys {
		data, err := r.bucket.Get(ctx, key)
		if err != nil {
			log.Printf("skip unreadable object %s: %v", key, err)
			continue
		}
		meta := markdown.ParseMeta(string(data))
		if meta.Slug != "" {
			posts = append(posts, meta)
		}
	}

	// Date descending; ties keep storage enumeration order.
	sort.SliceStable(posts, func(i, j int) bool {
		return parseDate(posts[i].Date).After(parseDate(posts[j].Date))
	})

	if data, err := json.Marshal(posts); err == nil {
		if err := r.cache.Put(ctx, cacheKeyIndex, data); err != nil {
			log.Printf("cache index write failed: %v", err)
		}
	}
	return posts, nil
}

// GetPost returns the fully rendered document for slug, from cache if
// present. On a miss it searches the posts namespace, then pages, and
// renders the first front-matter slug match through the full pipeline.
func (r *Repository) GetPost(ctx context.Context, slug string) (markdown.Post, error) {
	cacheKey := cacheKeyDocPrefix + slug
	if cached, err := r.cache.Get(ctx, cacheKey); err == nil && cached != nil {
		var post markdown.Post
		if err := json.Unmarshal(cached, &post); err == nil {
			return post, nil
		}
	}

	for _, ns := range []string{nsPosts, nsPages} {
		keys, err := r.bucket.List(ctx, ns)
		if err != nil {
			return markdown.Post{}, err
		}
		for _, key := range keys {
			data, err := r.bucket.Get(ctx, key)
			if err != nil {
				continue
			}
			raw := string(data)
			if markdown.ParseMeta(raw).Slug != slug {
				continue
			}
			post, err := r.pipeline.Render(ctx, raw)
			if err != nil {
				return markdown.Post{}, err
			}
			if data, err := json.Marshal(post); err == nil {
				if err := r.cache.Put(ctx, cacheKey, data); err != nil {
					log.Printf("cache write for %s failed: %v", slug, err)
				}
			}
			return post, nil
		}
	}
	return markdown.Post{}, ErrNotFound
}

// GetPostsByCategory filters the index by category membership.
func (r *Repository) GetPostsByCategory(ctx context.Context, category string) ([]markdown.PostMeta, error) {
	posts, err := r.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	var filtered []markdown.PostMeta
	for _, p := range posts {
		for _, c := range p.Categories {
			if c == category {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered, nil
}

// GetAdjacentPosts locates slug in the date-descending index. Next is
// the newer neighbor, prev the older one; either is nil at the ends or
// when the slug is not listed.
func (r *Repository) GetAdjacentPosts(ctx context.Context, slug string) (next, prev *markdown.PostMeta, err error) {
	posts, err := r.ListPosts(ctx)
	if err != nil {
		return nil, nil, err
	}
	for i := range posts {
		if posts[i].Slug != slug {
			continue
		}
		if i > 0 {
			next = &posts[i-1]
		}
		if i < len(posts)-1 {
			prev = &posts[i+1]
		}
		return next, prev, nil
	}
	return nil, nil, nil
}

// InvalidateCache removes cache entries. With a slug it drops that
// document's entry plus the index; with an empty slug it drops the index
// and every cached document. This is the only path that ever removes
// entries.
func (r *Repository) InvalidateCache(ctx context.Context, slug string) error {
	if slug != "" {
		if err := r.cache.Delete(ctx, cacheKeyDocPrefix+slug); err != nil {
			return err
		}
		return r.cache.Delete(ctx, cacheKeyIndex)
	}
	if err := r.cache.Delete(ctx, cacheKeyIndex); err != nil {
		return err
	}
	keys, err := r.cache.Keys(ctx, cacheKeyDocPrefix)
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := r.cache.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// parseDate parses a front-matter date for ordering. Unparseable dates
// sort last.
func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
