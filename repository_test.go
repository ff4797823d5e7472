package inkpost

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/ayatori/inkpost/markdown"
)

// countingBucket is an in-memory ObjectStore recording how often each
// object is read.
type countingBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	reads   int
}

func newCountingBucket() *countingBucket {
	return &countingBucket{objects: make(map[string][]byte)}
}

func (b *countingBucket) List(ctx context.Context, prefix string) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	var keys []string
	for k := range b.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *countingBucket) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reads++
	data, ok := b.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return data, nil
}

func (b *countingBucket) Put(ctx context.Context, key string, data []byte) error {
	b.mu.Lock()
	b.objects[key] = data
	b.mu.Unlock()
	return nil
}

func (b *countingBucket) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	delete(b.objects, key)
	b.mu.Unlock()
	return nil
}

func (b *countingBucket) readCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.reads
}

func postDoc(title, slug, date string, extra string) []byte {
	return []byte("---\ntitle: " + title + "\nslug: " + slug + "\ndate: " + date + "\n" + extra + "---\n\nBody of " + title + ".")
}

func newTestRepo() (*Repository, *countingBucket) {
	bucket := newCountingBucket()
	ctx := context.Background()
	bucket.Put(ctx, "posts/a.md", postDoc("Post A", "post-a", "2024-01-01", ""))
	bucket.Put(ctx, "posts/b.md", postDoc("Post B", "post-b", "2024-02-01", "categories: [tech]\n"))
	bucket.Put(ctx, "posts/c.md", postDoc("Post C", "post-c", "2024-03-01", "categories: [tech, life]\n"))
	bucket.Put(ctx, "pages/about.md", postDoc("About", "about", "", "fixedPage: true\n"))
	repo := NewRepository(bucket, NewMemoryCache(), markdown.NewPipeline(nil))
	return repo, bucket
}

func TestListPostsOrderAndContent(t *testing.T) {
	repo, _ := newTestRepo()
	posts, err := repo.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	var slugs []string
	for _, p := range posts {
		slugs = append(slugs, p.Slug)
	}
	want := []string{"post-c", "post-b", "post-a"}
	if strings.Join(slugs, ",") != strings.Join(want, ",") {
		t.Errorf("slugs = %v, want %v", slugs, want)
	}
}

func TestListPostsCacheHit(t *testing.T) {
	repo, bucket := newTestRepo()
	ctx := context.Background()
	if _, err := repo.ListPosts(ctx); err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	first := bucket.readCount()
	if _, err := repo.ListPosts(ctx); err != nil {
		t.Fatalf("ListPosts (cached): %v", err)
	}
	if got := bucket.readCount(); got != first {
		t.Errorf("reads after cache hit = %d, want %d", got, first)
	}
}

func TestListPostsExcludesEmptySlug(t *testing.T) {
	repo, bucket := newTestRepo()
	ctx := context.Background()
	bucket.Put(ctx, "posts/draft.md", []byte("---\ntitle: Draft\ndate: 2024-04-01\n---\nNot ready."))
	posts, err := repo.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	for _, p := range posts {
		if p.Title == "Draft" {
			t.Errorf("post without slug listed: %+v", p)
		}
	}
}

func TestGetPostRendersAndCaches(t *testing.T) {
	repo, bucket := newTestRepo()
	ctx := context.Background()
	post, err := repo.GetPost(ctx, "post-b")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.Title != "Post B" {
		t.Errorf("Title = %q", post.Title)
	}
	if !strings.Contains(post.Content, "Body of Post B.") {
		t.Errorf("Content = %q", post.Content)
	}

	first := bucket.readCount()
	again, err := repo.GetPost(ctx, "post-b")
	if err != nil {
		t.Fatalf("GetPost (cached): %v", err)
	}
	if got := bucket.readCount(); got != first {
		t.Errorf("reads after cache hit = %d, want %d", got, first)
	}
	if again.Content != post.Content {
		t.Errorf("cached content differs")
	}
}

func TestGetPostFindsPages(t *testing.T) {
	repo, _ := newTestRepo()
	post, err := repo.GetPost(context.Background(), "about")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if post.Title != "About" || !post.FixedPage {
		t.Errorf("page meta = %+v", post.PostMeta)
	}
}

func TestGetPostNotFound(t *testing.T) {
	repo, _ := newTestRepo()
	_, err := repo.GetPost(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetPostsByCategory(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()
	tech, err := repo.GetPostsByCategory(ctx, "tech")
	if err != nil {
		t.Fatalf("GetPostsByCategory: %v", err)
	}
	if len(tech) != 2 || tech[0].Slug != "post-c" || tech[1].Slug != "post-b" {
		t.Errorf("tech = %+v", tech)
	}
	none, err := repo.GetPostsByCategory(ctx, "games")
	if err != nil {
		t.Fatalf("GetPostsByCategory: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("games = %+v, want empty", none)
	}
}

func TestGetAdjacentPosts(t *testing.T) {
	repo, _ := newTestRepo()
	ctx := context.Background()

	// Middle of the date-descending index: newer neighbor is next,
	// older neighbor is prev.
	next, prev, err := repo.GetAdjacentPosts(ctx, "post-b")
	if err != nil {
		t.Fatalf("GetAdjacentPosts: %v", err)
	}
	if next == nil || next.Slug != "post-c" {
		t.Errorf("next = %+v, want post-c", next)
	}
	if prev == nil || prev.Slug != "post-a" {
		t.Errorf("prev = %+v, want post-a", prev)
	}

	next, prev, err = repo.GetAdjacentPosts(ctx, "post-c")
	if err != nil {
		t.Fatalf("GetAdjacentPosts: %v", err)
	}
	if next != nil {
		t.Errorf("newest post should have no next: %+v", next)
	}
	if prev == nil || prev.Slug != "post-b" {
		t.Errorf("prev = %+v, want post-b", prev)
	}

	next, prev, err = repo.GetAdjacentPosts(ctx, "post-a")
	if err != nil {
		t.Fatalf("GetAdjacentPosts: %v", err)
	}
	if next == nil || next.Slug != "post-b" {
		t.Errorf("next = %+v, want post-b", next)
	}
	if prev != nil {
		t.Errorf("oldest post should have no prev: %+v", prev)
	}
}

func TestGetAdjacentPostsUnlisted(t *testing.T) {
	repo, _ := newTestRepo()
	next, prev, err := repo.GetAdjacentPosts(context.Background(), "about")
	if err != nil {
		t.Fatalf("GetAdjacentPosts: %v", err)
	}
	if next != nil || prev != nil {
		t.Errorf("unlisted slug should have no neighbors: %+v %+v", next, prev)
	}
}

func TestInvalidateCacheSlug(t *testing.T) {
	repo, bucket := newTestRepo()
	ctx := context.Background()
	if _, err := repo.GetPost(ctx, "post-a"); err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if _, err := repo.ListPosts(ctx); err != nil {
		t.Fatalf("ListPosts: %v", err)
	}

	bucket.Put(ctx, "posts/a.md", postDoc("Post A Updated", "post-a", "2024-01-01", ""))
	if err := repo.InvalidateCache(ctx, "post-a"); err != nil {
		t.Fatalf("InvalidateCache: %v", err)
	}

	post, err := repo.GetPost(ctx, "post-a")
	if err != nil {
		t.Fatalf("GetPost after invalidation: %v", err)
	}
	if post.Title != "Post A Updated" {
		t.Errorf("Title = %q, want updated content after invalidation", post.Title)
	}
	posts, err := repo.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts after invalidation: %v", err)
	}
	if posts[len(posts)-1].Title != "Post A Updated" {
		t.Errorf("index not rebuilt: %+v", posts)
	}
}

func TestInvalidateCacheAll(t *testing.T) {
	repo, bucket := newTestRepo()
	ctx := context.Background()
	for _, slug := range []string{"post-a", "post-b"} {
		if _, err := repo.GetPost(ctx, slug); err != nil {
			t.Fatalf("GetPost %s: %v", slug, err)
		}
	}
	if err := repo.InvalidateCache(ctx, ""); err != nil {
		t.Fatalf("InvalidateCache: %v", err)
	}

	before := bucket.readCount()
	if _, err := repo.GetPost(ctx, "post-a"); err != nil {
		t.Fatalf("GetPost after full invalidation: %v", err)
	}
	if got := bucket.readCount(); got == before {
		t.Errorf("expected storage reads after full invalidation")
	}
}

func TestParseDate(t *testing.T) {
	if parseDate("2024-01-15").IsZero() {
		t.Errorf("calendar date should parse")
	}
	if parseDate("2024-01-15T10:30:00Z").IsZero() {
		t.Errorf("RFC3339 date should parse")
	}
	if !parseDate("not a date").IsZero() {
		t.Errorf("garbage should sort as zero time")
	}
}
