package markdown

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

// countingFetcher records every lookup and serves canned metadata.
type countingFetcher struct {
	mu    sync.Mutex
	calls []string
	info  *RepoInfo
	err   error
}

func (f *countingFetcher) FetchRepo(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	f.mu.Lock()
	f.calls = append(f.calls, owner+"/"+repo)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func TestEnrichRepoLinksCard(t *testing.T) {
	fetcher := &countingFetcher{info: &RepoInfo{Description: "The Go language", Stars: 42, Language: "Go"}}
	p := NewPipeline(fetcher)
	got := p.EnrichRepoLinks(context.Background(), `<p><a href="https://github.com/golang/go">golang/go</a></p>`)
	if !strings.Contains(got, `<div class="github-repo">golang/go</div>`) {
		t.Errorf("missing repo name: %q", got)
	}
	if !strings.Contains(got, "The Go language") {
		t.Errorf("missing description: %q", got)
	}
	if !strings.Contains(got, "★ 42 · Go") {
		t.Errorf("missing meta line: %q", got)
	}
}

func TestEnrichRepoLinksDeduplicatesLookups(t *testing.T) {
	fetcher := &countingFetcher{info: &RepoInfo{Stars: 1}}
	p := NewPipeline(fetcher)
	in := `<p><a href="https://github.com/golang/go">one</a></p>` + "\n" +
		`<p>https://github.com/golang/go</p>` + "\n" +
		`<li><a href="https://github.com/golang/go">two</a></li>` + "\n" +
		`<p><a href="https://github.com/golang/go">one</a></p>`
	got := p.EnrichRepoLinks(context.Background(), in)
	if len(fetcher.calls) != 1 {
		t.Errorf("lookups = %d (%v), want 1", len(fetcher.calls), fetcher.calls)
	}
	if strings.Contains(got, `<p><a href="https://github.com/golang/go">`) {
		t.Errorf("reference left unreplaced: %q", got)
	}
}

func TestEnrichRepoLinksDistinctRepos(t *testing.T) {
	fetcher := &countingFetcher{info: &RepoInfo{}}
	p := NewPipeline(fetcher)
	in := `<p>https://github.com/golang/go</p>` + "\n" +
		`<p>https://github.com/labstack/echo</p>`
	p.EnrichRepoLinks(context.Background(), in)
	if len(fetcher.calls) != 2 {
		t.Errorf("lookups = %d (%v), want 2", len(fetcher.calls), fetcher.calls)
	}
}

func TestEnrichRepoLinksFailureFallsBack(t *testing.T) {
	fetcher := &countingFetcher{err: errors.New("rate limited")}
	p := NewPipeline(fetcher)
	got := p.EnrichRepoLinks(context.Background(), `<p>https://github.com/golang/go</p>`)
	if !strings.Contains(got, `<div class="github-repo">golang/go</div>`) {
		t.Errorf("bare card missing: %q", got)
	}
	if strings.Contains(got, "github-description") || strings.Contains(got, "github-meta") {
		t.Errorf("failed lookup should render no metadata: %q", got)
	}
}

func TestEnrichRepoLinksNoMatchesNoLookups(t *testing.T) {
	fetcher := &countingFetcher{}
	p := NewPipeline(fetcher)
	in := `<p>nothing to see</p>` + "\n" +
		`<p><a href="https://gist.github.com/gopher/abc123">gist</a></p>`
	got := p.EnrichRepoLinks(context.Background(), in)
	if got != in {
		t.Errorf("doc changed: %q", got)
	}
	if len(fetcher.calls) != 0 {
		t.Errorf("lookups = %v, want none", fetcher.calls)
	}
}

func TestEnrichRepoLinksNilFetcher(t *testing.T) {
	p := NewPipeline(nil)
	in := `<p><a href="https://github.com/golang/go">golang/go</a></p>`
	if got := p.EnrichRepoLinks(context.Background(), in); got != in {
		t.Errorf("nil fetcher should leave references untouched: %q", got)
	}
}

func TestRenderNilFetcherKeepsRepoLink(t *testing.T) {
	post, err := NewPipeline(nil).Render(context.Background(), "https://github.com/golang/go")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(post.Content, "github.com/golang/go") {
		t.Errorf("link lost: %q", post.Content)
	}
	if strings.Contains(post.Content, "embed-github") {
		t.Errorf("enrichment ran without a fetcher: %q", post.Content)
	}
}

func TestEnrichRepoLinksEscapesMetadata(t *testing.T) {
	fetcher := &countingFetcher{info: &RepoInfo{Description: `<b>"bold"</b>`}}
	p := NewPipeline(fetcher)
	got := p.EnrichRepoLinks(context.Background(), `<p>https://github.com/golang/go</p>`)
	if strings.Contains(got, "<b>") {
		t.Errorf("description not escaped: %q", got)
	}
}
