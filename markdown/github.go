package markdown

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/http"
	"regexp"
	"strings"
	"sync"
)

// RepoInfo is the metadata a lookup returns for one repository.
type RepoInfo struct {
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Language    string `json:"language"`
}

// RepoFetcher looks up repository metadata from an external source.
// Implementations may fail; the enricher treats any error as "no
// metadata" and never aborts a render over it.
type RepoFetcher interface {
	FetchRepo(ctx context.Context, owner, repo string) (*RepoInfo, error)
}

// GitHubClient fetches repository metadata from the GitHub REST API.
// The zero value is usable; BaseURL and HTTPClient exist for tests.
type GitHubClient struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// FetchRepo performs one GET /repos/{owner}/{repo} call.
func (c *GitHubClient) FetchRepo(ctx context.Context, owner, repo string) (*RepoInfo, error) {
	base := c.BaseURL
	if base == "" {
		base = "https://api.github.com"
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/repos/%s/%s", base, owner, repo), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "inkpost")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github repo %s/%s: %w", owner, repo, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github repo %s/%s: status %d", owner, repo, resp.StatusCode)
	}

	var info RepoInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("github repo %s/%s: decode: %w", owner, repo, err)
	}
	return &info, nil
}

// Repository URLs in the same three surface contexts as the embed
// converter, but for the github.com domain proper (gist.github.com never
// matches because the scheme separator must directly precede the host).
var (
	reRepoLink = regexp.MustCompile(`<p><a href="https?://github\.com/([\w.-]+)/([\w.-]+)/?">[^<]*</a></p>`)
	reRepoBare = regexp.MustCompile(`<p>https?://github\.com/([\w.-]+)/([\w.-]+)/?</p>`)
	reRepoItem = regexp.MustCompile(`<li><a href="https?://github\.com/([\w.-]+)/([\w.-]+)/?">[^<]*</a>`)
)

// repoRef is one matched reference: the exact substring to replace, the
// wrapper prefix to re-emit, and the captured owner/repository pair.
type repoRef struct {
	match  string
	prefix string
	owner  string
	repo   string
}

func collectRepoRefs(doc string) []repoRef {
	var refs []repoRef
	for _, pat := range []struct {
		re     *regexp.Regexp
		prefix string
	}{
		{reRepoLink, ""},
		{reRepoBare, ""},
		{reRepoItem, "<li>"},
	} {
		for _, m := range pat.re.FindAllStringSubmatch(doc, -1) {
			refs = append(refs, repoRef{match: m[0], prefix: pat.prefix, owner: m[1], repo: m[2]})
		}
	}
	return refs
}

// EnrichRepoLinks replaces repository references with rich cards. One
// concurrent lookup runs per unique owner/repository pair regardless of
// how often the pair appears; a failed lookup renders a card without
// description or stats. With no matches the input is returned unchanged
// and no lookup is issued. Without a fetcher the stage is a no-op and
// references stay ordinary links.
func (p *Pipeline) EnrichRepoLinks(ctx context.Context, doc string) string {
	if p.fetcher == nil {
		return doc
	}
	refs := collectRepoRefs(doc)
	if len(refs) == 0 {
		return doc
	}

	type pair struct{ owner, repo string }
	results := make(map[pair]*RepoInfo)
	for _, r := range refs {
		results[pair{r.owner, r.repo}] = nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for k := range results {
		wg.Add(1)
		go func(k pair) {
			defer wg.Done()
			info, err := p.fetcher.FetchRepo(ctx, k.owner, k.repo)
			if err != nil {
				log.Printf("repo lookup %s/%s failed: %v", k.owner, k.repo, err)
				return
			}
			mu.Lock()
			results[k] = info
			mu.Unlock()
		}(k)
	}
	wg.Wait()

	replaced := make(map[string]bool)
	for _, r := range refs {
		if replaced[r.match] {
			continue
		}
		replaced[r.match] = true
		card := repoCard(r.owner, r.repo, results[pair{r.owner, r.repo}])
		doc = strings.ReplaceAll(doc, r.match, r.prefix+card)
	}
	return doc
}

func repoCard(owner, repo string, info *RepoInfo) string {
	full := owner + "/" + repo
	var b strings.Builder
	b.WriteString(`<div class="embed-card embed-github">`)
	b.WriteString(`<a href="https://github.com/` + full + `" class="github-card" rel="noopener" target="_blank">`)
	b.WriteString(`<div class="github-repo">` + html.EscapeString(full) + `</div>`)
	if info != nil {
		if info.Description != "" {
			b.WriteString(`<div class="github-description">` + html.EscapeString(info.Description) + `</div>`)
		}
		meta := fmt.Sprintf("★ %d", info.Stars)
		if info.Language != "" {
			meta += " · " + info.Language
		}
		b.WriteString(`<div class="github-meta">` + html.EscapeString(meta) + `</div>`)
	}
	b.WriteString(`</a></div>`)
	return b.String()
}
