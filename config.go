package inkpost

import "github.com/ayatori/inkpost/markdown"

// SiteConfig holds all configuration for an inkpost site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr string // Listen address (default ":3000")

	ContentDir string // Object store root (default "content")
	CacheDB    string // SQLite cache path; empty means in-memory cache

	PerPage int      // Posts per list page (default 10)
	Pages   []string // Fixed-page slugs served at /<slug>/ (default about, privacypolicy)

	AdminKey      string // Required for the invalidation/object APIs
	AdminPassword string // Required: admin dashboard password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	GitHubToken string // Optional token for repository metadata lookups
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content"
	}
	if c.PerPage == 0 {
		c.PerPage = 10
	}
	if c.Pages == nil {
		c.Pages = []string{"about", "privacypolicy"}
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithObjectStore overrides the default filesystem bucket, e.g. for a
// remote store implementation.
func WithObjectStore(store ObjectStore) Option {
	return func(a *App) {
		a.Bucket = store
	}
}

// WithCache overrides the cache implementation.
func WithCache(cache Cache) Option {
	return func(a *App) {
		a.Cache = cache
	}
}

// WithRepoFetcher overrides the repository metadata source used by the
// enrichment stage.
func WithRepoFetcher(f markdown.RepoFetcher) Option {
	return func(a *App) {
		a.fetcher = f
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
