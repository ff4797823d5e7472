// Package inkpost is a content site engine built with Go, Echo, and
// templ. It renders author-written markdown documents (front matter +
// body) from durable object storage into enriched HTML and serves them
// through a read-through cache with explicit, admin-triggered
// invalidation.
package inkpost

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ayatori/inkpost/markdown"
)

// App is the central inkpost application. It wires together the object
// store, cache, repository, pipeline, handlers, and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Bucket ObjectStore
	Cache  Cache
	Repo   *Repository

	fetcher      markdown.RepoFetcher
	loginLimiter *loginLimiter
	customRoutes []func(*App)
	sqliteCache  *SQLiteCache
}

// New creates a new inkpost App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start initializes storage, cache, repository, middleware, and routes,
// then starts the server.
func (a *App) Start() error {
	if err := a.init(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) init() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("inkpost: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("inkpost: SessionSecret is required")
	}

	if a.Bucket == nil {
		bucket, err := NewFSBucket(a.Config.ContentDir)
		if err != nil {
			return fmt.Errorf("inkpost: init bucket: %w", err)
		}
		a.Bucket = bucket
	}

	if a.Cache == nil {
		if a.Config.CacheDB != "" {
			cache, err := NewSQLiteCache(a.Config.CacheDB)
			if err != nil {
				return fmt.Errorf("inkpost: init cache: %w", err)
			}
			a.sqliteCache = cache
			a.Cache = cache
		} else {
			a.Cache = NewMemoryCache()
		}
	}

	if a.fetcher == nil {
		a.fetcher = &markdown.GitHubClient{
			Token:      a.Config.GitHubToken,
			HTTPClient: &http.Client{Timeout: 10 * time.Second},
		}
	}

	a.Repo = NewRepository(a.Bucket, a.Cache, markdown.NewPipeline(a.fetcher))
	a.loginLimiter = newLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Static content served straight from the object store.
	e.GET("/images/*", a.handleImage)
	e.GET("/ogp/:slug", a.handleOgpImage)
	e.GET("/favicon.ico", a.handleFavicon)

	// Feeds.
	e.GET("/feed/", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)

	// Pages.
	e.GET("/", a.handleHome)
	e.GET("/page/:page/", a.handlePage)
	e.GET("/category/:category/", a.handleCategory)
	for _, slug := range a.Config.Pages {
		e.GET("/"+slug+"/", a.handleFixedPage(slug))
	}
	e.GET("/:year/:month/:day/:slug/", a.handlePost)

	// Admin-key APIs for external sync tooling.
	e.POST("/api/invalidate", a.handleInvalidate)
	e.GET("/api/objects", a.handleObjectList)

	// Session-authenticated admin dashboard.
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.POST("/admin/invalidate/", a.handleAdminInvalidate)
	e.POST("/admin/images/upload/", a.handleImageUpload)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.sqliteCache != nil {
		return a.sqliteCache.Close()
	}
	return nil
}
