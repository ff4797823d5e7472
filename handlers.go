package inkpost

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ayatori/inkpost/views"
)

var reDatePart = regexp.MustCompile(`^\d{2,4}$`)

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
	}
}

func (a *App) handleHome(c echo.Context) error {
	return a.renderListPage(c, 1)
}

func (a *App) handlePage(c echo.Context) error {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil || page < 1 {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
	}
	return a.renderListPage(c, page)
}

func (a *App) renderListPage(c echo.Context, page int) error {
	posts, err := a.Repo.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	perPage := a.Config.PerPage
	totalPages := (len(posts) + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > len(posts) {
		start = len(posts)
	}
	end := start + perPage
	if end > len(posts) {
		end = len(posts)
	}
	paged := posts[start:end]

	if len(paged) == 0 && page > 1 {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
	}
	return Render(c, views.PostList(a.site(), paged, "", page, totalPages))
}

func (a *App) handleCategory(c echo.Context) error {
	category := c.Param("category")
	posts, err := a.Repo.GetPostsByCategory(c.Request().Context(), category)
	if err != nil {
		return err
	}
	return Render(c, views.PostList(a.site(), posts, category, 1, 1))
}

func (a *App) handleFixedPage(slug string) echo.HandlerFunc {
	return func(c echo.Context) error {
		post, err := a.Repo.GetPost(c.Request().Context(), slug)
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		if err != nil {
			return err
		}
		return Render(c, views.PostView(a.site(), post, nil, nil))
	}
}

func (a *App) handlePost(c echo.Context) error {
	year, month, day := c.Param("year"), c.Param("month"), c.Param("day")
	slug := c.Param("slug")
	if !reDatePart.MatchString(year) || !reDatePart.MatchString(month) || !reDatePart.MatchString(day) {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
	}

	ctx := c.Request().Context()
	post, err := a.Repo.GetPost(ctx, slug)
	if errors.Is(err, ErrNotFound) {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
	}
	if err != nil {
		return err
	}

	// Redirect to the canonical dated URL when the path date is off.
	if _, err := time.Parse("2006-01-02", post.Date); err == nil {
		canonical := PostPath(post.PostMeta)
		got := "/" + year + "/" + month + "/" + day + "/" + slug + "/"
		if got != canonical {
			return c.Redirect(http.StatusMovedPermanently, canonical)
		}
	}

	next, prev, err := a.Repo.GetAdjacentPosts(ctx, slug)
	if err != nil {
		return err
	}
	return Render(c, views.PostView(a.site(), post, next, prev))
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Repo.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	if len(posts) > 20 {
		posts = posts[:20]
	}
	return a.renderRSS(c, posts)
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Repo.ListPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

// adminKeyOK verifies the X-Admin-Key header against the configured key.
// A missing configuration refuses everything.
func (a *App) adminKeyOK(c echo.Context) bool {
	if a.Config.AdminKey == "" {
		return false
	}
	key := c.Request().Header.Get("X-Admin-Key")
	return subtle.ConstantTimeCompare([]byte(key), []byte(a.Config.AdminKey)) == 1
}

func (a *App) handleInvalidate(c echo.Context) error {
	if !a.adminKeyOK(c) {
		return c.String(http.StatusUnauthorized, "Unauthorized")
	}
	slug := c.QueryParam("slug")
	if err := a.Repo.InvalidateCache(c.Request().Context(), slug); err != nil {
		return err
	}
	scope := slug
	if scope == "" {
		scope = "all"
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true, "slug": scope})
}

// handleObjectList exposes object keys for external sync tooling.
func (a *App) handleObjectList(c echo.Context) error {
	if !a.adminKeyOK(c) {
		return c.String(http.StatusUnauthorized, "Unauthorized")
	}
	keys, err := a.Bucket.List(c.Request().Context(), c.QueryParam("prefix"))
	if err != nil {
		return err
	}
	if keys == nil {
		keys = []string{}
	}
	return c.JSON(http.StatusOK, map[string]any{"objects": keys})
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.site()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
