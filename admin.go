package inkpost

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ayatori/inkpost/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(a.site(), false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, views.AdminLogin(a.site(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminInvalidate drops cache entries from the dashboard: a posted
// slug drops one document plus the index, an empty slug drops everything.
func (a *App) handleAdminInvalidate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := strings.TrimSpace(c.FormValue("slug"))
	if err := a.Repo.InvalidateCache(c.Request().Context(), slug); err != nil {
		return err
	}
	msg := "cache cleared"
	if slug != "" {
		msg = "invalidated " + slug
	}
	return a.renderAdminDashboard(c, msg)
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	ctx := c.Request().Context()
	posts, err := a.Repo.ListPosts(ctx)
	if err != nil {
		return err
	}
	cached, err := a.Cache.Keys(ctx, cacheKeyDocPrefix)
	if err != nil {
		return err
	}
	return Render(c, views.AdminDashboard(a.site(), posts, cached, msg, CsrfToken(c)))
}
