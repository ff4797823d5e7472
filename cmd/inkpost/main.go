// Command inkpost runs a markdown blog server. All site branding and
// credentials come from environment variables.
package main

import (
	"log"
	"strings"

	"github.com/ayatori/inkpost"
)

func main() {
	app := inkpost.New(inkpost.SiteConfig{
		Name:          inkpost.EnvOr("SITE_NAME", "Blog"),
		URL:           inkpost.EnvOr("SITE_URL", "http://localhost:3000"),
		Description:   inkpost.EnvOr("SITE_DESCRIPTION", ""),
		Author:        inkpost.EnvOr("SITE_AUTHOR", ""),
		Addr:          inkpost.EnvOr("ADDR", ":3000"),
		ContentDir:    inkpost.EnvOr("CONTENT_DIR", "content"),
		CacheDB:       inkpost.EnvOr("CACHE_DB", "data/cache.db"),
		Pages:         inkpost.FilterEmpty(strings.Split(inkpost.EnvOr("FIXED_PAGES", ""), ",")),
		AdminKey:      inkpost.EnvOr("ADMIN_KEY", ""),
		AdminPassword: inkpost.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: inkpost.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:  inkpost.EnvOr("COOKIE_SECURE", "") == "true",
		GitHubToken:   inkpost.EnvOr("GITHUB_TOKEN", ""),
	})
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
