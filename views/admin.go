package views

import (
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/ayatori/inkpost/markdown"
)

// AdminLogin renders the admin login form.
func AdminLogin(site Site, showError bool, csrf string) templ.Component {
	meta := PageMeta{Title: "Login", URL: buildURL(site.URL)}
	return layout(site, meta, func(w io.Writer) {
		io.WriteString(w, `<h1>Login</h1>`)
		if showError {
			io.WriteString(w, `<p class="error">Login failed.</p>`)
		}
		io.WriteString(w, `<form method="post" action="/admin/login/">`)
		fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s">`, esc(csrf))
		io.WriteString(w, `<p><label>Password <input type="password" name="password" autofocus></label></p>`)
		io.WriteString(w, `<p><button type="submit">Sign in</button></p>`)
		io.WriteString(w, `</form>`)
	})
}

// AdminDashboard renders the admin dashboard: cache state, per-post
// invalidation and image upload.
func AdminDashboard(site Site, posts []markdown.PostMeta, cached []string, msg, csrf string) templ.Component {
	meta := PageMeta{Title: "Admin", URL: buildURL(site.URL)}
	return layout(site, meta, func(w io.Writer) {
		io.WriteString(w, `<h1>Admin</h1>`)
		if msg != "" {
			fmt.Fprintf(w, `<p class="notice">%s</p>`, esc(msg))
		}
		io.WriteString(w, `<form method="post" action="/admin/logout/" class="admin-logout">`)
		fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s">`, esc(csrf))
		io.WriteString(w, `<button type="submit">Sign out</button></form>`)

		io.WriteString(w, `<h2>Cache</h2>`)
		fmt.Fprintf(w, `<p>%d cached document(s).</p>`, len(cached))
		io.WriteString(w, `<form method="post" action="/admin/invalidate/">`)
		fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s">`, esc(csrf))
		io.WriteString(w, `<button type="submit">Invalidate all</button></form>`)

		io.WriteString(w, `<h2>Posts</h2><table class="admin-posts"><tr><th>Date</th><th>Title</th><th>Cached</th><th></th></tr>`)
		cachedSet := make(map[string]bool, len(cached))
		for _, key := range cached {
			cachedSet[key] = true
		}
		for _, p := range posts {
			fmt.Fprintf(w, `<tr><td>%s</td><td><a href="%s">%s</a></td>`, esc(p.Date), esc(postPath(p)), esc(p.Title))
			if cachedSet["doc:"+p.Slug] {
				io.WriteString(w, `<td>yes</td>`)
			} else {
				io.WriteString(w, `<td>-</td>`)
			}
			io.WriteString(w, `<td><form method="post" action="/admin/invalidate/">`)
			fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s">`, esc(csrf))
			fmt.Fprintf(w, `<input type="hidden" name="slug" value="%s">`, esc(p.Slug))
			io.WriteString(w, `<button type="submit">Invalidate</button></form></td></tr>`)
		}
		io.WriteString(w, `</table>`)

		io.WriteString(w, `<h2>Images</h2>`)
		io.WriteString(w, `<form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		fmt.Fprintf(w, `<input type="hidden" name="_csrf" value="%s">`, esc(csrf))
		io.WriteString(w, `<p><input type="file" name="image" accept="image/*"> <button type="submit">Upload</button></p>`)
		io.WriteString(w, `</form>`)
	})
}
