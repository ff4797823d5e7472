package inkpost

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/ayatori/inkpost/views"
)

const (
	maxImageWidth = 800
	jpegQuality   = 80
	maxUploadSize = 10 << 20 // 10MB
	uploadsPrefix = "images/uploads/"
	ogpPrefix     = "images/ogp/"
)

func contentTypeFor(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}

// handleImage serves objects under images/ straight from the bucket.
func (a *App) handleImage(c echo.Context) error {
	p := c.Param("*")
	if strings.Contains(p, "..") || strings.HasPrefix(p, "/") {
		return c.String(http.StatusBadRequest, "Bad Request")
	}
	data, err := a.Bucket.Get(c.Request().Context(), "images/"+p)
	if errors.Is(err, ErrObjectNotFound) {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
	}
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, contentTypeFor(p), data)
}

// handleOgpImage serves a post's pre-rasterized OGP image, falling back
// to the site default when the post or its image is missing.
func (a *App) handleOgpImage(c echo.Context) error {
	slug := strings.TrimSuffix(c.Param("slug"), ".png")
	if strings.Contains(slug, "..") || strings.HasPrefix(slug, "/") {
		return c.String(http.StatusBadRequest, "Bad Request")
	}

	ctx := c.Request().Context()
	if slug != "default" {
		post, err := a.Repo.GetPost(ctx, slug)
		if err == nil {
			key := ogpPrefix + post.Date + "-" + slug + ".png"
			if data, err := a.Bucket.Get(ctx, key); err == nil {
				return c.Blob(http.StatusOK, "image/png", data)
			}
		}
	}

	data, err := a.Bucket.Get(ctx, ogpPrefix+"default.png")
	if errors.Is(err, ErrObjectNotFound) {
		return c.String(http.StatusNotFound, "Not Found")
	}
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", data)
}

func (a *App) handleFavicon(c echo.Context) error {
	data, err := a.Bucket.Get(c.Request().Context(), "images/favicon.ico")
	if errors.Is(err, ErrObjectNotFound) {
		return c.String(http.StatusNotFound, "Not Found")
	}
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/x-icon", data)
}

// processImage decodes an image from src, downscales anything wider than
// maxImageWidth, and re-encodes it as JPEG.
func processImage(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxImageWidth {
		newH := h * maxImageWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// handleImageUpload stores an admin-uploaded image in the bucket under
// images/uploads/, resized for article embedding.
func (a *App) handleImageUpload(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.String(http.StatusBadRequest, "No image file provided")
	}
	if file.Size > maxUploadSize {
		return c.String(http.StatusBadRequest, "File too large (max 10MB)")
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	data, err := processImage(src)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid image: "+err.Error())
	}

	ctx := c.Request().Context()
	key := a.uniqueUploadKey(c, slugifyFilename(file.Filename))
	if err := a.Bucket.Put(ctx, key, data); err != nil {
		return fmt.Errorf("store image: %w", err)
	}
	return a.renderAdminDashboard(c, "uploaded /"+key)
}

// uniqueUploadKey appends a counter while the candidate key is taken.
func (a *App) uniqueUploadKey(c echo.Context, base string) string {
	ctx := c.Request().Context()
	if base == "" {
		base = time.Now().UTC().Format("20060102-150405")
	}
	candidate := uploadsPrefix + base + ".jpg"
	counter := 1
	for {
		if _, err := a.Bucket.Get(ctx, candidate); err != nil {
			return candidate
		}
		counter++
		candidate = fmt.Sprintf("%s%s-%d.jpg", uploadsPrefix, base, counter)
	}
}

// slugifyFilename converts a filename (without extension) to a URL-safe slug.
func slugifyFilename(name string) string {
	base := strings.TrimSuffix(name, path.Ext(name))
	base = strings.ToLower(strings.TrimSpace(base))
	var b strings.Builder
	prev := false
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
