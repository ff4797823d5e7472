package markdown

import (
	"regexp"
	"strings"
)

// excerptMaxLength is the character budget for derived excerpts.
const excerptMaxLength = 100

var (
	reExcerptImage     = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	reExcerptLink      = regexp.MustCompile(`\[([^\]]+)\]\(.*?\)`)
	reExcerptHeading   = regexp.MustCompile(`(?m)^#{1,6}\s+.*$`)
	reExcerptMarker    = regexp.MustCompile("[*_`~]")
	reExcerptCodeBlock = regexp.MustCompile("(?s)```.*?```")
	reExcerptInline    = regexp.MustCompile("`[^`]+`")
	reExcerptTag       = regexp.MustCompile(`<[^>]+>`)
	reExcerptNewline   = regexp.MustCompile(`\n+`)
	reExcerptSpace     = regexp.MustCompile(`\s+`)
)

// GenerateExcerpt derives a plain-text preview from markdown body text:
// images and heading lines dropped, links resolved to their text,
// emphasis markers stripped, HTML tags removed, whitespace collapsed.
// Text over maxLength runes is truncated with an ellipsis.
func GenerateExcerpt(content string, maxLength int) string {
	plain := reExcerptImage.ReplaceAllString(content, "")
	plain = reExcerptLink.ReplaceAllString(plain, "$1")
	plain = reExcerptHeading.ReplaceAllString(plain, "")
	plain = reExcerptMarker.ReplaceAllString(plain, "")
	plain = reExcerptCodeBlock.ReplaceAllString(plain, "")
	plain = reExcerptInline.ReplaceAllString(plain, "")
	plain = reExcerptTag.ReplaceAllString(plain, "")
	plain = reExcerptNewline.ReplaceAllString(plain, " ")
	plain = reExcerptSpace.ReplaceAllString(plain, " ")
	plain = strings.TrimSpace(plain)

	runes := []rune(plain)
	if len(runes) <= maxLength {
		return plain
	}
	return string(runes[:maxLength]) + "…"
}
