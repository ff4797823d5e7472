package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

const frontMatterDelimiter = "---"

var reFrontMatterLine = regexp.MustCompile(`^(\w+):\s*(.*)$`)

// SplitFrontMatter separates a leading `---` delimited metadata block from
// the body text. If the first line is not a delimiter, or no closing
// delimiter exists, the metadata is empty and the whole input is body.
// Malformed metadata lines are skipped; there is no error path.
func SplitFrontMatter(raw string) (map[string]any, string) {
	lines := strings.Split(raw, "\n")

	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontMatterDelimiter {
		return map[string]any{}, raw
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterDelimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return map[string]any{}, raw
	}

	data := make(map[string]any)
	for _, line := range lines[1:end] {
		m := reFrontMatterLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		data[m[1]] = parseFrontMatterValue(m[2])
	}

	body := strings.TrimSpace(strings.Join(lines[end+1:], "\n"))
	return data, body
}

// parseFrontMatterValue types a raw front-matter value by shape: array,
// quoted string, integer, boolean, or raw trimmed string.
func parseFrontMatterValue(raw string) any {
	switch {
	case strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]"):
		inner := strings.TrimSpace(raw[1 : len(raw)-1])
		if inner == "" {
			return []string{}
		}
		parts := strings.Split(inner, ",")
		vals := make([]string, 0, len(parts))
		for _, p := range parts {
			v := strings.Trim(strings.TrimSpace(p), `"'`)
			if v == "" {
				continue
			}
			vals = append(vals, v)
		}
		return vals
	case len(raw) >= 2 && strings.HasPrefix(raw, "'") && strings.HasSuffix(raw, "'"):
		return strings.ReplaceAll(raw[1:len(raw)-1], "''", "'")
	case len(raw) >= 2 && strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`):
		return strings.ReplaceAll(raw[1:len(raw)-1], `\"`, `"`)
	case raw == "true":
		return true
	case raw == "false":
		return false
	}
	if raw != "" && isAllDigits(raw) {
		n, err := strconv.Atoi(raw)
		if err == nil {
			return n
		}
	}
	return strings.TrimSpace(raw)
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// metaString reads a front-matter value as a string, with a fallback.
func metaString(data map[string]any, key, fallback string) string {
	v, ok := data[key]
	if !ok {
		return fallback
	}
	switch s := v.(type) {
	case string:
		if s == "" {
			return fallback
		}
		return s
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	}
	return fallback
}

// metaStrings reads a front-matter value as an ordered string sequence.
func metaStrings(data map[string]any, key string) []string {
	v, ok := data[key].([]string)
	if !ok {
		return []string{}
	}
	return v
}

// metaBool reads a front-matter value as a bool; anything but true is false.
func metaBool(data map[string]any, key string) bool {
	v, ok := data[key].(bool)
	return ok && v
}

// metaFromData assembles a PostMeta from parsed front matter, deriving the
// excerpt from the body when the author did not supply one.
func metaFromData(data map[string]any, body string) PostMeta {
	excerpt := metaString(data, "excerpt", "")
	if excerpt == "" {
		excerpt = GenerateExcerpt(body, excerptMaxLength)
	}
	return PostMeta{
		Title:      metaString(data, "title", "Untitled"),
		Slug:       metaString(data, "slug", ""),
		Date:       metaString(data, "date", ""),
		Categories: metaStrings(data, "categories"),
		Tags:       metaStrings(data, "tags"),
		Excerpt:    excerpt,
		Image:      metaString(data, "image", ""),
		FixedPage:  metaBool(data, "fixedPage"),
		NoAds:      metaBool(data, "noAds"),
	}
}

// ParseMeta parses only the front matter of a document, skipping the full
// render. The repository uses this to build the post index cheaply.
func ParseMeta(raw string) PostMeta {
	data, body := SplitFrontMatter(raw)
	return metaFromData(data, body)
}
