package markdown

import (
	"regexp"
)

// Provider URL shapes, matched against already-rendered HTML so the
// patterns can anchor on <p> and <li> wrappers. Each provider is handled
// in three surface contexts: a paragraph holding only the link, a
// paragraph holding the bare URL, and the leading link of a list item.
var (
	reTweetLink = regexp.MustCompile(`<p><a href="https?://(?:x\.com|twitter\.com)/([^/"]+)/status/(\d+)[^"]*">[^<]*</a></p>`)
	reTweetBare = regexp.MustCompile(`<p>https?://(?:x\.com|twitter\.com)/([^/<]+)/status/(\d+)[^\s<]*</p>`)
	reTweetItem = regexp.MustCompile(`<li><a href="https?://(?:x\.com|twitter\.com)/([^/"]+)/status/(\d+)[^"]*">[^<]*</a>`)

	reYouTubeWatchLink = regexp.MustCompile(`<p><a href="https?://(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]+)[^"]*">[^<]*</a></p>`)
	reYouTubeShortLink = regexp.MustCompile(`<p><a href="https?://youtu\.be/([a-zA-Z0-9_-]+)[^"]*">[^<]*</a></p>`)
	reYouTubeWatchBare = regexp.MustCompile(`<p>https?://(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]+)[^\s<]*</p>`)
	reYouTubeShortBare = regexp.MustCompile(`<p>https?://youtu\.be/([a-zA-Z0-9_-]+)[^\s<]*</p>`)
	reYouTubeWatchItem = regexp.MustCompile(`<li><a href="https?://(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]+)[^"]*">[^<]*</a>`)
	reYouTubeShortItem = regexp.MustCompile(`<li><a href="https?://youtu\.be/([a-zA-Z0-9_-]+)[^"]*">[^<]*</a>`)

	reGistLink = regexp.MustCompile(`<p><a href="(https?://gist\.github\.com/[a-zA-Z0-9_-]+/[a-zA-Z0-9]+)[^"]*">[^<]*</a></p>`)
	reGistBare = regexp.MustCompile(`<p>(https?://gist\.github\.com/[a-zA-Z0-9_-]+/[a-zA-Z0-9]+)</p>`)
	reGistItem = regexp.MustCompile(`<li><a href="(https?://gist\.github\.com/[a-zA-Z0-9_-]+/[a-zA-Z0-9]+)[^"]*">[^<]*</a>`)
)

// Amazon product URLs: the long marketplace form with a /dp/ or
// /gp/product/ ASIN segment, and the amzn.to / amzn.asia short links.
const amazonURL = `(?:https?://(?:www\.)?amazon\.co\.jp/[^"<]*(?:dp|gp/product)/[A-Z0-9]{10}[^"<\s]*|https?://amzn\.to/[a-zA-Z0-9]+|https?://amzn\.asia/d/[a-zA-Z0-9]+)`

var (
	reAmazonLink = regexp.MustCompile(`<p><a href="(` + amazonURL + `)">([^<]*)</a></p>`)
	reAmazonBare = regexp.MustCompile(`<p>(` + amazonURL + `)</p>`)
	reAmazonItem = regexp.MustCompile(`<li><a href="(` + amazonURL + `)">([^<]*)</a>`)
)

// ConvertEmbeds rewrites known-provider URLs into embed markup. It is
// purely local: social posts and gists become placeholder containers a
// client-side widget hydrates, videos become inline frames, and Amazon
// products become static cards keeping the anchor text as title.
// Unmatched URLs stay ordinary links.
func ConvertEmbeds(doc string) string {
	// X posts, normalized to the twitter.com domain the widget expects.
	doc = reTweetLink.ReplaceAllString(doc, tweetEmbed("$1", "$2"))
	doc = reTweetBare.ReplaceAllString(doc, tweetEmbed("$1", "$2"))
	doc = reTweetItem.ReplaceAllString(doc, "<li>"+tweetEmbed("$1", "$2"))

	doc = reYouTubeWatchLink.ReplaceAllString(doc, youtubeEmbed("$1"))
	doc = reYouTubeShortLink.ReplaceAllString(doc, youtubeEmbed("$1"))
	doc = reYouTubeWatchBare.ReplaceAllString(doc, youtubeEmbed("$1"))
	doc = reYouTubeShortBare.ReplaceAllString(doc, youtubeEmbed("$1"))
	doc = reYouTubeWatchItem.ReplaceAllString(doc, "<li>"+youtubeEmbed("$1"))
	doc = reYouTubeShortItem.ReplaceAllString(doc, "<li>"+youtubeEmbed("$1"))

	doc = reGistLink.ReplaceAllString(doc, gistEmbed("$1"))
	doc = reGistBare.ReplaceAllString(doc, gistEmbed("$1"))
	doc = reGistItem.ReplaceAllString(doc, "<li>"+gistEmbed("$1"))

	doc = replaceAmazon(doc, reAmazonLink, "")
	doc = reAmazonBare.ReplaceAllStringFunc(doc, func(m string) string {
		sub := reAmazonBare.FindStringSubmatch(m)
		return amazonEmbed(sub[1], sub[1])
	})
	doc = replaceAmazon(doc, reAmazonItem, "<li>")

	return doc
}

func tweetEmbed(user, id string) string {
	return `<div class="embed-card embed-twitter">` +
		`<blockquote class="twitter-tweet" data-dnt="true">` +
		`<a href="https://twitter.com/` + user + `/status/` + id + `"></a>` +
		`</blockquote></div>`
}

func youtubeEmbed(videoID string) string {
	return `<div class="embed-card embed-youtube">` +
		`<iframe src="https://www.youtube.com/embed/` + videoID + `" frameborder="0" allowfullscreen loading="lazy"></iframe>` +
		`</div>`
}

func gistEmbed(url string) string {
	return `<div class="embed-card embed-gist"><script src="` + url + `.js"></script></div>`
}

// amazonEmbed builds a static product card. The title comes out of
// already-rendered HTML, so it is emitted as-is.
func amazonEmbed(url, title string) string {
	return `<div class="embed-card embed-amazon">` +
		`<a href="` + url + `" rel="nofollow noopener" target="_blank">` +
		`<span class="amazon-icon">🛒</span>` +
		`<span class="amazon-title">` + title + `</span>` +
		`</a></div>`
}

// replaceAmazon rewrites anchored Amazon matches, preserving the visible
// anchor text as the card title.
func replaceAmazon(doc string, re *regexp.Regexp, prefix string) string {
	return re.ReplaceAllStringFunc(doc, func(m string) string {
		sub := re.FindStringSubmatch(m)
		title := sub[2]
		if title == "" {
			title = sub[1]
		}
		return prefix + amazonEmbed(sub[1], title)
	})
}
