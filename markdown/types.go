package markdown

// PostMeta holds the front-matter metadata of a document. It is what the
// post index caches and what list pages render.
type PostMeta struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Date       string   `json:"date"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
	Excerpt    string   `json:"excerpt"`
	Image      string   `json:"image,omitempty"`
	FixedPage  bool     `json:"fixedPage,omitempty"`
	NoAds      bool     `json:"noAds,omitempty"`
}

// Post is a fully rendered document: metadata plus enriched HTML and the
// untouched markdown body for "copy as markdown" export.
type Post struct {
	PostMeta
	Content    string `json:"content"`
	RawContent string `json:"rawContent"`
}

// TocItem is one table-of-contents entry, recorded in document order
// while headings render.
type TocItem struct {
	Level int
	Text  string
	ID    string
}
