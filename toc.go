package novelgrab

// TOCParser answers the HTML-level questions asked while locating and
// walking a book's chapter listing. Implementations are pure: they never
// fetch anything.
type TOCParser interface {
	// FindTOCLink looks for an anchor pointing at the full chapter listing,
	// first by its visible text and then by href/class hints.
	FindTOCLink(html, baseURL string) (string, bool)

	// CountChapterLinks returns the number of distinct chapter links on the page.
	CountChapterLinks(html, baseURL string) int

	// ChapterLinks returns the chapter links of a listing page in document
	// order, resolved against baseURL and deduplicated.
	ChapterLinks(html, baseURL string) ([]ChapterLink, error)

	// NextPageURL returns the URL of the next listing page, if any.
	NextPageURL(html, baseURL string) (string, bool)

	// BookInfo extracts book metadata from a landing page.
	// The Description field holds raw HTML.
	BookInfo(html, baseURL string) *Book
}
