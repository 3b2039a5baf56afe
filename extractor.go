package novelgrab

// ExtractResult holds the cleaned content of a chapter page.
type ExtractResult struct {
	// Title is the chapter heading found on the page, if any.
	Title string

	// Text is the chapter body as newline-separated lines with
	// boilerplate removed.
	Text string
}

// ContentExtractor extracts chapter text from a chapter page.
type ContentExtractor interface {
	// Extract locates the content container, strips non-content subtrees
	// and boilerplate, and returns the remaining text.
	// Extract is deterministic: the same HTML always yields the same result.
	Extract(html string) (*ExtractResult, error)
}
