package novelgrab

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}
