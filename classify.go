package novelgrab

import (
	"regexp"
	"strings"
)

// chapterHrefPatterns match path shapes commonly used for chapter pages.
var chapterHrefPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)/p\d+\.html?$`),
	regexp.MustCompile(`(?i)/\d+(?:_\d+)?\.html?$`),
	regexp.MustCompile(`/\d+/$`),
	regexp.MustCompile(`(?i)chapter[-_/]?\d+`),
	regexp.MustCompile(`(?i)/(?:read|chapter|ch)/\d+$`),
}

// chapterTextPatterns match visible labels of chapter links.
var chapterTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`第\s*[0-9０-９零〇一二两兩三四五六七八九十百千萬万]+\s*[章回节節话話]`),
	regexp.MustCompile(`(?i)\bchapter\s*\d+`),
	regexp.MustCompile(`(?i)^ch\.?\s*\d+`),
	regexp.MustCompile(`^\d+$`),
	regexp.MustCompile(`^\d+\.`),
}

// IsChapterLink reports whether an anchor looks like a link to a chapter.
// Both href and text must be non-empty. The link qualifies when either its
// path shape or its visible text matches a chapter pattern; false positives
// are expected and removed by deduplication later.
func IsChapterLink(href, text string) bool {
	href = strings.TrimSpace(href)
	text = strings.TrimSpace(text)
	if href == "" || text == "" || IsNonHTTPLink(href) {
		return false
	}

	path := href
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	for _, re := range chapterHrefPatterns {
		if re.MatchString(path) {
			return true
		}
	}
	return IsChapterLabel(text)
}

// IsChapterLabel reports whether text reads like a chapter label, such as
// "第三章", "Chapter 3", "Ch.3", "3", or "3. Title".
func IsChapterLabel(text string) bool {
	text = strings.TrimSpace(text)
	for _, re := range chapterTextPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// IsNonHTTPLink reports whether href cannot lead to another page
// (javascript:, mailto:, tel:, data:, or a bare fragment).
func IsNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
