// Package goquery implements the HTML-level heuristics of novelgrab on top
// of github.com/PuerkitoBio/goquery: locating chapter listings, classifying
// and resolving chapter links, finding next-page links, extracting chapter
// text, and reading book metadata.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelgrab"
)

// parse parses baseURL and html into a document.
func parse(html, baseURL string) (*goquery.Document, *url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, nil, novelgrab.Errorf(novelgrab.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, novelgrab.Errorf(novelgrab.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, base, nil
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed, does not lead to an
// http(s) page, or if the resolved URL is self-referential (same as base URL
// after stripping fragment).
// Fragments are stripped from the resolved URL for deduplication purposes.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || novelgrab.IsNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if result == baseNoFragment.String() {
		return ""
	}
	return result
}

// anchorText returns the trimmed visible text of an anchor, falling back to
// its title attribute.
func anchorText(sel *goquery.Selection) string {
	text := strings.TrimSpace(sel.Text())
	if text == "" {
		text = strings.TrimSpace(sel.AttrOr("title", ""))
	}
	return text
}

// collectChapterLinks classifies every anchor within scope and returns the
// distinct chapter links in document order.
func collectChapterLinks(scope *goquery.Selection, base *url.URL) []novelgrab.ChapterLink {
	seen := make(map[string]struct{})
	var links []novelgrab.ChapterLink

	scope.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		text := anchorText(sel)
		if !novelgrab.IsChapterLink(href, text) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, novelgrab.ChapterLink{URL: resolved, Text: text})
	})

	return links
}

// containsFold reports whether s contains substr, ignoring ASCII case.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
