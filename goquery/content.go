package goquery

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelgrab"
	"golang.org/x/net/html"
)

// Ensure ContentExtractor implements novelgrab.ContentExtractor at compile time.
var _ novelgrab.ContentExtractor = (*ContentExtractor)(nil)

// ContentContainers are candidate chapter content containers in priority
// order. The first with non-empty text wins; the body is the fallback.
var ContentContainers = []string{
	"#content",
	".content",
	".chapter-content",
	".text",
	".novel-content",
	".book-content",
	".read-content",
	"article",
	"main",
}

// TitleSelectors locate the chapter heading.
var TitleSelectors = []string{"h1", ".chapter-title", ".title", "h2"}

// nonContentTags are removed from the container outright.
const nonContentTags = "script, style, nav, header, footer, aside, iframe, noscript, form, button"

// BoilerplateText are substrings of site branding, ad labels, and navigation
// prompts. A line or short element containing one is dropped.
var BoilerplateText = []string{
	"ixdzs",
	"廣告",
	"广告",
	"推薦",
	"推荐",
	"advertisement",
	"上一章",
	"下一章",
	"上一頁",
	"下一頁",
	"上一页",
	"下一页",
	"目錄",
	"目录",
}

// BoilerplateClass are prefixes of class or id words of boilerplate
// elements. Words are split on any non-alphanumeric character, so "ad-box"
// and "adsbygoogle" match while "downloads" and "canvas" do not.
var BoilerplateClass = []string{"ads", "advert", "next", "prev", "recommend", "nav", "share", "ixdzs"}

// boilerplateLabels are English navigation labels. They are only treated as
// boilerplate in text no longer than maxLabelRunes, so story lines such as
// "the next day" survive.
var boilerplateLabels = []string{"next", "prev", "previous", "ads"}

const (
	maxLabelRunes       = 24
	maxBoilerplateRunes = 200
)

// blockTags produce line breaks around their content.
var blockTags = map[string]bool{
	"address": true, "article": true, "blockquote": true, "br": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "li": true, "main": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// ContentExtractor extracts chapter text from a chapter page.
type ContentExtractor struct{}

// NewContentExtractor creates a new ContentExtractor.
func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{}
}

// Extract returns the page's chapter heading and its cleaned text. The text
// is empty when nothing usable remains.
func (e *ContentExtractor) Extract(src string) (*novelgrab.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, novelgrab.Errorf(novelgrab.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &novelgrab.ExtractResult{Title: chapterTitle(doc)}

	container := contentContainer(doc)
	container.Find(nonContentTags).Remove()
	container.Find("div, span, p, a").Each(func(_ int, sel *goquery.Selection) {
		if isBoilerplateElement(sel) {
			sel.Remove()
		}
	})

	var b strings.Builder
	for _, n := range container.Nodes {
		writeText(&b, n)
	}
	result.Text = cleanLines(b.String())

	return result, nil
}

func chapterTitle(doc *goquery.Document) string {
	for _, selector := range TitleSelectors {
		if t := collapseSpace(doc.Find(selector).First().Text()); t != "" {
			return t
		}
	}
	return ""
}

func contentContainer(doc *goquery.Document) *goquery.Selection {
	for _, selector := range ContentContainers {
		sel := doc.Find(selector).First()
		if strings.TrimSpace(sel.Text()) != "" {
			return sel
		}
	}
	if body := doc.Find("body"); body.Length() > 0 {
		return body
	}
	return doc.Selection
}

func isBoilerplateElement(sel *goquery.Selection) bool {
	if hasBoilerplateClass(sel.AttrOr("class", "") + " " + sel.AttrOr("id", "")) {
		return true
	}

	text := strings.TrimSpace(ownText(sel))
	if text == "" || utf8.RuneCountInString(text) > maxBoilerplateRunes {
		return false
	}
	return isBoilerplateText(text)
}

// hasBoilerplateClass reports whether a word of attr starts with a
// BoilerplateClass keyword.
func hasBoilerplateClass(attr string) bool {
	words := strings.FieldsFunc(strings.ToLower(attr), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, word := range words {
		for _, kw := range BoilerplateClass {
			if strings.HasPrefix(word, kw) {
				return true
			}
		}
	}
	return false
}

// isBoilerplateText reports whether s contains a boilerplate keyword.
func isBoilerplateText(s string) bool {
	for _, kw := range BoilerplateText {
		if containsFold(s, kw) {
			return true
		}
	}
	if utf8.RuneCountInString(s) <= maxLabelRunes {
		for _, label := range boilerplateLabels {
			if containsFold(s, label) {
				return true
			}
		}
	}
	return false
}

// ownText returns the text of the selection's direct text children.
func ownText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				b.WriteString(c.Data)
			}
		}
	}
	return b.String()
}

// writeText writes the text under n, surrounding block elements with
// newlines.
func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	}

	block := n.Type == html.ElementNode && blockTags[n.Data]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}

// cleanLines trims every line and drops those that are empty, a single
// character, or boilerplate.
func cleanLines(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimFunc(line, isSpace)
		if utf8.RuneCountInString(line) <= 1 {
			continue
		}
		if isBoilerplateText(line) {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\f', '\v', '\u00a0', '\u3000':
		return true
	}
	return false
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
