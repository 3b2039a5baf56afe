package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelgrab"
)

// Ensure TOCParser implements novelgrab.TOCParser at compile time.
var _ novelgrab.TOCParser = (*TOCParser)(nil)

// TOCMarkers are visible-text substrings of anchors that point at a book's
// full chapter listing. Earlier entries win.
var TOCMarkers = []string{
	"完整章節",
	"完整章节",
	"全部章節",
	"全部章节",
	"章節目錄",
	"章节目录",
	"章節列表",
	"章节列表",
	"查看目錄",
	"查看目录",
	"目錄",
	"目录",
	"Chapter List",
	"All Chapters",
	"Table of Contents",
}

// TOCHints are href/class substrings of anchors that likely point at a
// chapter listing. Earlier entries win.
var TOCHints = []string{"list", "catalog", "chapter", "mulu"}

// ChapterContainers are selectors of elements that hold a listing page's
// chapter links. The first one present narrows the search.
var ChapterContainers = []string{
	".chapter-list",
	"#chapterlist",
	"#chapter-list",
	"#list",
	".catalog",
	"#catalog",
	".mulu",
	".listmain",
	".chapters",
	"[class*=chapter-list]",
}

// nextPageRule decides whether an anchor is a "next page" link. Weak rules
// match markers that also occur in chapter titles, so they ignore anchors
// that look like chapter links.
type nextPageRule struct {
	match func(text, class, href string) bool
	weak  bool
}

func textContains(marker string) func(text, class, href string) bool {
	return func(text, _, _ string) bool { return containsFold(text, marker) }
}

// nextPageRules are evaluated in order; within a rule anchors are visited in
// document order and the first one that resolves to another page wins.
var nextPageRules = []nextPageRule{
	{match: textContains("下一頁")},
	{match: textContains("下一页")},
	{match: textContains("下页")},
	{match: textContains("next"), weak: true},
	{match: textContains("»"), weak: true},
	{match: textContains(">>"), weak: true},
	{match: func(text, _, _ string) bool { return text == ">" || text == "›" }, weak: true},
	{match: func(_, class, _ string) bool { return containsFold(class, "next") }, weak: true},
	{match: func(_, _, href string) bool { return strings.Contains(href, "page=") }},
}

// TOCParser implements novelgrab.TOCParser using CSS selectors and ordered
// heuristic tables.
type TOCParser struct{}

// NewTOCParser creates a new TOCParser.
func NewTOCParser() *TOCParser {
	return &TOCParser{}
}

// FindTOCLink looks for a link to the full chapter listing: first an anchor
// whose text contains a TOCMarkers entry, then an anchor whose href or class
// contains a TOCHints entry. Anchors labelled like a chapter or pointing back
// at the page are ignored by the hint search.
func (p *TOCParser) FindTOCLink(html, baseURL string) (string, bool) {
	doc, base, err := parse(html, baseURL)
	if err != nil {
		return "", false
	}
	anchors := doc.Find("a[href]")

	for _, marker := range TOCMarkers {
		var found string
		anchors.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			if !containsFold(sel.Text(), marker) {
				return true
			}
			href, _ := sel.Attr("href")
			found = resolveURL(base, href)
			return found == ""
		})
		if found != "" {
			return found, true
		}
	}

	for _, hint := range TOCHints {
		var found string
		anchors.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, _ := sel.Attr("href")
			class := sel.AttrOr("class", "")
			if !containsFold(href, hint) && !containsFold(class, hint) {
				return true
			}
			if novelgrab.IsChapterLabel(anchorText(sel)) {
				return true
			}
			found = resolveURL(base, href)
			return found == ""
		})
		if found != "" {
			return found, true
		}
	}

	return "", false
}

// CountChapterLinks returns the number of distinct chapter links anywhere on
// the page.
func (p *TOCParser) CountChapterLinks(html, baseURL string) int {
	doc, base, err := parse(html, baseURL)
	if err != nil {
		return 0
	}
	return len(collectChapterLinks(doc.Selection, base))
}

// ChapterLinks returns the chapter links of a listing page in document order.
// The search is narrowed to the first ChapterContainers match, or the whole
// document when none is present.
func (p *TOCParser) ChapterLinks(html, baseURL string) ([]novelgrab.ChapterLink, error) {
	doc, base, err := parse(html, baseURL)
	if err != nil {
		return nil, err
	}
	return collectChapterLinks(chapterScope(doc), base), nil
}

func chapterScope(doc *goquery.Document) *goquery.Selection {
	for _, selector := range ChapterContainers {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return sel
		}
	}
	return doc.Selection
}

// NextPageURL returns the resolved URL of the listing's next page. Anchors
// that are chapter links never match a weak rule.
func (p *TOCParser) NextPageURL(html, baseURL string) (string, bool) {
	doc, base, err := parse(html, baseURL)
	if err != nil {
		return "", false
	}
	anchors := doc.Find("a[href]")

	chapters := make(map[string]struct{})
	for _, link := range collectChapterLinks(chapterScope(doc), base) {
		chapters[link.URL] = struct{}{}
	}

	for _, rule := range nextPageRules {
		var found string
		anchors.EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, _ := sel.Attr("href")
			text := strings.TrimSpace(sel.Text())
			if !rule.match(text, sel.AttrOr("class", ""), href) {
				return true
			}
			resolved := resolveURL(base, href)
			if rule.weak {
				if novelgrab.IsChapterLink(href, text) {
					return true
				}
				if _, ok := chapters[resolved]; ok {
					return true
				}
			}
			found = resolved
			return found == ""
		})
		if found != "" {
			return found, true
		}
	}
	return "", false
}
