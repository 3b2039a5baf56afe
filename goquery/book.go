package goquery

import (
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/novelgrab"
)

// bookField lists where a piece of book metadata may be found, in order.
type bookField struct {
	metas     []string // meta property/name values
	selectors []string // elements whose text is used
}

var (
	titleField = bookField{
		metas:     []string{"og:novel:book_name", "og:title"},
		selectors: []string{"h1", "title"},
	}
	authorField = bookField{
		metas:     []string{"og:novel:author", "author"},
		selectors: []string{".author", "#author"},
	}
	statusField = bookField{
		metas: []string{"og:novel:status"},
	}
	coverField = bookField{
		metas: []string{"og:image"},
	}
)

// descriptionContainers hold the book's synopsis as HTML.
var descriptionContainers = []string{"#intro", ".intro", ".book-intro", ".description", "#description", ".summary"}

// BookInfo extracts book metadata from a landing page. Description holds
// raw HTML so it can be converted downstream.
func (p *TOCParser) BookInfo(html, baseURL string) *novelgrab.Book {
	book := &novelgrab.Book{SourceURL: baseURL}

	doc, base, err := parse(html, baseURL)
	if err != nil {
		return book
	}

	book.Title = lookup(doc, titleField)
	book.Author = lookup(doc, authorField)
	book.Status = lookup(doc, statusField)
	if cover := lookup(doc, coverField); cover != "" {
		if resolved := resolveURL(base, cover); resolved != "" {
			cover = resolved
		}
		book.CoverURL = cover
	}
	book.Description = description(doc)

	return book
}

func lookup(doc *goquery.Document, f bookField) string {
	for _, name := range f.metas {
		if v := metaContent(doc, name); v != "" {
			return v
		}
	}
	for _, selector := range f.selectors {
		if v := strings.TrimSpace(doc.Find(selector).First().Text()); v != "" {
			return v
		}
	}
	return ""
}

func metaContent(doc *goquery.Document, name string) string {
	var content string
	doc.Find("meta").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if sel.AttrOr("property", "") != name && sel.AttrOr("name", "") != name {
			return true
		}
		content = strings.TrimSpace(sel.AttrOr("content", ""))
		return content == ""
	})
	return content
}

func description(doc *goquery.Document) string {
	for _, selector := range descriptionContainers {
		sel := doc.Find(selector).First()
		if strings.TrimSpace(sel.Text()) == "" {
			continue
		}
		if inner, err := sel.Html(); err == nil {
			return strings.TrimSpace(inner)
		}
	}
	for _, name := range []string{"og:description", "description"} {
		if v := metaContent(doc, name); v != "" {
			return html.EscapeString(v)
		}
	}
	return ""
}
