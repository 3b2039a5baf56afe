package mock

import "github.com/fwojciec/novelgrab"

var _ novelgrab.TOCParser = (*TOCParser)(nil)

// TOCParser is a mock implementation of novelgrab.TOCParser.
type TOCParser struct {
	FindTOCLinkFn       func(html, baseURL string) (string, bool)
	CountChapterLinksFn func(html, baseURL string) int
	ChapterLinksFn      func(html, baseURL string) ([]novelgrab.ChapterLink, error)
	NextPageURLFn       func(html, baseURL string) (string, bool)
	BookInfoFn          func(html, baseURL string) *novelgrab.Book
}

func (p *TOCParser) FindTOCLink(html, baseURL string) (string, bool) {
	return p.FindTOCLinkFn(html, baseURL)
}

func (p *TOCParser) CountChapterLinks(html, baseURL string) int {
	return p.CountChapterLinksFn(html, baseURL)
}

func (p *TOCParser) ChapterLinks(html, baseURL string) ([]novelgrab.ChapterLink, error) {
	return p.ChapterLinksFn(html, baseURL)
}

func (p *TOCParser) NextPageURL(html, baseURL string) (string, bool) {
	return p.NextPageURLFn(html, baseURL)
}

func (p *TOCParser) BookInfo(html, baseURL string) *novelgrab.Book {
	return p.BookInfoFn(html, baseURL)
}
