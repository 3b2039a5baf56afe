package crawl

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/fwojciec/novelgrab"
)

// ResolveMethod names the heuristic that located a chapter listing.
type ResolveMethod string

const (
	ResolvedByLink    ResolveMethod = "link"    // anchor on the landing page
	ResolvedByLanding ResolveMethod = "landing" // landing page lists chapters itself
	ResolvedByProbe   ResolveMethod = "probe"   // templated candidate URL
)

// probeTemplates derive candidate listing URLs from a book identifier.
var probeTemplates = []string{
	"/read/{id}/",
	"/book/{id}/",
	"/{id}/",
	"/book/{id}/catalog",
	"/mulu/{id}.html",
	"/read/{id}/list.html",
}

var bookIDPattern = regexp.MustCompile(`\d+`)

// Resolution is the outcome of Resolve.
type Resolution struct {
	TOCURL string
	Method ResolveMethod
	Book   *novelgrab.Book
}

// Resolver locates the chapter listing of a book.
type Resolver struct {
	Fetcher   novelgrab.Fetcher
	Parser    novelgrab.TOCParser
	Converter novelgrab.Converter // optional, converts the book description
	Config    novelgrab.Config
	Logger    LogFunc
}

// Resolve returns the URL of the book's chapter listing. The heuristics run
// in order and the first success wins:
//
//  1. an anchor on the landing page pointing at the listing
//  2. the landing page itself, when it has enough chapter links
//  3. templated candidate URLs built from the book's numeric identifier
//
// It returns ETOCUNRESOLVED when the landing page cannot be fetched or no
// heuristic succeeds.
func (r *Resolver) Resolve(ctx context.Context, bookURL string) (*Resolution, error) {
	html, err := FetchWithRetryDelays(ctx, bookURL, r.Fetcher.Fetch, r.Logger, RetryDelays(r.Config))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, novelgrab.Errorf(novelgrab.ETOCUNRESOLVED, "fetch book page %s: %s", bookURL, novelgrab.ErrorMessage(err))
	}

	res := &Resolution{Book: r.book(html, bookURL)}

	if toc, ok := r.Parser.FindTOCLink(html, bookURL); ok {
		res.TOCURL, res.Method = toc, ResolvedByLink
		return res, nil
	}

	if r.Parser.CountChapterLinks(html, bookURL) >= r.Config.ChapterLinkThreshold {
		res.TOCURL, res.Method = bookURL, ResolvedByLanding
		return res, nil
	}

	for _, candidate := range ProbeURLs(bookURL) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		page, err := r.Fetcher.Fetch(ctx, candidate)
		if err != nil {
			r.logf("probe %s: %v", candidate, err)
			continue
		}
		if r.Parser.CountChapterLinks(page, candidate) >= r.Config.ChapterLinkThreshold {
			res.TOCURL, res.Method = candidate, ResolvedByProbe
			return res, nil
		}
	}

	return nil, novelgrab.Errorf(novelgrab.ETOCUNRESOLVED, "no chapter listing found for %s", bookURL)
}

func (r *Resolver) book(html, bookURL string) *novelgrab.Book {
	book := r.Parser.BookInfo(html, bookURL)
	if book == nil {
		book = &novelgrab.Book{SourceURL: bookURL}
	}
	book.SourceURL = bookURL
	if book.Description != "" && r.Converter != nil {
		md, err := r.Converter.Convert(book.Description)
		if err != nil {
			r.logf("convert description: %v", err)
			md = ""
		}
		book.Description = strings.TrimSpace(md)
	}
	return book
}

func (r *Resolver) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger(format, args...)
	}
}

// ProbeURLs returns candidate listing URLs derived from the last numeric
// segment of bookURL's path, or nil when the path has none.
func ProbeURLs(bookURL string) []string {
	u, err := url.Parse(bookURL)
	if err != nil {
		return nil
	}

	var id string
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0 && id == ""; i-- {
		id = bookIDPattern.FindString(segments[i])
	}
	if id == "" {
		return nil
	}

	self := u.String()
	seen := make(map[string]struct{})
	var urls []string
	for _, tmpl := range probeTemplates {
		candidate := (&url.URL{
			Scheme: u.Scheme,
			Host:   u.Host,
			Path:   strings.ReplaceAll(tmpl, "{id}", id),
		}).String()
		if candidate == self {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		urls = append(urls, candidate)
	}
	return urls
}
