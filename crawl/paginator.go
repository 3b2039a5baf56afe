package crawl

import (
	"context"

	"github.com/fwojciec/novelgrab"
	"github.com/fwojciec/novelgrab/bloom"
)

// expectedLinksPerPage sizes the visited set's Bloom filter.
const expectedLinksPerPage = 100

// Paginator walks a paginated chapter listing.
type Paginator struct {
	Fetcher novelgrab.Fetcher
	Parser  novelgrab.TOCParser
	Config  novelgrab.Config
	Logger  LogFunc
}

// Collect gathers the chapter links of the listing starting at startURL.
//
// Traversal stops when a page has no next link, when a page yields no
// chapter links, when the next link points at an already visited page, when
// Config.PageCeiling pages have been read, or when a page cannot be fetched.
// A fetch failure is not an error: the links collected so far are returned.
// Only context cancellation yields an error, alongside the partial result.
//
// The returned links have distinct URLs. They are in listing order, or in
// chapter number order when Config.SortByNumber is set.
func (p *Paginator) Collect(ctx context.Context, startURL string) ([]novelgrab.ChapterLink, error) {
	visited := bloom.NewURLSet(uint(max(p.Config.PageCeiling, 1) * expectedLinksPerPage))
	pages := make(map[string]struct{})
	var links []novelgrab.ChapterLink

	current := startURL
	for pageCount := 0; ; {
		if err := ctx.Err(); err != nil {
			return links, err
		}
		if pageCount >= p.Config.PageCeiling {
			p.logf("page ceiling of %d reached at %s", p.Config.PageCeiling, current)
			break
		}

		html, err := FetchWithRetryDelays(ctx, current, p.Fetcher.Fetch, p.Logger, RetryDelays(p.Config))
		if err != nil {
			if ctx.Err() != nil {
				return links, ctx.Err()
			}
			p.logf("listing stopped at %s: %v", current, err)
			break
		}
		pages[current] = struct{}{}
		pageCount++

		pageLinks, err := p.Parser.ChapterLinks(html, current)
		if err != nil {
			p.logf("listing stopped at %s: %v", current, err)
			break
		}
		if len(pageLinks) == 0 {
			break
		}
		for _, link := range pageLinks {
			if visited.Add(link.URL) {
				links = append(links, link)
			}
		}

		next, ok := p.Parser.NextPageURL(html, current)
		if !ok {
			break
		}
		if _, seen := pages[next]; seen {
			p.logf("listing page %s already visited", next)
			break
		}
		current = next
	}

	if p.Config.SortByNumber {
		sorted, warnings := novelgrab.SortByChapterNumber(links)
		for _, w := range warnings {
			p.logf("sort: %s", w)
		}
		links = sorted
	}

	return links, nil
}

func (p *Paginator) logf(format string, args ...any) {
	if p.Logger != nil {
		p.Logger(format, args...)
	}
}
