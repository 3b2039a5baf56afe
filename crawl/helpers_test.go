package crawl_test

import (
	"context"
	"sync"

	"github.com/fwojciec/novelgrab"
	"github.com/fwojciec/novelgrab/mock"
)

// testConfig returns the default config without waits.
func testConfig() novelgrab.Config {
	cfg := novelgrab.DefaultConfig()
	cfg.RetryDelay = 0
	cfg.ChapterDelay = 0
	return cfg
}

// site serves fixed pages and records every request.
type site struct {
	mu       sync.Mutex
	pages    map[string]string
	requests []string
}

func newSite(pages map[string]string) *site {
	return &site{pages: pages}
}

func (s *site) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.requests = append(s.requests, url)
			if err := ctx.Err(); err != nil {
				return "", err
			}
			html, ok := s.pages[url]
			if !ok {
				return "", novelgrab.Errorf(novelgrab.EFETCH, "HTTP 404 for %s", url)
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

// count returns how many times url was requested.
func (s *site) count(url string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, r := range s.requests {
		if r == url {
			n++
		}
	}
	return n
}

// total returns the number of requests made.
func (s *site) total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

// page wraps body in a minimal HTML document.
func page(body string) string {
	return "<html><body>" + body + "</body></html>"
}

// chapterPage returns a chapter page whose text is long enough to be kept.
func chapterPage(title, text string) string {
	return page("<h1>" + title + "</h1><div id=\"content\"><p>" + text + "</p><p>" + longLine + "</p></div>")
}

const longLine = "這是一段足夠長的正文，用來確保章節內容不會被當成錯誤頁面而重新抓取。這是一段足夠長的正文，用來確保章節內容不會被當成錯誤頁面而重新抓取。這是一段足夠長的正文，用來確保章節內容不會被當成錯誤頁面而重新抓取。"
