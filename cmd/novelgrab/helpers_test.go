package main_test

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/fwojciec/novelgrab"
	main "github.com/fwojciec/novelgrab/cmd/novelgrab"
	"github.com/fwojciec/novelgrab/mock"
)

const (
	testBookURL    = "https://example.com/book/9/"
	testChapterLen = 6
)

// testSite returns a fetcher serving a book whose landing page lists
// testChapterLen chapters directly.
func testSite() *mock.Fetcher {
	pages := map[string]string{}

	var links strings.Builder
	for i := 1; i <= testChapterLen; i++ {
		u := fmt.Sprintf("https://example.com/read/9/p%d.html", i)
		fmt.Fprintf(&links, `<li><a href="/read/9/p%d.html">第%d章 試煉</a></li>`, i, i)
		pages[u] = fmt.Sprintf(`<html><body><h1>第%d章 試煉</h1><div id="content"><p>第%d章的正文開頭。</p><p>%s</p></div></body></html>`, i, i, longLine)
	}
	pages[testBookURL] = `<html><head>
<meta property="og:novel:book_name" content="測試之書">
<meta property="og:novel:author" content="某人">
</head><body><h1>測試之書</h1><ul class="chapter-list">` + links.String() + `</ul></body></html>`

	var mu sync.Mutex
	return &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			if err := ctx.Err(); err != nil {
				return "", err
			}
			html, ok := pages[url]
			if !ok {
				return "", novelgrab.Errorf(novelgrab.EFETCH, "HTTP 404 for %s", url)
			}
			return html, nil
		},
		CloseFn: func() error { return nil },
	}
}

// newMain returns a Main that ignores user configuration and serves fetcher.
func newMain(fetcher novelgrab.Fetcher) *main.Main {
	m := main.NewMain()
	m.ConfigPaths = nil
	m.Fetcher = fetcher
	return m
}

// fastFlags disables the waits between requests.
var fastFlags = []string{"--delay", "0s", "--retry-delay", "0s"}

const longLine = "這是一段足夠長的正文，用來確保章節內容不會被當成錯誤頁面而重新抓取。這是一段足夠長的正文，用來確保章節內容不會被當成錯誤頁面而重新抓取。這是一段足夠長的正文，用來確保章節內容不會被當成錯誤頁面而重新抓取。"
