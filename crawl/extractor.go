package crawl

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/novelgrab"
)

// Extractor fetches chapter pages and extracts their text.
type Extractor struct {
	Fetcher novelgrab.Fetcher
	Content novelgrab.ContentExtractor
	Config  novelgrab.Config
	Logger  LogFunc
}

// Extract fetches url and returns its cleaned chapter text.
//
// Text shorter than Config.ShortContentThreshold is treated as a likely
// error page and the chapter is fetched again, up to Config.RetryLimit
// fetches in total; the last result is then returned as is. Extract returns
// EFETCH when the page cannot be fetched and ENOCONTENT when no text
// remains.
func (e *Extractor) Extract(ctx context.Context, url string) (*novelgrab.ExtractResult, error) {
	attempts := max(e.Config.RetryLimit, 1)
	delays := RetryDelays(e.Config)

	var last *novelgrab.ExtractResult
	for attempt := 1; attempt <= attempts; attempt++ {
		html, err := FetchWithRetryDelays(ctx, url, e.Fetcher.Fetch, e.Logger, delays)
		if err != nil {
			return nil, err
		}

		result, err := e.Content.Extract(html)
		if err != nil {
			return nil, err
		}
		last = result

		n := utf8.RuneCountInString(result.Text)
		if n >= e.Config.ShortContentThreshold {
			return result, nil
		}
		if attempt == attempts {
			break
		}

		if e.Logger != nil {
			e.Logger("  short content at %s (%d chars), refetching", url, n)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(e.Config.RetryDelay):
		}
	}

	if last.Text == "" {
		return nil, novelgrab.Errorf(novelgrab.ENOCONTENT, "no content found at %s", url)
	}
	return last, nil
}
