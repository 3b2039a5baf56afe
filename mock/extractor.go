package mock

import "github.com/fwojciec/novelgrab"

var _ novelgrab.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of novelgrab.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*novelgrab.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*novelgrab.ExtractResult, error) {
	return e.ExtractFn(html)
}
