package novelgrab

import "context"

// Fetcher retrieves page bodies from URLs.
type Fetcher interface {
	// Fetch issues a GET request for the URL and returns the body decoded
	// to UTF-8. Non-2xx responses are errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter enforces a minimum spacing between requests to the same
// domain.
type DomainLimiter interface {
	// Wait blocks until a request to domain is allowed or ctx is done.
	Wait(ctx context.Context, domain string) error
}
