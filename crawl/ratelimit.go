package crawl

import (
	"context"
	"math"
	"net/url"
	"sync"
	"time"

	"github.com/fwojciec/novelgrab"
	"golang.org/x/time/rate"
)

var _ novelgrab.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter provides per-domain rate limiting using token buckets.
// It creates a separate rate limiter for each domain, allowing concurrent
// requests to different domains while enforcing spacing within each domain.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
}

// NewDomainLimiter creates a DomainLimiter that spaces requests to the same
// domain at least interval apart. Each domain gets its own limiter with a
// burst of 1 (no bursting allowed). A zero interval disables limiting.
func NewDomainLimiter(interval time.Duration) *DomainLimiter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    limit,
	}
}

// Wait blocks until the rate limit allows a request to the domain.
// Returns an error if the context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(d.limit, 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// Interval returns the configured spacing, or zero when unlimited.
func (d *DomainLimiter) Interval() time.Duration {
	if d.limit == rate.Inf || d.limit == 0 {
		return 0
	}
	return time.Duration(math.Round(float64(time.Second) / float64(d.limit)))
}

var _ novelgrab.Fetcher = (*RateLimitedFetcher)(nil)

// RateLimitedFetcher waits on a DomainLimiter keyed by the URL's host
// before every fetch.
type RateLimitedFetcher struct {
	fetcher novelgrab.Fetcher
	limiter novelgrab.DomainLimiter
}

// NewRateLimitedFetcher wraps fetcher with limiter.
func NewRateLimitedFetcher(fetcher novelgrab.Fetcher, limiter novelgrab.DomainLimiter) *RateLimitedFetcher {
	return &RateLimitedFetcher{fetcher: fetcher, limiter: limiter}
}

// Fetch waits for the host's turn, then delegates.
func (f *RateLimitedFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	host := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
		host = u.Host
	}
	if err := f.limiter.Wait(ctx, host); err != nil {
		return "", err
	}
	return f.fetcher.Fetch(ctx, rawURL)
}

// Close closes the underlying fetcher.
func (f *RateLimitedFetcher) Close() error {
	return f.fetcher.Close()
}
