package crawl_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/novelgrab"
	"github.com/fwojciec/novelgrab/crawl"
	"github.com/fwojciec/novelgrab/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainLimiter(t *testing.T) {
	t.Parallel()

	t.Run("implements novelgrab.DomainLimiter interface", func(t *testing.T) {
		t.Parallel()
		var _ novelgrab.DomainLimiter = crawl.NewDomainLimiter(time.Second)
	})

	t.Run("allows immediate first request", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(100 * time.Millisecond)

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("spaces requests to same domain", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(100 * time.Millisecond)

		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("different domains have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(time.Second)

		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "other.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "different domain should not wait")
	})

	t.Run("zero interval never waits", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(0)

		start := time.Now()
		for range 10 {
			require.NoError(t, limiter.Wait(context.Background(), "example.com"))
		}

		assert.Less(t, time.Since(start), 50*time.Millisecond)
		assert.Equal(t, time.Duration(0), limiter.Interval())
	})

	t.Run("reports its interval", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1500*time.Millisecond, crawl.NewDomainLimiter(1500*time.Millisecond).Interval())
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(time.Second)

		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err = limiter.Wait(ctx, "example.com")
		assert.Error(t, err, "should fail when context times out")
	})

	t.Run("concurrent requests are serialized per domain", func(t *testing.T) {
		t.Parallel()

		limiter := crawl.NewDomainLimiter(10 * time.Millisecond)

		var wg sync.WaitGroup
		var completed atomic.Int32

		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := limiter.Wait(context.Background(), "example.com"); err == nil {
					completed.Add(1)
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, int32(5), completed.Load(), "all requests should complete")
	})
}

func TestRateLimitedFetcher(t *testing.T) {
	t.Parallel()

	t.Run("waits on the URL host before fetching", func(t *testing.T) {
		t.Parallel()

		var domains []string
		limiter := &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, domain string) error {
				domains = append(domains, domain)
				return nil
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}

		f := crawl.NewRateLimitedFetcher(fetcher, limiter)
		html, err := f.Fetch(context.Background(), "https://www.example.com:8443/read/1/p1.html")

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, []string{"www.example.com:8443"}, domains)
	})

	t.Run("does not fetch when waiting fails", func(t *testing.T) {
		t.Parallel()

		limiter := &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, domain string) error {
				return context.Canceled
			},
		}
		var fetched bool
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				fetched = true
				return "", nil
			},
		}

		_, err := crawl.NewRateLimitedFetcher(fetcher, limiter).Fetch(context.Background(), "https://example.com/")

		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, fetched)
	})

	t.Run("closes the wrapped fetcher", func(t *testing.T) {
		t.Parallel()

		var closed bool
		fetcher := &mock.Fetcher{
			CloseFn: func() error {
				closed = true
				return nil
			},
		}

		require.NoError(t, crawl.NewRateLimitedFetcher(fetcher, crawl.NewDomainLimiter(0)).Close())
		assert.True(t, closed)
	})

	t.Run("spaces consecutive fetches to one host", func(t *testing.T) {
		t.Parallel()

		var times []time.Time
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				times = append(times, time.Now())
				return "", nil
			},
		}

		f := crawl.NewRateLimitedFetcher(fetcher, crawl.NewDomainLimiter(40*time.Millisecond))
		for _, u := range []string{"https://example.com/p1.html", "https://example.com/p2.html", "https://example.com/p3.html"} {
			_, err := f.Fetch(context.Background(), u)
			require.NoError(t, err)
		}

		require.Len(t, times, 3)
		for i := 1; i < len(times); i++ {
			assert.GreaterOrEqual(t, times[i].Sub(times[i-1]), 30*time.Millisecond)
		}
	})
}
