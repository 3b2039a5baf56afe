package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/novelgrab"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// RetryDelays returns the waits between fetch attempts for cfg:
// RetryLimit-1 fixed delays of RetryDelay.
func RetryDelays(cfg novelgrab.Config) []time.Duration {
	if cfg.RetryLimit <= 1 {
		return nil
	}
	delays := make([]time.Duration, cfg.RetryLimit-1)
	for i := range delays {
		delays[i] = cfg.RetryDelay
	}
	return delays
}

// DefaultRetryDelays returns the delays of DefaultConfig: 2s, 2s.
func DefaultRetryDelays() []time.Duration {
	return RetryDelays(novelgrab.DefaultConfig())
}

// FetchWithRetry attempts to fetch a URL with the default retry delays
// (3 total attempts, 2s apart).
// The logger function, if provided, is called for each retry attempt.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, logger LogFunc) (string, error) {
	return FetchWithRetryDelays(ctx, url, fetch, logger, DefaultRetryDelays())
}

// FetchWithRetryDelays is like FetchWithRetry but allows configurable delays.
// It makes len(delays)+1 attempts. When all of them fail it returns an EFETCH
// error carrying the last cause. Context cancellation is returned as is.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", novelgrab.Errorf(novelgrab.EFETCH, "fetch %s failed after %d attempts: %v", url, maxAttempts, lastErr)
}
