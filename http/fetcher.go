// Package http provides an HTTP-based implementation of novelgrab.Fetcher.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/novelgrab"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// DefaultHeaders is the browser-like header set sent with every request.
// Many novel sites reject requests without a realistic User-Agent.
var DefaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "zh-TW,zh;q=0.9,zh-CN;q=0.8,en-US;q=0.7,en;q=0.6",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
}

// Ensure Fetcher implements novelgrab.Fetcher at compile time.
var _ novelgrab.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using plain HTTP GET requests.
// Response bodies are decoded to UTF-8 based on the Content-Type header
// and <meta charset> declarations.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	headers map[string]string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHeader sets or overrides a request header.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.headers[key] = value
	}
}

// WithClient uses the given client instead of a new one.
// The client's Timeout is overwritten by the configured timeout.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		headers: make(map[string]string, len(DefaultHeaders)),
	}
	for k, v := range DefaultHeaders {
		f.headers[k] = v
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{}
	}
	f.client.Timeout = f.timeout

	return f
}

// Fetch retrieves the page at url and returns its body as UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", novelgrab.Errorf(novelgrab.EINVALID, "invalid request for %s: %v", url, err)
	}
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", novelgrab.Errorf(novelgrab.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	r, err := charset.NewReader(io.LimitReader(resp.Body, maxBodySize), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode body of %s: %w", url, err)
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
