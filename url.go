package novelgrab

import (
	"net/url"
	"strings"
)

// NormalizeURL trims the input and prefixes https:// when no scheme is given.
// The fragment is dropped.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "book URL required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + strings.TrimPrefix(raw, "//")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", raw)
	}
	u.Fragment = ""
	return u.String(), nil
}
