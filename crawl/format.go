package crawl

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
// Lengths count runes, so decoded non-ASCII paths are never cut mid-character.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(url)
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return string(runes[:min(len(runes), maxLen)])
	}
	if len(runes) <= maxLen {
		return url
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}

// FormatCount formats "n/total" with a percentage, e.g. "3/4 (75%)".
func FormatCount(n, total int) string {
	if total <= 0 {
		return fmt.Sprintf("%d/%d", n, total)
	}
	return fmt.Sprintf("%d/%d (%d%%)", n, total, n*100/total)
}
