// Package bloom provides URL deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// DefaultFalsePositiveRate is the false positive rate of NewURLSet filters.
const DefaultFalsePositiveRate = 0.01

// URLSet records visited URLs. A Bloom filter answers most negative lookups;
// positives are confirmed against an exact set so no URL is ever reported
// as seen by mistake. It is safe for concurrent use.
type URLSet struct {
	mu    sync.Mutex
	f     *bloom.BloomFilter
	exact map[string]struct{}
}

// NewURLSet creates a set sized for n expected URLs.
func NewURLSet(n uint) *URLSet {
	if n == 0 {
		n = 1
	}
	return &URLSet{
		f:     bloom.NewWithEstimates(n, DefaultFalsePositiveRate),
		exact: make(map[string]struct{}),
	}
}

// Add records url and reports whether it was new.
func (s *URLSet) Add(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contains(url) {
		return false
	}
	s.f.AddString(url)
	s.exact[url] = struct{}{}
	return true
}

// Contains reports whether url has been added.
func (s *URLSet) Contains(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contains(url)
}

func (s *URLSet) contains(url string) bool {
	if !s.f.TestString(url) {
		return false
	}
	_, ok := s.exact[url]
	return ok
}

// Len returns the number of URLs in the set.
func (s *URLSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.exact)
}

// EstimatedCount returns the filter's approximate number of items.
func (s *URLSet) EstimatedCount() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint(s.f.ApproximatedSize())
}
