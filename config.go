package novelgrab

import "time"

// Config holds the tunables of a run.
type Config struct {
	// Timeout bounds a single HTTP request.
	Timeout time.Duration `json:"timeout"`

	// RetryLimit is the total number of attempts per fetch.
	RetryLimit int `json:"retryLimit"`

	// RetryDelay is the wait between attempts.
	RetryDelay time.Duration `json:"retryDelay"`

	// ChapterDelay is the minimum spacing between requests to the same host.
	ChapterDelay time.Duration `json:"chapterDelay"`

	// PageCeiling caps the number of listing pages visited per traversal.
	PageCeiling int `json:"pageCeiling"`

	// ShortContentThreshold is the length in runes below which extracted
	// text is treated as a likely error page and re-fetched.
	ShortContentThreshold int `json:"shortContentThreshold"`

	// ChapterLinkThreshold is the number of chapter links a page needs to
	// be accepted as a listing page on its own.
	ChapterLinkThreshold int `json:"chapterLinkThreshold"`

	// Concurrency is the number of chapters fetched at once.
	Concurrency int `json:"concurrency"`

	// SortByNumber re-orders collected links by the chapter number in
	// their text.
	SortByNumber bool `json:"sortByNumber"`
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:               15 * time.Second,
		RetryLimit:            3,
		RetryDelay:            2 * time.Second,
		ChapterDelay:          1500 * time.Millisecond,
		PageCeiling:           100,
		ShortContentThreshold: 100,
		ChapterLinkThreshold:  5,
		Concurrency:           1,
		SortByNumber:          true,
	}
}

// Validate returns an error if the configuration cannot drive a run.
func (c Config) Validate() error {
	switch {
	case c.Timeout <= 0:
		return Errorf(EINVALID, "timeout must be positive")
	case c.RetryLimit < 1:
		return Errorf(EINVALID, "retry limit must be at least 1")
	case c.RetryDelay < 0:
		return Errorf(EINVALID, "retry delay must not be negative")
	case c.ChapterDelay < 0:
		return Errorf(EINVALID, "chapter delay must not be negative")
	case c.PageCeiling < 1:
		return Errorf(EINVALID, "page ceiling must be at least 1")
	case c.ChapterLinkThreshold < 1:
		return Errorf(EINVALID, "chapter link threshold must be at least 1")
	case c.Concurrency < 1:
		return Errorf(EINVALID, "concurrency must be at least 1")
	}
	return nil
}
