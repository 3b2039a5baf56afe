package novelgrab

import (
	"context"
	"strconv"
	"time"
)

// ChapterLink is an anchor classified as a chapter link on a listing page.
type ChapterLink struct {
	URL  string `json:"url"`  // absolute, fragment stripped
	Text string `json:"text"` // visible anchor text, may be empty
}

// Chapter is a cleaned chapter ready for persistence.
type Chapter struct {
	ID          string    `json:"id,omitempty"`
	BookID      string    `json:"bookId,omitempty"`
	SourceURL   string    `json:"url"`
	Index       int       `json:"index"` // 1-based position in the final order
	Title       string    `json:"title,omitempty"`
	Body        string    `json:"text"`
	ContentHash string    `json:"hash,omitempty"`
	UpdatedAt   time.Time `json:"-"`
}

// Validate returns an error if the chapter contains invalid fields.
func (c *Chapter) Validate() error {
	if c.Index < 1 {
		return Errorf(EINVALID, "chapter index must be >= 1, got %d", c.Index)
	}
	if c.Body == "" {
		return Errorf(EINVALID, "chapter body required")
	}
	return nil
}

// DisplayTitle returns the chapter title, or "Chapter N" when there is none.
func (c *Chapter) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return "Chapter " + strconv.Itoa(c.Index)
}

// Summary reports the outcome of a run.
type Summary struct {
	Saved       int  `json:"saved"`
	Failed      int  `json:"failed"`
	Skipped     int  `json:"skipped"` // already completed in an earlier run
	Total       int  `json:"total"`
	Interrupted bool `json:"interrupted"`
}

// Attempted returns the number of chapters the run tried to fetch.
func (s Summary) Attempted() int {
	return s.Saved + s.Failed
}

// Sink consumes chapters produced by a run.
type Sink interface {
	// OnChapter is called once per successfully extracted chapter,
	// in strictly increasing index order.
	OnChapter(ctx context.Context, ch *Chapter) error

	// OnSummary is called once at the end of a run.
	OnSummary(ctx context.Context, s Summary) error
}

// BookSink is implemented by sinks that want the book metadata before
// the first chapter arrives.
type BookSink interface {
	Sink
	OnBook(ctx context.Context, book *Book) error
}

// ResumeStore persists the last completed chapter index per book so a later
// run can skip chapters that were already saved.
type ResumeStore interface {
	// LastIndex returns the last completed index for key, or 0.
	LastIndex(ctx context.Context, key string) (int, error)

	// SaveLastIndex records index as completed for key.
	SaveLastIndex(ctx context.Context, key string, index int) error
}
