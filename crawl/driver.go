// Package crawl orchestrates grabbing a novel: locating its chapter listing,
// walking the listing's pages, and extracting every chapter in order.
package crawl

import (
	"context"
	"unicode/utf8"

	"github.com/fwojciec/novelgrab"
	"golang.org/x/sync/errgroup"
)

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Index     int // 1-based chapter index
	Completed int
	Total     int
	URL       string
	Title     string
	Chars     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting progress.
type ProgressFunc func(event ProgressEvent)

// Driver runs the whole pipeline for one book.
type Driver struct {
	Fetcher   novelgrab.Fetcher
	Parser    novelgrab.TOCParser
	Content   novelgrab.ContentExtractor
	Converter novelgrab.Converter   // optional
	Resume    novelgrab.ResumeStore // optional
	Config    novelgrab.Config
	Logger    LogFunc
	Progress  ProgressFunc
}

// TOC is the resolved chapter listing of a book.
type TOC struct {
	BookURL string
	*Resolution
	Links []novelgrab.ChapterLink
}

// components wires the pipeline stages around a rate-limited fetcher so
// every request to a host honors Config.ChapterDelay.
type components struct {
	resolver  *Resolver
	paginator *Paginator
	extractor *Extractor
}

func (d *Driver) components() components {
	fetcher := NewRateLimitedFetcher(d.Fetcher, NewDomainLimiter(d.Config.ChapterDelay))
	return components{
		resolver: &Resolver{
			Fetcher:   fetcher,
			Parser:    d.Parser,
			Converter: d.Converter,
			Config:    d.Config,
			Logger:    d.Logger,
		},
		paginator: &Paginator{
			Fetcher: fetcher,
			Parser:  d.Parser,
			Config:  d.Config,
			Logger:  d.Logger,
		},
		extractor: &Extractor{
			Fetcher: fetcher,
			Content: d.Content,
			Config:  d.Config,
			Logger:  d.Logger,
		},
	}
}

// TOC resolves and collects the chapter listing of a book without
// downloading any chapter.
func (d *Driver) TOC(ctx context.Context, bookURL string) (*TOC, error) {
	if err := d.Config.Validate(); err != nil {
		return nil, err
	}
	return d.toc(ctx, d.components(), bookURL)
}

func (d *Driver) toc(ctx context.Context, c components, bookURL string) (*TOC, error) {
	bookURL, err := novelgrab.NormalizeURL(bookURL)
	if err != nil {
		return nil, err
	}

	res, err := c.resolver.Resolve(ctx, bookURL)
	if err != nil {
		return nil, err
	}

	links, err := c.paginator.Collect(ctx, res.TOCURL)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, novelgrab.Errorf(novelgrab.EEMPTYTOC, "no chapter links found at %s", res.TOCURL)
	}

	return &TOC{BookURL: bookURL, Resolution: res, Links: links}, nil
}

// chapterJob is a chapter scheduled for extraction.
type chapterJob struct {
	position int
	index    int
	link     novelgrab.ChapterLink
}

// chapterResult holds the outcome of extracting a single chapter.
type chapterResult struct {
	chapterJob
	result *novelgrab.ExtractResult
	err    error
}

// Run grabs every chapter of the book at bookURL into sink.
//
// Fatal conditions (invalid URL, no chapter listing, empty listing, failing
// book sink) are returned before any chapter is fetched. Chapter failures
// are counted and skipped. Chapters reach the sink in strictly increasing
// index order even when several are fetched at once. When ctx is canceled
// no further chapter is handed over, the summary is marked Interrupted and
// still reported to the sink, and ctx.Err() is returned with it.
func (d *Driver) Run(ctx context.Context, bookURL string, sink novelgrab.Sink) (*novelgrab.Summary, error) {
	if err := d.Config.Validate(); err != nil {
		return nil, err
	}
	c := d.components()

	toc, err := d.toc(ctx, c, bookURL)
	if err != nil {
		return nil, err
	}

	if bs, ok := sink.(novelgrab.BookSink); ok {
		if err := bs.OnBook(ctx, toc.Book); err != nil {
			return nil, err
		}
	}

	summary := &novelgrab.Summary{Total: len(toc.Links)}

	var resumeFrom int
	if d.Resume != nil {
		if resumeFrom, err = d.Resume.LastIndex(ctx, toc.BookURL); err != nil {
			d.logf("read resume marker: %v", err)
			resumeFrom = 0
		}
	}

	var jobs []chapterJob
	for i, link := range toc.Links {
		index := i + 1
		if index <= resumeFrom {
			summary.Skipped++
			continue
		}
		jobs = append(jobs, chapterJob{position: len(jobs), index: index, link: link})
	}
	if summary.Skipped > 0 {
		d.logf("resuming after chapter %d", resumeFrom)
	}

	d.progress(ProgressEvent{Type: ProgressStarted, Total: len(jobs)})

	// A chapter being delivered when ctx is canceled is still saved and
	// checkpointed, and the summary is always reported.
	deliverCtx := context.WithoutCancel(ctx)

	results := make(chan chapterResult)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.Config.Concurrency)

	go func() {
		for _, job := range jobs {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				res, err := c.extractor.Extract(gctx, job.link.URL)
				results <- chapterResult{chapterJob: job, result: res, err: err}
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	// The resume marker only advances over an unbroken run of saved
	// chapters, so a failed chapter is retried by the next resumed run.
	pending := make(map[int]chapterResult)
	next, completed := 0, 0
	contiguous := true
	for r := range results {
		pending[r.position] = r
		for {
			cr, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if ctx.Err() != nil {
				continue
			}
			completed++
			saved := d.deliver(deliverCtx, sink, cr, summary, completed, len(jobs))
			if !saved {
				contiguous = false
			}
			if saved && contiguous {
				d.checkpoint(deliverCtx, toc.BookURL, cr.index)
			}
		}
	}

	summary.Interrupted = ctx.Err() != nil

	d.progress(ProgressEvent{Type: ProgressFinished, Completed: completed, Total: len(jobs)})

	if err := sink.OnSummary(deliverCtx, *summary); err != nil {
		return summary, err
	}
	if summary.Interrupted {
		return summary, ctx.Err()
	}
	return summary, nil
}

// deliver hands one extracted chapter to the sink and records the outcome.
// It reports whether the chapter was saved.
func (d *Driver) deliver(ctx context.Context, sink novelgrab.Sink, cr chapterResult, summary *novelgrab.Summary, completed, total int) bool {
	event := ProgressEvent{
		Index:     cr.index,
		Completed: completed,
		Total:     total,
		URL:       cr.link.URL,
	}

	fail := func(err error) {
		summary.Failed++
		event.Type = ProgressFailed
		event.Error = err
		d.logf("chapter %d (%s) failed: %v", cr.index, cr.link.URL, err)
		d.progress(event)
	}

	if cr.err != nil {
		fail(cr.err)
		return false
	}

	title := cr.link.Text
	if title == "" {
		title = cr.result.Title
	}
	ch := &novelgrab.Chapter{
		SourceURL:   cr.link.URL,
		Index:       cr.index,
		Title:       title,
		Body:        cr.result.Text,
		ContentHash: ComputeHash(cr.result.Text),
	}
	if err := ch.Validate(); err != nil {
		fail(err)
		return false
	}
	if err := sink.OnChapter(ctx, ch); err != nil {
		fail(err)
		return false
	}
	summary.Saved++

	event.Type = ProgressCompleted
	event.Title = ch.Title
	event.Chars = utf8.RuneCountInString(ch.Body)
	d.progress(event)
	return true
}

func (d *Driver) checkpoint(ctx context.Context, key string, index int) {
	if d.Resume == nil {
		return
	}
	if err := d.Resume.SaveLastIndex(ctx, key, index); err != nil {
		d.logf("save resume marker: %v", err)
	}
}

func (d *Driver) logf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger(format, args...)
	}
}

func (d *Driver) progress(event ProgressEvent) {
	if d.Progress != nil {
		d.Progress(event)
	}
}
