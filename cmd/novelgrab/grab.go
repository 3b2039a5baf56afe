package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/novelgrab"
	"github.com/fwojciec/novelgrab/crawl"
	"github.com/fwojciec/novelgrab/fs"
	"github.com/fwojciec/novelgrab/goquery"
	"github.com/fwojciec/novelgrab/htmltomarkdown"
	nghttp "github.com/fwojciec/novelgrab/http"
	ngslog "github.com/fwojciec/novelgrab/slog"
	"github.com/fwojciec/novelgrab/sqlite"
)

// Run executes the grab command.
func (c *GrabCmd) Run(deps *Dependencies) error {
	cfg := c.config()
	cfg.Concurrency = c.Concurrency
	cfg.ShortContentThreshold = c.MinChars
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelgrab.ErrorMessage(err))
		return err
	}

	sink, err := c.sink(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelgrab.ErrorMessage(err))
		return err
	}

	fetcher := newFetcher(deps, cfg)
	defer fetcher.Close()

	driver := newDriver(deps, fetcher, cfg)
	if c.Resume {
		driver.Resume = ngslog.NewLoggingResumeStore(fs.NewResumeFile(c.ResumeFile), deps.Logger)
	}
	driver.Progress = func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d chapters to fetch\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%s] %s (%d chars)\n",
				crawl.FormatCount(event.Completed, event.Total), displayTitle(event), event.Chars)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, novelgrab.ErrorMessage(event.Error))
		}
	}

	summary, err := driver.Run(deps.Ctx, c.URL, ngslog.NewLoggingSink(sink, deps.Logger))
	if summary == nil && errors.Is(err, context.Canceled) {
		fmt.Fprintln(deps.Stdout, "Interrupted before any chapter was fetched.")
		return nil
	}
	if summary == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelgrab.ErrorMessage(err))
		if code := novelgrab.ErrorCode(err); code == novelgrab.ETOCUNRESOLVED || code == novelgrab.EEMPTYTOC {
			fmt.Fprintln(deps.Stderr, "Hint: pass the chapter listing URL directly if the landing page links to it oddly")
		}
		return err
	}

	if summary.Interrupted {
		fmt.Fprintln(deps.Stdout, "Interrupted, stopping early.")
	}
	if summary.Skipped > 0 {
		fmt.Fprintf(deps.Stdout, "Skipped %d chapters saved by an earlier run\n", summary.Skipped)
	}
	fmt.Fprintf(deps.Stdout, "Saved %d/%d chapters\n", summary.Saved, summary.Total-summary.Skipped)

	// An interrupt is a clean early stop.
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelgrab.ErrorMessage(err))
		return err
	}
	return nil
}

// sink returns the output sink for the selected format.
func (c *GrabCmd) sink(deps *Dependencies) (novelgrab.Sink, error) {
	switch c.Format {
	case FormatText:
		return fs.NewTextSink(c.outOr("chapters"), fs.WithExtension(c.Ext)), nil
	case FormatJSON:
		return fs.NewJSONSink(c.outOr("book.json")), nil
	case FormatMarkdown:
		var opts []fs.MarkdownOption
		if c.Resume {
			opts = append(opts, fs.WithAppend())
		}
		return fs.NewMarkdownSink(c.outOr("book.md"), opts...), nil
	case FormatSQLite:
		if deps.Books == nil || deps.Chapters == nil {
			return nil, novelgrab.Errorf(novelgrab.EINTERNAL, "database not open")
		}
		return &sqlite.ChapterSink{Books: deps.Books, Chapters: deps.Chapters}, nil
	}
	return nil, novelgrab.Errorf(novelgrab.EINVALID, "unknown format %q", c.Format)
}

func (c *GrabCmd) outOr(fallback string) string {
	if c.Out != "" {
		return c.Out
	}
	return fallback
}

// newFetcher returns the injected fetcher or an HTTP fetcher, wrapped with
// request logging.
func newFetcher(deps *Dependencies, cfg novelgrab.Config) novelgrab.Fetcher {
	fetcher := deps.Fetcher
	if fetcher == nil {
		fetcher = nghttp.NewFetcher(nghttp.WithTimeout(cfg.Timeout))
	}
	return ngslog.NewLoggingFetcher(fetcher, deps.Logger)
}

// newDriver wires the pipeline stages used by grab and toc.
func newDriver(deps *Dependencies, fetcher novelgrab.Fetcher, cfg novelgrab.Config) *crawl.Driver {
	return &crawl.Driver{
		Fetcher:   fetcher,
		Parser:    goquery.NewTOCParser(),
		Content:   goquery.NewContentExtractor(),
		Converter: htmltomarkdown.NewConverter(),
		Config:    cfg,
		Logger: func(format string, args ...any) {
			fmt.Fprintf(deps.Stderr, format+"\n", args...)
		},
	}
}

func displayTitle(event crawl.ProgressEvent) string {
	if event.Title != "" {
		return event.Title
	}
	return crawl.TruncateURL(event.URL, 60)
}
