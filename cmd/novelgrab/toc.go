package main

import (
	"fmt"

	"github.com/fwojciec/novelgrab"
)

// Run executes the toc command.
func (c *TOCCmd) Run(deps *Dependencies) error {
	cfg := c.config()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelgrab.ErrorMessage(err))
		return err
	}

	fetcher := newFetcher(deps, cfg)
	defer fetcher.Close()

	toc, err := newDriver(deps, fetcher, cfg).TOC(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelgrab.ErrorMessage(err))
		return err
	}

	if book := toc.Book; book != nil && book.Title != "" {
		fmt.Fprintf(deps.Stdout, "%s", book.Title)
		if book.Author != "" {
			fmt.Fprintf(deps.Stdout, " by %s", book.Author)
		}
		fmt.Fprintln(deps.Stdout)
	}
	fmt.Fprintf(deps.Stdout, "Listing: %s (%s)\n\n", toc.TOCURL, toc.Method)

	for i, link := range toc.Links {
		title := link.Text
		if title == "" {
			title = "-"
		}
		fmt.Fprintf(deps.Stdout, "%4d. %s  %s\n", i+1, title, link.URL)
	}
	fmt.Fprintf(deps.Stdout, "\n%d chapters\n", len(toc.Links))

	return nil
}
