package main

import (
	"fmt"

	"github.com/fwojciec/novelgrab"
)

// Run executes the books command.
func (c *BooksCmd) Run(deps *Dependencies) error {
	books, err := deps.Books.FindBooks(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelgrab.ErrorMessage(err))
		return err
	}

	if len(books) == 0 {
		fmt.Fprintln(deps.Stdout, "No books found. Use 'novelgrab grab --format sqlite <url>' to store one.")
		return nil
	}

	for _, b := range books {
		n, err := deps.Chapters.CountChapters(deps.Ctx, b.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", novelgrab.ErrorMessage(err))
			return err
		}
		title := b.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %d chapters  %s\n", title, b.Author, n, b.SourceURL)
	}

	return nil
}
