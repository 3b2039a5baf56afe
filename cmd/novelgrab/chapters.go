package main

import (
	"fmt"

	"github.com/fwojciec/novelgrab"
)

// Run executes the chapters command.
func (c *ChaptersCmd) Run(deps *Dependencies) error {
	book, err := findBook(deps, c.URL)
	if err != nil {
		return err
	}

	heads, err := deps.Chapters.FindChapterHeads(deps.Ctx, book.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelgrab.ErrorMessage(err))
		return err
	}

	if len(heads) == 0 {
		fmt.Fprintf(deps.Stdout, "No chapters stored for %s.\n", book.SourceURL)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Chapters of %s (%d total):\n\n", bookLabel(book), len(heads))
	for _, h := range heads {
		title := h.Title
		if title == "" {
			title = fmt.Sprintf("Chapter %d", h.Index)
		}
		fmt.Fprintf(deps.Stdout, "%4d. %s\n", h.Index, title)
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	book, err := findBook(deps, c.URL)
	if err != nil {
		return err
	}

	ch, err := deps.Chapters.FindChapter(deps.Ctx, book.ID, c.Index)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelgrab.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "# %s\n\n%s\n", ch.DisplayTitle(), ch.Body)
	return nil
}

// findBook looks up a stored book by URL, normalizing it the way grab does.
func findBook(deps *Dependencies, rawURL string) (*novelgrab.Book, error) {
	u, err := novelgrab.NormalizeURL(rawURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelgrab.ErrorMessage(err))
		return nil, err
	}

	book, err := deps.Books.FindBookByURL(deps.Ctx, u)
	if novelgrab.ErrorCode(err) == novelgrab.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: book %q not found. Use 'novelgrab books' to see stored books.\n", u)
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", novelgrab.ErrorMessage(err))
		return nil, err
	}
	return book, nil
}

func bookLabel(b *novelgrab.Book) string {
	if b.Title != "" {
		return b.Title
	}
	return b.SourceURL
}
