package goquery_test

import (
	"testing"

	"github.com/fwojciec/novelgrab/goquery"
	"github.com/stretchr/testify/assert"
)

func TestTOCParser_BookInfo(t *testing.T) {
	t.Parallel()

	t.Run("reads og:novel meta tags", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
<meta property="og:title" content="Generic Title">
<meta property="og:novel:book_name" content="劍來">
<meta property="og:novel:author" content="烽火戲諸侯">
<meta property="og:novel:status" content="連載中">
<meta property="og:image" content="/covers/1.jpg">
<meta property="og:description" content="大千世界 & 無奇不有">
</head><body><h1>Heading</h1></body></html>`

		book := goquery.NewTOCParser().BookInfo(html, "https://example.com/book/1")

		assert.Equal(t, "https://example.com/book/1", book.SourceURL)
		assert.Equal(t, "劍來", book.Title)
		assert.Equal(t, "烽火戲諸侯", book.Author)
		assert.Equal(t, "連載中", book.Status)
		assert.Equal(t, "https://example.com/covers/1.jpg", book.CoverURL)
		assert.Equal(t, "大千世界 &amp; 無奇不有", book.Description)
	})

	t.Run("falls back to page elements", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Site | Book</title></head><body>
<h1>The Long Road</h1>
<span class="author">Jane Doe</span>
<div class="intro"><p>A <b>long</b> story.</p></div>
</body></html>`

		book := goquery.NewTOCParser().BookInfo(html, "https://example.com/book/2")

		assert.Equal(t, "The Long Road", book.Title)
		assert.Equal(t, "Jane Doe", book.Author)
		assert.Equal(t, "<p>A <b>long</b> story.</p>", book.Description)
		assert.Empty(t, book.CoverURL)
	})

	t.Run("returns only the source URL for bare pages", func(t *testing.T) {
		t.Parallel()

		book := goquery.NewTOCParser().BookInfo(`<html><body></body></html>`, "https://example.com/book/3")

		assert.Equal(t, "https://example.com/book/3", book.SourceURL)
		assert.Empty(t, book.Title)
	})
}
