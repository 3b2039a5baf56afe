// Package htmltomarkdown converts book descriptions and other HTML fragments
// to Markdown using html-to-markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/novelgrab"
)

// Ensure Converter implements novelgrab.Converter at compile time.
var _ novelgrab.Converter = (*Converter)(nil)

// blankRuns matches three or more consecutive line breaks.
var blankRuns = regexp.MustCompile(`\n{3,}`)

// Converter wraps html-to-markdown to convert HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown. The result is trimmed
// and blank-line runs are collapsed to a single empty line.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", novelgrab.Errorf(novelgrab.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	result = blankRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result), nil
}
