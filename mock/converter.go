package mock

import "github.com/fwojciec/novelgrab"

var _ novelgrab.Converter = (*Converter)(nil)

// Converter is a mock implementation of novelgrab.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
