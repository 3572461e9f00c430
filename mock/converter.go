package mock

import "github.com/fwojciec/blocksearch"

var _ blocksearch.Converter = (*Converter)(nil)

// Converter is a mock implementation of blocksearch.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
