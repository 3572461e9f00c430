package mock

import "github.com/fwojciec/blocksearch"

var _ blocksearch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of blocksearch.Extractor.
type Extractor struct {
	ExtractFn func(html string) (string, error)
}

func (e *Extractor) Extract(html string) (string, error) {
	return e.ExtractFn(html)
}
