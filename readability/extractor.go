// Package readability narrows pages to their main content with
// go-shiori/go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/blocksearch"
	"github.com/go-shiori/go-readability"
)

var _ blocksearch.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", blocksearch.Errorf(blocksearch.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(article.Content) == "" {
		return "", blocksearch.Errorf(blocksearch.ENOTFOUND, "no main content found")
	}
	return article.Content, nil
}
