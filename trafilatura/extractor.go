// Package trafilatura narrows pages to their main content with
// markusmobius/go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/blocksearch"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ blocksearch.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura. Fallback extraction is enabled, so pages
// trafilatura cannot handle alone are retried with its bundled extractors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the main content of rawHTML.
func (e *Extractor) Extract(rawHTML string) (string, error) {
	if rawHTML == "" {
		return "", blocksearch.Errorf(blocksearch.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{EnableFallback: true})
	if err != nil {
		return "", err
	}
	if result.ContentNode == nil {
		return "", blocksearch.Errorf(blocksearch.ENOTFOUND, "no main content found")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return "", err
	}
	return buf.String(), nil
}
