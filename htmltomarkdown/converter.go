// Package htmltomarkdown renders matched elements as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/blocksearch"
)

var _ blocksearch.Converter = (*Converter)(nil)

// Converter converts HTML fragments to Markdown with html-to-markdown,
// including tables.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert transforms an HTML fragment into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", blocksearch.Errorf(blocksearch.EINVALID, "empty HTML input")
	}
	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

// ConvertMatch renders the element bound to match and converts it. The
// element must come from a parser whose nodes can render themselves.
func ConvertMatch(c blocksearch.Converter, match *blocksearch.Block) (string, error) {
	if match == nil || match.Element == nil {
		return "", blocksearch.Errorf(blocksearch.EINVALID, "block is not bound")
	}
	r, ok := match.Element.(blocksearch.Renderer)
	if !ok {
		return "", blocksearch.Errorf(blocksearch.EINVALID, "%s element cannot be rendered", match.Tag)
	}
	html, err := r.Render()
	if err != nil {
		return "", err
	}
	return c.Convert(html)
}
