// Package goquery parses HTML with goquery and can narrow a document to
// the regions selected by a CSS selector before it is searched.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/blocksearch"
	bshtml "github.com/fwojciec/blocksearch/html"
)

// Ensure Parser implements blocksearch.Parser at compile time.
var _ blocksearch.Parser = (*Parser)(nil)

// Parser parses HTML into a goquery document and exposes it as a
// blocksearch.Node tree.
type Parser struct {
	within string
}

// Option configures a Parser.
type Option func(*Parser)

// WithWithin restricts searching to the elements matched by selector.
// Only the outermost matched elements become search roots, so a nested
// selection is never searched twice.
func WithWithin(selector string) Option {
	return func(p *Parser) {
		p.within = selector
	}
}

// NewParser creates a new Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src. Without a Within selector the document node is
// returned; otherwise a non-element root whose children are the selected
// elements in document order.
func (p *Parser) Parse(src string) (blocksearch.Node, error) {
	var sel cascadia.Selector
	if p.within != "" {
		var err error
		sel, err = cascadia.Compile(p.within)
		if err != nil {
			return nil, blocksearch.Errorf(blocksearch.EINVALID, "invalid selector %q: %v", p.within, err)
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, blocksearch.Errorf(blocksearch.EINVALID, "failed to parse HTML: %v", err)
	}

	if sel == nil {
		return bshtml.Wrap(doc.Nodes[0]), nil
	}
	return Scope(doc.Selection, sel), nil
}

// Scope returns a non-element root whose children are the outermost
// elements below s matched by m.
func Scope(s *goquery.Selection, m goquery.Matcher) blocksearch.Node {
	found := s.FindMatcher(m)
	var roots []blocksearch.Node
	found.Each(func(_ int, sel *goquery.Selection) {
		if sel.Parents().FilterSelection(found).Length() > 0 {
			return
		}
		roots = append(roots, bshtml.Wrap(sel.Get(0)))
	})
	return &scope{roots: roots}
}

// scope is a synthetic container for selected subtrees.
type scope struct {
	roots []blocksearch.Node
}

func (s *scope) IsElement() bool                { return false }
func (s *scope) TagName() string                { return "" }
func (s *scope) Attr(key string) (string, bool) { return "", false }
func (s *scope) Children() []blocksearch.Node   { return s.roots }

func (s *scope) TextContent() string {
	var sb strings.Builder
	for _, r := range s.roots {
		sb.WriteString(r.TextContent())
	}
	return sb.String()
}
