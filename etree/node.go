// Package etree adapts beevik/etree XML documents to blocksearch.Node so
// that block templates can be matched against XML and XHTML input.
package etree

import (
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/blocksearch"
)

// Compile-time interface verification.
var (
	_ blocksearch.Node     = Node{}
	_ blocksearch.Renderer = Node{}
	_ blocksearch.Parser   = (*Parser)(nil)
)

// Node wraps an etree token. Element tag names are reported without their
// namespace prefix.
type Node struct {
	tok  etree.Token
	root bool
}

// Wrap returns the Node for an element.
func Wrap(el *etree.Element) Node {
	return Node{tok: el}
}

// Token returns the wrapped token.
func (n Node) Token() etree.Token {
	return n.tok
}

func (n Node) element() (*etree.Element, bool) {
	el, ok := n.tok.(*etree.Element)
	return el, ok && el != nil
}

// IsElement reports whether the node is an element.
func (n Node) IsElement() bool {
	_, ok := n.element()
	return ok && !n.root
}

// TagName returns the element's local tag name.
func (n Node) TagName() string {
	if !n.IsElement() {
		return ""
	}
	el, _ := n.element()
	return el.Tag
}

// Attr returns the value of the attribute named key. Prefixed keys such
// as "xml:lang" are supported.
func (n Node) Attr(key string) (string, bool) {
	if !n.IsElement() {
		return "", false
	}
	el, _ := n.element()
	a := el.SelectAttr(key)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// TextContent returns the character data of the node and its descendants.
func (n Node) TextContent() string {
	switch tok := n.tok.(type) {
	case *etree.CharData:
		return tok.Data
	case *etree.Element:
		var sb strings.Builder
		collectText(tok, &sb)
		return sb.String()
	}
	return ""
}

func collectText(el *etree.Element, sb *strings.Builder) {
	for _, c := range el.Child {
		switch tok := c.(type) {
		case *etree.CharData:
			sb.WriteString(tok.Data)
		case *etree.Element:
			collectText(tok, sb)
		}
	}
}

// Children returns all direct child tokens.
func (n Node) Children() []blocksearch.Node {
	el, ok := n.element()
	if !ok {
		return nil
	}
	children := make([]blocksearch.Node, 0, len(el.Child))
	for _, c := range el.Child {
		children = append(children, Node{tok: c})
	}
	return children
}

// Render returns the element serialized as XML.
func (n Node) Render() (string, error) {
	el, ok := n.element()
	if !ok {
		return n.TextContent(), nil
	}
	doc := etree.NewDocument()
	if n.root {
		for _, c := range el.Child {
			if e, ok := c.(*etree.Element); ok {
				doc.AddChild(e.Copy())
			}
		}
	} else {
		doc.SetRoot(el.Copy())
	}
	return doc.WriteToString()
}

// Parser parses XML documents with beevik/etree.
type Parser struct {
	within string
}

// Option configures a Parser.
type Option func(*Parser)

// WithWithin restricts searching to the elements selected by an etree
// path such as "./feed/entry" or "//section[@id='main']". Only the
// outermost selected elements become search roots.
func WithWithin(path string) Option {
	return func(p *Parser) {
		p.within = path
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

// Parse parses src and returns the document node, or a non-element root
// over the selected elements when a Within path is set.
func (p *Parser) Parse(src string) (blocksearch.Node, error) {
	var path etree.Path
	if p.within != "" {
		var err error
		path, err = etree.CompilePath(p.within)
		if err != nil {
			return nil, blocksearch.Errorf(blocksearch.EINVALID, "invalid path %q: %v", p.within, err)
		}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromString(src); err != nil {
		return nil, blocksearch.Errorf(blocksearch.EINVALID, "failed to parse XML: %v", err)
	}
	if p.within == "" {
		return Node{tok: &doc.Element, root: true}, nil
	}

	found := doc.FindElementsPath(path)
	selected := make(map[*etree.Element]bool, len(found))
	for _, el := range found {
		selected[el] = true
	}
	var roots []blocksearch.Node
	for _, el := range found {
		if !hasSelectedAncestor(el, selected) {
			roots = append(roots, Node{tok: el})
		}
	}
	return &scope{roots: roots}, nil
}

func hasSelectedAncestor(el *etree.Element, selected map[*etree.Element]bool) bool {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if selected[p] {
			return true
		}
	}
	return false
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
