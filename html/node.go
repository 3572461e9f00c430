// Package html adapts golang.org/x/net/html trees to blocksearch.Node.
package html

import (
	"bytes"
	"io"
	"strings"

	"github.com/fwojciec/blocksearch"
	"golang.org/x/net/html"
)

// Compile-time interface verification.
var (
	_ blocksearch.Node     = Node{}
	_ blocksearch.Renderer = Node{}
	_ blocksearch.Parser   = (*Parser)(nil)
)

// Node wraps an *html.Node. Node is a small value type: two Nodes wrapping
// the same *html.Node compare equal with ==.
type Node struct {
	n *html.Node
}

// Wrap returns the Node for n.
func Wrap(n *html.Node) Node {
	return Node{n: n}
}

// HTMLNode returns the wrapped node.
func (n Node) HTMLNode() *html.Node {
	return n.n
}

// IsElement reports whether the node is an element.
func (n Node) IsElement() bool {
	return n.n != nil && n.n.Type == html.ElementNode
}

// TagName returns the element's tag name.
func (n Node) TagName() string {
	if !n.IsElement() {
		return ""
	}
	return n.n.Data
}

// Attr returns the value of the attribute named key. Namespaced attributes
// (e.g. xlink:href) are looked up by their prefixed name.
func (n Node) Attr(key string) (string, bool) {
	if !n.IsElement() {
		return "", false
	}
	for _, a := range n.n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		if name == key {
			return a.Val, true
		}
	}
	return "", false
}

// TextContent returns the text of all descendant text nodes.
func (n Node) TextContent() string {
	if n.n == nil {
		return ""
	}
	if n.n.Type == html.TextNode {
		return n.n.Data
	}
	var sb strings.Builder
	collectText(n.n, &sb)
	return sb.String()
}

func collectText(n *html.Node, sb *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			sb.WriteString(c.Data)
		case html.ElementNode, html.DocumentNode:
			collectText(c, sb)
		}
	}
}

// Children returns all direct children of the node.
func (n Node) Children() []blocksearch.Node {
	if n.n == nil {
		return nil
	}
	var children []blocksearch.Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, Node{n: c})
	}
	return children
}

// Render returns the node's outer HTML.
func (n Node) Render() (string, error) {
	if n.n == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n.n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Parse parses an HTML document from r.
func Parse(r io.Reader) (Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Node{}, blocksearch.Errorf(blocksearch.EINVALID, "failed to parse HTML: %v", err)
	}
	return Node{n: doc}, nil
}

// Parser parses HTML documents with golang.org/x/net/html.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses src and returns the document node.
func (p *Parser) Parse(src string) (blocksearch.Node, error) {
	return Parse(strings.NewReader(src))
}
