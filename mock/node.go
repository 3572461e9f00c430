package mock

import "github.com/fwojciec/blocksearch"

var _ blocksearch.Node = (*Node)(nil)

// Node is a mock implementation of blocksearch.Node.
// Nil function fields behave like a non-element node without children.
type Node struct {
	IsElementFn   func() bool
	TagNameFn     func() string
	AttrFn        func(key string) (string, bool)
	TextContentFn func() string
	ChildrenFn    func() []blocksearch.Node
}

func (n *Node) IsElement() bool {
	if n.IsElementFn == nil {
		return false
	}
	return n.IsElementFn()
}

func (n *Node) TagName() string {
	if n.TagNameFn == nil {
		return ""
	}
	return n.TagNameFn()
}

func (n *Node) Attr(key string) (string, bool) {
	if n.AttrFn == nil {
		return "", false
	}
	return n.AttrFn(key)
}

func (n *Node) TextContent() string {
	if n.TextContentFn == nil {
		return ""
	}
	return n.TextContentFn()
}

func (n *Node) Children() []blocksearch.Node {
	if n.ChildrenFn == nil {
		return nil
	}
	return n.ChildrenFn()
}

var _ blocksearch.Parser = (*Parser)(nil)

// Parser is a mock implementation of blocksearch.Parser.
type Parser struct {
	ParseFn func(src string) (blocksearch.Node, error)
}

func (p *Parser) Parse(src string) (blocksearch.Node, error) {
	return p.ParseFn(src)
}

var _ blocksearch.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of blocksearch.Searcher.
type Searcher struct {
	SearchFn func(root blocksearch.Node, blocks ...*blocksearch.Block) []*blocksearch.Block
}

func (s *Searcher) Search(root blocksearch.Node, blocks ...*blocksearch.Block) []*blocksearch.Block {
	return s.SearchFn(root, blocks...)
}
