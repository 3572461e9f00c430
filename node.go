package blocksearch

// Node is the read-only view of a parsed document tree that the matcher
// works against. Parsers adapt their own tree types to it.
//
// Only element nodes are ever matched. Other node kinds (documents, text,
// comments) are walked through for their children and otherwise ignored.
type Node interface {
	// IsElement reports whether the node is an element.
	IsElement() bool

	// TagName returns the element's tag name. Empty for non-element nodes.
	TagName() string

	// Attr returns the value of the named attribute and whether it is set.
	Attr(key string) (string, bool)

	// TextContent returns the concatenated text of the node and all of
	// its descendants.
	TextContent() string

	// Children returns the direct children of the node in document order,
	// including non-element nodes.
	Children() []Node
}

// Renderer is implemented by nodes that can render their own markup.
type Renderer interface {
	// Render returns the outer markup of the node.
	Render() (string, error)
}

// Parser turns raw markup into a Node tree.
type Parser interface {
	// Parse parses src and returns the root of the resulting tree.
	// The root is usually a non-element document node.
	Parse(src string) (Node, error)
}

// Elements returns the element children of n in document order.
func Elements(n Node) []Node {
	children := n.Children()
	elems := make([]Node, 0, len(children))
	for _, c := range children {
		if c.IsElement() {
			elems = append(elems, c)
		}
	}
	return elems
}
