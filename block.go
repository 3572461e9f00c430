package blocksearch

import (
	"maps"
	"strings"
)

// Block describes the shape of an HTML subtree. The same type serves as a
// template and, once returned by the matcher, as a match bound to a
// document node.
type Block struct {
	// Tag is the required tag name, compared case-insensitively.
	Tag string `json:"tag"`

	// Attributes must all be present on the element with equal values.
	// An empty map places no constraint on attributes.
	Attributes map[string]string `json:"attributes,omitempty"`

	// Text must be a substring of the element's text content.
	// Blank text places no constraint.
	Text string `json:"text,omitempty"`

	// Children are matched against the element's direct children.
	// A block without children matches regardless of the element's children.
	Children []*Block `json:"children,omitempty"`

	// Property is carried into matches unchanged. The matcher never reads it.
	Property *Property `json:"property,omitempty"`

	// Element is the node this block matched. Always nil on templates.
	Element Node `json:"-"`
}

// Property identifies where a matched value should be bound on a
// destination model.
type Property struct {
	// Path is a dot separated field path. A "[]" suffix on the last
	// segment collects values into a list.
	Path string `json:"path"`

	// Attr names the attribute holding the value.
	// When empty the element's text content is used.
	Attr string `json:"attr,omitempty"`
}

// IsBound reports whether b is the result of a successful match.
func (b *Block) IsBound() bool {
	return b != nil && b.Element != nil
}

// Validate returns an error if b cannot be used as a template.
func (b *Block) Validate() error {
	if b == nil {
		return Errorf(EINVALID, "block required")
	}
	if strings.TrimSpace(b.Tag) == "" {
		return Errorf(EINVALID, "block tag required")
	}
	if b.Element != nil {
		return Errorf(EINVALID, "block %q is already bound", b.Tag)
	}
	if b.Property != nil && b.Property.Path == "" {
		return Errorf(EINVALID, "block %q property path required", b.Tag)
	}
	for i, child := range b.Children {
		if child == nil {
			return Errorf(EINVALID, "block %q child %d is nil", b.Tag, i)
		}
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Clone returns a deep copy of b. Bound elements are copied by reference.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	var children []*Block
	if len(b.Children) > 0 {
		children = make([]*Block, len(b.Children))
		for i, child := range b.Children {
			children[i] = child.Clone()
		}
	}
	return b.bind(b.Element, children)
}

// Walk calls fn for b and each of its descendants in preorder.
// Returning false from fn skips the block's children.
func (b *Block) Walk(fn func(*Block) bool) {
	if b == nil || !fn(b) {
		return
	}
	for _, child := range b.Children {
		child.Walk(fn)
	}
}

// bind returns a new block with b's constraints, the given element and
// children. b itself is left untouched.
func (b *Block) bind(el Node, children []*Block) *Block {
	nb := &Block{
		Tag:      b.Tag,
		Text:     b.Text,
		Children: children,
		Property: b.Property,
		Element:  el,
	}
	if b.Attributes != nil {
		nb.Attributes = maps.Clone(b.Attributes)
	}
	return nb
}

// Template is a named root block.
type Template struct {
	Name string `json:"name"`
	Root *Block `json:"root"`
}

// Validate returns an error if the template contains invalid fields.
func (t *Template) Validate() error {
	if t.Name == "" {
		return Errorf(EINVALID, "template name required")
	}
	if t.Root == nil {
		return Errorf(EINVALID, "template %q root block required", t.Name)
	}
	if err := t.Root.Validate(); err != nil {
		return Errorf(EINVALID, "template %q: %s", t.Name, ErrorMessage(err))
	}
	return nil
}
