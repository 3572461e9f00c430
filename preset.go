package blocksearch

import (
	"maps"
	"strings"
)

// BlockOption configures a Block built by NewBlock or one of the presets.
type BlockOption func(*Block)

// WithAttr requires the attribute key to equal value.
func WithAttr(key, value string) BlockOption {
	return func(b *Block) {
		if b.Attributes == nil {
			b.Attributes = make(map[string]string)
		}
		b.Attributes[key] = value
	}
}

// WithAttrs requires every attribute in attrs.
func WithAttrs(attrs map[string]string) BlockOption {
	return func(b *Block) {
		if b.Attributes == nil {
			b.Attributes = make(map[string]string, len(attrs))
		}
		maps.Copy(b.Attributes, attrs)
	}
}

// WithText requires the element's text content to contain text.
func WithText(text string) BlockOption {
	return func(b *Block) {
		b.Text = text
	}
}

// WithChildren appends child blocks.
func WithChildren(children ...*Block) BlockOption {
	return func(b *Block) {
		b.Children = append(b.Children, children...)
	}
}

// WithProperty attaches a property handle. An empty attr binds the text content.
func WithProperty(path, attr string) BlockOption {
	return func(b *Block) {
		b.Property = &Property{Path: path, Attr: attr}
	}
}

// NewBlock returns a template block for tag.
func NewBlock(tag string, opts ...BlockOption) *Block {
	b := &Block{Tag: tag}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Preset tag names.
const (
	TagDetails     = "details"
	TagSummary     = "summary"
	TagFrameSet    = "frameset"
	TagPlainText   = "plaintext"
	TagTableHeader = "thead"
	TagTable       = "table"
	TagTableRow    = "tr"
	TagTableCell   = "td"
	TagList        = "ul"
	TagListItem    = "li"
	TagAnchor      = "a"
	TagDiv         = "div"
	TagSpan        = "span"
)

// Details returns a block matching a details element.
func Details(opts ...BlockOption) *Block { return NewBlock(TagDetails, opts...) }

// Summary returns a block matching a summary element.
func Summary(opts ...BlockOption) *Block { return NewBlock(TagSummary, opts...) }

// FrameSet returns a block matching a frameset element.
func FrameSet(opts ...BlockOption) *Block { return NewBlock(TagFrameSet, opts...) }

// PlainText returns a block matching a plaintext element.
func PlainText(opts ...BlockOption) *Block { return NewBlock(TagPlainText, opts...) }

// TableHeader returns a block matching a thead element.
func TableHeader(opts ...BlockOption) *Block { return NewBlock(TagTableHeader, opts...) }

// Table returns a block matching a table element.
func Table(opts ...BlockOption) *Block { return NewBlock(TagTable, opts...) }

// TableRow returns a block matching a tr element.
func TableRow(opts ...BlockOption) *Block { return NewBlock(TagTableRow, opts...) }

// TableCell returns a block matching a td element.
func TableCell(opts ...BlockOption) *Block { return NewBlock(TagTableCell, opts...) }

// List returns a block matching a ul element.
func List(opts ...BlockOption) *Block { return NewBlock(TagList, opts...) }

// ListItem returns a block matching an li element.
func ListItem(opts ...BlockOption) *Block { return NewBlock(TagListItem, opts...) }

// Anchor returns a block matching an a element.
func Anchor(opts ...BlockOption) *Block { return NewBlock(TagAnchor, opts...) }

// Div returns a block matching a div element.
func Div(opts ...BlockOption) *Block { return NewBlock(TagDiv, opts...) }

// Span returns a block matching a span element.
func Span(opts ...BlockOption) *Block { return NewBlock(TagSpan, opts...) }

var presets = map[string]func(...BlockOption) *Block{
	"details":     Details,
	"summary":     Summary,
	"frameset":    FrameSet,
	"plaintext":   PlainText,
	"tableheader": TableHeader,
	"table":       Table,
	"tablerow":    TableRow,
	"tablecell":   TableCell,
	"list":        List,
	"listitem":    ListItem,
	"anchor":      Anchor,
	"div":         Div,
	"span":        Span,
}

// Preset looks up a preset by name (e.g. "details", "tableheader").
// Names are case-insensitive. Returns nil if no preset exists.
func Preset(name string, opts ...BlockOption) *Block {
	fn, ok := presets[strings.ToLower(name)]
	if !ok {
		return nil
	}
	return fn(opts...)
}
