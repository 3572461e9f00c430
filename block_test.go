package blocksearch_test

import (
	"testing"

	"github.com/fwojciec/blocksearch"
	"github.com/fwojciec/blocksearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlock_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a nested template", func(t *testing.T) {
		t.Parallel()

		block := blocksearch.Div(blocksearch.WithChildren(
			blocksearch.Span(blocksearch.WithProperty("name", "")),
		))

		assert.NoError(t, block.Validate())
	})

	t.Run("requires a tag", func(t *testing.T) {
		t.Parallel()

		err := (&blocksearch.Block{Tag: " "}).Validate()

		require.Error(t, err)
		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode(err))
	})

	t.Run("rejects nil children", func(t *testing.T) {
		t.Parallel()

		err := (&blocksearch.Block{Tag: "div", Children: []*blocksearch.Block{nil}}).Validate()

		require.Error(t, err)
		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode(err))
	})

	t.Run("rejects invalid descendants", func(t *testing.T) {
		t.Parallel()

		block := blocksearch.Div(blocksearch.WithChildren(
			blocksearch.Span(blocksearch.WithChildren(&blocksearch.Block{})),
		))

		err := block.Validate()

		require.Error(t, err)
		assert.Equal(t, "block tag required", blocksearch.ErrorMessage(err))
	})

	t.Run("rejects bound blocks", func(t *testing.T) {
		t.Parallel()

		block := &blocksearch.Block{Tag: "div", Element: &mock.Node{}}

		err := block.Validate()

		require.Error(t, err)
		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode(err))
	})

	t.Run("rejects property without path", func(t *testing.T) {
		t.Parallel()

		block := &blocksearch.Block{Tag: "a", Property: &blocksearch.Property{Attr: "href"}}

		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode(block.Validate()))
	})

	t.Run("rejects nil block", func(t *testing.T) {
		t.Parallel()

		var block *blocksearch.Block

		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode(block.Validate()))
	})
}

func TestBlock_Clone(t *testing.T) {
	t.Parallel()

	t.Run("copies the whole graph", func(t *testing.T) {
		t.Parallel()

		child := blocksearch.Span(blocksearch.WithAttr("class", "x"))
		block := blocksearch.Div(blocksearch.WithText("t"), blocksearch.WithChildren(child))

		clone := block.Clone()

		assert.Equal(t, block, clone)
		assert.NotSame(t, block, clone)
		assert.NotSame(t, child, clone.Children[0])

		clone.Children[0].Attributes["class"] = "y"
		clone.Children = append(clone.Children, blocksearch.Span())
		assert.Equal(t, "x", child.Attributes["class"])
		assert.Len(t, block.Children, 1)
	})

	t.Run("returns nil for nil block", func(t *testing.T) {
		t.Parallel()

		var block *blocksearch.Block

		assert.Nil(t, block.Clone())
	})
}

func TestBlock_Walk(t *testing.T) {
	t.Parallel()

	t.Run("visits blocks in preorder", func(t *testing.T) {
		t.Parallel()

		block := blocksearch.Div(blocksearch.WithChildren(
			blocksearch.Span(blocksearch.WithChildren(blocksearch.NewBlock("b"))),
			blocksearch.NewBlock("p"),
		))

		var tags []string
		block.Walk(func(b *blocksearch.Block) bool {
			tags = append(tags, b.Tag)
			return true
		})

		assert.Equal(t, []string{"div", "span", "b", "p"}, tags)
	})

	t.Run("skips children when fn returns false", func(t *testing.T) {
		t.Parallel()

		block := blocksearch.Div(blocksearch.WithChildren(
			blocksearch.Span(blocksearch.WithChildren(blocksearch.NewBlock("b"))),
			blocksearch.NewBlock("p"),
		))

		var tags []string
		block.Walk(func(b *blocksearch.Block) bool {
			tags = append(tags, b.Tag)
			return b.Tag != "span"
		})

		assert.Equal(t, []string{"div", "span", "p"}, tags)
	})
}

func TestTemplate_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()

		tmpl := &blocksearch.Template{Root: blocksearch.Div()}

		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode(tmpl.Validate()))
	})

	t.Run("requires a root block", func(t *testing.T) {
		t.Parallel()

		tmpl := &blocksearch.Template{Name: "t"}

		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode(tmpl.Validate()))
	})

	t.Run("prefixes block errors with the template name", func(t *testing.T) {
		t.Parallel()

		tmpl := &blocksearch.Template{Name: "cards", Root: &blocksearch.Block{}}

		err := tmpl.Validate()

		require.Error(t, err)
		assert.Equal(t, `template "cards": block tag required`, blocksearch.ErrorMessage(err))
	})

	t.Run("accepts a valid template", func(t *testing.T) {
		t.Parallel()

		tmpl := &blocksearch.Template{Name: "cards", Root: blocksearch.Div()}

		assert.NoError(t, tmpl.Validate())
	})
}

func TestRecord_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires source and template", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode((&blocksearch.Record{Template: "t"}).Validate()))
		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode((&blocksearch.Record{Source: "s"}).Validate()))
	})

	t.Run("rejects negative position", func(t *testing.T) {
		t.Parallel()

		record := &blocksearch.Record{Source: "s", Template: "t", Position: -1}

		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode(record.Validate()))
	})

	t.Run("accepts a valid record", func(t *testing.T) {
		t.Parallel()

		record := &blocksearch.Record{Source: "s", Template: "t"}

		assert.NoError(t, record.Validate())
	})
}
