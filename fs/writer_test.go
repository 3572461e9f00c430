package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/blocksearch"
	"github.com/fwojciec/blocksearch/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceToPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "url path", source: "https://example.com/shop/widgets", want: "shop/widgets.md"},
		{name: "html suffix dropped", source: "https://example.com/shop/list.html", want: "shop/list.md"},
		{name: "trailing slash becomes index", source: "https://example.com/shop/", want: "shop/index.md"},
		{name: "root becomes index", source: "https://example.com", want: "index.md"},
		{name: "query ignored", source: "https://example.com/shop?page=2", want: "shop.md"},
		{name: "file base name", source: "/tmp/pages/catalog.html", want: "catalog.md"},
		{name: "stdin", source: "-", want: "stdin.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fs.SourceToPath(tt.source)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatExport(t *testing.T) {
	t.Parallel()

	got, err := fs.FormatExport(&fs.Export{
		Source:    "https://example.com/shop",
		Templates: []string{"product", "note"},
		Matches:   3,
		Generated: time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC),
		Content:   "## product #1\n\nWidget\n",
	})

	require.NoError(t, err)
	assert.Equal(t, `---
source: https://example.com/shop
templates: [product, note]
matches: 3
generated: "2026-03-08"
---

## product #1

Widget
`, got)
}

func TestWriter_Write(t *testing.T) {
	t.Parallel()

	t.Run("writes export below base directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		path, err := fs.NewWriter(dir).Write(&fs.Export{
			Source:  "https://example.com/shop/widgets",
			Matches: 1,
			Content: "Widget",
		})

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "shop", "widgets.md"), path)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "source: https://example.com/shop/widgets")
		assert.Contains(t, string(content), "\n---\n\nWidget")
	})

	t.Run("returns EINVALID without source", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewWriter(t.TempDir()).Write(&fs.Export{Content: "x"})

		require.Error(t, err)
		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode(err))
	})
}
