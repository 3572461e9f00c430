package main_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/blocksearch"
	main "github.com/fwojciec/blocksearch/cmd/blocksearch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commands = []string{"find", "extract", "records", "forget"}

func newMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "blocksearch.db")
	return m
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	parser, err := kong.New(&main.CLI{},
		kong.Writers(stdout, &bytes.Buffer{}),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range commands {
		assert.Contains(t, stdout.String(), cmd)
	}
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help lists commands", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := newMain(t).Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		for _, cmd := range commands {
			assert.Contains(t, stdout.String(), cmd)
		}
		assert.Contains(t, stdout.String(), "Usage:")
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		err := newMain(t).Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode(err))
	})

	t.Run("find reads documents from stdin", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		m.Stdin = strings.NewReader(catalogPage)
		stdout := &bytes.Buffer{}
		templates := writeFile(t, "templates.yaml", catalogTemplates)

		err := m.Run(context.Background(), []string{"find", "-t", "note", templates, "--", "-"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, "-  note[0]  <p> Prices include tax.\n", stdout.String())
	})

	t.Run("find scopes the search with --within", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		stdout := &bytes.Buffer{}
		templates := writeFile(t, "templates.yaml", `templates:
  - name: item
    block: {tag: li}
`)
		page := writeFile(t, "page.html", `<ul id="nav"><li>Home</li></ul><ul id="main"><li>One</li><li>Two</li></ul>`)

		err := m.Run(context.Background(), []string{"find", "--within", "#main", templates, page}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.NotContains(t, stdout.String(), "Home")
		assert.Contains(t, stdout.String(), "item[0]  <li> One")
		assert.Contains(t, stdout.String(), "item[1]  <li> Two")
	})

	t.Run("find parses XML with --xml", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		stdout := &bytes.Buffer{}
		templates := writeFile(t, "templates.yaml", `templates:
  - name: entry
    block:
      tag: entry
      children:
        - tag: title
`)
		feed := writeFile(t, "feed.xml", `<?xml version="1.0"?><feed><entry><title>First</title></entry><entry><id>2</id></entry></feed>`)

		err := m.Run(context.Background(), []string{"find", "--xml", templates, feed}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(stdout.String(), "\n"))
		assert.Contains(t, stdout.String(), "entry[0]  <entry> First")
	})

	t.Run("find scopes XML with an etree path", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		templates := writeFile(t, "templates.yaml", `templates:
  - name: title
    block: {tag: title}
`)
		feed := writeFile(t, "feed.xml", `<feed><title>Feed</title><entry><title>First</title></entry></feed>`)

		err := newMain(t).Run(context.Background(), []string{"find", "--xml", "--within", "//entry", templates, feed}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(stdout.String(), "\n"))
		assert.Contains(t, stdout.String(), "title[0]  <title> First")
	})

	t.Run("rejects --main-content with --xml", func(t *testing.T) {
		t.Parallel()

		templates := writeFile(t, "templates.yaml", catalogTemplates)

		err := newMain(t).Run(context.Background(), []string{"find", "--xml", "--main-content", "readability", templates, "a.xml"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
		assert.Equal(t, blocksearch.EINVALID, blocksearch.ErrorCode(err))
	})

	t.Run("verbose logs to stderr", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		templates := writeFile(t, "templates.yaml", catalogTemplates)
		page := writeFile(t, "page.html", catalogPage)

		err := newMain(t).Run(context.Background(), []string{"-v", "find", templates, page}, &bytes.Buffer{}, stderr)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "msg=parse")
		assert.Contains(t, stderr.String(), "msg=search")
	})

	t.Run("saved records can be listed and forgotten", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		ctx := context.Background()
		templates := writeFile(t, "templates.yaml", catalogTemplates)
		page := writeFile(t, "page.html", catalogPage)

		require.NoError(t, m.Run(ctx, []string{"extract", "--save", "--unique", templates, page}, &bytes.Buffer{}, &bytes.Buffer{}))

		listed := &bytes.Buffer{}
		require.NoError(t, m.Run(ctx, []string{"records", "--template", "product"}, listed, &bytes.Buffer{}))
		assert.Equal(t, 2, strings.Count(listed.String(), "\n"))
		assert.Contains(t, listed.String(), `{"title":"Gadget","url":"/gadget"}`)

		forgot := &bytes.Buffer{}
		require.NoError(t, m.Run(ctx, []string{"forget", page}, forgot, &bytes.Buffer{}))
		assert.Contains(t, forgot.String(), "Deleted 3 records")

		empty := &bytes.Buffer{}
		require.NoError(t, m.Run(ctx, []string{"records"}, empty, &bytes.Buffer{}))
		assert.Contains(t, empty.String(), "No records found")
	})
}
