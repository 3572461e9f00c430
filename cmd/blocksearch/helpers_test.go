package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/blocksearch"
	main "github.com/fwojciec/blocksearch/cmd/blocksearch"
	bshtml "github.com/fwojciec/blocksearch/html"
	"github.com/fwojciec/blocksearch/htmltomarkdown"
	"github.com/fwojciec/blocksearch/scan"
	"github.com/stretchr/testify/require"
)

const catalogTemplates = `templates:
  - name: product
    block:
      tag: div
      attributes: {class: product}
      children:
        - preset: anchor
          property: {path: url, attr: href}
        - tag: h2
          property: title
  - name: note
    block:
      tag: p
      attributes: {class: note}
      property: text
`

const catalogPage = `<html><body>
<div class="product"><a href="/widget">more</a> <h2>Widget</h2></div>
<div class="product"><a href="/gadget">more</a> <h2>Gadget</h2></div>
<div class="product"><a href="/widget">more</a> <h2>Widget</h2></div>
<p class="note">Prices   include tax.</p>
</body></html>`

// writeFile writes content to name inside a temporary directory.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// newDeps returns dependencies that scan local files with the HTML parser.
func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Scanner: &scan.Scanner{
			Parser:   bshtml.NewParser(),
			Searcher: blocksearch.Matcher{},
		},
		Converter: htmltomarkdown.NewConverter(),
	}, stdout, stderr
}
