package main

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/blocksearch"
	"github.com/fwojciec/blocksearch/yaml"
)

// loadTemplates reads the templates file, keeping only the named templates
// when names is non-empty.
func loadTemplates(path string, names []string) ([]*blocksearch.Template, error) {
	all, err := yaml.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return all, nil
	}

	byName := make(map[string]*blocksearch.Template, len(all))
	for _, t := range all {
		byName[t.Name] = t
	}
	selected := make([]*blocksearch.Template, 0, len(names))
	for _, name := range names {
		t, ok := byName[name]
		if !ok {
			return nil, blocksearch.Errorf(blocksearch.EINVALID, "template %q is not defined in %s", name, path)
		}
		selected = append(selected, t)
	}
	return selected, nil
}

// collapse replaces runs of whitespace in s with single spaces.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// snippet collapses whitespace in s and shortens it to at most n runes.
func snippet(s string, n int) string {
	s = collapse(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// outerHTML renders the element bound to match, or returns "" when the
// node cannot render itself.
func outerHTML(match *blocksearch.Block) (string, error) {
	r, ok := match.Element.(blocksearch.Renderer)
	if !ok {
		return "", nil
	}
	return r.Render()
}
