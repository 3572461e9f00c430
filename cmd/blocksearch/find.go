package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/blocksearch/fs"
	"github.com/fwojciec/blocksearch/htmltomarkdown"
	"github.com/fwojciec/blocksearch/scan"
)

// snippetLen is the number of characters of element text shown per match.
const snippetLen = 80

// match is the JSON form of a found block.
type match struct {
	Source   string `json:"source"`
	Template string `json:"template"`
	Position int    `json:"position"`
	Tag      string `json:"tag"`
	Text     string `json:"text"`
	HTML     string `json:"html,omitempty"`
}

// Run executes the find command.
func (c *FindCmd) Run(deps *Dependencies) error {
	templates, err := loadTemplates(c.TemplatesFile, c.Templates)
	if err != nil {
		return err
	}

	results, err := deps.Scanner.Scan(deps.Ctx, c.Sources, templates)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stderr, "No matches found.")
		return nil
	}

	if c.Out != "" {
		return c.writeFiles(deps, results)
	}

	switch c.Format {
	case "json":
		return c.writeJSON(deps, results)
	case "markdown":
		return c.writeMarkdown(deps, results)
	default:
		for _, r := range results {
			fmt.Fprintf(deps.Stdout, "%s  %s[%d]  <%s> %s\n",
				r.Source, r.Template, r.Position, r.Match.Element.TagName(),
				snippet(r.Match.Element.TextContent(), snippetLen))
		}
		return nil
	}
}

func (c *FindCmd) writeJSON(deps *Dependencies, results []*scan.Result) error {
	enc := json.NewEncoder(deps.Stdout)
	for _, r := range results {
		html, err := outerHTML(r.Match)
		if err != nil {
			return err
		}
		if err := enc.Encode(match{
			Source:   r.Source,
			Template: r.Template,
			Position: r.Position,
			Tag:      r.Match.Element.TagName(),
			Text:     collapse(r.Match.Element.TextContent()),
			HTML:     html,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (c *FindCmd) writeMarkdown(deps *Dependencies, results []*scan.Result) error {
	for i, r := range results {
		section, err := markdownSection(deps, r)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		fmt.Fprint(deps.Stdout, section)
	}
	return nil
}

// writeFiles exports the results of each source to its own markdown file.
func (c *FindCmd) writeFiles(deps *Dependencies, results []*scan.Result) error {
	var order []string
	exports := make(map[string]*fs.Export)
	sections := make(map[string][]string)
	now := time.Now().UTC()

	for _, r := range results {
		e, ok := exports[r.Source]
		if !ok {
			e = &fs.Export{Source: r.Source, Generated: now}
			exports[r.Source] = e
			order = append(order, r.Source)
		}
		if !slices.Contains(e.Templates, r.Template) {
			e.Templates = append(e.Templates, r.Template)
		}
		e.Matches++

		section, err := markdownSection(deps, r)
		if err != nil {
			return err
		}
		sections[r.Source] = append(sections[r.Source], section)
	}

	w := fs.NewWriter(c.Out)
	for _, source := range order {
		e := exports[source]
		e.Content = strings.Join(sections[source], "\n")
		path, err := w.Write(e)
		if err != nil {
			return fmt.Errorf("%s: %w", source, err)
		}
		fmt.Fprintf(deps.Stderr, "Wrote %d matches to %s\n", e.Matches, path)
	}
	return nil
}

// markdownSection renders one match as a markdown section.
func markdownSection(deps *Dependencies, r *scan.Result) (string, error) {
	md, err := htmltomarkdown.ConvertMatch(deps.Converter, r.Match)
	if err != nil {
		return "", fmt.Errorf("%s %s[%d]: %w", r.Source, r.Template, r.Position, err)
	}
	return fmt.Sprintf("## %s #%d (%s)\n\n%s\n", r.Template, r.Position+1, r.Source, md), nil
}
