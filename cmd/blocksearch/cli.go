package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/blocksearch"
	"github.com/fwojciec/blocksearch/scan"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Scanner   *scan.Scanner
	Converter blocksearch.Converter
	Records   blocksearch.RecordService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log fetches, parses and searches to stderr"`

	Find    FindCmd    `cmd:"" help:"Print template matches found in sources"`
	Extract ExtractCmd `cmd:"" help:"Bind template matches to records and print them as JSON lines"`
	Records RecordsCmd `cmd:"" help:"List saved records"`
	Forget  ForgetCmd  `cmd:"" help:"Delete saved records for a source"`
}

// SearchFlags configure how sources are loaded, parsed and searched.
type SearchFlags struct {
	TemplatesFile string        `arg:"" name:"templates-file" help:"YAML file defining templates"`
	Sources       []string      `arg:"" name:"source" help:"URL, file path or - for stdin"`
	Templates     []string      `short:"t" name:"template" help:"Only run the named template (repeatable)"`
	Within        string        `help:"Limit the search to elements matching a CSS selector (HTML) or an etree path (XML)"`
	MainContent   string        `enum:"none,readability,trafilatura" default:"none" help:"Search only the page's main content, found with readability or trafilatura"`
	XML           bool          `name:"xml" help:"Parse sources as XML"`
	Render        bool          `help:"Render URLs in headless Chrome"`
	FoldCase      bool          `help:"Compare attribute values case-insensitively"`
	Backtrack     bool          `help:"Try other child assignments when the first choice fails"`
	Concurrency   int           `short:"c" default:"4" help:"Sources processed at once"`
	Timeout       time.Duration `default:"10s" help:"Fetch timeout per URL"`
}

// Matcher returns the matcher configured by the flags.
func (f *SearchFlags) Matcher() blocksearch.Matcher {
	var m blocksearch.Matcher
	if f.FoldCase {
		m.Attrs = blocksearch.AttrFold
	}
	if f.Backtrack {
		m.Strategy = blocksearch.StrategyBacktrack
	}
	return m
}

// FindCmd is the "find" subcommand.
type FindCmd struct {
	SearchFlags `embed:""`

	Format string `short:"f" enum:"text,json,markdown" default:"text" help:"Output format (text, json, markdown)"`
	Out    string `short:"o" type:"path" help:"Write one markdown file per source into this directory"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	SearchFlags `embed:""`

	Unique bool `short:"u" help:"Drop records whose fields repeat an earlier record"`
	Save   bool `help:"Save records to the database"`
}

// RecordsCmd is the "records" subcommand.
type RecordsCmd struct {
	Source   string `help:"Only records from this source"`
	Template string `help:"Only records of this template"`
	Limit    int    `short:"n" help:"Maximum number of records"`
}

// ForgetCmd is the "forget" subcommand.
type ForgetCmd struct {
	Source string `arg:"" help:"Source whose records are deleted"`
}
