package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/blocksearch"
	"github.com/fwojciec/blocksearch/etree"
	"github.com/fwojciec/blocksearch/goquery"
	bshtml "github.com/fwojciec/blocksearch/html"
	"github.com/fwojciec/blocksearch/htmltomarkdown"
	bshttp "github.com/fwojciec/blocksearch/http"
	"github.com/fwojciec/blocksearch/readability"
	"github.com/fwojciec/blocksearch/rod"
	"github.com/fwojciec/blocksearch/scan"
	bsslog "github.com/fwojciec/blocksearch/slog"
	"github.com/fwojciec/blocksearch/sqlite"
	"github.com/fwojciec/blocksearch/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()
	m.Stdin = os.Stdin

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage returns the message of an application error, or the full
// error text for anything else.
func errorMessage(err error) string {
	if blocksearch.ErrorCode(err) == blocksearch.EINTERNAL {
		return err.Error()
	}
	return blocksearch.ErrorMessage(err)
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Stdin is read for the "-" source.
	Stdin io.Reader

	// SQLite database, opened only by commands that need it.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("blocksearch"),
		kong.Description("Find and extract repeated blocks in HTML and XML documents"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return blocksearch.Errorf(blocksearch.EINVALID, "no command specified. Run 'blocksearch --help' to see available commands")
	}
	if slices.Contains([]string{"help", "--help", "-h"}, args[0]) {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = slog.New(slog.DiscardHandler)
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	var search *SearchFlags
	needsDB := true
	switch kongCtx.Selected().Name {
	case "find":
		search = &cli.Find.SearchFlags
		needsDB = false
		deps.Converter = htmltomarkdown.NewConverter()
	case "extract":
		search = &cli.Extract.SearchFlags
		needsDB = cli.Extract.Save
	}

	if search != nil {
		scanner, closeFetcher, err := m.newScanner(search, deps.Logger)
		if err != nil {
			return err
		}
		defer closeFetcher()
		deps.Scanner = scanner
	}

	if needsDB {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set BLOCKSEARCH_DB to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Records = bsslog.NewLoggingRecordService(sqlite.NewRecordService(m.DB), deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newScanner wires the parser, matcher and, when any source is a URL, a
// fetcher. The returned func releases the fetcher.
func (m *Main) newScanner(f *SearchFlags, logger *slog.Logger) (*scan.Scanner, func(), error) {
	parser, err := newParser(f)
	if err != nil {
		return nil, nil, err
	}

	extractor, err := newExtractor(f)
	if err != nil {
		return nil, nil, err
	}

	s := &scan.Scanner{
		Parser:      bsslog.NewLoggingParser(parser, logger),
		Extractor:   extractor,
		Searcher:    bsslog.NewLoggingSearcher(f.Matcher(), logger),
		Stdin:       m.Stdin,
		Concurrency: f.Concurrency,
		OnRetry: func(url string, attempt int, err error) {
			logger.Warn("retry", "url", url, "attempt", attempt, "err", err)
		},
	}

	if !slices.ContainsFunc(f.Sources, scan.IsURL) {
		return s, func() {}, nil
	}

	var fetcher blocksearch.Fetcher
	if f.Render {
		rf, err := rod.NewFetcher(rod.WithFetchTimeout(f.Timeout))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		fetcher = rf
	} else {
		fetcher = bshttp.NewFetcher(bshttp.WithTimeout(f.Timeout))
	}
	s.Fetcher = bsslog.NewLoggingFetcher(fetcher, logger)
	s.RateLimiter = scan.NewDomainLimiter(1.0)

	return s, func() { _ = fetcher.Close() }, nil
}

// newParser picks the document parser for the flags.
func newParser(f *SearchFlags) (blocksearch.Parser, error) {
	switch {
	case f.XML:
		return etree.NewParser(etree.WithWithin(f.Within)), nil
	case f.Within != "":
		return goquery.NewParser(goquery.WithWithin(f.Within)), nil
	default:
		return bshtml.NewParser(), nil
	}
}

// newExtractor picks the main-content extractor for the flags, if any.
func newExtractor(f *SearchFlags) (blocksearch.Extractor, error) {
	switch f.MainContent {
	case "", "none":
		return nil, nil
	case "readability":
		if f.XML {
			return nil, blocksearch.Errorf(blocksearch.EINVALID, "--main-content cannot be combined with --xml")
		}
		return readability.NewExtractor(), nil
	case "trafilatura":
		if f.XML {
			return nil, blocksearch.Errorf(blocksearch.EINVALID, "--main-content cannot be combined with --xml")
		}
		return trafilatura.NewExtractor(), nil
	default:
		return nil, blocksearch.Errorf(blocksearch.EINVALID, "unknown main content extractor %q", f.MainContent)
	}
}

func defaultDBPath() string {
	if path := os.Getenv("BLOCKSEARCH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "blocksearch.db"
	}
	dir := filepath.Join(home, ".blocksearch")
	_ = os.MkdirAll(dir, 0o755)
	return filepath.Join(dir, "blocksearch.db")
}
