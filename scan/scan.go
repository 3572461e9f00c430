// Package scan runs templates against many sources concurrently. Sources
// are URLs, file paths or "-" for standard input.
package scan

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/blocksearch"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of sources processed at once when
// Scanner.Concurrency is not set.
const DefaultConcurrency = 4

// Stdin is the source name that reads the document from Scanner.Stdin.
const Stdin = "-"

// Scanner loads sources, parses them and searches them for templates.
type Scanner struct {
	Fetcher     blocksearch.Fetcher
	RateLimiter blocksearch.DomainLimiter
	Parser      blocksearch.Parser
	Searcher    blocksearch.Searcher

	// Extractor, if set, narrows each document to its main content
	// before it is parsed.
	Extractor blocksearch.Extractor

	Stdin       io.Reader
	Concurrency int
	RetryDelays []time.Duration

	// OnRetry, if set, is called before each fetch retry.
	OnRetry RetryFunc
}

// Result is one match of a template in a source. Position counts matches
// of the same template within the source, starting at zero.
type Result struct {
	Source   string
	Template string
	Position int
	Match    *blocksearch.Block
}

// Scan searches every source for every template. Results are ordered by
// source, then template, then document order. The first source that cannot
// be loaded or parsed cancels the scan and its error is returned.
func (s *Scanner) Scan(ctx context.Context, sources []string, templates []*blocksearch.Template) ([]*Result, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	stdin, err := s.readStdin(sources)
	if err != nil {
		return nil, err
	}

	perSource := make([][]*Result, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, source := range sources {
		g.Go(func() error {
			src := stdin
			if source != Stdin {
				var err error
				if src, err = s.load(gctx, source); err != nil {
					return fmt.Errorf("%s: %w", source, err)
				}
			}

			if s.Extractor != nil {
				var err error
				if src, err = s.Extractor.Extract(src); err != nil {
					return fmt.Errorf("%s: %w", source, err)
				}
			}

			results, err := s.search(source, src, templates)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
			perSource[i] = results
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var results []*Result
	for _, r := range perSource {
		results = append(results, r...)
	}
	return results, nil
}

// readStdin reads standard input once when any source asks for it.
func (s *Scanner) readStdin(sources []string) (string, error) {
	for _, source := range sources {
		if source != Stdin {
			continue
		}
		if s.Stdin == nil {
			return "", blocksearch.Errorf(blocksearch.EINVALID, "standard input is not available")
		}
		b, err := io.ReadAll(s.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	return "", nil
}

// load returns the document for a URL or file source.
func (s *Scanner) load(ctx context.Context, source string) (string, error) {
	if !IsURL(source) {
		b, err := os.ReadFile(source)
		if err != nil {
			if os.IsNotExist(err) {
				return "", blocksearch.Errorf(blocksearch.ENOTFOUND, "source file %q not found", source)
			}
			return "", fmt.Errorf("read source: %w", err)
		}
		return string(b), nil
	}

	if s.Fetcher == nil {
		return "", blocksearch.Errorf(blocksearch.EINVALID, "no fetcher configured for %q", source)
	}
	if s.RateLimiter != nil {
		u, err := url.Parse(source)
		if err != nil {
			return "", blocksearch.Errorf(blocksearch.EINVALID, "invalid URL %q", source)
		}
		if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
			return "", err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetry(ctx, source, s.Fetcher.Fetch, delays, s.OnRetry)
}

func (s *Scanner) search(source, src string, templates []*blocksearch.Template) ([]*Result, error) {
	root, err := s.Parser.Parse(src)
	if err != nil {
		return nil, err
	}

	var results []*Result
	for _, tmpl := range templates {
		for pos, m := range s.Searcher.Search(root, tmpl.Root) {
			results = append(results, &Result{
				Source:   source,
				Template: tmpl.Name,
				Position: pos,
				Match:    m,
			})
		}
	}
	return results, nil
}

// IsURL reports whether source is fetched over HTTP rather than read from
// disk.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// ComputeHash returns the xxhash of content as 16 hex digits.
func ComputeHash(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}
