// Package rod fetches JavaScript-rendered pages with headless Chrome.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/blocksearch"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load.
const DefaultFetchTimeout = 10 * time.Second

var _ blocksearch.Fetcher = (*Fetcher)(nil)

// Fetcher renders pages in Chrome and returns the resulting DOM as HTML.
// Fetcher is safe for concurrent use; each Fetch opens its own tab.
type Fetcher struct {
	browser      *browser
	fetchTimeout time.Duration
	waitSelector string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for loading one page.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.fetchTimeout = d
	}
}

// WithMaxPages sets how many pages are rendered before Chrome is recycled.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.browser.maxPages = n
	}
}

// WithWaitSelector makes Fetch wait until an element matching the CSS
// selector exists before reading the DOM.
func WithWaitSelector(selector string) Option {
	return func(f *Fetcher) {
		f.waitSelector = selector
	}
}

// NewFetcher launches headless Chrome. Close must be called to stop it.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		browser:      &browser{maxPages: DefaultMaxPages},
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.browser.launch(); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch loads url, waits for it to settle and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	b, err := f.browser.acquire()
	if err != nil {
		return "", err
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()
	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if f.waitSelector != "" {
		if _, err := page.Element(f.waitSelector); err != nil {
			return "", err
		}
	}
	return page.HTML()
}

// Close stops Chrome. It is safe to call more than once.
func (f *Fetcher) Close() error {
	return f.browser.close()
}

// LauncherPID returns the process ID of the Chrome launcher, or 0 once
// closed.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}
