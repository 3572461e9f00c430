package rod

import (
	"fmt"
	"sync"

	"github.com/fwojciec/blocksearch"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the number of pages rendered before the browser is
// replaced with a fresh one.
const DefaultMaxPages = 75

// browser owns a headless Chrome process. Chrome's memory grows with every
// page and does not return to baseline, so the process is recycled after
// maxPages pages.
type browser struct {
	mu       sync.Mutex
	b        *rod.Browser
	launcher *launcher.Launcher
	pages    int
	maxPages int
}

// launch starts Chrome with flags that keep background pages rendering.
func (br *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	br.b = b
	br.launcher = l
	br.pages = 0
	return nil
}

// acquire returns the browser to render the next page with, recycling it
// first when it has reached maxPages. A failed relaunch keeps the old
// browser.
func (br *browser) acquire() (*rod.Browser, error) {
	br.mu.Lock()
	defer br.mu.Unlock()

	if br.b == nil {
		return nil, blocksearch.Errorf(blocksearch.EINVALID, "browser is closed")
	}
	if br.maxPages > 0 && br.pages >= br.maxPages {
		oldB, oldL := br.b, br.launcher
		if err := br.launch(); err != nil {
			br.b, br.launcher = oldB, oldL
		} else {
			_ = oldB.Close()
			oldL.Kill()
		}
	}
	br.pages++
	return br.b, nil
}

func (br *browser) close() error {
	br.mu.Lock()
	defer br.mu.Unlock()

	var err error
	if br.b != nil {
		err = br.b.Close()
		br.b = nil
	}
	if br.launcher != nil {
		br.launcher.Kill()
		br.launcher = nil
	}
	return err
}

func (br *browser) pid() int {
	br.mu.Lock()
	defer br.mu.Unlock()
	if br.launcher == nil {
		return 0
	}
	return br.launcher.PID()
}
