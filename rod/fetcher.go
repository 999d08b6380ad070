// Package rod provides a lectio.Fetcher that renders pages in a headless
// Chrome browser, for upstreams that build their verse markup with
// JavaScript.
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/lectio"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single navigation.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements lectio.Fetcher at compile time.
var _ lectio.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
	agent    *string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the navigation timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's User-Agent.
func WithUserAgent(agent string) Option {
	return func(f *Fetcher) {
		f.agent = &agent
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}

	// Launch browser using rod's launcher (finds or downloads Chrome)
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	// Check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", lectio.Errorf(lectio.EUNAVAILABLE, "failed to open page: %v", err)
	}
	defer page.Close()

	if f.agent != nil {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: *f.agent}); err != nil {
			return "", lectio.Errorf(lectio.EUNAVAILABLE, "failed to set user agent: %v", err)
		}
	}

	page = page.Context(ctx).Timeout(f.timeout)

	if err := page.Navigate(url); err != nil {
		return "", f.navigationError(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", f.navigationError(ctx, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", f.navigationError(ctx, url, err)
	}

	return html, nil
}

func (f *Fetcher) navigationError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return lectio.Errorf(lectio.EUNAVAILABLE, "failed to render %s: %v", url, err)
}

// Close releases browser resources and stops the launched process.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	f.launcher.Kill()
	return err
}
