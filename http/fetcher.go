// Package http provides an HTTP-based implementation of lectio.Fetcher
// for upstream pages that don't require JavaScript rendering.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/lectio"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements lectio.Fetcher at compile time.
var _ lectio.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// A single Fetcher shares one connection pool and is safe for concurrent use.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	header  http.Header
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHeader sets a request header. An empty User-Agent suppresses the
// header entirely.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.header.Set(key, value)
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		header:  make(http.Header),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// A 404 is reported as ENOTFOUND; any other failure to get a 200 response
// is reported as EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", lectio.Errorf(lectio.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	for key, values := range f.header {
		req.Header[key] = values
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Timeout() {
			return "", lectio.Errorf(lectio.EUNAVAILABLE, "timed out fetching %s", rawURL)
		}
		return "", lectio.Errorf(lectio.EUNAVAILABLE, "failed to fetch %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", lectio.Errorf(lectio.ENOTFOUND, "HTTP 404 for %s", rawURL)
	case resp.StatusCode != http.StatusOK:
		return "", lectio.Errorf(lectio.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", lectio.Errorf(lectio.EUNAVAILABLE, "failed to read %s: %v", rawURL, err)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
