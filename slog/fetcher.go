// Package slog provides logging decorators for lectio services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lectio"
)

// Ensure PageLogger implements lectio.Fetcher.
var _ lectio.Fetcher = (*PageLogger)(nil)

// lookupKey carries the lookup a page request serves.
type lookupKey struct{}

type lookupInfo struct {
	version string
	ref     string
}

// withLookup tags ctx with the version and reference being looked up so
// page requests made on its behalf can be traced back to it.
func withLookup(ctx context.Context, v *lectio.Version, r lectio.VerseRange) context.Context {
	info := lookupInfo{ref: r.String()}
	if v != nil {
		info.version = v.Command
	}
	return context.WithValue(ctx, lookupKey{}, info)
}

// PageLogger logs every upstream page request. Successful requests log at
// debug level; failures log at warn level with their error code. When the
// request serves a lookup made through LoggingBackend, the record names
// that lookup's version and reference.
type PageLogger struct {
	next   lectio.Fetcher
	logger *slog.Logger
}

// NewPageLogger creates a new PageLogger.
func NewPageLogger(next lectio.Fetcher, logger *slog.Logger) *PageLogger {
	return &PageLogger{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the page.
func (f *PageLogger) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "bytes", len(html), "duration", time.Since(begin)}
		if info, ok := ctx.Value(lookupKey{}).(lookupInfo); ok {
			attrs = append(attrs, "version", info.version, "ref", info.ref)
		}
		if err != nil {
			attrs = append(attrs, "code", lectio.ErrorCode(err), "err", err)
			f.logger.WarnContext(ctx, "page", attrs...)
			return
		}
		f.logger.DebugContext(ctx, "page", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *PageLogger) Close() error {
	return f.next.Close()
}
