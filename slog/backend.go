package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/lectio"
)

// Ensure LoggingBackend implements lectio.Backend.
var _ lectio.Backend = (*LoggingBackend)(nil)

// LoggingBackend wraps a Backend with logging of every lookup and search.
type LoggingBackend struct {
	next   lectio.Backend
	logger *slog.Logger
}

// NewLoggingBackend creates a new LoggingBackend.
func NewLoggingBackend(next lectio.Backend, logger *slog.Logger) *LoggingBackend {
	return &LoggingBackend{next: next, logger: logger}
}

// Lookup delegates to the wrapped backend and logs the reference.
func (b *LoggingBackend) Lookup(ctx context.Context, v *lectio.Version, r lectio.VerseRange) (p *lectio.Passage, err error) {
	defer func(begin time.Time) {
		b.logger.Info("lookup",
			"version", v.Command,
			"range", r.String(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Lookup(withLookup(ctx, v, r), v, r)
}

// Search delegates to the wrapped backend and logs the match count.
func (b *LoggingBackend) Search(ctx context.Context, v *lectio.Version, terms []string, opts lectio.SearchOptions) (res *lectio.SearchResults, err error) {
	defer func(begin time.Time) {
		total := 0
		if res != nil {
			total = res.Total
		}
		b.logger.Info("search",
			"version", v.Command,
			"terms", terms,
			"total", total,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.Search(ctx, v, terms, opts)
}
